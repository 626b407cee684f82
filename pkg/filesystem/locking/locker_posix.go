//go:build !windows && !plan9

package locking

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// lock performs lock acquisition.
func (l *Locker) lock(block bool) error {
	lockSpec := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: int16(io.SeekStart),
		Start:  0,
		Len:    0,
	}
	operation := unix.F_SETLK
	if block {
		operation = unix.F_SETLKW
	}
	for {
		err := unix.FcntlFlock(l.file.Fd(), operation, &lockSpec)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// unlock performs lock release.
func (l *Locker) unlock() error {
	unlockSpec := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: int16(io.SeekStart),
		Start:  0,
		Len:    0,
	}
	return unix.FcntlFlock(l.file.Fd(), unix.F_SETLK, &unlockSpec)
}

// isContended reports whether a non-blocking acquisition failed because the
// lock is held elsewhere. POSIX allows either EAGAIN or EACCES.
func isContended(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EACCES)
}
