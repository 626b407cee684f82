package locking

import (
	"errors"
	"math"

	"golang.org/x/sys/windows"
)

// lock performs lock acquisition. The entire possible range of the file is
// locked.
func (l *Locker) lock(block bool) error {
	var overlapped windows.Overlapped
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK)
	if !block {
		flags |= windows.LOCKFILE_FAIL_IMMEDIATELY
	}
	return windows.LockFileEx(windows.Handle(l.file.Fd()), flags, 0, math.MaxUint32, math.MaxUint32, &overlapped)
}

// unlock performs lock release.
func (l *Locker) unlock() error {
	var overlapped windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, math.MaxUint32, math.MaxUint32, &overlapped)
}

// isContended reports whether a non-blocking acquisition failed because the
// lock is held elsewhere.
func isContended(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION)
}
