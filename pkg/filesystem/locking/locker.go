// Package locking provides whole-file advisory locks. Contended acquisition
// attempts fail with errors of filesystem.KindSharingViolation, which makes
// lockers useful for producing transient sharing conditions on demand.
package locking

import (
	"os"

	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// Locker provides file locking facilities.
type Locker struct {
	// file is the underlying file object that's locked.
	file *os.File
	// held indicates whether or not the lock is currently held.
	held bool
}

// NewLocker attempts to create a lock with the file at the specified path,
// creating the file if necessary. The lock is returned in an unlocked state.
func NewLocker(path string, permissions os.FileMode) (*Locker, error) {
	mode := os.O_RDWR | os.O_CREATE | os.O_APPEND
	if file, err := os.OpenFile(path, mode, permissions); err != nil {
		return nil, errors.Wrap(err, "unable to open lock file")
	} else {
		return &Locker{file: file}, nil
	}
}

// Held returns whether or not the lock is currently held.
func (l *Locker) Held() bool {
	return l.held
}

// Lock attempts to acquire the file lock. If block is false and the lock is
// held elsewhere, then an error of filesystem.KindSharingViolation is
// returned.
func (l *Locker) Lock(block bool) error {
	if l.held {
		return errors.New("lock already held")
	}
	if err := l.lock(block); err != nil {
		if isContended(err) {
			return &filesystem.Error{Op: "lock", Path: l.file.Name(), Kind: filesystem.KindSharingViolation, Err: err}
		}
		return &filesystem.Error{Op: "lock", Path: l.file.Name(), Kind: filesystem.KindOf(err), Err: err}
	}
	l.held = true
	return nil
}

// Unlock releases the file lock.
func (l *Locker) Unlock() error {
	if !l.held {
		return errors.New("lock not held")
	}
	if err := l.unlock(); err != nil {
		return errors.Wrap(err, "unable to release lock")
	}
	l.held = false
	return nil
}

// Write implements io.Writer.Write on the underlying file, but errors if the
// lock is not currently held.
func (l *Locker) Write(buffer []byte) (int, error) {
	// Verify that the lock is held.
	if !l.held {
		return 0, errors.New("lock not held")
	}

	// Perform the write.
	return l.file.Write(buffer)
}

// Close closes the file underlying the locker. This will release any lock held
// on the file and disable future locking. On POSIX platforms, this also
// releases other locks held on the same file.
func (l *Locker) Close() error {
	l.held = false
	return l.file.Close()
}
