//go:build !windows

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// openRetryingOnEINTR is a wrapper around the open system call that retries on
// EINTR errors and returns on the first successful call or non-EINTR error.
func openRetryingOnEINTR(path string, flags int, mode uint32) (int, error) {
	for {
		result, err := unix.Open(path, flags, mode)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return result, err
	}
}

// closeConsideringEINTR is a direct passthrough to the close system call that
// doesn't retry on EINTR. It's only defined to highlight the intentional
// absence of closeRetryingOnEINTR. closeRetryingOnEINTR is left unimplemented
// because POSIX makes no guarantees about the state of a file descriptor in the
// event of an EINTR error, and thus retrying closure could lead to a race
// condition with file descriptor re-use if the file is, in fact, closed. This
// is the same policy adopted by the Go standard library and runtime.
func closeConsideringEINTR(file int) error {
	return unix.Close(file)
}

// mkdirRetryingOnEINTR is a wrapper around the mkdir system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR error.
func mkdirRetryingOnEINTR(path string, mode uint32) error {
	for {
		err := unix.Mkdir(path, mode)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// renameRetryingOnEINTR is a wrapper around the rename system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func renameRetryingOnEINTR(oldPath, newPath string) error {
	for {
		err := unix.Rename(oldPath, newPath)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// unlinkRetryingOnEINTR is a wrapper around the unlink system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func unlinkRetryingOnEINTR(path string) error {
	for {
		err := unix.Unlink(path)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// rmdirRetryingOnEINTR is a wrapper around the rmdir system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR error.
func rmdirRetryingOnEINTR(path string) error {
	for {
		err := unix.Rmdir(path)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// linkRetryingOnEINTR is a wrapper around the link system call that retries on
// EINTR errors and returns on the first successful call or non-EINTR error.
func linkRetryingOnEINTR(oldPath, newPath string) error {
	for {
		err := unix.Link(oldPath, newPath)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// truncateRetryingOnEINTR is a wrapper around the truncate system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func truncateRetryingOnEINTR(path string, size int64) error {
	for {
		err := unix.Truncate(path, size)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// fstatRetryingOnEINTR is a wrapper around the fstat system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR error.
func fstatRetryingOnEINTR(file int, metadata *unix.Stat_t) error {
	for {
		err := unix.Fstat(file, metadata)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// statRetryingOnEINTR is a wrapper around the stat system call that retries on
// EINTR errors and returns on the first successful call or non-EINTR error.
func statRetryingOnEINTR(path string, metadata *unix.Stat_t) error {
	for {
		err := unix.Stat(path, metadata)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// lstatRetryingOnEINTR is a wrapper around the lstat system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR error.
func lstatRetryingOnEINTR(path string, metadata *unix.Stat_t) error {
	for {
		err := unix.Lstat(path, metadata)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// accessRetryingOnEINTR is a wrapper around the access system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func accessRetryingOnEINTR(path string, mode uint32) error {
	for {
		err := unix.Access(path, mode)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// msyncRetryingOnEINTR is a wrapper around the msync system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR error.
func msyncRetryingOnEINTR(region []byte, flags int) error {
	for {
		err := unix.Msync(region, flags)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}

// ftruncateRetryingOnEINTR is a wrapper around the ftruncate system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func ftruncateRetryingOnEINTR(file int, size int64) error {
	for {
		err := unix.Ftruncate(file, size)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}
