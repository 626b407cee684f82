//go:build !windows

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// nativeKind classifies a POSIX errno value.
func nativeKind(err error) (Kind, bool) {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return KindOS, false
	}
	switch errno {
	case unix.ENOENT:
		return KindNotFound, true
	case unix.EEXIST:
		return KindAlreadyExists, true
	case unix.EACCES, unix.EPERM, unix.EROFS:
		return KindAccessDenied, true
	case unix.ETXTBSY, unix.EBUSY:
		return KindSharingViolation, true
	case unix.EISDIR:
		return KindIsADirectory, true
	case unix.EINVAL, unix.ENAMETOOLONG, unix.EOVERFLOW, unix.EFBIG:
		return KindInvalidArgument, true
	case unix.EILSEQ:
		return KindEncoding, true
	case unix.EBADF:
		return KindInvalidHandle, true
	case unix.ENOSYS, unix.EOPNOTSUPP:
		return KindUnimplemented, true
	}

	// ENOTSUP aliases EOPNOTSUPP on some platforms, so it can't share the
	// switch above.
	if errno == unix.ENOTSUP {
		return KindUnimplemented, true
	}
	return KindOS, true
}
