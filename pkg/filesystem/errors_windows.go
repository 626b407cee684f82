package filesystem

import (
	"errors"

	"golang.org/x/sys/windows"
)

// nativeKind classifies a Windows error code.
func nativeKind(err error) (Kind, bool) {
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return KindOS, false
	}
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND,
		windows.ERROR_PATH_NOT_FOUND,
		windows.ERROR_INVALID_DRIVE,
		windows.ERROR_BAD_NETPATH,
		windows.ERROR_BAD_NET_NAME:
		return KindNotFound, true
	case windows.ERROR_FILE_EXISTS, windows.ERROR_ALREADY_EXISTS:
		return KindAlreadyExists, true
	case windows.ERROR_ACCESS_DENIED,
		windows.ERROR_WRITE_PROTECT,
		windows.ERROR_CANT_ACCESS_FILE:
		return KindAccessDenied, true
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION:
		return KindSharingViolation, true
	case windows.ERROR_DIRECTORY:
		return KindIsADirectory, true
	case windows.ERROR_INVALID_PARAMETER,
		windows.ERROR_INVALID_NAME,
		windows.ERROR_FILENAME_EXCED_RANGE,
		windows.ERROR_NOT_ENOUGH_MEMORY:
		return KindInvalidArgument, true
	case windows.ERROR_NO_UNICODE_TRANSLATION:
		return KindEncoding, true
	case windows.ERROR_INVALID_HANDLE:
		return KindInvalidHandle, true
	case windows.ERROR_CALL_NOT_IMPLEMENTED, windows.ERROR_NOT_SUPPORTED:
		return KindUnimplemented, true
	default:
		return KindOS, true
	}
}
