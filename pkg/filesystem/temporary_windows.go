package filesystem

import (
	"os"

	"golang.org/x/sys/windows"

	"github.com/mutagen-io/fsprim/pkg/must"
)

// TemporaryDirectory returns the system temporary directory as reported by
// GetTempPath, without a trailing separator.
func TemporaryDirectory() (string, error) {
	// Query the path, growing the buffer if the first attempt reports that a
	// larger one is required.
	buffer := make([]uint16, windows.MAX_PATH+1)
	for {
		length, err := windows.GetTempPath(uint32(len(buffer)), &buffer[0])
		if err != nil {
			return "", newError("query temporary directory", "", err)
		} else if length == 0 {
			return "", kindError("query temporary directory", "", KindOS, windows.GetLastError())
		} else if int(length) > len(buffer) {
			buffer = make([]uint16, length)
			continue
		}

		// Decode the result, trimming any trailing separator.
		result, err := DefaultCodec.DecodeUTF8(buffer, int(length))
		if err != nil {
			return "", err
		}
		if len(result) > 1 && endsInSeparator(result) && !endsInDriveTerminator(result[:len(result)-1]) {
			result = result[:len(result)-1]
		}
		return result, nil
	}
}

// createCandidate performs the kind-specific creation step for a unique
// entry candidate. The native candidate is decoded back to UTF-8 after
// creation, and the created entry is removed if that fails.
func createCandidate(name string, kind EntityKind, mode os.FileMode) (*os.File, string, error) {
	// Convert the candidate.
	name16, err := encodePath("create unique", name)
	if err != nil {
		return nil, "", err
	}

	// Perform creation.
	var handle windows.Handle
	switch kind {
	case EntityFile:
		attributes := uint32(windows.FILE_ATTRIBUTE_NORMAL)
		if mode&0200 == 0 {
			attributes = windows.FILE_ATTRIBUTE_READONLY
		}
		handle, err = windows.CreateFile(
			&name16[0],
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
			nil,
			windows.CREATE_NEW,
			attributes,
			0,
		)
		if err != nil {
			return nil, "", newError("create unique", name, err)
		}
	case EntityDirectory:
		if err := windows.CreateDirectory(&name16[0], nil); err != nil {
			return nil, "", newError("create unique", name, err)
		}
	default:
		if err := checkNameCandidate(name); err != nil {
			return nil, "", err
		}
	}

	// Convert the native path back, rolling back creation on failure.
	result, err := DefaultCodec.DecodeUTF8(name16, -1)
	if err != nil {
		switch kind {
		case EntityFile:
			must.CloseWindowsHandle(handle, logger)
			must.Succeed(windows.DeleteFile(&name16[0]), "unique file rollback", logger)
		case EntityDirectory:
			must.Succeed(windows.RemoveDirectory(&name16[0]), "unique directory rollback", logger)
		}
		return nil, "", err
	}

	// Report the path in the form the caller supplied it.
	result = unwidenPath(result, name)

	// Success.
	if kind == EntityFile {
		return os.NewFile(uintptr(handle), result), result, nil
	}
	return nil, result, nil
}
