package filesystem

import (
	"io"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mutagen-io/fsprim/pkg/must"
)

// removeFile removes a non-directory entry.
func removeFile(path string) error {
	path16, err := encodePath("remove", path)
	if err != nil {
		return err
	}
	return windows.DeleteFile(&path16[0])
}

// removeDirectory removes an empty directory.
func removeDirectory(path string) error {
	path16, err := encodePath("remove", path)
	if err != nil {
		return err
	}
	return windows.RemoveDirectory(&path16[0])
}

// makeDirectory creates a directory with default security.
func makeDirectory(path string) error {
	path16, err := encodePath("create directory", path)
	if err != nil {
		return err
	}
	return windows.CreateDirectory(&path16[0], nil)
}

// makeLink creates a hard link at from referring to to.
func makeLink(to, from string) error {
	to16, err := encodePath("link", to)
	if err != nil {
		return err
	}
	from16, err := encodePath("link", from)
	if err != nil {
		return err
	}
	return windows.CreateHardLink(&from16[0], &to16[0], 0)
}

// resizeFile sets the size of a file by moving the file pointer to the target
// size and marking the end of file there.
func resizeFile(path string, size int64) error {
	path16, err := encodePath("resize", path)
	if err != nil {
		return err
	}
	handle, err := windows.CreateFile(
		&path16[0],
		windows.GENERIC_WRITE,
		windows.FILE_SHARE_DELETE|windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return err
	}
	defer must.CloseWindowsHandle(handle, logger)
	if _, err := windows.Seek(handle, size, io.SeekStart); err != nil {
		return err
	}
	return windows.SetEndOfFile(handle)
}

// probeExistence checks whether or not an entry exists at path.
func probeExistence(path string) error {
	if isReservedName(path) {
		return nil
	}
	path16, err := encodePath("exists", path)
	if err != nil {
		return err
	}
	_, err = windows.GetFileAttributes(&path16[0])
	return err
}

// canWrite implements CanWrite. Directories are always considered writable
// since the read-only attribute doesn't apply to them.
func canWrite(path string) bool {
	path16, err := encodePath("access", path)
	if err != nil {
		return false
	}
	attributes, err := windows.GetFileAttributes(&path16[0])
	if err != nil {
		return false
	}
	return attributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0 ||
		attributes&windows.FILE_ATTRIBUTE_READONLY == 0
}

// canExecute implements CanExecute. Windows has no execute permission bit, so
// any regular file is considered executable.
func canExecute(path string) bool {
	status, err := Status(path)
	return err == nil && status.Type == TypeRegular
}

// currentWorkingDirectory implements CurrentWorkingDirectory. The query
// reports the required size if the buffer is too small, so it's retried with
// a larger buffer until it fits.
func currentWorkingDirectory() (string, error) {
	buffer := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetCurrentDirectory(uint32(len(buffer)), &buffer[0])
		if err != nil {
			return "", err
		} else if int(n) < len(buffer) {
			return DefaultCodec.DecodeUTF8(buffer, int(n))
		}
		buffer = make([]uint16, n)
	}
}

// executablePath queries the path of the module containing addressHint, or of
// the main executable if the hint is zero.
func executablePath(addressHint uintptr) (string, error) {
	// Identify the module.
	var module windows.Handle
	if addressHint != 0 {
		if err := windows.GetModuleHandleEx(
			windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS|windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
			(*uint16)(unsafe.Pointer(addressHint)),
			&module,
		); err != nil {
			return "", err
		}
	}

	// Query the module path. Truncation is only detectable by the result
	// filling the whole buffer.
	buffer := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetModuleFileName(module, &buffer[0], uint32(len(buffer)))
		if err != nil && err != windows.ERROR_INSUFFICIENT_BUFFER {
			return "", err
		} else if err == nil && int(n) < len(buffer) {
			return DefaultCodec.DecodeUTF8(buffer, int(n))
		}
		buffer = make([]uint16, 2*len(buffer))
	}
}

// homeDirectory implements HomeDirectory using the user's profile folder.
func homeDirectory() string {
	result, err := windows.KnownFolderPath(windows.FOLDERID_Profile, windows.KF_FLAG_DEFAULT)
	if err != nil {
		return ""
	}
	return result
}
