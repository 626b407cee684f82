package filesystem

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mutagen-io/fsprim/pkg/must"
)

// fileAttributeTagInfo is the Go representation of FILE_ATTRIBUTE_TAG_INFO.
type fileAttributeTagInfo struct {
	// FileAttributes are the file attributes.
	FileAttributes uint32
	// ReparseTag is the file reparse tag.
	ReparseTag uint32
}

// Status queries the status of the entry at the specified path, following
// reparse points.
func Status(path string) (FileStatus, error) {
	return status(path, true)
}

// LinkStatus queries the status of the entry at the specified path without
// following a reparse point at the path leaf.
func LinkStatus(path string) (FileStatus, error) {
	return status(path, false)
}

// status implements Status and LinkStatus.
func status(path string, follow bool) (FileStatus, error) {
	// Reserved device names are classified without touching the filesystem.
	if isReservedName(path) {
		return FileStatus{Type: TypeCharacterDevice}, nil
	}

	// Convert the path.
	path16, err := encodePath("stat", path)
	if err != nil {
		return FileStatus{Type: TypeError}, err
	}

	// Query attributes.
	attributes, err := windows.GetFileAttributes(&path16[0])
	if err != nil {
		return statusFromError("stat", path, err)
	}

	// Open the entry for attribute access only. If we're not following links
	// and the entry is a reparse point, then open the reparse point itself.
	flags := uint32(windows.FILE_FLAG_BACKUP_SEMANTICS)
	if !follow && attributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		flags |= windows.FILE_FLAG_OPEN_REPARSE_POINT
	}
	handle, err := windows.CreateFile(
		&path16[0],
		0,
		windows.FILE_SHARE_DELETE|windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		flags,
		0,
	)
	if err != nil {
		return statusFromError("stat", path, err)
	}
	defer must.CloseWindowsHandle(handle, logger)

	// Probe the handle.
	result, err := statusOfWindowsHandle(handle)
	if err != nil {
		return statusFromError("stat", path, err)
	}
	return result, nil
}

// StatusOfHandle queries the status of an open file.
func StatusOfHandle(handle NativeHandle) (FileStatus, error) {
	if !handle.valid() {
		return FileStatus{Type: TypeError}, kindError("stat handle", "", KindInvalidHandle, windows.ERROR_INVALID_HANDLE)
	}
	result, err := statusOfWindowsHandle(windows.Handle(handle))
	if err != nil {
		return statusFromError("stat handle", "", err)
	}
	return result, nil
}

// statusOfWindowsHandle probes an open handle. It distinguishes pipes,
// character devices, and disk-backed entries, and for the latter extracts
// type, size, modification time, and identity.
func statusOfWindowsHandle(handle windows.Handle) (FileStatus, error) {
	// Classify the handle type.
	fileType, err := windows.GetFileType(handle)
	if err != nil {
		return FileStatus{}, err
	}
	switch fileType {
	case windows.FILE_TYPE_DISK:
	case windows.FILE_TYPE_CHAR:
		return FileStatus{Type: TypeCharacterDevice}, nil
	case windows.FILE_TYPE_PIPE:
		return FileStatus{Type: TypeFIFO}, nil
	default:
		return FileStatus{Type: TypeUnknown}, nil
	}

	// Perform a general metadata query.
	var metadata windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &metadata); err != nil {
		return FileStatus{}, err
	}

	// Classify the entry. A handle only refers to a reparse point if it was
	// opened without following it, in which case we need to check whether the
	// reparse point is link-like. The tag query isn't supported on some
	// non-NTFS filesystems, which also don't support links, so an invalid
	// parameter error is treated as "not a link".
	result := TypeRegular
	if metadata.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		result = TypeDirectory
	}
	if metadata.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		var attributes fileAttributeTagInfo
		if err := windows.GetFileInformationByHandleEx(
			handle,
			windows.FileAttributeTagInfo,
			(*byte)(unsafe.Pointer(&attributes)),
			uint32(unsafe.Sizeof(attributes)),
		); err != nil {
			if err != windows.ERROR_INVALID_PARAMETER {
				return FileStatus{}, err
			}
		} else if attributes.ReparseTag == windows.IO_REPARSE_TAG_SYMLINK ||
			attributes.ReparseTag == windows.IO_REPARSE_TAG_MOUNT_POINT {
			result = TypeSymbolicLink
		}
	}

	// Compute permissions from the read-only attribute.
	permissions := uint32(0777)
	if metadata.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0 {
		permissions = 0555
	}

	// Success.
	return FileStatus{
		Type:             result,
		Size:             uint64(metadata.FileSizeHigh)<<32 | uint64(metadata.FileSizeLow),
		ModificationTime: time.Unix(0, metadata.LastWriteTime.Nanoseconds()),
		Permissions:      os.FileMode(permissions),
		LinkCount:        uint64(metadata.NumberOfLinks),
		ID: UniqueID{
			Device:   uint64(metadata.VolumeSerialNumber),
			FileHigh: uint64(metadata.FileIndexHigh),
			FileLow:  uint64(metadata.FileIndexLow),
		},
	}, nil
}
