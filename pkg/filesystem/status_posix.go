//go:build !windows

package filesystem

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Status queries the status of the entry at the specified path, following
// symbolic links.
func Status(path string) (FileStatus, error) {
	return status(path, true)
}

// LinkStatus queries the status of the entry at the specified path without
// following a symbolic link at the path leaf.
func LinkStatus(path string) (FileStatus, error) {
	return status(path, false)
}

// status implements Status and LinkStatus.
func status(path string, follow bool) (FileStatus, error) {
	// Validate the path.
	if err := validatePath("stat", path); err != nil {
		return FileStatus{Type: TypeError}, err
	}

	// Query metadata.
	var metadata unix.Stat_t
	var err error
	if follow {
		err = statRetryingOnEINTR(path, &metadata)
	} else {
		err = lstatRetryingOnEINTR(path, &metadata)
	}
	if err != nil {
		return statusFromError("stat", path, err)
	}

	// Success.
	return statusFromStat(&metadata), nil
}

// StatusOfHandle queries the status of an open file.
func StatusOfHandle(handle NativeHandle) (FileStatus, error) {
	// Convert the handle.
	descriptor, err := handle.Descriptor()
	if err != nil {
		return FileStatus{Type: TypeError}, err
	}

	// Query metadata.
	var metadata unix.Stat_t
	if err := fstatRetryingOnEINTR(descriptor, &metadata); err != nil {
		return statusFromError("fstat", "", err)
	}

	// Success.
	return statusFromStat(&metadata), nil
}

// statusFromStat converts raw POSIX metadata to a normalized status.
func statusFromStat(metadata *unix.Stat_t) FileStatus {
	// Classify the type.
	var fileType FileType
	switch uint32(metadata.Mode) & unix.S_IFMT {
	case unix.S_IFREG:
		fileType = TypeRegular
	case unix.S_IFDIR:
		fileType = TypeDirectory
	case unix.S_IFCHR:
		fileType = TypeCharacterDevice
	case unix.S_IFBLK:
		fileType = TypeBlockDevice
	case unix.S_IFIFO:
		fileType = TypeFIFO
	case unix.S_IFLNK:
		fileType = TypeSymbolicLink
	case unix.S_IFSOCK:
		fileType = TypeSocket
	default:
		fileType = TypeUnknown
	}

	// Success.
	return FileStatus{
		Type:             fileType,
		Size:             uint64(metadata.Size),
		ModificationTime: time.Unix(metadata.Mtim.Unix()),
		Permissions:      os.FileMode(uint32(metadata.Mode) & 0777),
		LinkCount:        uint64(metadata.Nlink),
		ID: UniqueID{
			Device:  uint64(metadata.Dev),
			FileLow: uint64(metadata.Ino),
		},
	}
}
