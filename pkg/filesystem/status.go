package filesystem

import (
	"os"
	"strings"
	"time"
)

// FileType is the normalized type of a filesystem entry.
type FileType uint8

const (
	// TypeError indicates that the status couldn't be resolved.
	TypeError FileType = iota
	// TypeNotFound indicates that no entry exists at the path.
	TypeNotFound
	// TypeRegular indicates a regular file.
	TypeRegular
	// TypeDirectory indicates a directory.
	TypeDirectory
	// TypeCharacterDevice indicates a character device, including reserved
	// device names on Windows.
	TypeCharacterDevice
	// TypeBlockDevice indicates a block device. It only occurs on POSIX.
	TypeBlockDevice
	// TypeFIFO indicates a named or anonymous pipe.
	TypeFIFO
	// TypeSymbolicLink indicates a symbolic link or a link-like reparse point.
	TypeSymbolicLink
	// TypeSocket indicates a Unix domain socket. It only occurs on POSIX.
	TypeSocket
	// TypeUnknown indicates that an entry exists but couldn't be classified,
	// e.g. because it's locked by another process.
	TypeUnknown
)

// String returns a human-readable representation of the type.
func (t FileType) String() string {
	switch t {
	case TypeError:
		return "error"
	case TypeNotFound:
		return "not found"
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeCharacterDevice:
		return "character device"
	case TypeBlockDevice:
		return "block device"
	case TypeFIFO:
		return "fifo"
	case TypeSymbolicLink:
		return "symbolic link"
	case TypeSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// UniqueID identifies a filesystem entity independently of the path used to
// reach it. On POSIX systems it holds the device and inode numbers. On Windows
// it holds the volume serial number and both halves of the file index. It is
// comparable with ==, but it's not guaranteed to be stable across volume
// re-mounts and shouldn't be persisted.
type UniqueID struct {
	// Device is the device ID or volume serial number.
	Device uint64
	// FileHigh is the upper half of the file identifier. It's always 0 on
	// POSIX systems.
	FileHigh uint64
	// FileLow is the lower half of the file identifier (the inode number on
	// POSIX systems).
	FileLow uint64
}

// FileStatus is a normalized status record. It's a value, produced per query
// and never updated.
type FileStatus struct {
	// Type is the entry type.
	Type FileType
	// Size is the size of the entry in bytes.
	Size uint64
	// ModificationTime is the last modification time of the entry.
	ModificationTime time.Time
	// Permissions are the entry's permission bits. On Windows they're derived
	// from the read-only attribute.
	Permissions os.FileMode
	// LinkCount is the number of hard links to the entry.
	LinkCount uint64
	// ID is the entry's unique identity.
	ID UniqueID
}

// Known reports whether or not the status was resolved, i.e. whether its type
// is anything other than TypeError. TypeNotFound and TypeUnknown statuses are
// known.
func (s FileStatus) Known() bool {
	return s.Type != TypeError
}

// Exists reports whether the status denotes an existing entry.
func (s FileStatus) Exists() bool {
	return s.Type != TypeError && s.Type != TypeNotFound
}

// IdentityEquals reports whether two statuses denote the same underlying
// entity. Both statuses must be known; comparing an unresolved status is a
// programming error and panics.
func IdentityEquals(a, b FileStatus) bool {
	if !a.Known() || !b.Known() {
		panic("identity comparison of unresolved file status")
	}
	return a.ID == b.ID
}

// SamePath reports whether two paths denote the same entity. In addition to
// identity, it compares size and modification time, which allows it to reject
// mismatches without relying on the identity fields alone.
func SamePath(a, b string) (bool, error) {
	first, err := Status(a)
	if err != nil {
		return false, err
	}
	second, err := Status(b)
	if err != nil {
		return false, err
	}
	return first.ID == second.ID &&
		first.Size == second.Size &&
		first.ModificationTime.Equal(second.ModificationTime), nil
}

// StatusOfFile queries the status of an open file.
func StatusOfFile(file *os.File) (FileStatus, error) {
	handle, err := NativeHandleOf(file)
	if err != nil {
		return FileStatus{Type: TypeError}, err
	}
	return StatusOfHandle(handle)
}

// statusFromError converts a failed status query into a best-effort status
// value and a classified error. Missing entries yield TypeNotFound, entries
// that exist but can't be queried (permission or sharing failures) yield
// TypeUnknown, and everything else yields TypeError.
func statusFromError(op, path string, cause error) (FileStatus, error) {
	err := newError(op, path, cause)
	switch err.Kind {
	case KindNotFound:
		return FileStatus{Type: TypeNotFound}, err
	case KindAccessDenied, KindSharingViolation:
		return FileStatus{Type: TypeUnknown}, err
	default:
		return FileStatus{Type: TypeError}, err
	}
}

// reservedNames are the legacy device names reserved in every directory on
// Windows.
var reservedNames = []string{
	"nul", "con", "prn", "aux",
	"com1", "com2", "com3", "com4", "com5", "com6", "com7", "com8", "com9",
	"lpt1", "lpt2", "lpt3", "lpt4", "lpt5", "lpt6", "lpt7", "lpt8", "lpt9",
}

// isReservedName reports whether a path names a Windows device, either via the
// device namespace prefix or via one of the reserved legacy names.
func isReservedName(path string) bool {
	// Device namespace paths are never legal file paths.
	if strings.HasPrefix(path, `\\.\`) {
		return true
	}

	// Compare against the reserved names.
	for _, name := range reservedNames {
		if strings.EqualFold(path, name) {
			return true
		}
	}
	return false
}

// endsInDriveTerminator reports whether path ends in a drive designator
// terminator, e.g. "C:".
func endsInDriveTerminator(path string) bool {
	return path != "" && path[len(path)-1] == ':'
}

// isDriveLetter reports whether c is a valid drive letter.
func isDriveLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// stripDrivePrefix removes a leading drive designator ("C:") from a path.
func stripDrivePrefix(path string) string {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		return path[2:]
	}
	return path
}

// endsInSeparator reports whether path ends in a path separator character.
func endsInSeparator(path string) bool {
	return path != "" && os.IsPathSeparator(path[len(path)-1])
}
