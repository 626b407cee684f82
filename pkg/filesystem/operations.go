package filesystem

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// Remove removes the file, link, or empty directory at path. Links are removed
// rather than followed. If ignoreMissing is true, then a missing path isn't
// treated as an error.
func Remove(path string, ignoreMissing bool) error {
	// Determine the entry type.
	status, err := LinkStatus(path)
	if err != nil {
		if ignoreMissing && IsNotFound(err) {
			return nil
		}
		return contextError("remove", path, err)
	}

	// Perform removal. The entry may have vanished since it was probed.
	if status.Type == TypeDirectory {
		err = removeDirectory(path)
	} else {
		err = removeFile(path)
	}
	if err != nil {
		if ignoreMissing && IsNotFound(err) {
			return nil
		}
		return contextError("remove", path, err)
	}
	return nil
}

// CreateDirectory creates a directory at path. Its parent must exist. If
// ignoreExisting is true, then an existing entry at path isn't treated as an
// error.
func CreateDirectory(path string, ignoreExisting bool) error {
	if err := makeDirectory(path); err != nil {
		if ignoreExisting && IsAlreadyExists(err) {
			return nil
		}
		return contextError("create directory", path, err)
	}
	return nil
}

// CreateHardLink creates a new hard link at from that refers to the existing
// file at to.
func CreateHardLink(to, from string) error {
	if err := makeLink(to, from); err != nil {
		return contextError("link", from, err)
	}
	return nil
}

// Resize sets the size of the file at path, truncating or zero-extending it as
// necessary.
func Resize(path string, size int64) error {
	if size < 0 {
		return kindError("resize", path, KindInvalidArgument, errors.New("negative size"))
	}
	if err := resizeFile(path, size); err != nil {
		return contextError("resize", path, err)
	}
	return nil
}

// Exists reports whether an entry exists at path. Only a definitive "not
// found" result is reported as false. Other failures are returned.
func Exists(path string) (bool, error) {
	if err := probeExistence(path); err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, contextError("exists", path, err)
	}
	return true, nil
}

// CanWrite reports whether the calling process can write to the entry at
// path. It's a best-effort check, and any failure is reported as false.
func CanWrite(path string) bool {
	return canWrite(path)
}

// CanExecute reports whether the calling process can execute the entry at
// path. It's a best-effort check, and any failure is reported as false.
func CanExecute(path string) bool {
	return canExecute(path)
}

// CurrentWorkingDirectory returns the current working directory.
func CurrentWorkingDirectory() (string, error) {
	result, err := currentWorkingDirectory()
	if err != nil {
		return "", newError("getcwd", "", err)
	}
	return result, nil
}

// MainExecutablePath returns the absolute path of the running executable. The
// address hint (typically the address of a function in the main program) is
// used to identify the module on platforms that support address-based module
// queries and is ignored elsewhere. If the system can't report the path, then
// it's derived from argv0, searching the PATH if argv0 is a bare name. An
// empty string is returned if the path can't be determined.
func MainExecutablePath(argv0 string, addressHint uintptr) string {
	// Ask the system.
	if result, err := executablePath(addressHint); err == nil && result != "" {
		return result
	}

	// Fall back to argv0.
	if argv0 == "" {
		return ""
	}
	candidate := argv0
	if !strings.ContainsAny(argv0, pathSeparators) {
		var err error
		if candidate, err = exec.LookPath(argv0); err != nil {
			return ""
		}
	}
	result, err := filepath.Abs(candidate)
	if err != nil {
		return ""
	}
	return result
}

// HomeDirectory returns the current user's home directory. It returns false
// if the home directory can't be determined.
func HomeDirectory() (string, bool) {
	result := homeDirectory()
	return result, result != ""
}
