//go:build !windows

package filesystem

import (
	"os"
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// removeFile removes a non-directory entry.
func removeFile(path string) error {
	if err := validatePath("remove", path); err != nil {
		return err
	}
	return unlinkRetryingOnEINTR(path)
}

// removeDirectory removes an empty directory.
func removeDirectory(path string) error {
	if err := validatePath("remove", path); err != nil {
		return err
	}
	return rmdirRetryingOnEINTR(path)
}

// makeDirectory creates a directory with permissions subject to the umask.
func makeDirectory(path string) error {
	if err := validatePath("create directory", path); err != nil {
		return err
	}
	return mkdirRetryingOnEINTR(path, 0777)
}

// makeLink creates a hard link at from referring to to.
func makeLink(to, from string) error {
	if err := validatePath("link", to); err != nil {
		return err
	} else if err = validatePath("link", from); err != nil {
		return err
	}
	return linkRetryingOnEINTR(to, from)
}

// resizeFile sets the size of a file.
func resizeFile(path string, size int64) error {
	if err := validatePath("resize", path); err != nil {
		return err
	}
	return truncateRetryingOnEINTR(path, size)
}

// probeExistence checks whether or not an entry exists at path, following
// symbolic links.
func probeExistence(path string) error {
	if err := validatePath("exists", path); err != nil {
		return err
	}
	return accessRetryingOnEINTR(path, unix.F_OK)
}

// canWrite implements CanWrite.
func canWrite(path string) bool {
	return validatePath("access", path) == nil &&
		accessRetryingOnEINTR(path, unix.W_OK) == nil
}

// canExecute implements CanExecute. Directories are searchable rather than
// executable, so only regular files are considered.
func canExecute(path string) bool {
	if validatePath("access", path) != nil || accessRetryingOnEINTR(path, unix.X_OK) != nil {
		return false
	}
	status, err := Status(path)
	return err == nil && status.Type == TypeRegular
}

// currentWorkingDirectory implements CurrentWorkingDirectory. The PWD
// environment variable is preferred if it refers to the working directory,
// since it preserves the symbolic links that the user navigated through.
func currentWorkingDirectory() (string, error) {
	if pwd := os.Getenv("PWD"); filepath.IsAbs(pwd) {
		if same, err := SamePath(pwd, "."); err == nil && same {
			return pwd, nil
		}
	}
	return unix.Getwd()
}

// executablePath queries the path of the running executable. Address-based
// module queries require the dynamic loader, so the hint is ignored.
func executablePath(_ uintptr) (string, error) {
	result, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Abs(result)
}

// homeDirectory implements HomeDirectory. The HOME environment variable takes
// precedence over the user database.
func homeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if currentUser, err := user.Current(); err == nil {
		return currentUser.HomeDir
	}
	return ""
}
