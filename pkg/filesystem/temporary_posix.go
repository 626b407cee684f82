//go:build !windows

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

// TemporaryDirectory returns the system temporary directory. It uses the
// first non-empty value of the TMPDIR, TMP, TEMP, and TEMPDIR environment
// variables, falling back to /tmp.
func TemporaryDirectory() (string, error) {
	for _, variable := range []string{"TMPDIR", "TMP", "TEMP", "TEMPDIR"} {
		if value := os.Getenv(variable); value != "" {
			return value, nil
		}
	}
	return "/tmp", nil
}

// createCandidate performs the kind-specific creation step for a unique
// entry candidate. POSIX paths need no encoding conversion, so the resulting
// path is the candidate itself.
func createCandidate(name string, kind EntityKind, mode os.FileMode) (*os.File, string, error) {
	// Validate the candidate.
	if err := validatePath("create unique", name); err != nil {
		return nil, "", err
	}

	// Perform creation.
	switch kind {
	case EntityFile:
		descriptor, err := openRetryingOnEINTR(name, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, uint32(mode.Perm()))
		if err != nil {
			return nil, "", newError("create unique", name, err)
		}
		return os.NewFile(uintptr(descriptor), name), name, nil
	case EntityDirectory:
		if err := mkdirRetryingOnEINTR(name, uint32(mode.Perm())); err != nil {
			return nil, "", newError("create unique", name, err)
		}
		return nil, name, nil
	default:
		if err := checkNameCandidate(name); err != nil {
			return nil, "", err
		}
		return nil, name, nil
	}
}
