//go:build !windows

package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprim/pkg/must"
)

// moveEntry performs a single replacing move. If the source and destination
// are on different devices, then regular files are copied and removed.
func moveEntry(from, to string) error {
	// Validate paths.
	if err := validatePath("rename", from); err != nil {
		return err
	} else if err = validatePath("rename", to); err != nil {
		return err
	}

	// Perform the move.
	err := renameRetryingOnEINTR(from, to)
	if errors.Is(err, unix.EXDEV) {
		return copyThenRemove(from, to, err)
	} else if err != nil {
		return newError("rename", from, err)
	}
	return nil
}

// copyThenRemove moves a regular file across devices. The copy is staged in a
// temporary file next to the destination and renamed into place so that the
// destination is replaced atomically. Entries other than regular files fail
// with the original cross-device error.
func copyThenRemove(from, to string, crossDevice error) error {
	// Open the source and verify that it's a regular file.
	source, err := os.Open(from)
	if err != nil {
		return newError("rename", from, err)
	}
	defer must.Close(source, logger)
	metadata, err := StatusOfFile(source)
	if err != nil {
		return err
	} else if metadata.Type != TypeRegular {
		return newError("rename", from, crossDevice)
	}

	// Stage a copy alongside the destination.
	template := filepath.Join(filepath.Dir(to), TemporaryNamePrefix+"%%%%%%%%")
	staging, stagingPath, err := CreateUnique(template, EntityFile, false, metadata.Permissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(staging, source); err != nil {
		must.Close(staging, logger)
		must.OSRemove(stagingPath, logger)
		return newError("rename", from, err)
	} else if err = staging.Close(); err != nil {
		must.OSRemove(stagingPath, logger)
		return newError("rename", from, err)
	}

	// Move the copy into place.
	if err := renameRetryingOnEINTR(stagingPath, to); err != nil {
		must.OSRemove(stagingPath, logger)
		return newError("rename", to, err)
	}

	// Remove the source.
	if err := unlinkRetryingOnEINTR(from); err != nil {
		return newError("rename", from, err)
	}
	return nil
}
