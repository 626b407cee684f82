package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprim/pkg/logging"
	"github.com/mutagen-io/fsprim/pkg/must"
)

const (
	// atomicWriteTemporaryTemplate is the name template to use for
	// intermediate temporary files used in atomic writes.
	atomicWriteTemporaryTemplate = TemporaryNamePrefix + "atomic-write-%%%%%%%%"
)

// WriteFileAtomic writes a file to disk in an atomic fashion by using an
// intermediate temporary file that is swapped in place using a rename
// operation.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	// Create a temporary file next to the target. Unique files are created
	// with user-only permissions.
	template := filepath.Join(filepath.Dir(path), atomicWriteTemporaryTemplate)
	temporary, temporaryPath, err := CreateUnique(template, EntityFile, false, 0)
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}

	// Write data.
	if _, err = temporary.Write(data); err != nil {
		must.Close(temporary, logger)
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to write data to temporary file")
	}

	// Close out the file.
	if err = temporary.Close(); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to close temporary file")
	}

	// Set the file's permissions.
	if err = os.Chmod(temporaryPath, permissions); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to change file permissions")
	}

	// Rename the file.
	if err = Rename(temporaryPath, path); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to rename file")
	}

	// Success.
	return nil
}
