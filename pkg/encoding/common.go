// Package encoding provides loading and atomic saving of encoded files.
package encoding

import (
	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/logging"
	"github.com/mutagen-io/fsprim/pkg/must"
)

// LoadAndUnmarshal maps the file at the specified path and invokes the
// unmarshaling callback (usually a closure) on its contents. The contents are
// mapped copy-on-write, so the callback may modify them freely, but it must
// not retain them after it returns. If the file doesn't exist, the returned
// error satisfies filesystem.IsNotFound.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	// Verify that the target is a regular file.
	status, err := filesystem.Status(path)
	if err != nil {
		if filesystem.IsNotFound(err) {
			return err
		}
		return errors.Wrap(err, "unable to query file")
	} else if status.Type != filesystem.TypeRegular {
		return errors.Errorf("%s is not a regular file (%s)", path, status.Type)
	}

	// Empty files can't be mapped.
	if status.Size == 0 {
		if err := unmarshal(nil); err != nil {
			return errors.Wrap(err, "unable to unmarshal data")
		}
		return nil
	}

	// Map the file contents.
	region, err := filesystem.MapFile(path, filesystem.MapPrivate, 0, 0)
	if err != nil {
		return errors.Wrap(err, "unable to load file")
	}
	defer must.Close(region, nil)

	// Perform the unmarshaling.
	if err := unmarshal(region.Data()); err != nil {
		return errors.Wrap(err, "unable to unmarshal data")
	}

	// Success.
	return nil
}

// MarshalAndSave invokes the marshaling callback (usually a closure) and
// writes the result atomically to the specified path with read/write
// permissions for the user only.
func MarshalAndSave(path string, logger *logging.Logger, marshal func() ([]byte, error)) error {
	// Marshal the value.
	data, err := marshal()
	if err != nil {
		return errors.Wrap(err, "unable to marshal value")
	}

	// Write the file atomically.
	if err := filesystem.WriteFileAtomic(path, data, 0600, logger); err != nil {
		return errors.Wrap(err, "unable to write data")
	}

	// Success.
	return nil
}
