package encoding

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/mutagen-io/fsprim/pkg/logging"
)

// LoadAndUnmarshalYAML loads data from the specified path and decodes it into
// the specified structure. Unknown fields are rejected. An empty file leaves
// the structure unmodified.
func LoadAndUnmarshalYAML(path string, value any) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		return decoder.Decode(value)
	})
}

// MarshalAndSaveYAML marshals the specified value and saves it to the
// specified path.
func MarshalAndSaveYAML(path string, logger *logging.Logger, value any) error {
	return MarshalAndSave(path, logger, func() ([]byte, error) {
		return yaml.Marshal(value)
	})
}
