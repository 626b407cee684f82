package configuration

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/mutagen-io/fsprim/pkg/encoding"
	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/logging"
)

const (
	// DefaultFileName is the name of the configuration file inside the user's
	// home directory.
	DefaultFileName = ".fsprim.yml"

	// renameAttemptsEnvironmentVariable overrides Rename.Attempts.
	renameAttemptsEnvironmentVariable = "FSPRIM_RENAME_ATTEMPTS"
	// renameDelayEnvironmentVariable overrides Rename.Delay.
	renameDelayEnvironmentVariable = "FSPRIM_RENAME_DELAY"
	// temporaryDirectoryEnvironmentVariable overrides Temporary.Directory.
	temporaryDirectoryEnvironmentVariable = "FSPRIM_TEMPORARY_DIRECTORY"
	// logLevelEnvironmentVariable overrides Logging.Level.
	logLevelEnvironmentVariable = "FSPRIM_LOG_LEVEL"
	// mappingMaximumSizeEnvironmentVariable overrides Mapping.MaximumSize.
	mappingMaximumSizeEnvironmentVariable = "FSPRIM_MAPPING_MAXIMUM_SIZE"
)

// Configuration is the YAML configuration object type.
type Configuration struct {
	// Rename is the rename retry configuration.
	Rename struct {
		// Attempts is the maximum number of attempts for renames that fail due
		// to sharing violations.
		Attempts int `yaml:"attempts"`
		// Delay is the pause between rename attempts.
		Delay time.Duration `yaml:"delay"`
	} `yaml:"rename"`
	// Temporary is the temporary entity configuration.
	Temporary struct {
		// Directory overrides the system temporary directory for unique
		// entities created with absolute paths.
		Directory string `yaml:"directory,omitempty"`
	} `yaml:"temporary"`
	// Logging is the logging configuration.
	Logging struct {
		// Level is the log level name.
		Level string `yaml:"level"`
	} `yaml:"logging"`
	// Mapping is the memory mapping configuration.
	Mapping struct {
		// MaximumSize is an optional limit on mapping lengths below the
		// platform limit. Zero means no additional limit.
		MaximumSize ByteSize `yaml:"maximumSize,omitempty"`
	} `yaml:"mapping"`
}

// Default returns a configuration populated with default values.
func Default() *Configuration {
	result := &Configuration{}
	result.Rename.Attempts = filesystem.DefaultRenamePolicy.Attempts
	result.Rename.Delay = filesystem.DefaultRenamePolicy.Delay
	result.Logging.Level = logging.LevelWarn.String()
	return result
}

// DefaultPath returns the path of the configuration file in the user's home
// directory.
func DefaultPath() (string, error) {
	home, ok := filesystem.HomeDirectory()
	if !ok {
		return "", errors.New("unable to determine home directory")
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Load loads the configuration file at the specified path on top of the
// default configuration. If the file doesn't exist, then the default
// configuration is returned.
func Load(path string) (*Configuration, error) {
	// Create a configuration with default values that we can decode into.
	result := Default()

	// Attempt to load the configuration from disk.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if !filesystem.IsNotFound(err) {
			return nil, errors.Wrap(err, "unable to load configuration file")
		}
	}

	// Validate the result.
	if err := result.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return result, nil
}

// Save saves the configuration to the specified path atomically.
func (c *Configuration) Save(path string, logger *logging.Logger) error {
	return encoding.MarshalAndSaveYAML(path, logger, c)
}

// LoadEnvironmentFile loads variables from a .env file into the process
// environment. Variables that are already set aren't overridden. A missing
// file isn't an error.
func LoadEnvironmentFile(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to load environment file")
	}
	return nil
}

// ApplyEnvironment overrides configuration values with those set in the
// environment.
func (c *Configuration) ApplyEnvironment() error {
	if value, ok := os.LookupEnv(renameAttemptsEnvironmentVariable); ok {
		attempts, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid value for %s", renameAttemptsEnvironmentVariable)
		}
		c.Rename.Attempts = attempts
	}
	if value, ok := os.LookupEnv(renameDelayEnvironmentVariable); ok {
		delay, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "invalid value for %s", renameDelayEnvironmentVariable)
		}
		c.Rename.Delay = delay
	}
	if value, ok := os.LookupEnv(temporaryDirectoryEnvironmentVariable); ok {
		c.Temporary.Directory = value
	}
	if value, ok := os.LookupEnv(logLevelEnvironmentVariable); ok {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv(mappingMaximumSizeEnvironmentVariable); ok {
		if err := c.Mapping.MaximumSize.UnmarshalText([]byte(value)); err != nil {
			return errors.Wrapf(err, "invalid value for %s", mappingMaximumSizeEnvironmentVariable)
		}
	}
	return c.Validate()
}

// Validate verifies that the configuration is valid.
func (c *Configuration) Validate() error {
	if c.Rename.Attempts < 1 {
		return errors.New("rename attempts must be positive")
	} else if c.Rename.Delay < 0 {
		return errors.New("rename delay must not be negative")
	} else if _, ok := logging.NameToLevel(c.Logging.Level); !ok {
		return errors.Errorf("invalid log level: %s", c.Logging.Level)
	} else if c.Temporary.Directory != "" && !filepath.IsAbs(c.Temporary.Directory) {
		return errors.New("temporary directory must be absolute")
	}
	return nil
}

// LogLevel returns the configured log level. The configuration must be valid.
func (c *Configuration) LogLevel() logging.Level {
	level, _ := logging.NameToLevel(c.Logging.Level)
	return level
}

// Apply pushes the configuration into the filesystem package defaults. It
// should be called during program initialization, before any filesystem
// operations are performed.
func (c *Configuration) Apply() {
	filesystem.DefaultRenamePolicy = filesystem.RenamePolicy{
		Attempts: c.Rename.Attempts,
		Delay:    c.Rename.Delay,
	}
	filesystem.DefaultUniqueFactory.TemporaryDirectory = c.Temporary.Directory
	filesystem.MappingSizeLimit = uint64(c.Mapping.MaximumSize)
}
