package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mutagen-io/fsprim/pkg/logging"
	"github.com/mutagen-io/fsprim/pkg/random"
)

const (
	// TemporaryNamePrefix is a file name prefix that callers may use for
	// temporary files and directories so that they're easy to recognize (and
	// ignore) in scans.
	TemporaryNamePrefix = ".fsprim-temporary-"

	// placeholder is the template character replaced by a random hexadecimal
	// digit in each candidate name.
	placeholder = '%'

	// hexDigits are the characters used for placeholder substitution.
	hexDigits = "0123456789abcdef"

	// defaultFilePermissions are the permissions used for unique files when
	// no mode is specified.
	defaultFilePermissions os.FileMode = 0600
	// defaultDirectoryPermissions are the permissions used for unique
	// directories when no mode is specified.
	defaultDirectoryPermissions os.FileMode = 0700
)

// EntityKind specifies what UniqueFactory.Create should produce.
type EntityKind uint8

const (
	// EntityFile creates and opens a new file.
	EntityFile EntityKind = iota
	// EntityNameOnly produces a name that didn't exist at the moment it was
	// checked, without creating anything.
	EntityNameOnly
	// EntityDirectory creates a new directory.
	EntityDirectory
)

// String returns a human-readable representation of the kind.
func (k EntityKind) String() string {
	switch k {
	case EntityFile:
		return "file"
	case EntityNameOnly:
		return "name"
	case EntityDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// UniqueFactory creates filesystem entries with unique names derived from a
// template. Each placeholder character ('%') in the template is replaced by a
// random lowercase hexadecimal digit, and a fresh candidate is generated until
// creation succeeds. Exclusivity comes from the creation call itself (e.g.
// O_EXCL or CREATE_NEW), never from a separate existence check.
type UniqueFactory struct {
	// Source supplies randomness for placeholder substitution. It must be
	// non-nil.
	Source random.Source
	// TemporaryDirectory, if non-empty, overrides the system temporary
	// directory for absolute requests with relative templates.
	TemporaryDirectory string
	// MaximumAttempts, if positive, bounds the number of candidates tried.
	// Zero means that collisions are retried indefinitely.
	MaximumAttempts int
	// Logger is the logger for retry diagnostics. It may be nil.
	Logger *logging.Logger
}

// DefaultUniqueFactory is the factory used by CreateUnique. Its fields may be
// adjusted during program initialization.
var DefaultUniqueFactory *UniqueFactory

func init() {
	// Create the default source.
	source, err := random.NewSource()
	if err != nil {
		panic("unable to create pseudorandom source for unique names")
	}

	// Create the default factory.
	DefaultUniqueFactory = &UniqueFactory{Source: source}
}

// CreateUnique creates a unique entry using DefaultUniqueFactory. See
// UniqueFactory.Create.
func CreateUnique(template string, kind EntityKind, absolute bool, mode os.FileMode) (*os.File, string, error) {
	return DefaultUniqueFactory.Create(template, kind, absolute, mode)
}

// Create creates a unique entry of the specified kind. If absolute is true and
// the template is relative, then the template (minus any drive designator) is
// placed inside the temporary directory. The mode sets the permissions for
// created files and directories; if zero, user-only permissions are used. For
// EntityFile, the returned file is open for reading and writing and must be
// closed by the caller. For other kinds the returned file is nil.
func (f *UniqueFactory) Create(template string, kind EntityKind, absolute bool, mode os.FileMode) (*os.File, string, error) {
	// Validate the kind.
	if kind > EntityDirectory {
		return nil, "", kindError("create unique", template, KindInvalidArgument, fmt.Errorf("unknown entity kind: %d", kind))
	}

	// Compute the model path. The model is never modified once computed, only
	// copied into the candidate buffer.
	model := template
	if absolute && !filepath.IsAbs(model) {
		directory := f.TemporaryDirectory
		if directory == "" {
			var err error
			if directory, err = TemporaryDirectory(); err != nil {
				return nil, "", err
			}
		}
		model = filepath.Join(directory, stripDrivePrefix(model))
	}

	// Compute permissions.
	if mode == 0 {
		if kind == EntityDirectory {
			mode = defaultDirectoryPermissions
		} else {
			mode = defaultFilePermissions
		}
	}

	// Loop until a candidate can be created.
	candidate := make([]byte, len(model))
	for attempt := 1; ; attempt++ {
		// Enforce the attempt limit, if any.
		if f.MaximumAttempts > 0 && attempt > f.MaximumAttempts {
			return nil, "", kindError("create unique", template, KindAlreadyExists, fmt.Errorf("exhausted %d candidate names", f.MaximumAttempts))
		}

		// Generate the next candidate.
		name := f.substitute(candidate, model)

		// Attempt creation, retrying on collisions.
		file, result, err := createCandidate(name, kind, mode)
		if isCollision(err) {
			f.Logger.Tracef("Candidate %s collided (attempt %d)", name, attempt)
			continue
		} else if err != nil {
			return nil, "", err
		}

		// Success.
		return file, result, nil
	}
}

// substitute copies model into candidate (which must have the same length),
// replacing each placeholder with a random hexadecimal digit, and returns the
// result as a string.
func (f *UniqueFactory) substitute(candidate []byte, model string) string {
	for i := 0; i < len(model); i++ {
		if model[i] == placeholder {
			candidate[i] = hexDigits[f.Source.Intn(len(hexDigits))]
		} else {
			candidate[i] = model[i]
		}
	}
	return string(candidate)
}

// isCollision reports whether a creation failure indicates that the candidate
// name was already taken, in which case a new candidate should be tried.
func isCollision(err error) bool {
	return IsAlreadyExists(err)
}

// checkNameCandidate implements creation for EntityNameOnly. It reports a
// collision if anything exists at the candidate path, accepts the candidate
// if nothing does, and fails on any other status query failure.
func checkNameCandidate(name string) error {
	if _, err := LinkStatus(name); err == nil {
		return kindError("create unique", name, KindAlreadyExists, nil)
	} else if !IsNotFound(err) {
		return err
	}
	return nil
}
