package filesystem

import (
	"errors"
	"io/fs"
)

// Kind classifies a filesystem error independently of the native error code
// that produced it. Kind values implement error so that they can be used as
// targets for errors.Is.
type Kind uint8

const (
	// KindOS indicates an operating system failure that doesn't fall into any
	// of the other categories. The native cause is available via Unwrap.
	KindOS Kind = iota
	// KindNotFound indicates that the target (or a parent) doesn't exist.
	KindNotFound
	// KindAlreadyExists indicates that the target name is already taken.
	KindAlreadyExists
	// KindAccessDenied indicates that access to the target was refused.
	KindAccessDenied
	// KindSharingViolation indicates that another process currently holds an
	// incompatible lock on the target. It is a transient condition.
	KindSharingViolation
	// KindIsADirectory indicates that a non-directory operation was attempted
	// on a directory.
	KindIsADirectory
	// KindInvalidArgument indicates that an argument was rejected, including
	// mapping sizes that exceed the platform's addressable limit.
	KindInvalidArgument
	// KindEncoding indicates that a path couldn't be converted between UTF-8
	// and the native encoding.
	KindEncoding
	// KindInvalidHandle indicates that a native handle or descriptor was
	// invalid or couldn't be converted.
	KindInvalidHandle
	// KindUnimplemented indicates a capability that this platform backend
	// doesn't provide.
	KindUnimplemented
)

var (
	// ErrOS is the target for errors of KindOS.
	ErrOS error = KindOS
	// ErrNotFound is the target for errors of KindNotFound.
	ErrNotFound error = KindNotFound
	// ErrAlreadyExists is the target for errors of KindAlreadyExists.
	ErrAlreadyExists error = KindAlreadyExists
	// ErrAccessDenied is the target for errors of KindAccessDenied.
	ErrAccessDenied error = KindAccessDenied
	// ErrSharingViolation is the target for errors of KindSharingViolation.
	ErrSharingViolation error = KindSharingViolation
	// ErrIsADirectory is the target for errors of KindIsADirectory.
	ErrIsADirectory error = KindIsADirectory
	// ErrInvalidArgument is the target for errors of KindInvalidArgument.
	ErrInvalidArgument error = KindInvalidArgument
	// ErrEncoding is the target for errors of KindEncoding.
	ErrEncoding error = KindEncoding
	// ErrInvalidHandle is the target for errors of KindInvalidHandle.
	ErrInvalidHandle error = KindInvalidHandle
	// ErrUnimplemented is the target for errors of KindUnimplemented.
	ErrUnimplemented error = KindUnimplemented
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOS:
		return "operating system error"
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindAccessDenied:
		return "access denied"
	case KindSharingViolation:
		return "sharing violation"
	case KindIsADirectory:
		return "is a directory"
	case KindInvalidArgument:
		return "invalid argument"
	case KindEncoding:
		return "invalid encoding"
	case KindInvalidHandle:
		return "invalid handle"
	case KindUnimplemented:
		return "not implemented"
	default:
		return "unknown error kind"
	}
}

// Error implements error.Error.
func (k Kind) Error() string {
	return k.String()
}

// Error is the error type returned by all operations in this package. It
// records the operation, the path (if any), the classified kind, and the
// underlying native cause.
type Error struct {
	// Op is the name of the failed operation.
	Op string
	// Path is the path involved in the operation, if any.
	Path string
	// Kind is the classified error kind.
	Kind Kind
	// Err is the underlying cause. It may be nil, in which case the kind
	// describes the failure.
	Err error
}

// Error implements error.Error.
func (e *Error) Error() string {
	message := e.Op
	if e.Path != "" {
		message += " " + e.Path
	}
	if e.Err != nil {
		return message + ": " + e.Err.Error()
	}
	return message + ": " + e.Kind.String()
}

// Unwrap returns the underlying cause, allowing errors.Is to match native
// errors (e.g. os.ErrNotExist via syscall.Errno).
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error's kind matches target. It's used by errors.Is.
func (e *Error) Is(target error) bool {
	if kind, ok := target.(Kind); ok {
		return e.Kind == kind
	}
	return false
}

// newError creates an Error, classifying the cause. If cause is already an
// Error, its kind is preserved and it's wrapped in the new operation context.
func newError(op, path string, cause error) *Error {
	return &Error{Op: op, Path: path, Kind: KindOf(cause), Err: cause}
}

// contextError attaches operation context to a cause. If the cause already
// carries an Error for the same path, it's returned unchanged.
func contextError(op, path string, cause error) error {
	var existing *Error
	if errors.As(cause, &existing) && existing.Path == path {
		return existing
	}
	return newError(op, path, cause)
}

// kindError creates an Error with an explicit kind.
func kindError(op, path string, kind Kind, cause error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: cause}
}

// KindOf classifies an arbitrary error. Nil errors classify as KindOS, so
// callers should check for nil first.
func KindOf(err error) Kind {
	// Check for errors that are already classified.
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	var kind Kind
	if errors.As(err, &kind) {
		return kind
	}

	// Check for native error codes.
	if kind, ok := nativeKind(err); ok {
		return kind
	}

	// Fall back to the portable error values.
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return KindAccessDenied
	case errors.Is(err, fs.ErrInvalid):
		return KindInvalidArgument
	case errors.Is(err, errors.ErrUnsupported):
		return KindUnimplemented
	default:
		return KindOS
	}
}

// IsNotFound is a convenience predicate for errors of KindNotFound.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsAlreadyExists is a convenience predicate for errors of KindAlreadyExists.
func IsAlreadyExists(err error) bool {
	return err != nil && KindOf(err) == KindAlreadyExists
}
