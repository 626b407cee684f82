//go:build !windows

package filesystem

import (
	"strings"
)

// validatePath verifies that a path can be passed to the operating system.
// POSIX paths are arbitrary byte strings, so the only unrepresentable
// character is NUL.
func validatePath(op, path string) error {
	if index := strings.IndexByte(path, 0); index != -1 {
		return kindError(op, path, KindEncoding, &EncodingError{Offset: index, Reason: "embedded NUL character"})
	}
	return nil
}

// needsSeparator reports whether a separator must be appended to a directory
// path before appending a name.
func needsSeparator(path string) bool {
	return !endsInSeparator(path)
}

// pathSeparators are the characters that separate path components.
const pathSeparators = "/"
