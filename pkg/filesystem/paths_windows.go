package filesystem

import (
	"path/filepath"
	"strings"
)

const (
	// longPathThreshold is the path length beyond which paths are converted to
	// extended-length form. Directory creation requires room for an 8.3 file
	// name below MAX_PATH, which is why this is less than MAX_PATH.
	longPathThreshold = 260 - 12
	// extendedLengthPrefix is the prefix marking an extended-length path.
	extendedLengthPrefix = `\\?\`
	// extendedLengthUNCPrefix is the prefix marking an extended-length UNC
	// path.
	extendedLengthUNCPrefix = `\\?\UNC\`
)

// validatePath verifies that a path can be converted to the native encoding.
func validatePath(op, path string) error {
	if _, err := wideLength(path); err != nil {
		return kindError(op, path, KindEncoding, err)
	}
	return nil
}

// widenPath converts a path that exceeds the legacy MAX_PATH limit to
// extended-length form. Extended-length paths bypass normalization by the
// system, so they must be absolute and cleaned first.
func widenPath(path string) string {
	// Short paths and paths that are already extended need no conversion.
	if len(path) < longPathThreshold || strings.HasPrefix(path, extendedLengthPrefix) {
		return path
	}

	// Make the path absolute if possible. If it can't be made absolute, it
	// can't be converted.
	absolute, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	absolute = filepath.Clean(absolute)

	// Add the appropriate prefix.
	if strings.HasPrefix(absolute, `\\`) {
		return extendedLengthUNCPrefix + absolute[2:]
	}
	return extendedLengthPrefix + absolute
}

// unwidenPath reverses widenPath for a decoded native path. If the decoded
// path is in extended-length form but the original wasn't, then the original
// is returned.
func unwidenPath(decoded, original string) string {
	if strings.HasPrefix(decoded, extendedLengthPrefix) && !strings.HasPrefix(original, extendedLengthPrefix) {
		return original
	}
	return decoded
}

// encodePath converts a path to its terminated native form, converting long
// paths to extended-length form.
func encodePath(op, path string) ([]uint16, error) {
	result, err := DefaultCodec.EncodeNative(widenPath(path))
	if err != nil {
		return nil, kindError(op, path, KindEncoding, err)
	}
	return result, nil
}

// needsSeparator reports whether a separator must be appended to a directory
// path before appending a name. Drive-relative paths like "C:" take names
// directly.
func needsSeparator(path string) bool {
	return !endsInSeparator(path) && !endsInDriveTerminator(path)
}

// pathSeparators are the characters that separate path components.
const pathSeparators = `\/`
