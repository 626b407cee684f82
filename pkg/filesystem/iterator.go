package filesystem

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// DirectoryIterator is a single-pass enumeration of a directory's entries. The
// self and parent pseudo-entries are never yielded. Once the contents are
// exhausted, the underlying native search handle is released and the
// iterator behaves as if closed. It isn't safe for concurrent use.
type DirectoryIterator struct {
	// base is the directory path as provided by the caller.
	base string
	// pattern is an optional doublestar pattern that entry names must match.
	pattern string
	// stream is the native directory stream. It's nil once the iterator is
	// exhausted or closed.
	stream *directoryStream
	// name is the current entry name.
	name string
	// path is the current entry path.
	path string
	// err is the error that terminated iteration, if any.
	err error
}

// Iterate opens an iterator over the contents of the directory at path.
func Iterate(path string) (*DirectoryIterator, error) {
	return iterate(path, "")
}

// IterateMatching opens an iterator over the contents of the directory at path
// that yields only entries whose names match pattern. The pattern uses
// doublestar syntax, though since only names are matched, "**" is equivalent
// to "*".
func IterateMatching(path, pattern string) (*DirectoryIterator, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, kindError("iterate", path, KindInvalidArgument, fmt.Errorf("invalid pattern: %s", pattern))
	}
	return iterate(path, pattern)
}

// iterate implements Iterate and IterateMatching.
func iterate(path, pattern string) (*DirectoryIterator, error) {
	if path == "" {
		return nil, kindError("iterate", path, KindNotFound, nil)
	}
	stream, err := openDirectoryStream(path)
	if err != nil {
		return nil, err
	}
	return &DirectoryIterator{
		base:    path,
		pattern: pattern,
		stream:  stream,
	}, nil
}

// Next advances to the next entry. It returns false once the directory is
// exhausted or an error occurs, in which case the native handle has already
// been released and Err reports any failure.
func (i *DirectoryIterator) Next() bool {
	for i.stream != nil {
		// Read the next raw entry.
		name, ok, err := i.stream.next()
		if err != nil {
			i.err = newError("iterate", i.base, err)
			i.release()
			break
		} else if !ok {
			i.release()
			break
		}

		// Skip pseudo-entries and entries that don't match.
		if name == "." || name == ".." {
			continue
		} else if i.pattern != "" {
			if matched, _ := doublestar.Match(i.pattern, name); !matched {
				continue
			}
		}

		// Record the entry.
		i.name = name
		i.path = joinEntry(i.base, name)
		return true
	}

	// The iterator is exhausted.
	i.name = ""
	i.path = ""
	return false
}

// Name returns the name of the current entry.
func (i *DirectoryIterator) Name() string {
	return i.name
}

// Path returns the full path of the current entry, formed by joining the
// entry name onto the directory path.
func (i *DirectoryIterator) Path() string {
	return i.path
}

// Err returns the error that terminated iteration, if any.
func (i *DirectoryIterator) Err() error {
	return i.err
}

// Close releases the native search handle. It's idempotent and a no-op on an
// exhausted iterator.
func (i *DirectoryIterator) Close() error {
	i.name = ""
	i.path = ""
	if i.stream == nil {
		return nil
	}
	stream := i.stream
	i.stream = nil
	if err := stream.close(); err != nil {
		return newError("close iterator", i.base, err)
	}
	return nil
}

// release releases the native search handle on exhaustion. A failure is
// logged since iteration itself completed.
func (i *DirectoryIterator) release() {
	stream := i.stream
	i.stream = nil
	if err := stream.close(); err != nil {
		logger.Warnf("Unable to release directory stream for %s: %v", i.base, err)
	}
}

// DirectoryContents returns the full paths of all entries in the directory at
// path.
func DirectoryContents(path string) ([]string, error) {
	iterator, err := Iterate(path)
	if err != nil {
		return nil, err
	}
	defer iterator.Close()
	var results []string
	for iterator.Next() {
		results = append(results, iterator.Path())
	}
	return results, iterator.Err()
}

// joinEntry joins an entry name onto a directory path. Unlike filepath.Join,
// it doesn't clean the directory path.
func joinEntry(base, name string) string {
	if needsSeparator(base) {
		return base + string(os.PathSeparator) + name
	}
	return base + name
}
