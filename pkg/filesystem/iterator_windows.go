package filesystem

import (
	"golang.org/x/sys/windows"
)

// directoryStream is a Windows directory search.
type directoryStream struct {
	// handle is the search handle. It's InvalidHandle if the search matched
	// nothing or has been closed.
	handle windows.Handle
	// data is the most recently returned search result.
	data windows.Win32finddata
	// pending indicates that data holds a result that hasn't been yielded.
	pending bool
}

// openDirectoryStream opens a directory search, which yields its first result
// immediately.
func openDirectoryStream(path string) (*directoryStream, error) {
	// Compute the search pattern.
	pattern := path
	if needsSeparator(pattern) {
		pattern += `\`
	}
	pattern += "*"
	pattern16, err := encodePath("iterate", pattern)
	if err != nil {
		return nil, err
	}

	// Start the search. A search in an empty root directory yields nothing,
	// not even the pseudo-entries, so a search without results is only a
	// failure if the directory itself is missing.
	stream := &directoryStream{}
	handle, err := windows.FindFirstFile(&pattern16[0], &stream.data)
	if err == windows.ERROR_FILE_NOT_FOUND {
		if exists, existsErr := Exists(path); existsErr != nil {
			return nil, existsErr
		} else if !exists {
			return nil, newError("iterate", path, err)
		}
		stream.handle = windows.InvalidHandle
		return stream, nil
	} else if err != nil {
		return nil, newError("iterate", path, err)
	}
	stream.handle = handle
	stream.pending = true

	// Success.
	return stream, nil
}

// next returns the next raw entry name. It returns false once the search is
// exhausted.
func (s *directoryStream) next() (string, bool, error) {
	if s.handle == windows.InvalidHandle {
		return "", false, nil
	}
	if !s.pending {
		if err := windows.FindNextFile(s.handle, &s.data); err == windows.ERROR_NO_MORE_FILES {
			return "", false, nil
		} else if err != nil {
			return "", false, err
		}
	}
	s.pending = false
	name, err := DefaultCodec.DecodeUTF8(s.data.FileName[:], -1)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// close closes the search.
func (s *directoryStream) close() error {
	if s.handle == windows.InvalidHandle {
		return nil
	}
	handle := s.handle
	s.handle = windows.InvalidHandle
	return windows.FindClose(handle)
}
