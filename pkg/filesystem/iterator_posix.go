//go:build !windows

package filesystem

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// directoryBatchSize is the number of names read from a directory at once.
const directoryBatchSize = 64

// directoryStream is a POSIX directory stream. The descriptor is wrapped in an
// os.File since its Readdirnames method is the only portable way to read
// directory entries from Go.
type directoryStream struct {
	// file wraps the directory descriptor.
	file *os.File
	// names are names read but not yet yielded.
	names []string
}

// openDirectoryStream opens a directory stream.
func openDirectoryStream(path string) (*directoryStream, error) {
	// Validate the path.
	if err := validatePath("iterate", path); err != nil {
		return nil, err
	}

	// Open the directory.
	descriptor, err := openRetryingOnEINTR(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, newError("iterate", path, err)
	}

	// Success.
	return &directoryStream{file: os.NewFile(uintptr(descriptor), path)}, nil
}

// next returns the next raw entry name. It returns false once the stream is
// exhausted.
func (s *directoryStream) next() (string, bool, error) {
	if len(s.names) == 0 {
		names, err := s.file.Readdirnames(directoryBatchSize)
		if err == io.EOF {
			return "", false, nil
		} else if err != nil {
			return "", false, err
		}
		s.names = names
	}
	name := s.names[0]
	s.names = s.names[1:]
	return DefaultCodec.recompose(name), true, nil
}

// close closes the stream.
func (s *directoryStream) close() error {
	return s.file.Close()
}
