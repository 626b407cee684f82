//go:build !windows

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapFile implements MapFile.
func mapFile(path string, mode MapMode, length uint64, offset int64) (*MappedRegion, error) {
	// Validate the path.
	if err := validatePath("map", path); err != nil {
		return nil, err
	}

	// Open the file. Copy-on-write mappings don't require write access.
	flags := unix.O_RDONLY | unix.O_CLOEXEC
	if mode == MapReadWrite {
		flags = unix.O_RDWR | unix.O_CREAT | unix.O_CLOEXEC
	}
	descriptor, err := openRetryingOnEINTR(path, flags, 0666)
	if err != nil {
		return nil, newError("map", path, err)
	}

	// Map the file, transferring ownership of the descriptor.
	return mapHandle(NativeHandle(descriptor), true, mode, length, offset, path)
}

// mapHandle implements MapHandle. The path is only used for error reporting.
func mapHandle(handle NativeHandle, closeHandle bool, mode MapMode, length uint64, offset int64, path string) (*MappedRegion, error) {
	// Track the handle if we own it.
	var chain resourceChain
	if closeHandle {
		chain.push(func() { closeOwnedHandle(handle) })
	}

	// Convert the handle.
	descriptor, err := handle.Descriptor()
	if err != nil {
		chain.unwind()
		return nil, err
	}

	// Validate the requested range.
	if err := validateMappingRange(path, length, offset); err != nil {
		chain.unwind()
		return nil, err
	}

	// Size the mapping against the file. Touching pages beyond the end of the
	// file raises SIGBUS, so read-write mappings extend the file and other
	// mappings must fit within it.
	var metadata unix.Stat_t
	if err := fstatRetryingOnEINTR(descriptor, &metadata); err != nil {
		chain.unwind()
		return nil, newError("map", path, err)
	}
	if length == 0 {
		if metadata.Size <= offset {
			chain.unwind()
			return nil, kindError("map", path, KindInvalidArgument, errors.New("no content at mapping offset"))
		}
		length = uint64(metadata.Size - offset)
		if err := validateMappingRange(path, length, offset); err != nil {
			chain.unwind()
			return nil, err
		}
	} else if end := offset + int64(length); metadata.Size < end {
		if mode != MapReadWrite {
			chain.unwind()
			return nil, kindError("map", path, KindInvalidArgument, errors.New("mapping range extends beyond end of file"))
		} else if err := ftruncateRetryingOnEINTR(descriptor, end); err != nil {
			chain.unwind()
			return nil, newError("map", path, err)
		}
	}

	// Compute protection and sharing.
	protection := unix.PROT_READ
	sharing := unix.MAP_SHARED
	switch mode {
	case MapReadWrite:
		protection |= unix.PROT_WRITE
	case MapPrivate:
		protection |= unix.PROT_WRITE
		sharing = unix.MAP_PRIVATE
	}

	// Create the view.
	data, err := unix.Mmap(descriptor, offset, int(length), protection, sharing)
	if err != nil {
		chain.unwind()
		return nil, newError("map", path, err)
	}

	// The view doesn't depend on the descriptor, so release it if we own it.
	if closeHandle {
		closeOwnedHandle(handle)
	}

	// Success.
	return &MappedRegion{
		mode: mode,
		view: &mappedView{
			data: data,
			unmap: func() error {
				return unix.Munmap(data)
			},
			flush: func() error {
				return msyncRetryingOnEINTR(data, unix.MS_SYNC)
			},
		},
	}, nil
}

// queryAlignment queries the mapping granularity, which is the page size.
func queryAlignment() int {
	return unix.Getpagesize()
}
