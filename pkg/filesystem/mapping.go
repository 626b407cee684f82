package filesystem

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
)

// MapMode is the access mode of a memory mapping.
type MapMode uint8

const (
	// MapReadOnly maps the file for reading only.
	MapReadOnly MapMode = iota
	// MapReadWrite maps the file for reading and writing. Writes are carried
	// through to the underlying file.
	MapReadWrite
	// MapPrivate maps the file copy-on-write. Writes are visible only through
	// the mapping and are never persisted to the file.
	MapPrivate
)

// String returns a human-readable representation of the mode.
func (m MapMode) String() string {
	switch m {
	case MapReadOnly:
		return "read-only"
	case MapReadWrite:
		return "read-write"
	case MapPrivate:
		return "private"
	default:
		return "unknown"
	}
}

const (
	// maximumAddressableSize is the largest mapping length that can be
	// represented on this platform.
	maximumAddressableSize = uint64(math.MaxInt)
)

// MappingSizeLimit is an optional additional limit on mapping lengths. Zero
// means that only the platform's addressable limit applies.
var MappingSizeLimit uint64

// mappedView is an established view of a file mapping.
type mappedView struct {
	// data is the mapped memory, truncated to the effective size.
	data []byte
	// unmap releases the view.
	unmap func() error
	// flush writes modified pages back to the underlying file.
	flush func() error
}

// MappedRegion is a memory mapping of (part of) a file. It is the sole owner
// of the mapping view, which remains valid until Close is called or ownership
// is moved elsewhere with Transfer. The zero value is an empty region.
type MappedRegion struct {
	// mode is the mapping mode.
	mode MapMode
	// view is the mapping view. It is nil if the region is empty.
	view *mappedView
}

// MapFile maps the file at path. If length is zero, then the region extends
// from offset to the end of the file. Files mapped with MapReadWrite are
// created if they don't exist and extended to offset+length if they're
// shorter. The offset must be a multiple of Alignment.
func MapFile(path string, mode MapMode, length uint64, offset int64) (*MappedRegion, error) {
	if mode > MapPrivate {
		return nil, kindError("map", path, KindInvalidArgument, fmt.Errorf("unknown mapping mode: %d", mode))
	}
	return mapFile(path, mode, length, offset)
}

// MapHandle maps the file referenced by an open native handle. If closeHandle
// is true, then the region takes ownership of the handle and closes it once
// mapping completes, whether or not it succeeds. Otherwise the handle is never
// closed and remains usable by the caller. See MapFile for the semantics of
// length and offset.
func MapHandle(handle NativeHandle, closeHandle bool, mode MapMode, length uint64, offset int64) (*MappedRegion, error) {
	if mode > MapPrivate {
		if closeHandle {
			closeOwnedHandle(handle)
		}
		return nil, kindError("map", "", KindInvalidArgument, fmt.Errorf("unknown mapping mode: %d", mode))
	}
	return mapHandle(handle, closeHandle, mode, length, offset, "")
}

// validateMappingRange verifies that a requested mapping range is
// representable.
func validateMappingRange(path string, length uint64, offset int64) error {
	limit := maximumAddressableSize
	if MappingSizeLimit != 0 && MappingSizeLimit < limit {
		limit = MappingSizeLimit
	}
	if length > limit {
		return kindError("map", path, KindInvalidArgument, fmt.Errorf("mapping length %d exceeds limit %d", length, limit))
	} else if offset < 0 {
		return kindError("map", path, KindInvalidArgument, fmt.Errorf("negative mapping offset %d", offset))
	} else if uint64(offset) > math.MaxInt64-length {
		return kindError("map", path, KindInvalidArgument, errors.New("mapping range overflows"))
	}
	return nil
}

// Mapped reports whether the region holds a mapping.
func (r *MappedRegion) Mapped() bool {
	return r.view != nil
}

// Mode returns the region's mapping mode.
func (r *MappedRegion) Mode() MapMode {
	return r.mode
}

// Size returns the size of the region in bytes. It is zero for an empty
// region.
func (r *MappedRegion) Size() int {
	if r.view == nil {
		return 0
	}
	return len(r.view.data)
}

// Data returns the mapped memory for modification. It may only be called on
// a mapped region with a writable mode: calling it on a read-only or empty
// region is a programming error and panics. The returned slice must not be
// used after the region is closed.
func (r *MappedRegion) Data() []byte {
	if r.view == nil {
		panic("data access on empty mapped region")
	} else if r.mode == MapReadOnly {
		panic("mutable data access on read-only mapped region")
	}
	return r.view.data
}

// At returns the byte at index i. It panics if the region is empty or i is
// out of range.
func (r *MappedRegion) At(i int) byte {
	if r.view == nil {
		panic("data access on empty mapped region")
	}
	return r.view.data[i]
}

// ReadAt implements io.ReaderAt over the region's contents.
func (r *MappedRegion) ReadAt(buffer []byte, offset int64) (int, error) {
	if r.view == nil {
		return 0, kindError("read mapping", "", KindInvalidHandle, errors.New("region is not mapped"))
	} else if offset < 0 {
		return 0, kindError("read mapping", "", KindInvalidArgument, fmt.Errorf("negative offset %d", offset))
	} else if offset >= int64(len(r.view.data)) {
		return 0, io.EOF
	}
	n := copy(buffer, r.view.data[offset:])
	if n < len(buffer) {
		return n, io.EOF
	}
	return n, nil
}

// Flush writes modified pages of a read-write mapping back to the file. It's
// a no-op for other modes.
func (r *MappedRegion) Flush() error {
	if r.view == nil {
		return kindError("flush mapping", "", KindInvalidHandle, errors.New("region is not mapped"))
	} else if r.mode != MapReadWrite {
		return nil
	}
	if err := r.view.flush(); err != nil {
		return newError("flush mapping", "", err)
	}
	return nil
}

// Transfer moves ownership of the mapping to a new region. The receiver is
// left empty, so closing it is a no-op.
func (r *MappedRegion) Transfer() *MappedRegion {
	result := &MappedRegion{mode: r.mode, view: r.view}
	r.view = nil
	return result
}

// Close releases the mapping if present. It is idempotent.
func (r *MappedRegion) Close() error {
	if r.view == nil {
		return nil
	}
	view := r.view
	r.view = nil
	if err := view.unmap(); err != nil {
		return newError("unmap", "", err)
	}
	return nil
}

// alignment is the memoized mapping granularity.
var alignment struct {
	once  sync.Once
	value int
}

// Alignment returns the granularity to which mapping offsets must be aligned.
// The value is queried once per process.
func Alignment() int {
	alignment.once.Do(func() {
		alignment.value = queryAlignment()
	})
	return alignment.value
}

// MapPages would map whole pages of a file outside of a MappedRegion. It isn't
// supported by any backend and always fails with ErrUnimplemented.
func MapPages(path string, offset int64, size uint64, writable bool) ([]byte, error) {
	return nil, kindError("map pages", path, KindUnimplemented, nil)
}

// UnmapPages would release pages mapped by MapPages. It isn't supported by any
// backend and always fails with ErrUnimplemented.
func UnmapPages(pages []byte) error {
	return kindError("unmap pages", "", KindUnimplemented, nil)
}

// resourceChain records release operations for resources acquired during a
// multi-step construction so that they can be released in reverse order if a
// later step fails.
type resourceChain struct {
	// releases are the recorded release operations, in acquisition order.
	releases []func()
}

// push records a release operation.
func (c *resourceChain) push(release func()) {
	c.releases = append(c.releases, release)
}

// unwind performs all recorded release operations in reverse order and
// clears the chain.
func (c *resourceChain) unwind() {
	for i := len(c.releases) - 1; i >= 0; i-- {
		c.releases[i]()
	}
	c.releases = nil
}
