package filesystem

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mutagen-io/fsprim/pkg/must"
)

var (
	// kernel32 is the system kernel32 library.
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	// procGetSystemInfo is the GetSystemInfo function, which isn't exposed by
	// the windows package.
	procGetSystemInfo = kernel32.NewProc("GetSystemInfo")
)

// systemInfo is the Go representation of SYSTEM_INFO.
type systemInfo struct {
	ProcessorArchitecture     uint16
	Reserved                  uint16
	PageSize                  uint32
	MinimumApplicationAddress uintptr
	MaximumApplicationAddress uintptr
	ActiveProcessorMask       uintptr
	NumberOfProcessors        uint32
	ProcessorType             uint32
	AllocationGranularity     uint32
	ProcessorLevel            uint16
	ProcessorRevision         uint16
}

// defaultAllocationGranularity is the allocation granularity used if the
// system can't be queried. It's the value on all current Windows platforms.
const defaultAllocationGranularity = 64 * 1024

// mapFile implements MapFile.
func mapFile(path string, mode MapMode, length uint64, offset int64) (*MappedRegion, error) {
	// Convert the path.
	path16, err := encodePath("map", path)
	if err != nil {
		return nil, err
	}

	// Open the file. Copy-on-write mappings don't require write access.
	access := uint32(windows.GENERIC_READ)
	disposition := uint32(windows.OPEN_EXISTING)
	if mode == MapReadWrite {
		access |= windows.GENERIC_WRITE
		disposition = windows.OPEN_ALWAYS
	}
	handle, err := windows.CreateFile(
		&path16[0],
		access,
		windows.FILE_SHARE_DELETE|windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		disposition,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, newError("map", path, err)
	}

	// Map the file, transferring ownership of the handle.
	return mapHandle(NativeHandle(handle), true, mode, length, offset, path)
}

// mapHandle implements MapHandle. The path is only used for error reporting.
func mapHandle(handle NativeHandle, closeHandle bool, mode MapMode, length uint64, offset int64, path string) (*MappedRegion, error) {
	// Track the handle if we own it.
	var chain resourceChain
	if closeHandle {
		chain.push(func() { closeOwnedHandle(handle) })
	}
	if !handle.valid() {
		chain.unwind()
		return nil, kindError("map", path, KindInvalidHandle, windows.ERROR_INVALID_HANDLE)
	}
	file := windows.Handle(handle)

	// Validate the requested range.
	if err := validateMappingRange(path, length, offset); err != nil {
		chain.unwind()
		return nil, err
	}

	// Size the mapping against the file. Only read-write mappings can extend
	// the file.
	var metadata windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(file, &metadata); err != nil {
		chain.unwind()
		return nil, newError("map", path, err)
	}
	fileSize := uint64(metadata.FileSizeHigh)<<32 | uint64(metadata.FileSizeLow)
	if length == 0 && fileSize <= uint64(offset) {
		chain.unwind()
		return nil, kindError("map", path, KindInvalidArgument, errors.New("no content at mapping offset"))
	} else if length != 0 && mode != MapReadWrite && uint64(offset)+length > fileSize {
		chain.unwind()
		return nil, kindError("map", path, KindInvalidArgument, errors.New("mapping range extends beyond end of file"))
	}

	// Compute protection and view access.
	var protection, access uint32
	switch mode {
	case MapReadOnly:
		protection, access = windows.PAGE_READONLY, windows.FILE_MAP_READ
	case MapReadWrite:
		protection, access = windows.PAGE_READWRITE, windows.FILE_MAP_WRITE
	case MapPrivate:
		protection, access = windows.PAGE_WRITECOPY, windows.FILE_MAP_COPY
	}

	// Create the mapping object. It's sized to cover the end of the requested
	// range, which extends the file for read-write mappings. A zero length
	// covers the whole file.
	var end uint64
	if length != 0 {
		end = uint64(offset) + length
	}
	mapping, err := windows.CreateFileMapping(file, nil, protection, uint32(end>>32), uint32(end), nil)
	if err != nil {
		chain.unwind()
		return nil, newError("map", path, err)
	}
	chain.push(func() { must.CloseWindowsHandle(mapping, logger) })

	// Create the view.
	address, err := windows.MapViewOfFile(
		mapping,
		access,
		uint32(uint64(offset)>>32),
		uint32(offset),
		uintptr(length),
	)
	if err != nil {
		chain.unwind()
		return nil, newError("map", path, err)
	}
	chain.push(func() { must.UnmapViewOfFile(address, logger) })

	// If the whole file was requested, then the view size has to be queried.
	// The view is rounded up to a page boundary, so clamp it to the end of
	// the file.
	size := length
	if size == 0 {
		var region windows.MemoryBasicInformation
		if err := windows.VirtualQuery(address, &region, unsafe.Sizeof(region)); err != nil {
			chain.unwind()
			return nil, newError("map", path, err)
		}
		size = uint64(region.RegionSize)
		if remaining := fileSize - uint64(offset); size > remaining {
			size = remaining
		}
	}

	// The view keeps the mapping object alive, so release the mapping object
	// and, if we own it, the file handle.
	must.CloseWindowsHandle(mapping, logger)
	if closeHandle {
		closeOwnedHandle(handle)
	}

	// Success.
	data := unsafe.Slice((*byte)(unsafe.Pointer(address)), int(size))
	return &MappedRegion{
		mode: mode,
		view: &mappedView{
			data: data,
			unmap: func() error {
				return windows.UnmapViewOfFile(address)
			},
			flush: func() error {
				return windows.FlushViewOfFile(address, uintptr(size))
			},
		},
	}, nil
}

// queryAlignment queries the mapping granularity, which is the system
// allocation granularity rather than the page size.
func queryAlignment() int {
	if err := procGetSystemInfo.Find(); err != nil {
		return defaultAllocationGranularity
	}
	var info systemInfo
	procGetSystemInfo.Call(uintptr(unsafe.Pointer(&info)))
	if info.AllocationGranularity == 0 {
		return defaultAllocationGranularity
	}
	return int(info.AllocationGranularity)
}
