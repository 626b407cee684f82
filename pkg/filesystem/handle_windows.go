package filesystem

import (
	"golang.org/x/sys/windows"
)

// InvalidNativeHandle is the sentinel invalid handle value.
const InvalidNativeHandle = NativeHandle(windows.InvalidHandle)

// NativeHandleFromDescriptor converts a descriptor integer (a HANDLE value
// that has been passed around as an integer) to a native handle.
func NativeHandleFromDescriptor(descriptor int) (NativeHandle, error) {
	handle := NativeHandle(descriptor)
	if descriptor < 0 || !handle.valid() {
		return InvalidNativeHandle, kindError("convert descriptor", "", KindInvalidHandle, windows.ERROR_INVALID_HANDLE)
	}
	return handle, nil
}

// Descriptor converts the native handle to a descriptor integer.
func (h NativeHandle) Descriptor() (int, error) {
	if !h.valid() || int(h) < 0 {
		return -1, kindError("convert handle", "", KindInvalidHandle, windows.ERROR_INVALID_HANDLE)
	}
	return int(h), nil
}

// valid reports whether the handle could refer to an open file.
func (h NativeHandle) valid() bool {
	return h != 0 && h != InvalidNativeHandle
}

// closeNativeHandle closes a native handle.
func closeNativeHandle(h NativeHandle) error {
	return windows.CloseHandle(windows.Handle(h))
}
