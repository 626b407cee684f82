//go:build !windows

package filesystem

import (
	"math"

	"golang.org/x/sys/unix"
)

// InvalidNativeHandle is the sentinel invalid handle value.
const InvalidNativeHandle = ^NativeHandle(0)

// NativeHandleFromDescriptor converts a file descriptor to a native handle.
func NativeHandleFromDescriptor(descriptor int) (NativeHandle, error) {
	if descriptor < 0 {
		return InvalidNativeHandle, kindError("convert descriptor", "", KindInvalidHandle, unix.EBADF)
	}
	return NativeHandle(descriptor), nil
}

// Descriptor converts the native handle to a file descriptor.
func (h NativeHandle) Descriptor() (int, error) {
	if !h.valid() {
		return -1, kindError("convert handle", "", KindInvalidHandle, unix.EBADF)
	}
	return int(h), nil
}

// valid reports whether the handle could refer to an open file.
func (h NativeHandle) valid() bool {
	return h != InvalidNativeHandle && uint64(h) <= math.MaxInt32
}

// closeNativeHandle closes a native handle.
func closeNativeHandle(h NativeHandle) error {
	return closeConsideringEINTR(int(h))
}
