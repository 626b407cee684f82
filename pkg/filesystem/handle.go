package filesystem

import (
	"os"

	"github.com/mutagen-io/fsprim/pkg/must"
)

// NativeHandle is an opaque operating system file handle. On POSIX systems it
// holds a file descriptor and on Windows it holds a HANDLE. It is never
// implicitly interchangeable with a descriptor integer: conversions go through
// NativeHandleFromDescriptor and NativeHandle.Descriptor, both of which can
// fail.
type NativeHandle uintptr

// NativeHandleOf extracts the native handle underlying a file. The handle
// remains owned by the file and is only valid until the file is closed.
func NativeHandleOf(file *os.File) (NativeHandle, error) {
	if file == nil {
		return InvalidNativeHandle, kindError("convert handle", "", KindInvalidHandle, nil)
	}
	handle := NativeHandle(file.Fd())
	if !handle.valid() {
		return InvalidNativeHandle, kindError("convert handle", file.Name(), KindInvalidHandle, nil)
	}
	return handle, nil
}

// closeOwnedHandle closes a handle that an operation took ownership of. Any
// failure is logged rather than returned since it can't affect the outcome of
// the operation.
func closeOwnedHandle(handle NativeHandle) {
	must.Succeed(closeNativeHandle(handle), "closing owned handle", logger)
}
