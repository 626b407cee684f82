//go:build windows

package must

import (
	"golang.org/x/sys/windows"

	"github.com/mutagen-io/fsprim/pkg/logging"
)

func CloseWindowsHandle(wh windows.Handle, logger *logging.Logger) {
	err := windows.CloseHandle(wh)
	if err != nil {
		logger.Warnf("Unable to close handle %d: %s", wh, err.Error())
	}
}

func UnmapViewOfFile(address uintptr, logger *logging.Logger) {
	err := windows.UnmapViewOfFile(address)
	if err != nil {
		logger.Warnf("Unable to unmap view at %#x: %s", address, err.Error())
	}
}
