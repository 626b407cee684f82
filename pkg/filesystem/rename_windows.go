package filesystem

import (
	"golang.org/x/sys/windows"
)

// moveEntry performs a single replacing move, allowing the system to copy
// across volumes.
func moveEntry(from, to string) error {
	// Convert paths.
	from16, err := encodePath("rename", from)
	if err != nil {
		return err
	}
	to16, err := encodePath("rename", to)
	if err != nil {
		return err
	}

	// Perform the move.
	if err := windows.MoveFileEx(&from16[0], &to16[0], windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_COPY_ALLOWED); err != nil {
		return newError("rename", from, err)
	}
	return nil
}
