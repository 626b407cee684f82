package filesystem

import (
	"testing"
)

func TestStatusReservedName(t *testing.T) {
	for _, name := range []string{"NUL", "con", `\\.\pipe\missing`} {
		status, err := Status(name)
		if err != nil {
			t.Errorf("unable to query status of %s: %v", name, err)
		} else if status.Type != TypeCharacterDevice {
			t.Errorf("unexpected type for %s: %s", name, status.Type)
		}
	}
}
