package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnwidenPath(t *testing.T) {
	testCases := []struct {
		decoded  string
		original string
		expected string
	}{
		{`C:\short`, `C:\short`, `C:\short`},
		{`\\?\C:\long\name`, `C:\long\name`, `C:\long\name`},
		{`\\?\C:\long\name`, `long\name`, `long\name`},
		{`\\?\C:\explicit`, `\\?\C:\explicit`, `\\?\C:\explicit`},
	}
	for _, testCase := range testCases {
		if result := unwidenPath(testCase.decoded, testCase.original); result != testCase.expected {
			t.Errorf("unexpected result for %q: %q != %q", testCase.decoded, result, testCase.expected)
		}
	}
}

func TestCreateUniqueLongPath(t *testing.T) {
	// Create a parent whose path exceeds the extended-length threshold.
	parent := t.TempDir()
	for len(parent) < longPathThreshold {
		parent = filepath.Join(parent, strings.Repeat("d", 50))
	}
	if err := os.MkdirAll(parent, 0700); err != nil {
		t.Fatal("unable to create long parent directory:", err)
	}

	// Create a unique directory inside it and verify that the reported path
	// is in the form supplied.
	_, path, err := CreateUnique(filepath.Join(parent, "tmp-%%%%"), EntityDirectory, false, 0)
	if err != nil {
		t.Fatal("unable to create unique directory:", err)
	}
	if strings.HasPrefix(path, extendedLengthPrefix) {
		t.Error("reported path has extended-length prefix:", path)
	} else if !strings.HasPrefix(path, parent) {
		t.Error("reported path isn't inside parent:", path)
	}
	if status, err := Status(path); err != nil {
		t.Fatal("unable to query unique directory:", err)
	} else if status.Type != TypeDirectory {
		t.Error("unique entry isn't a directory:", status.Type)
	}
}
