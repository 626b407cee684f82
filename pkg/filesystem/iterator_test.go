package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// populateDirectory creates the named files inside a new temporary directory
// and returns its path.
func populateDirectory(t *testing.T, names ...string) string {
	t.Helper()
	directory := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(directory, name), nil, 0600); err != nil {
			t.Fatal("unable to create test file:", err)
		}
	}
	return directory
}

func TestIterate(t *testing.T) {
	directory := populateDirectory(t, "alpha", "beta.txt", "gamma.txt")
	if err := os.Mkdir(filepath.Join(directory, "delta"), 0700); err != nil {
		t.Fatal("unable to create test directory:", err)
	}

	iterator, err := Iterate(directory)
	if err != nil {
		t.Fatal("unable to create iterator:", err)
	}
	defer iterator.Close()

	var names []string
	for iterator.Next() {
		if iterator.Path() != filepath.Join(directory, iterator.Name()) {
			t.Error("entry path mismatch:", iterator.Path())
		}
		names = append(names, iterator.Name())
	}
	if err := iterator.Err(); err != nil {
		t.Fatal("iteration failed:", err)
	}
	sort.Strings(names)
	expected := []string{"alpha", "beta.txt", "delta", "gamma.txt"}
	if len(names) != len(expected) {
		t.Fatal("entry count mismatch:", names)
	}
	for i, name := range names {
		if name != expected[i] {
			t.Error("entry mismatch:", name, "!=", expected[i])
		}
	}

	// The exhausted iterator must stay exhausted and close as a no-op.
	if iterator.Next() {
		t.Error("exhausted iterator yielded an entry")
	} else if iterator.Path() != "" {
		t.Error("exhausted iterator has a current path")
	}
	if err := iterator.Close(); err != nil {
		t.Error("closing exhausted iterator failed:", err)
	} else if err := iterator.Close(); err != nil {
		t.Error("second close failed:", err)
	}
}

func TestIterateEmpty(t *testing.T) {
	iterator, err := Iterate(t.TempDir())
	if err != nil {
		t.Fatal("unable to create iterator:", err)
	}
	if iterator.Next() {
		t.Error("empty directory yielded entry:", iterator.Name())
	} else if iterator.Err() != nil {
		t.Error("empty directory iteration failed:", iterator.Err())
	}
	if err := iterator.Close(); err != nil {
		t.Error("unable to close iterator:", err)
	}
}

func TestIterateTrailingSeparator(t *testing.T) {
	directory := populateDirectory(t, "entry")
	base := directory + string(os.PathSeparator)

	contents, err := DirectoryContents(base)
	if err != nil {
		t.Fatal("unable to read directory contents:", err)
	} else if len(contents) != 1 {
		t.Fatal("unexpected contents:", contents)
	} else if contents[0] != base+"entry" {
		t.Error("separator duplicated in entry path:", contents[0])
	}
}

func TestIterateNotFound(t *testing.T) {
	if _, err := Iterate(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrNotFound) {
		t.Error("iterating missing directory didn't fail with not found:", err)
	}
	if _, err := Iterate(""); !errors.Is(err, ErrNotFound) {
		t.Error("iterating empty path didn't fail with not found:", err)
	}
}

func TestIterateCloseEarly(t *testing.T) {
	directory := populateDirectory(t, "a", "b", "c")

	iterator, err := Iterate(directory)
	if err != nil {
		t.Fatal("unable to create iterator:", err)
	}
	if !iterator.Next() {
		t.Fatal("iterator yielded nothing:", iterator.Err())
	}
	if err := iterator.Close(); err != nil {
		t.Fatal("unable to close iterator:", err)
	}
	if iterator.Next() {
		t.Error("closed iterator yielded an entry")
	}
}

func TestIterateMatching(t *testing.T) {
	directory := populateDirectory(t, "keep.txt", "also.txt", "skip.dat")

	iterator, err := IterateMatching(directory, "*.txt")
	if err != nil {
		t.Fatal("unable to create iterator:", err)
	}
	defer iterator.Close()

	var count int
	for iterator.Next() {
		if filepath.Ext(iterator.Name()) != ".txt" {
			t.Error("non-matching entry yielded:", iterator.Name())
		}
		count++
	}
	if iterator.Err() != nil {
		t.Fatal("iteration failed:", iterator.Err())
	} else if count != 2 {
		t.Error("unexpected matching entry count:", count)
	}
}

func TestIterateMatchingInvalidPattern(t *testing.T) {
	if _, err := IterateMatching(t.TempDir(), "[unterminated"); !errors.Is(err, ErrInvalidArgument) {
		t.Error("invalid pattern didn't fail with invalid argument:", err)
	}
}
