package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mutagen-io/fsprim/pkg/random"
)

// sequenceSource is a random.Source that replays a fixed sequence of values,
// cycling when exhausted.
type sequenceSource struct {
	values []int
	index  int
}

// Intn implements random.Source.Intn.
func (s *sequenceSource) Intn(n int) int {
	value := s.values[s.index%len(s.values)] % n
	s.index++
	return value
}

func TestUniqueFactorySubstitute(t *testing.T) {
	factory := &UniqueFactory{Source: random.NewSeededSource(1)}
	model := "tmp-%%%%.txt"
	candidate := make([]byte, len(model))
	for i := 0; i < 100; i++ {
		name := factory.substitute(candidate, model)
		if len(name) != len(model) {
			t.Fatal("candidate length differs from model:", name)
		} else if !strings.HasPrefix(name, "tmp-") || !strings.HasSuffix(name, ".txt") {
			t.Fatal("non-placeholder characters modified:", name)
		}
		for _, c := range name[4:8] {
			if !strings.ContainsRune(hexDigits, c) {
				t.Fatal("placeholder replaced with non-hexadecimal character:", name)
			}
		}
	}
	if model != "tmp-%%%%.txt" {
		t.Error("model was mutated")
	}
}

func TestCreateUniqueFilesDistinct(t *testing.T) {
	directory := t.TempDir()
	template := filepath.Join(directory, "tmp-%%%%.txt")
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		file, path, err := CreateUnique(template, EntityFile, false, 0)
		if err != nil {
			t.Fatal("unable to create unique file:", err)
		}
		if err := file.Close(); err != nil {
			t.Fatal("unable to close unique file:", err)
		}
		if seen[path] {
			t.Fatal("duplicate unique path returned:", path)
		}
		seen[path] = true
	}
	contents, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal("unable to read directory:", err)
	} else if len(contents) != len(seen) {
		t.Error("directory entry count mismatch:", len(contents), "!=", len(seen))
	}
}

func TestCreateUniqueRetriesOnCollision(t *testing.T) {
	directory := t.TempDir()

	// Pre-create the name that the first candidate will produce.
	occupied := filepath.Join(directory, "0000")
	if err := os.WriteFile(occupied, []byte("occupied"), 0600); err != nil {
		t.Fatal("unable to create occupying file:", err)
	}

	// The source yields zeros for the first candidate and ones thereafter.
	factory := &UniqueFactory{Source: &sequenceSource{values: []int{0, 0, 0, 0, 1, 1, 1, 1}}}
	file, path, err := factory.Create(filepath.Join(directory, "%%%%"), EntityFile, false, 0)
	if err != nil {
		t.Fatal("unable to create unique file:", err)
	}
	defer file.Close()
	if path != filepath.Join(directory, "1111") {
		t.Error("unexpected path after collision:", path)
	}
	if data, err := os.ReadFile(occupied); err != nil || string(data) != "occupied" {
		t.Error("occupying file was disturbed")
	}
}

func TestCreateUniqueExhausted(t *testing.T) {
	directory := t.TempDir()
	occupied := filepath.Join(directory, "fixed")
	if err := os.WriteFile(occupied, nil, 0600); err != nil {
		t.Fatal("unable to create occupying file:", err)
	}
	factory := &UniqueFactory{Source: random.NewSeededSource(2), MaximumAttempts: 5}
	if _, _, err := factory.Create(occupied, EntityFile, false, 0); !errors.Is(err, ErrAlreadyExists) {
		t.Error("exhausted attempts did not report collision:", err)
	}
}

func TestCreateUniqueNameOnly(t *testing.T) {
	directory := t.TempDir()
	file, path, err := CreateUnique(filepath.Join(directory, "name-%%%%%%"), EntityNameOnly, false, 0)
	if err != nil {
		t.Fatal("unable to create unique name:", err)
	} else if file != nil {
		t.Error("file returned for name-only request")
	}
	if exists, err := Exists(path); err != nil {
		t.Fatal("unable to check existence:", err)
	} else if exists {
		t.Error("name-only request created an entry")
	}
}

func TestCreateUniqueDirectory(t *testing.T) {
	directory := t.TempDir()
	_, path, err := CreateUnique(filepath.Join(directory, "dir-%%%%"), EntityDirectory, false, 0)
	if err != nil {
		t.Fatal("unable to create unique directory:", err)
	}
	if status, err := Status(path); err != nil {
		t.Fatal("unable to query directory status:", err)
	} else if status.Type != TypeDirectory {
		t.Error("unique directory has unexpected type:", status.Type)
	}
}

func TestCreateUniqueAbsolute(t *testing.T) {
	directory := t.TempDir()
	factory := &UniqueFactory{
		Source:             random.NewSeededSource(3),
		TemporaryDirectory: directory,
	}
	file, path, err := factory.Create("C:tmp-%%%%.txt", EntityFile, true, 0)
	if err != nil {
		t.Fatal("unable to create unique file:", err)
	}
	defer file.Close()
	if !filepath.IsAbs(path) {
		t.Error("result is not absolute:", path)
	} else if filepath.Dir(path) != directory {
		t.Error("result not placed in temporary directory:", path)
	} else if !strings.HasPrefix(filepath.Base(path), "tmp-") {
		t.Error("drive prefix not stripped:", path)
	}
}

func TestCreateUniqueMissingParent(t *testing.T) {
	template := filepath.Join(t.TempDir(), "missing", "tmp-%%%%")
	if _, _, err := CreateUnique(template, EntityFile, false, 0); !errors.Is(err, ErrNotFound) {
		t.Error("creation in missing directory did not fail with not found:", err)
	}
}

func TestCreateUniqueInvalidKind(t *testing.T) {
	if _, _, err := CreateUnique("tmp-%%%%", EntityKind(42), false, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Error("invalid kind not rejected:", err)
	}
}

func TestTemporaryDirectory(t *testing.T) {
	directory, err := TemporaryDirectory()
	if err != nil {
		t.Fatal("unable to query temporary directory:", err)
	} else if directory == "" {
		t.Fatal("empty temporary directory")
	}
}
