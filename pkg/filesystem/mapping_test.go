package filesystem

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const mappingTestContents = "the quick brown fox jumps over the lazy dog"

// writeMappingTestFile creates a file with known contents for mapping tests.
func writeMappingTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapped")
	if err := os.WriteFile(path, []byte(mappingTestContents), 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}
	return path
}

func TestMapFileWholeFile(t *testing.T) {
	path := writeMappingTestFile(t)

	region, err := MapFile(path, MapReadOnly, 0, 0)
	if err != nil {
		t.Fatal("unable to map file:", err)
	}
	defer region.Close()

	if !region.Mapped() {
		t.Fatal("region not mapped")
	} else if region.Mode() != MapReadOnly {
		t.Error("mapping mode mismatch:", region.Mode())
	}
	if size := region.Size(); size != len(mappingTestContents) {
		t.Fatal("mapping size mismatch:", size, "!=", len(mappingTestContents))
	}
	if region.At(4) != 'q' {
		t.Error("unexpected byte at index 4:", region.At(4))
	}

	buffer := make([]byte, 5)
	if n, err := region.ReadAt(buffer, 10); err != nil {
		t.Fatal("unable to read mapping:", err)
	} else if n != 5 || string(buffer) != "brown" {
		t.Error("unexpected mapping contents:", string(buffer[:n]))
	}
	if _, err := region.ReadAt(buffer, int64(region.Size())); err != io.EOF {
		t.Error("read past end didn't return EOF:", err)
	}
	contents, err := io.ReadAll(io.NewSectionReader(region, 0, int64(region.Size())))
	if err != nil {
		t.Fatal("unable to read mapping as section:", err)
	} else if string(contents) != mappingTestContents {
		t.Error("section contents mismatch")
	}

	if err := region.Close(); err != nil {
		t.Fatal("unable to close region:", err)
	} else if region.Mapped() {
		t.Error("closed region still mapped")
	} else if err := region.Close(); err != nil {
		t.Error("second close failed:", err)
	}
}

func TestMapFileOffset(t *testing.T) {
	path := writeMappingTestFile(t)

	// An aligned offset at or beyond the end of a small file leaves nothing
	// to map.
	if _, err := MapFile(path, MapReadOnly, 0, int64(Alignment())); !errors.Is(err, ErrInvalidArgument) {
		t.Error("mapping beyond end of file didn't fail with invalid argument:", err)
	}

	// Negative offsets are rejected.
	if _, err := MapFile(path, MapReadOnly, 4, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Error("negative offset didn't fail with invalid argument:", err)
	}
}

func TestMapFileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	if _, err := MapFile(path, MapReadOnly, 0, 0); !errors.Is(err, ErrNotFound) {
		t.Error("mapping missing file didn't fail with not found:", err)
	}
}

func TestMapHandleOversize(t *testing.T) {
	path := writeMappingTestFile(t)
	file, err := os.Open(path)
	if err != nil {
		t.Fatal("unable to open test file:", err)
	}
	handle, err := NativeHandleOf(file)
	if err != nil {
		t.Fatal("unable to extract handle:", err)
	}

	if region, err := MapHandle(handle, false, MapReadOnly, math.MaxUint64, 0); err == nil {
		region.Close()
		t.Fatal("oversize mapping succeeded")
	} else if !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("oversize mapping failed with unexpected error:", err)
	}

	// The handle wasn't owned by the mapping, so it must still be usable.
	if _, err := file.Stat(); err != nil {
		t.Error("handle unusable after failed mapping:", err)
	}
	if err := file.Close(); err != nil {
		t.Error("unable to close handle after failed mapping:", err)
	}
}

func TestMapHandleBorrowed(t *testing.T) {
	path := writeMappingTestFile(t)
	file, err := os.Open(path)
	if err != nil {
		t.Fatal("unable to open test file:", err)
	}
	defer file.Close()
	handle, err := NativeHandleOf(file)
	if err != nil {
		t.Fatal("unable to extract handle:", err)
	}

	region, err := MapHandle(handle, false, MapReadOnly, 0, 0)
	if err != nil {
		t.Fatal("unable to map handle:", err)
	}
	defer region.Close()
	if region.Size() != len(mappingTestContents) {
		t.Error("mapping size mismatch:", region.Size())
	}
	if _, err := file.Stat(); err != nil {
		t.Error("borrowed handle unusable after mapping:", err)
	}
}

func TestMappingSizeLimit(t *testing.T) {
	path := writeMappingTestFile(t)

	defer func(limit uint64) {
		MappingSizeLimit = limit
	}(MappingSizeLimit)
	MappingSizeLimit = 4

	if _, err := MapFile(path, MapReadOnly, 8, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Error("mapping above limit didn't fail with invalid argument:", err)
	}
	region, err := MapFile(path, MapReadOnly, 4, 0)
	if err != nil {
		t.Fatal("mapping within limit failed:", err)
	}
	region.Close()
}

func TestMapReadWritePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "created")
	const length = 16

	region, err := MapFile(path, MapReadWrite, length, 0)
	if err != nil {
		t.Fatal("unable to map new file:", err)
	}
	if region.Size() != length {
		t.Error("mapping size mismatch:", region.Size())
	}
	copy(region.Data(), "persisted")
	if err := region.Flush(); err != nil {
		t.Error("unable to flush mapping:", err)
	}
	if err := region.Close(); err != nil {
		t.Fatal("unable to close region:", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read mapped file:", err)
	} else if len(contents) != length {
		t.Error("mapped file not extended:", len(contents))
	} else if !bytes.HasPrefix(contents, []byte("persisted")) {
		t.Error("modifications not persisted:", string(contents))
	}
}

func TestMapPrivateNotPersisted(t *testing.T) {
	path := writeMappingTestFile(t)

	region, err := MapFile(path, MapPrivate, 0, 0)
	if err != nil {
		t.Fatal("unable to map file:", err)
	}
	data := region.Data()
	copy(data, "THE")
	if region.At(0) != 'T' {
		t.Error("private modification not visible through mapping")
	}
	if err := region.Flush(); err != nil {
		t.Error("flushing private mapping failed:", err)
	}
	if err := region.Close(); err != nil {
		t.Fatal("unable to close region:", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read mapped file:", err)
	} else if string(contents) != mappingTestContents {
		t.Error("private modifications persisted:", string(contents))
	}
}

func TestMappedRegionTransfer(t *testing.T) {
	path := writeMappingTestFile(t)

	source, err := MapFile(path, MapReadOnly, 0, 0)
	if err != nil {
		t.Fatal("unable to map file:", err)
	}
	destination := source.Transfer()
	defer destination.Close()

	if source.Mapped() || source.Size() != 0 {
		t.Error("source region not empty after transfer")
	}
	if err := source.Close(); err != nil {
		t.Error("closing empty source failed:", err)
	}
	if !destination.Mapped() || destination.Size() != len(mappingTestContents) {
		t.Fatal("destination region doesn't hold mapping")
	}
	if destination.At(0) != 't' {
		t.Error("destination contents mismatch")
	}
}

func TestMappedRegionEmpty(t *testing.T) {
	var region MappedRegion
	if region.Mapped() || region.Size() != 0 {
		t.Error("zero region isn't empty")
	}
	if err := region.Close(); err != nil {
		t.Error("closing zero region failed:", err)
	}
	if _, err := region.ReadAt(make([]byte, 1), 0); !errors.Is(err, ErrInvalidHandle) {
		t.Error("reading zero region didn't fail with invalid handle:", err)
	}
	if err := region.Flush(); !errors.Is(err, ErrInvalidHandle) {
		t.Error("flushing zero region didn't fail with invalid handle:", err)
	}
}

func TestMappedRegionDataReadOnlyPanics(t *testing.T) {
	path := writeMappingTestFile(t)
	region, err := MapFile(path, MapReadOnly, 0, 0)
	if err != nil {
		t.Fatal("unable to map file:", err)
	}
	defer region.Close()

	defer func() {
		if recover() == nil {
			t.Error("mutable access to read-only region didn't panic")
		}
	}()
	region.Data()
}

func TestAlignment(t *testing.T) {
	alignment := Alignment()
	if alignment <= 0 {
		t.Fatal("non-positive alignment:", alignment)
	} else if alignment&(alignment-1) != 0 {
		t.Error("alignment isn't a power of two:", alignment)
	} else if Alignment() != alignment {
		t.Error("alignment changed between queries")
	}
}

func TestMapPagesUnimplemented(t *testing.T) {
	if _, err := MapPages("pages", 0, 4096, false); !errors.Is(err, ErrUnimplemented) {
		t.Error("MapPages didn't fail with unimplemented:", err)
	}
	if err := UnmapPages(nil); !errors.Is(err, ErrUnimplemented) {
		t.Error("UnmapPages didn't fail with unimplemented:", err)
	}
}

func TestResourceChainUnwindOrder(t *testing.T) {
	var order []int
	var chain resourceChain
	for i := 0; i < 3; i++ {
		i := i
		chain.push(func() { order = append(order, i) })
	}
	chain.unwind()
	if len(order) != 3 || order[0] != 2 || order[1] != 1 || order[2] != 0 {
		t.Error("resources not released in reverse order:", order)
	}
	chain.unwind()
	if len(order) != 3 {
		t.Error("unwinding twice released resources again")
	}
}
