package random

import (
	"testing"
)

// TestNew tests New.
func TestNew(t *testing.T) {
	if data, err := New(CollisionResistantLength); err != nil {
		t.Fatal("unable to create random data:", err)
	} else if len(data) != CollisionResistantLength {
		t.Error("random data did not have expected length:", len(data), "!=", CollisionResistantLength)
	}
}

// TestNewSourceRange tests that NewSource produces values in range.
func TestNewSourceRange(t *testing.T) {
	source, err := NewSource()
	if err != nil {
		t.Fatal("unable to create source:", err)
	}
	for i := 0; i < 1000; i++ {
		if value := source.Intn(16); value < 0 || value >= 16 {
			t.Fatal("value out of range:", value)
		}
	}
}

// TestSeededSourceReproducible tests that seeded sources are reproducible.
func TestSeededSourceReproducible(t *testing.T) {
	first, second := NewSeededSource(42), NewSeededSource(42)
	for i := 0; i < 100; i++ {
		if a, b := first.Intn(1<<20), second.Intn(1<<20); a != b {
			t.Fatal("seeded sources diverged at index", i)
		}
	}
}
