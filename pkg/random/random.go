package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand"
	"sync"
)

const (
	// CollisionResistantLength is the number of random bytes needed to ensure
	// collision-resistance in an identifier.
	CollisionResistantLength = 32
)

// New returns a byte slice of the specified length with cryptographically
// random conents.
func New(length int) ([]byte, error) {
	// Create the buffer.
	result := make([]byte, length)

	// Read random data.
	if _, err := rand.Read(result[:]); err != nil {
		return nil, fmt.Errorf("unable to read random data: %w", err)
	}

	// Success.
	return result, nil
}

// Source provides uniformly distributed pseudorandom values. Implementations
// must be safe for concurrent usage.
type Source interface {
	// Intn returns a value in the half-open interval [0, n). It panics if n is
	// not positive.
	Intn(n int) int
}

// lockedSource is a Source backed by a math/rand generator that serializes
// access to the generator.
type lockedSource struct {
	// lock serializes access to generator.
	lock sync.Mutex
	// generator is the underlying pseudorandom number generator.
	generator *mathrand.Rand
}

// NewSource creates a new pseudorandom Source seeded from the system's
// cryptographic random number generator.
func NewSource() (Source, error) {
	// Read random data to compute a seed for the pseudorandom number generator.
	seedBytes, err := New(8)
	if err != nil {
		return nil, fmt.Errorf("unable to compute seed: %w", err)
	}

	// Create the source.
	return &lockedSource{
		generator: mathrand.New(mathrand.NewSource(int64(binary.BigEndian.Uint64(seedBytes)))),
	}, nil
}

// NewSeededSource creates a new pseudorandom Source with a fixed seed. It's
// intended for tests that need reproducible sequences.
func NewSeededSource(seed int64) Source {
	return &lockedSource{
		generator: mathrand.New(mathrand.NewSource(seed)),
	}
}

// Intn implements Source.Intn.
func (s *lockedSource) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.generator.Intn(n)
}
