// Package entropy provides the random sources behind the stochastic parts of
// the simulation. Production code draws from a live source; tests and
// reproducible runs inject a seeded one, so election and vote outcomes are
// replayable from a seed.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source supplies uniform random values. Implementations need not be
// safe for concurrent use — the simulation is strictly turn-sequential.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// IntBetween returns a uniform int in [min, max] inclusive.
func IntBetween(src Source, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + src.IntN(max-min+1)
}

// seeded is a deterministic source backed by math/rand.
type seeded struct {
	rng *mathrand.Rand
}

// NewSeeded returns a deterministic Source. Two sources built from the same
// seed produce identical streams.
func NewSeeded(seed int64) Source {
	return &seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

func (s *seeded) Float() float64 { return s.rng.Float64() }
func (s *seeded) IntN(n int) int { return s.rng.Intn(n) }

// system draws from crypto/rand.
type system struct{}

// System returns a non-deterministic Source backed by crypto/rand.
func System() Source { return system{} }

func (system) Float() float64 { return cryptoFloat() }

func (system) IntN(n int) int {
	if n <= 0 {
		panic("entropy: IntN with non-positive n")
	}
	return int(cryptoFloat() * float64(n))
}

// cryptoFloat generates a uniform float64 in [0, 1) from crypto/rand.
func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
