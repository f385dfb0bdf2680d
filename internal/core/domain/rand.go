package domain

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for ingestion decisions (owner
// selection, seeded like counts, comment counts, filler sentences).
// Injecting it keeps those decisions deterministic under test.
type Rand interface {
	// Intn returns a uniform int in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// NewRand returns a time-seeded Rand for production use.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic Rand for tests.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// IntBetween returns a uniform int in [min, max] inclusive.
// It returns min when max <= min.
func IntBetween(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}
