// Package sampling provides the random primitives used to generate problems.
//
// Every random choice made by a problem generator goes through a Source, so a
// generator built on a seeded Source is fully reproducible.
package sampling

import (
	"math/rand"
	"sync"
	"time"
)

// A Source produces random numbers. *rand.Rand satisfies Source.
type Source interface {
	// Intn returns a number in [0, n). It panics if n <= 0.
	Intn(n int) int

	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// NewSource creates a Source seeded with the given seed. A zero seed is
// replaced with the current time.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// LockedSource is a Source that can be shared by multiple goroutines.
type LockedSource struct {
	lock sync.Mutex
	rng  *rand.Rand
}

// NewLockedSource creates a LockedSource seeded with the given seed. A zero
// seed is replaced with the current time.
func NewLockedSource(seed int64) *LockedSource {
	return &LockedSource{
		rng: NewSource(seed),
	}
}

// Intn returns a number in [0, n).
func (s *LockedSource) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *LockedSource) Float64() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rng.Float64()
}
