package ember

import "math/rand/v2"

// Rand is the source of randomness for particle initialization. *rand.Rand
// from math/rand/v2 satisfies it; tests substitute a seeded or scripted source
// to assert exact trajectories.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalRand is used when a caller does not inject a generator.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from math/rand/v2's global source.
var DefaultRand Rand = globalRand{}
