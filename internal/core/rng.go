package core

import "math/rand/v2"

// RNG is the single seedable random source consulted by a simulation. Every
// draw goes through it so a fixed seed and a fixed call order replay exactly.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	r := &RNG{}
	r.Seed(seed)
	return r
}

// Seed restarts the sequence from the given seed.
func (r *RNG) Seed(seed int64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Current reports the seed the sequence was last started from.
func (r *RNG) Current() int64 { return r.seed }

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
