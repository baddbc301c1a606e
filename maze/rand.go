package maze

import "math/rand/v2"

// pcgStream is the fixed stream selector paired with a caller's seed.
const pcgStream = 0x9e3779b97f4a7c15

// RandomSource supplies the random draws used while carving.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// NewSource returns a deterministic source for the given seed. Two sources
// built from the same seed yield the same sequence, so the same maze.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}
