// Package randsrc provides a seedable uniform random source for
// deterministic particle initialization, playing the same role the
// original tool's seeded std::mt19937 did.
package randsrc

import "math/rand/v2"

// Source wraps a seeded PCG generator with the uniform sampling helpers the
// particle system needs.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded deterministically from seed: the same seed
// always produces the same sequence of positions and directions.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Float32 returns a uniform value in [lo, hi).
func (s *Source) Float32(lo, hi float32) float32 {
	return lo + float32(s.rng.Float64())*(hi-lo)
}
