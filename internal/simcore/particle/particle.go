// Package particle implements the free-flying point masses that bounce
// around the simulation box and collide with collision objects.
package particle

import (
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/randsrc"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

const (
	defaultMass   = 1.0
	defaultRadius = 0.05
)

// Particle is a single point mass with a collision radius.
type Particle struct {
	Position, Velocity simmath.Vec3
	Radius             float32
	Mass               float32
	InverseMass        float32
}

// SetMass updates Mass and recomputes InverseMass, treating a non-positive
// mass as infinite (immovable).
func (p *Particle) SetMass(mass float32) {
	p.Mass = mass
	if mass > 0 {
		p.InverseMass = 1 / mass
	} else {
		p.InverseMass = 0
	}
}

// GetVelocity satisfies simulation.Body.
func (p *Particle) GetVelocity() simmath.Vec3 { return p.Velocity }

// SetVelocity satisfies simulation.Body.
func (p *Particle) SetVelocity(v simmath.Vec3) { p.Velocity = v }

// InverseMassValue satisfies simulation.Body.
func (p *Particle) InverseMassValue() float32 { return p.InverseMass }

// Update advects the particle by dt along its current velocity.
func (p *Particle) Update(dt float32) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// System owns a flat collection of particles and the RNG used to seed
// their initial state.
type System struct {
	Particles []*Particle
	rng       *randsrc.Source
}

// NewSystem creates an empty System seeded from seed.
func NewSystem(seed uint64) *System {
	return &System{rng: randsrc.New(seed)}
}

// Initialize (re)populates the system with count particles, each placed at
// a uniform random position inside [boxMin, boxMax] and given a random
// direction scaled to speed.
func (s *System) Initialize(boxMin, boxMax simmath.Vec3, count int, speed float32) {
	s.Particles = make([]*Particle, 0, count)
	for i := 0; i < count; i++ {
		p := &Particle{
			Position: s.randomPosition(boxMin, boxMax),
			Velocity: s.randomDirection().Scale(speed),
			Radius:   defaultRadius,
		}
		p.SetMass(defaultMass)
		s.Particles = append(s.Particles, p)
	}
}

func (s *System) randomPosition(boxMin, boxMax simmath.Vec3) simmath.Vec3 {
	return simmath.Vec3{
		X: s.rng.Float32(boxMin.X, boxMax.X),
		Y: s.rng.Float32(boxMin.Y, boxMax.Y),
		Z: s.rng.Float32(boxMin.Z, boxMax.Z),
	}
}

// randomDirection rejection-samples a vector in [-1,1]^3 whose length falls
// in [0.1, 1] and returns it normalized, matching the original tool's bias
// away from near-zero-length draws.
func (s *System) randomDirection() simmath.Vec3 {
	for {
		v := simmath.Vec3{
			X: s.rng.Float32(-1, 1),
			Y: s.rng.Float32(-1, 1),
			Z: s.rng.Float32(-1, 1),
		}
		l := v.Length()
		if l >= 0.1 && l <= 1 {
			return v.Normalize()
		}
	}
}

// Update advances every particle by dt.
func (s *System) Update(dt float32) {
	for _, p := range s.Particles {
		p.Update(dt)
	}
}

// SetParticleSize sets the collision radius on every particle.
func (s *System) SetParticleSize(size float32) {
	for _, p := range s.Particles {
		p.Radius = size
	}
}
