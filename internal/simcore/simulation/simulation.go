// Package simulation ties particles and collision objects together into a
// single world advanced by a caller-supplied dt: integration, wall containment, and the two
// collision paths (object-object and particle-object).
package simulation

import (
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/collision"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/particle"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

const (
	// meshMeshThresholdFraction scales the mesh-to-mesh contact threshold
	// by the smaller object's size, instead of using a fixed world-space
	// distance that would be too loose for small objects and too tight for
	// large ones.
	meshMeshThresholdFraction = 0.02
	meshMeshRestitution       = 1.0
	particleMeshRestitution   = 0.8
	particleWallEpsilon       = 0.001
)

// Body is the minimal capability interface needed to resolve a collision
// impulse, satisfied by both *particle.Particle and *collision.Object so
// particle-object and object-object contacts share one resolution routine.
type Body interface {
	GetVelocity() simmath.Vec3
	SetVelocity(simmath.Vec3)
	InverseMassValue() float32
}

// Simulation owns the particle system and every collision object inside a
// fixed rectangular box.
type Simulation struct {
	BoundsMin, BoundsMax simmath.Vec3
	Particles            *particle.System
	Objects              []*collision.Object
}

// New creates a Simulation over the given box, with an empty particle
// system seeded from seed.
func New(boundsMin, boundsMax simmath.Vec3, seed uint64) *Simulation {
	return &Simulation{
		BoundsMin: boundsMin,
		BoundsMax: boundsMax,
		Particles: particle.NewSystem(seed),
	}
}

// AddObject registers a collision object with the simulation.
func (s *Simulation) AddObject(o *collision.Object) {
	s.Objects = append(s.Objects, o)
}

// Update advances the world by dt, in a fixed order: integrate objects,
// bounce objects off the box walls, resolve object-object contacts,
// integrate particles, bounce particles off the walls, then resolve
// particle-object contacts.
func (s *Simulation) Update(dt float32) {
	s.integrateObjects(dt)
	s.bounceObjectsOffWalls()
	s.handleMeshToMeshCollisions()

	s.Particles.Update(dt)
	s.bounceParticlesOffWalls()
	s.handleParticleObjectCollisions()
}

func (s *Simulation) integrateObjects(dt float32) {
	for _, o := range s.Objects {
		if o.IsValid() {
			o.UpdatePhysics(dt)
		}
	}
}

// bounceObjectsOffWalls keeps every dynamic object's world AABB inside the
// simulation box: on each axis where the AABB touches or crosses a wall, the
// velocity component is set to point back into the box and the object is
// moved so its AABB sits flush against that wall.
func (s *Simulation) bounceObjectsOffWalls() {
	for _, o := range s.Objects {
		if !o.IsValid() || o.IsStatic() {
			continue
		}
		bounds := o.WorldBounds()
		pos := o.Position
		vel := o.GetVelocity()

		if bounds.Min.X <= s.BoundsMin.X {
			vel.X = absf(vel.X)
			pos.X = s.BoundsMin.X + (pos.X - bounds.Min.X)
		} else if bounds.Max.X >= s.BoundsMax.X {
			vel.X = -absf(vel.X)
			pos.X = s.BoundsMax.X - (bounds.Max.X - pos.X)
		}

		if bounds.Min.Y <= s.BoundsMin.Y {
			vel.Y = absf(vel.Y)
			pos.Y = s.BoundsMin.Y + (pos.Y - bounds.Min.Y)
		} else if bounds.Max.Y >= s.BoundsMax.Y {
			vel.Y = -absf(vel.Y)
			pos.Y = s.BoundsMax.Y - (bounds.Max.Y - pos.Y)
		}

		if bounds.Min.Z <= s.BoundsMin.Z {
			vel.Z = absf(vel.Z)
			pos.Z = s.BoundsMin.Z + (pos.Z - bounds.Min.Z)
		} else if bounds.Max.Z >= s.BoundsMax.Z {
			vel.Z = -absf(vel.Z)
			pos.Z = s.BoundsMax.Z - (bounds.Max.Z - pos.Z)
		}

		o.SetVelocity(vel)
		o.SetPosition(pos)
	}
}

func (s *Simulation) handleMeshToMeshCollisions() {
	for i := 0; i < len(s.Objects); i++ {
		for j := i + 1; j < len(s.Objects); j++ {
			a, b := s.Objects[i], s.Objects[j]
			if !a.IsValid() || !b.IsValid() {
				continue
			}
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if !aabbOverlap(a.WorldBounds(), b.WorldBounds()) {
				continue
			}
			s.resolveObjectPair(a, b)
		}
	}
}

func (s *Simulation) resolveObjectPair(a, b *collision.Object) {
	distA := b.GetSignedDistance(a.Position)
	distB := a.GetSignedDistance(b.Position)

	threshold := meshMeshThresholdFraction * minf(a.WorldBounds().Diagonal(), b.WorldBounds().Diagonal())
	if distA > threshold && distB > threshold {
		return
	}

	normal := b.Position.Sub(a.Position)
	if normal.Length() < 1e-6 {
		normal = simmath.Vec3{X: 1}
	} else {
		normal = normal.Normalize()
	}

	penetration := maxf(0, maxf(-distA, -distB))
	if penetration == 0 {
		penetration = 0.05
	}
	separation := maxf(threshold, penetration*1.2)
	separationVec := normal.Scale(separation * 0.5)

	if !a.IsStatic() {
		a.SetPosition(a.Position.Sub(separationVec))
	}
	if !b.IsStatic() {
		b.SetPosition(b.Position.Add(separationVec))
	}

	if a.IsStatic() || b.IsStatic() {
		if !a.IsStatic() {
			a.SetVelocity(reflect(a.GetVelocity(), normal.Scale(-1)))
		}
		if !b.IsStatic() {
			b.SetVelocity(reflect(b.GetVelocity(), normal))
		}
		return
	}

	resolveImpulse(a, b, normal, meshMeshRestitution)
}

func (s *Simulation) bounceParticlesOffWalls() {
	for _, p := range s.Particles.Particles {
		normal := simmath.Vec3{}
		hit := false

		if p.Position.X-p.Radius <= s.BoundsMin.X {
			normal.X = 1
			hit = true
		} else if p.Position.X+p.Radius >= s.BoundsMax.X {
			normal.X = -1
			hit = true
		}
		if p.Position.Y-p.Radius <= s.BoundsMin.Y {
			normal.Y = 1
			hit = true
		} else if p.Position.Y+p.Radius >= s.BoundsMax.Y {
			normal.Y = -1
			hit = true
		}
		if p.Position.Z-p.Radius <= s.BoundsMin.Z {
			normal.Z = 1
			hit = true
		} else if p.Position.Z+p.Radius >= s.BoundsMax.Z {
			normal.Z = -1
			hit = true
		}

		if !hit {
			continue
		}
		if normal.Length() > 0 {
			normal = normal.Normalize()
		}
		p.Velocity = reflect(p.Velocity, normal)

		p.Position.X = clampf(p.Position.X, s.BoundsMin.X+p.Radius, s.BoundsMax.X-p.Radius)
		p.Position.Y = clampf(p.Position.Y, s.BoundsMin.Y+p.Radius, s.BoundsMax.Y-p.Radius)
		p.Position.Z = clampf(p.Position.Z, s.BoundsMin.Z+p.Radius, s.BoundsMax.Z-p.Radius)
	}
}

// handleParticleObjectCollisions resolves at most one object contact per
// particle per tick: the first object whose SDF reports penetration wins,
// matching the original tool's single-contact-per-frame simplification.
func (s *Simulation) handleParticleObjectCollisions() {
	for _, p := range s.Particles.Particles {
		for _, o := range s.Objects {
			if !o.IsValid() {
				continue
			}
			distance := o.GetSignedDistance(p.Position)
			if distance >= p.Radius {
				continue
			}

			normal := o.GetNormal(p.Position)
			if normal.Length() <= 0.001 {
				continue
			}
			normal = normal.Normalize()

			if o.IsStatic() {
				p.Velocity = reflect(p.Velocity, normal)
			} else {
				resolveImpulse(o, p, normal, particleMeshRestitution)
			}

			p.Position = p.Position.Add(normal.Scale(p.Radius - distance + particleWallEpsilon))
			break
		}
	}
}

// resolveImpulse applies the standard impulse-based collision response
// between two bodies along normal (pointing from a toward b), splitting
// the impulse by inverse mass so heavier bodies barely move.
func resolveImpulse(a, b Body, normal simmath.Vec3, restitution float32) {
	relativeVel := b.GetVelocity().Sub(a.GetVelocity())
	velAlongNormal := relativeVel.Dot(normal)
	if velAlongNormal > 0 {
		return
	}

	invMassSum := a.InverseMassValue() + b.InverseMassValue()
	if invMassSum == 0 {
		return
	}

	j := -(1 + restitution) * velAlongNormal / invMassSum
	impulse := normal.Scale(j)

	a.SetVelocity(a.GetVelocity().Sub(impulse.Scale(a.InverseMassValue())))
	b.SetVelocity(b.GetVelocity().Add(impulse.Scale(b.InverseMassValue())))
}

func reflect(v, normal simmath.Vec3) simmath.Vec3 {
	return v.Sub(normal.Scale(2 * v.Dot(normal)))
}

func aabbOverlap(a, b geom.AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return maxf(lo, minf(v, hi))
}
