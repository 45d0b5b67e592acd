// Package collision implements CollisionObject: a rigid body whose shape is
// a mesh plus its precomputed signed distance field, placed in the world by
// a translation/rotation/scale transform.
package collision

import (
	"math"

	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/mesh"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/sdf"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

const defaultDensity = 1.0

// Object is a rigid body backed by a mesh and its SDF, placed in the world
// by a T*R*S transform.
type Object struct {
	Mesh *mesh.Mesh
	SDF  *sdf.Grid

	Position simmath.Vec3
	Rotation simmath.Quat
	Scale    simmath.Vec3
	Velocity simmath.Vec3

	Mass        float32
	InverseMass float32

	transform        simmath.Mat4
	inverseTransform simmath.Mat4
	transformDirty   bool
}

// New builds an Object from an already-loaded mesh and SDF, at the origin
// with identity rotation and unit scale, and a mass derived from the mesh's
// AABB volume at unit density.
func New(m *mesh.Mesh, grid *sdf.Grid) *Object {
	o := &Object{
		Mesh:           m,
		SDF:            grid,
		Rotation:       simmath.QuatIdentity(),
		Scale:          simmath.Vec3{X: 1, Y: 1, Z: 1},
		transformDirty: true,
	}
	extent := m.Bounds.Max.Sub(m.Bounds.Min)
	volume := extent.X * extent.Y * extent.Z
	o.SetMass(volume * defaultDensity)
	return o
}

// SetPosition updates the object's world position.
func (o *Object) SetPosition(p simmath.Vec3) {
	o.Position = p
	o.transformDirty = true
}

// SetRotation updates the object's orientation.
func (o *Object) SetRotation(r simmath.Quat) {
	o.Rotation = r
	o.transformDirty = true
}

// SetScale updates the object's per-axis scale.
func (o *Object) SetScale(s simmath.Vec3) {
	o.Scale = s
	o.transformDirty = true
}

// SetMass updates Mass and recomputes InverseMass. A non-positive mass
// marks the object as immovable (infinite mass).
func (o *Object) SetMass(mass float32) {
	o.Mass = mass
	if mass > 0 {
		o.InverseMass = 1 / mass
	} else {
		o.InverseMass = 0
	}
}

// IsStatic reports whether the object has infinite mass.
func (o *Object) IsStatic() bool {
	return o.InverseMass == 0
}

// IsValid reports whether the object has usable mesh and SDF data.
func (o *Object) IsValid() bool {
	return o.Mesh != nil && len(o.Mesh.Triangles) > 0 && o.SDF != nil
}

// GetVelocity satisfies simulation.Body.
func (o *Object) GetVelocity() simmath.Vec3 { return o.Velocity }

// SetVelocity satisfies simulation.Body.
func (o *Object) SetVelocity(v simmath.Vec3) { o.Velocity = v }

// InverseMassValue satisfies simulation.Body.
func (o *Object) InverseMassValue() float32 { return o.InverseMass }

// UpdatePhysics advances a non-static object's position by its velocity.
func (o *Object) UpdatePhysics(dt float32) {
	if !o.IsStatic() && dt > 0 {
		o.SetPosition(o.Position.Add(o.Velocity.Scale(dt)))
	}
}

func (o *Object) updateTransformCache() {
	if !o.transformDirty {
		return
	}
	t := simmath.Translate(o.Position.X, o.Position.Y, o.Position.Z)
	r := o.Rotation.ToMat4()
	s := simmath.Scale(o.Scale.X, o.Scale.Y, o.Scale.Z)
	o.transform = t.Mul(r).Mul(s)
	o.inverseTransform = o.transform.Inverse()
	o.transformDirty = false
}

// TransformMatrix returns the cached world transform, rebuilding it if the
// object's position, rotation, or scale changed since the last call.
func (o *Object) TransformMatrix() simmath.Mat4 {
	o.updateTransformCache()
	return o.transform
}

// InverseTransformMatrix returns the cached inverse world transform.
func (o *Object) InverseTransformMatrix() simmath.Mat4 {
	o.updateTransformCache()
	return o.inverseTransform
}

// WorldToLocal maps a world-space point into the object's local space.
func (o *Object) WorldToLocal(worldPos simmath.Vec3) simmath.Vec3 {
	return o.InverseTransformMatrix().TransformVec3(worldPos)
}

// LocalToWorld maps a local-space point into world space.
func (o *Object) LocalToWorld(localPos simmath.Vec3) simmath.Vec3 {
	return o.TransformMatrix().TransformVec3(localPos)
}

// minScale returns the smallest of the three scale axes, used to correct
// distances sampled in local space back to world units.
func (o *Object) minScale() float32 {
	s := o.Scale.X
	if o.Scale.Y < s {
		s = o.Scale.Y
	}
	if o.Scale.Z < s {
		s = o.Scale.Z
	}
	return s
}

// GetSignedDistance returns the signed distance from worldPos to the
// object's surface, or +Inf if the object has no valid shape data.
func (o *Object) GetSignedDistance(worldPos simmath.Vec3) float32 {
	if !o.IsValid() {
		return float32(math.Inf(1))
	}
	localPos := o.WorldToLocal(worldPos)
	localDistance := o.SDF.Sample(localPos)
	return localDistance * o.minScale()
}

// GetNormal returns the outward-facing surface normal at worldPos, or
// (0,1,0) if the object has no valid shape data or the gradient vanishes.
func (o *Object) GetNormal(worldPos simmath.Vec3) simmath.Vec3 {
	if !o.IsValid() {
		return simmath.Vec3{Y: 1}
	}
	localPos := o.WorldToLocal(worldPos)
	localNormal := o.SDF.Gradient(localPos)

	// Normals transform by the inverse-transpose so non-uniform scale
	// doesn't skew them the way it would a naive forward transform.
	normalMatrix := o.InverseTransformMatrix().Transpose()
	worldNormal := normalMatrix.TransformDirectionVec3(localNormal)
	if worldNormal.Length() < 1e-6 {
		return simmath.Vec3{Y: 1}
	}
	return worldNormal.Normalize()
}

// WorldBounds returns the object's world-space AABB, computed by
// transforming all 8 corners of its local bounds.
func (o *Object) WorldBounds() geom.AABB {
	local := o.Mesh.Bounds
	corners := [8]simmath.Vec3{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
	}

	world := o.LocalToWorld(corners[0])
	box := geom.AABB{Min: world, Max: world}
	for _, c := range corners[1:] {
		w := o.LocalToWorld(c)
		box.Min = box.Min.Min(w)
		box.Max = box.Max.Max(w)
	}
	return box
}
