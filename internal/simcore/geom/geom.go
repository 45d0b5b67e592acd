// Package geom provides the primitive geometry types and queries shared by
// the BVH, SDF, and collision packages: triangles, axis-aligned bounding
// boxes, ray intersection, and point-to-primitive distance.
package geom

import "github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"

// Triangle is a single mesh face with a precomputed face normal.
type Triangle struct {
	V0, V1, V2 simmath.Vec3
	Normal     simmath.Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max simmath.Vec3
}

// Union returns the smallest AABB enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Center returns the AABB's midpoint.
func (a AABB) Center() simmath.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Diagonal returns the length of the box's diagonal.
func (a AABB) Diagonal() float32 {
	return a.Max.Sub(a.Min).Length()
}

// TriangleAABB returns the bounding box of a single triangle.
func TriangleAABB(t Triangle) AABB {
	min := t.V0.Min(t.V1).Min(t.V2)
	max := t.V0.Max(t.V1).Max(t.V2)
	return AABB{Min: min, Max: max}
}

const rayEpsilon = 1e-7

// RayTriangleIntersect implements the Möller–Trumbore ray-triangle test.
// It returns the hit distance t and whether the ray hits the triangle's
// front or back face within its two edges (u, v >= 0, u+v <= 1).
func RayTriangleIntersect(origin, dir simmath.Vec3, tri Triangle) (t float32, hit bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -rayEpsilon && a < rayEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// RayAABBIntersect performs a slab test against box, using precomputed
// reciprocal ray direction components. A zero direction component produces
// an infinite reciprocal, which correctly degenerates to an axis-parallel
// containment check per IEEE-754 division semantics.
func RayAABBIntersect(origin, dir simmath.Vec3, box AABB) bool {
	invX, invY, invZ := 1/dir.X, 1/dir.Y, 1/dir.Z

	t1 := (box.Min.X - origin.X) * invX
	t2 := (box.Max.X - origin.X) * invX
	tNear, tFar := minMax(t1, t2)

	t1 = (box.Min.Y - origin.Y) * invY
	t2 = (box.Max.Y - origin.Y) * invY
	n, f := minMax(t1, t2)
	tNear = max32(tNear, n)
	tFar = min32(tFar, f)

	t1 = (box.Min.Z - origin.Z) * invZ
	t2 = (box.Max.Z - origin.Z) * invZ
	n, f = minMax(t1, t2)
	tNear = max32(tNear, n)
	tFar = min32(tFar, f)

	return tNear <= tFar && tFar >= 0
}

func minMax(a, b float32) (lo, hi float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// PointAABBDistance returns the distance from point to the nearest point on
// box, zero if point lies inside.
func PointAABBDistance(point simmath.Vec3, box AABB) float32 {
	clamped := point.Clamp(box.Min, box.Max)
	return point.Sub(clamped).Length()
}

// PointTriangleDistance returns the closest distance from point to the
// triangle's surface, using barycentric region classification to find the
// closest point (vertex, edge, or face interior).
func PointTriangleDistance(point simmath.Vec3, tri Triangle) float32 {
	closest := ClosestPointOnTriangle(point, tri)
	return point.Sub(closest).Length()
}

// ClosestPointOnTriangle returns the point on the triangle closest to point,
// using the classic seven-region barycentric clamp.
func ClosestPointOnTriangle(point simmath.Vec3, tri Triangle) simmath.Vec3 {
	a, b, c := tri.V0, tri.V1, tri.V2

	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := point.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := point.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := point.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}
