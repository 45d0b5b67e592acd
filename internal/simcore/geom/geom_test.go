package geom

import (
	"testing"

	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

func unitTriangle() Triangle {
	return Triangle{
		V0:     simmath.Vec3{X: 0, Y: 0, Z: 0},
		V1:     simmath.Vec3{X: 1, Y: 0, Z: 0},
		V2:     simmath.Vec3{X: 0, Y: 1, Z: 0},
		Normal: simmath.Vec3{X: 0, Y: 0, Z: 1},
	}
}

func TestRayTriangleIntersectHit(t *testing.T) {
	tri := unitTriangle()
	origin := simmath.Vec3{X: 0.2, Y: 0.2, Z: 1}
	dir := simmath.Vec3{X: 0, Y: 0, Z: -1}

	dist, hit := RayTriangleIntersect(origin, dir, tri)
	if !hit {
		t.Fatal("expected ray to hit triangle")
	}
	if dist < 0.99 || dist > 1.01 {
		t.Errorf("expected distance ~1, got %f", dist)
	}
}

func TestRayTriangleIntersectMiss(t *testing.T) {
	tri := unitTriangle()
	origin := simmath.Vec3{X: 5, Y: 5, Z: 1}
	dir := simmath.Vec3{X: 0, Y: 0, Z: -1}

	if _, hit := RayTriangleIntersect(origin, dir, tri); hit {
		t.Error("expected ray outside triangle bounds to miss")
	}
}

func TestRayTriangleIntersectBehindOrigin(t *testing.T) {
	tri := unitTriangle()
	origin := simmath.Vec3{X: 0.2, Y: 0.2, Z: -1}
	dir := simmath.Vec3{X: 0, Y: 0, Z: -1}

	if _, hit := RayTriangleIntersect(origin, dir, tri); hit {
		t.Error("expected triangle behind ray origin to miss")
	}
}

func TestRayAABBIntersectHit(t *testing.T) {
	box := AABB{Min: simmath.Vec3{X: -1, Y: -1, Z: -1}, Max: simmath.Vec3{X: 1, Y: 1, Z: 1}}
	origin := simmath.Vec3{X: -5, Y: 0, Z: 0}
	dir := simmath.Vec3{X: 1, Y: 0, Z: 0}

	if !RayAABBIntersect(origin, dir, box) {
		t.Error("expected ray to hit box")
	}
}

func TestRayAABBIntersectMiss(t *testing.T) {
	box := AABB{Min: simmath.Vec3{X: -1, Y: -1, Z: -1}, Max: simmath.Vec3{X: 1, Y: 1, Z: 1}}
	origin := simmath.Vec3{X: -5, Y: 5, Z: 0}
	dir := simmath.Vec3{X: 1, Y: 0, Z: 0}

	if RayAABBIntersect(origin, dir, box) {
		t.Error("expected parallel ray above box to miss")
	}
}

func TestRayAABBIntersectZeroComponent(t *testing.T) {
	// Ray direction has a zero X component but origin's X lies within the
	// box's X slab, so the ray should still be able to hit via Y/Z.
	box := AABB{Min: simmath.Vec3{X: -1, Y: -1, Z: -1}, Max: simmath.Vec3{X: 1, Y: 1, Z: 1}}
	origin := simmath.Vec3{X: 0, Y: -5, Z: 0}
	dir := simmath.Vec3{X: 0, Y: 1, Z: 0}

	if !RayAABBIntersect(origin, dir, box) {
		t.Error("expected ray with zero-component direction inside slab to hit")
	}
}

func TestPointAABBDistanceInside(t *testing.T) {
	box := AABB{Min: simmath.Vec3{X: -1, Y: -1, Z: -1}, Max: simmath.Vec3{X: 1, Y: 1, Z: 1}}
	d := PointAABBDistance(simmath.Vec3{X: 0, Y: 0, Z: 0}, box)
	if d != 0 {
		t.Errorf("expected 0 distance for interior point, got %f", d)
	}
}

func TestPointAABBDistanceOutside(t *testing.T) {
	box := AABB{Min: simmath.Vec3{X: -1, Y: -1, Z: -1}, Max: simmath.Vec3{X: 1, Y: 1, Z: 1}}
	d := PointAABBDistance(simmath.Vec3{X: 3, Y: 0, Z: 0}, box)
	if d < 1.99 || d > 2.01 {
		t.Errorf("expected distance ~2, got %f", d)
	}
}

func TestPointTriangleDistanceFaceRegion(t *testing.T) {
	tri := unitTriangle()
	d := PointTriangleDistance(simmath.Vec3{X: 0.2, Y: 0.2, Z: 1}, tri)
	if d < 0.99 || d > 1.01 {
		t.Errorf("expected distance ~1 above face, got %f", d)
	}
}

func TestPointTriangleDistanceVertexRegion(t *testing.T) {
	tri := unitTriangle()
	d := PointTriangleDistance(simmath.Vec3{X: -1, Y: -1, Z: 0}, tri)
	want := simmath.Vec3{X: -1, Y: -1, Z: 0}.Length()
	if absDiff(d, want) > 1e-4 {
		t.Errorf("expected distance to vertex V0 = %f, got %f", want, d)
	}
}

func TestTriangleAABB(t *testing.T) {
	tri := unitTriangle()
	box := TriangleAABB(tri)
	if box.Min.X != 0 || box.Max.X != 1 || box.Min.Y != 0 || box.Max.Y != 1 {
		t.Errorf("unexpected triangle AABB: %+v", box)
	}
}

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
