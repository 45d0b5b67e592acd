package bvh

import (
	"testing"

	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

// unitCube returns the 12 triangles of a 2x2x2 cube centered at the origin.
func unitCube() []geom.Triangle {
	v := func(x, y, z float32) simmath.Vec3 { return simmath.Vec3{X: x, Y: y, Z: z} }
	corners := [8]simmath.Vec3{
		v(-1, -1, -1), v(1, -1, -1), v(1, 1, -1), v(-1, 1, -1),
		v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1),
	}
	faces := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // -Z
		{4, 6, 5}, {4, 7, 6}, // +Z
		{0, 4, 5}, {0, 5, 1}, // -Y
		{3, 2, 6}, {3, 6, 7}, // +Y
		{0, 3, 7}, {0, 7, 4}, // -X
		{1, 5, 6}, {1, 6, 2}, // +X
	}
	tris := make([]geom.Triangle, len(faces))
	for i, f := range faces {
		a, b, c := corners[f[0]], corners[f[1]], corners[f[2]]
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		tris[i] = geom.Triangle{V0: a, V1: b, V2: c, Normal: normal}
	}
	return tris
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil)
	if d := tree.ClosestDistance(simmath.Vec3{}); d < 1e20 {
		t.Errorf("expected huge distance for empty tree, got %f", d)
	}
	if n := tree.CountIntersections(simmath.Vec3{}, simmath.Vec3{X: 1}); n != 0 {
		t.Errorf("expected 0 intersections for empty tree, got %d", n)
	}
}

func TestClosestDistanceOutsideCube(t *testing.T) {
	tree := Build(unitCube())
	d := tree.ClosestDistance(simmath.Vec3{X: 3, Y: 0, Z: 0})
	if d < 1.99 || d > 2.01 {
		t.Errorf("expected distance ~2 from face at x=1, got %f", d)
	}
}

func TestClosestDistanceOnSurface(t *testing.T) {
	tree := Build(unitCube())
	d := tree.ClosestDistance(simmath.Vec3{X: 1, Y: 0, Z: 0})
	if d > 1e-4 {
		t.Errorf("expected ~0 distance for point on face, got %f", d)
	}
}

func TestCountIntersectionsThroughCube(t *testing.T) {
	tree := Build(unitCube())
	// A ray from well outside the cube through its center should cross
	// exactly two faces (entry and exit).
	n := tree.CountIntersections(simmath.Vec3{X: -5, Y: 0, Z: 0}, simmath.Vec3{X: 1, Y: 0, Z: 0})
	if n != 2 {
		t.Errorf("expected 2 intersections through cube, got %d", n)
	}
}

func TestCountIntersectionsOutsideRay(t *testing.T) {
	tree := Build(unitCube())
	n := tree.CountIntersections(simmath.Vec3{X: -5, Y: 5, Z: 5}, simmath.Vec3{X: 1, Y: 0, Z: 0})
	if n != 0 {
		t.Errorf("expected 0 intersections for a ray that misses the cube, got %d", n)
	}
}

func TestInsideOutsideParity(t *testing.T) {
	tree := Build(unitCube())

	inside := tree.CountIntersections(simmath.Vec3{X: 0, Y: 0, Z: 0}, simmath.Vec3{X: 1, Y: 0, Z: 0})
	if inside%2 != 1 {
		t.Errorf("expected odd intersection count for interior point, got %d", inside)
	}

	outside := tree.CountIntersections(simmath.Vec3{X: 5, Y: 0, Z: 0}, simmath.Vec3{X: 1, Y: 0, Z: 0})
	if outside%2 != 0 {
		t.Errorf("expected even intersection count for exterior point, got %d", outside)
	}
}

func TestBoundsMatchesCube(t *testing.T) {
	tree := Build(unitCube())
	b := tree.Bounds()
	if b.Min.X != -1 || b.Max.X != 1 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}
