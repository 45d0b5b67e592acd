// Package bvh builds a bounding volume hierarchy over a triangle soup and
// answers closest-point and ray-intersection-count queries against it. The
// SDF builder is the primary consumer: it needs both queries, once per
// voxel, so the hierarchy favors query speed over build speed.
package bvh

import (
	"math"
	"sort"

	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

const (
	leafSize = 4
	maxDepth = 20
)

// node is stored by value in an arena slice; children are referenced by
// index rather than pointer so the whole tree lives in one contiguous
// allocation.
type node struct {
	bounds      geom.AABB
	left, right int32 // -1 if absent
	triangles   []int32
	isLeaf      bool
}

// Tree is an arena-indexed BVH over a fixed triangle set.
type Tree struct {
	nodes     []node
	triangles []geom.Triangle
	root      int32
}

// Build constructs a BVH over tris. The returned Tree keeps tris itself (the
// slice is not copied) and indexes into it on every query.
func Build(tris []geom.Triangle) *Tree {
	t := &Tree{triangles: tris}
	if len(tris) == 0 {
		t.root = -1
		return t
	}

	indices := make([]int32, len(tris))
	for i := range indices {
		indices[i] = int32(i)
	}

	t.root = t.buildRecursive(indices, 0)
	return t
}

func (t *Tree) boundsOf(indices []int32) geom.AABB {
	box := geom.TriangleAABB(t.triangles[indices[0]])
	for _, idx := range indices[1:] {
		box = box.Union(geom.TriangleAABB(t.triangles[idx]))
	}
	return box
}

func (t *Tree) buildRecursive(indices []int32, depth int) int32 {
	bounds := t.boundsOf(indices)

	if len(indices) <= leafSize || depth >= maxDepth {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, node{bounds: bounds, left: -1, right: -1, triangles: indices, isLeaf: true})
		return idx
	}

	extent := bounds.Max.Sub(bounds.Min)
	axis := 0
	if extent.Y > extent.X {
		axis = 1
	}
	if axis == 0 && extent.Z > extent.X {
		axis = 2
	}
	if axis == 1 && extent.Z > extent.Y {
		axis = 2
	}

	sort.Slice(indices, func(i, j int) bool {
		return centroidAxis(t.triangles[indices[i]], axis) < centroidAxis(t.triangles[indices[j]], axis)
	})

	mid := len(indices) / 2
	leftIndices := append([]int32(nil), indices[:mid]...)
	rightIndices := append([]int32(nil), indices[mid:]...)

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{bounds: bounds, isLeaf: false})

	left := t.buildRecursive(leftIndices, depth+1)
	right := t.buildRecursive(rightIndices, depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right

	return idx
}

func centroidAxis(tri geom.Triangle, axis int) float32 {
	c := tri.V0.Add(tri.V1).Add(tri.V2).Scale(1.0 / 3.0)
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

// ClosestDistance returns the smallest distance from point to any triangle
// in the tree, using branch-and-bound descent with a bounding-sphere
// early-reject at leaves. Returns +Inf for an empty tree.
func (t *Tree) ClosestDistance(point simmath.Vec3) float32 {
	if t.root < 0 {
		return float32(math.Inf(1))
	}
	best := float32(1e30)
	t.closestRecursive(t.root, point, &best)
	return best
}

func (t *Tree) closestRecursive(nodeIdx int32, point simmath.Vec3, best *float32) {
	n := &t.nodes[nodeIdx]
	if geom.PointAABBDistance(point, n.bounds) >= *best {
		return
	}

	if n.isLeaf {
		for _, triIdx := range n.triangles {
			tri := t.triangles[triIdx]
			center := tri.V0.Add(tri.V1).Add(tri.V2).Scale(1.0 / 3.0)
			maxEdge := maxEdgeLength(tri)
			radius := 0.6 * maxEdge
			if center.Sub(point).Length()-radius >= *best {
				continue
			}
			d := geom.PointTriangleDistance(point, tri)
			if d < *best {
				*best = d
			}
		}
		return
	}

	left := &t.nodes[n.left]
	right := &t.nodes[n.right]
	leftDist := geom.PointAABBDistance(point, left.bounds)
	rightDist := geom.PointAABBDistance(point, right.bounds)

	if leftDist <= rightDist {
		t.closestRecursive(n.left, point, best)
		if rightDist < *best {
			t.closestRecursive(n.right, point, best)
		}
	} else {
		t.closestRecursive(n.right, point, best)
		if leftDist < *best {
			t.closestRecursive(n.left, point, best)
		}
	}
}

func maxEdgeLength(tri geom.Triangle) float32 {
	e0 := tri.V1.Sub(tri.V0).Length()
	e1 := tri.V2.Sub(tri.V1).Length()
	e2 := tri.V0.Sub(tri.V2).Length()
	m := e0
	if e1 > m {
		m = e1
	}
	if e2 > m {
		m = e2
	}
	return m
}

// CountIntersections returns the number of triangles the ray from origin in
// direction dir crosses. Used by the SDF builder as a ray-parity inside
// test, not for finding the nearest hit.
func (t *Tree) CountIntersections(origin, dir simmath.Vec3) int {
	if t.root < 0 {
		return 0
	}
	count := 0
	t.countRecursive(t.root, origin, dir, &count)
	return count
}

func (t *Tree) countRecursive(nodeIdx int32, origin, dir simmath.Vec3, count *int) {
	n := &t.nodes[nodeIdx]
	if !geom.RayAABBIntersect(origin, dir, n.bounds) {
		return
	}

	if n.isLeaf {
		for _, triIdx := range n.triangles {
			if _, hit := geom.RayTriangleIntersect(origin, dir, t.triangles[triIdx]); hit {
				*count++
			}
		}
		return
	}

	t.countRecursive(n.left, origin, dir, count)
	t.countRecursive(n.right, origin, dir, count)
}

// Bounds returns the root AABB, or a degenerate zero-box if the tree holds
// no triangles.
func (t *Tree) Bounds() geom.AABB {
	if t.root < 0 {
		return geom.AABB{}
	}
	return t.nodes[t.root].bounds
}
