// Package sdf builds and samples a uniform-grid signed distance field from
// an arbitrary triangle mesh, using a BVH for the closest-point and
// ray-parity queries the build requires.
package sdf

import (
	"fmt"

	"github.com/O-LEX/SDFCollisionSimulation/internal/logger"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/bvh"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

// DefaultResolution matches the original tool's default grid size.
const DefaultResolution = 64

const boundsPadding = 0.1

// Grid is a uniform-resolution scalar field sampling signed distance to a
// mesh surface, negative inside.
type Grid struct {
	Data       []float32
	Resolution int
	Min, Max   simmath.Vec3
	CellSize   simmath.Vec3
}

// Build generates a Grid of the given resolution over mesh's triangles. The
// sampling bounds are the mesh AABB padded by 10% per axis so samples near
// the surface never fall outside the grid.
func Build(tris []geom.Triangle, resolution int) (*Grid, error) {
	if len(tris) == 0 {
		return nil, fmt.Errorf("cannot build SDF from an empty mesh")
	}
	if resolution < 2 {
		return nil, fmt.Errorf("sdf resolution must be at least 2, got %d", resolution)
	}

	bounds := geom.TriangleAABB(tris[0])
	for _, t := range tris[1:] {
		bounds = bounds.Union(geom.TriangleAABB(t))
	}

	extent := bounds.Max.Sub(bounds.Min)
	padding := extent.Scale(boundsPadding)
	min := bounds.Min.Sub(padding)
	max := bounds.Max.Add(padding)
	cellSize := max.Sub(min).Scale(1.0 / float32(resolution-1))

	g := &Grid{
		Data:       make([]float32, resolution*resolution*resolution),
		Resolution: resolution,
		Min:        min,
		Max:        max,
		CellSize:   cellSize,
	}

	tree := bvh.Build(tris)

	logger.Info(fmt.Sprintf("building signed distance field at resolution %d", resolution))
	for z := 0; z < resolution; z++ {
		g.buildSlice(tree, z)
	}

	return g, nil
}

// buildSlice fills one z-layer of the grid. Kept as its own method (rather
// than inlined into Build's loop) so a future worker pool can parallelize
// across slices without touching the per-voxel math; today it still runs
// on the caller's goroutine.
func (g *Grid) buildSlice(tree *bvh.Tree, z int) {
	res := g.Resolution
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			worldPos := g.Min.Add(simmath.Vec3{
				X: float32(x) * g.CellSize.X,
				Y: float32(y) * g.CellSize.Y,
				Z: float32(z) * g.CellSize.Z,
			})

			dist := tree.ClosestDistance(worldPos)
			intersections := tree.CountIntersections(worldPos, simmath.Vec3{X: 1, Y: 0, Z: 0})
			inside := intersections%2 == 1
			if inside {
				dist = -dist
			}

			g.Data[index(x, y, z, res)] = dist
		}
	}
}

func index(x, y, z, res int) int {
	return z*res*res + y*res + x
}

func (g *Grid) worldToGrid(pos simmath.Vec3) simmath.Vec3 {
	local := pos.Sub(g.Min)
	return simmath.Vec3{
		X: local.X / g.CellSize.X,
		Y: local.Y / g.CellSize.Y,
		Z: local.Z / g.CellSize.Z,
	}
}

// Sample returns the trilinearly interpolated signed distance at pos,
// clamping out-of-bounds queries to the grid's edge.
func (g *Grid) Sample(pos simmath.Vec3) float32 {
	gridPos := g.worldToGrid(pos)
	res := float32(g.Resolution - 1)

	gx := clamp(gridPos.X, 0, res)
	gy := clamp(gridPos.Y, 0, res)
	gz := clamp(gridPos.Z, 0, res)

	x0 := int(gx)
	y0 := int(gy)
	z0 := int(gz)
	x1 := minInt(x0+1, g.Resolution-1)
	y1 := minInt(y0+1, g.Resolution-1)
	z1 := minInt(z0+1, g.Resolution-1)

	fx := gx - float32(x0)
	fy := gy - float32(y0)
	fz := gz - float32(z0)

	c000 := g.at(x0, y0, z0)
	c100 := g.at(x1, y0, z0)
	c010 := g.at(x0, y1, z0)
	c110 := g.at(x1, y1, z0)
	c001 := g.at(x0, y0, z1)
	c101 := g.at(x1, y0, z1)
	c011 := g.at(x0, y1, z1)
	c111 := g.at(x1, y1, z1)

	c00 := lerp(c000, c100, fx)
	c10 := lerp(c010, c110, fx)
	c01 := lerp(c001, c101, fx)
	c11 := lerp(c011, c111, fx)

	c0 := lerp(c00, c10, fy)
	c1 := lerp(c01, c11, fy)

	return lerp(c0, c1, fz)
}

// Gradient returns the (unnormalized) central-difference gradient of the
// field at pos, used by collision objects to derive surface normals.
func (g *Grid) Gradient(pos simmath.Vec3) simmath.Vec3 {
	eps := g.CellSize.X * 0.1
	dx := simmath.Vec3{X: eps}
	dy := simmath.Vec3{Y: eps}
	dz := simmath.Vec3{Z: eps}

	gx := (g.Sample(pos.Add(dx)) - g.Sample(pos.Sub(dx))) / (2 * eps)
	gy := (g.Sample(pos.Add(dy)) - g.Sample(pos.Sub(dy))) / (2 * eps)
	gz := (g.Sample(pos.Add(dz)) - g.Sample(pos.Sub(dz))) / (2 * eps)

	return simmath.Vec3{X: gx, Y: gy, Z: gz}
}

func (g *Grid) at(x, y, z int) float32 {
	return g.Data[index(x, y, z, g.Resolution)]
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
