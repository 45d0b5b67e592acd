// Package mesh holds the triangle-soup representation shared by the BVH and
// SDF builders.
package mesh

import "github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"

// Mesh is an immutable collection of triangles plus their combined bounds.
type Mesh struct {
	Triangles []geom.Triangle
	Bounds    geom.AABB
}

// Loader produces a triangle soup from some external source (a file, a
// procedural generator, a test fixture).
type Loader interface {
	Load() ([]geom.Triangle, error)
}

// New builds a Mesh from loader. Bounds are left at their zero value if
// loader returns no triangles.
func New(loader Loader) (*Mesh, error) {
	tris, err := loader.Load()
	if err != nil {
		return nil, err
	}

	m := &Mesh{Triangles: tris}
	if len(tris) > 0 {
		m.Bounds = geom.TriangleAABB(tris[0])
		for _, t := range tris[1:] {
			m.Bounds = m.Bounds.Union(geom.TriangleAABB(t))
		}
	}
	return m, nil
}
