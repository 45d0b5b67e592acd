// Package objloader parses a subset of the Wavefront OBJ format (v and f
// lines only) into triangle soup, triangulating arbitrary polygon faces as
// a fan around their first vertex.
package objloader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/geom"
	"github.com/O-LEX/SDFCollisionSimulation/internal/logger"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

// Loader reads an OBJ file from Path and implements mesh.Loader.
type Loader struct {
	Path string
}

// Load parses the OBJ file, skipping malformed vertex lines (logged as a
// warning) but aborting on a face line that references a vertex index out
// of range, since that indicates a corrupt or mismatched file rather than a
// recoverable formatting quirk.
func (l Loader) Load() ([]geom.Triangle, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", l.Path, err)
	}
	defer f.Close()

	var vertices []simmath.Vec3
	var triangles []geom.Triangle

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, ok := parseVertex(fields[1:])
			if !ok {
				logger.Warn(fmt.Sprintf("%s:%d: malformed vertex line, skipping", l.Path, lineNo))
				continue
			}
			vertices = append(vertices, v)

		case "f":
			faceTris, err := parseFace(fields[1:], vertices)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", l.Path, lineNo, err)
			}
			triangles = append(triangles, faceTris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.Path, err)
	}

	return triangles, nil
}

func parseVertex(fields []string) (simmath.Vec3, bool) {
	if len(fields) < 3 {
		return simmath.Vec3{}, false
	}
	x, errX := strconv.ParseFloat(fields[0], 32)
	y, errY := strconv.ParseFloat(fields[1], 32)
	z, errZ := strconv.ParseFloat(fields[2], 32)
	if errX != nil || errY != nil || errZ != nil {
		return simmath.Vec3{}, false
	}
	return simmath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, true
}

// parseFace triangulates a polygon face as a fan around its first vertex:
// (0,1,2), (0,2,3), ... This matches how most modeling tools tessellate
// planar n-gons on export and is exact for convex planar faces.
func parseFace(fields []string, vertices []simmath.Vec3) ([]geom.Triangle, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face with fewer than 3 vertices")
	}

	indices := make([]int, len(fields))
	for i, field := range fields {
		idx, err := parseFaceIndex(field, len(vertices))
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}

	tris := make([]geom.Triangle, 0, len(indices)-2)
	v0 := vertices[indices[0]]
	for i := 1; i < len(indices)-1; i++ {
		v1 := vertices[indices[i]]
		v2 := vertices[indices[i+1]]
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		tris = append(tris, geom.Triangle{V0: v0, V1: v1, V2: v2, Normal: normal})
	}
	return tris, nil
}

// parseFaceIndex reads the vertex-index component of a face token
// ("v", "v/vt", or "v/vt/vn"), converting OBJ's 1-based indexing to 0-based.
func parseFaceIndex(field string, vertexCount int) (int, error) {
	parts := strings.SplitN(field, "/", 2)
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed face index %q: %w", field, err)
	}
	idx := n - 1
	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", n, vertexCount)
	}
	return idx, nil
}
