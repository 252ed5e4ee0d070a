package geometry

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// MeshOptions contains optional transforms applied to mesh vertices
type MeshOptions struct {
	Scale  float64   // Uniform scale, 0 means 1
	Offset core.Vec3 // Translation applied after scaling
}

// NewTriangleMesh expands indexed geometry into one Object per triangle.
// vertices: array of 3D points
// faces: triangle indices (each group of 3 indices forms a triangle)
// Degenerate triangles are skipped.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *MeshOptions) ([]Object, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	workingVertices := vertices
	if options != nil {
		scale := options.Scale
		if scale == 0 {
			scale = 1
		}
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = vertex.Multiply(scale).Add(options.Offset)
		}
	}

	objects := make([]Object, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]

		// Bounds check
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i/3, idx, len(workingVertices))
			}
		}

		triangle := NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2])
		if triangle.IsDegenerate() {
			continue
		}
		objects = append(objects, NewObject(triangle.Primitive(), mat))
	}

	return objects, nil
}
