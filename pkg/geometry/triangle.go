package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three corners.
// Edge vectors and the face normal are computed once at construction.
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three corners
	edge1      core.Vec3 // V1 - V0
	edge2      core.Vec3 // V2 - V0
	normal     core.Vec3 // Cached unit face normal
}

// NewTriangle creates a new triangle from three corners
func NewTriangle(v0, v1, v2 core.Vec3) Triangle {
	t := Triangle{
		V0:    v0,
		V1:    v1,
		V2:    v2,
		edge1: v1.Subtract(v0),
		edge2: v2.Subtract(v0),
	}

	// Degenerate triangles keep a zero normal; they can never be hit anyway
	if n := t.edge1.Cross(t.edge2); n.Length() > 0 {
		t.normal = n.Normalize()
	}

	return t
}

// Normal returns the triangle's unit face normal
func (t Triangle) Normal() core.Vec3 {
	return t.normal
}

// IsDegenerate reports whether the corners are collinear
func (t Triangle) IsDegenerate() bool {
	return t.normal.IsZero()
}

// Primitive wraps the triangle into the intersectable variant
func (t Triangle) Primitive() Primitive {
	return Primitive{kind: KindTriangle, triangle: t}
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm.
// The returned normal is the flat face normal.
func (t Triangle) Intersect(ray core.Ray) (Intersection, bool) {
	dir := ray.Direction()

	h := dir.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// Ray lies parallel to the triangle's plane
	if core.NearZero(a) {
		return Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Intersection{}, false
	}

	q := s.Cross(t.edge1)
	v := f * dir.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Intersection{}, false
	}

	distance := f * t.edge2.Dot(q)
	if !core.IsForward(distance) {
		return Intersection{}, false
	}

	return Intersection{
		Point:  ray.At(distance),
		Normal: t.normal,
		T:      distance,
	}, true
}
