package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal vector
}

// NewPlane creates a new plane. normal must be non-zero.
func NewPlane(point, normal core.Vec3) Plane {
	return Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// NewPlaneFromCartesian creates the plane ax + by + cz + d = 0.
// The stored point is the plane point closest to the origin.
func NewPlaneFromCartesian(a, b, c, d float64) Plane {
	normal := core.NewVec3(a, b, c)
	point := normal.Multiply(-d / normal.LengthSquared())
	return NewPlane(point, normal)
}

// Primitive wraps the plane into the intersectable variant
func (p Plane) Primitive() Primitive {
	return Primitive{kind: KindPlane, plane: p}
}

// Intersect solves the line-plane equation
// t = ((point - origin) · normal) / (direction · normal)
func (p Plane) Intersect(ray core.Ray) (Intersection, bool) {
	denominator := ray.Direction().Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < core.Epsilon {
		return Intersection{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !core.IsForward(t) {
		return Intersection{}, false
	}

	return Intersection{
		Point:  ray.At(t),
		Normal: p.Normal,
		T:      t,
	}, true
}
