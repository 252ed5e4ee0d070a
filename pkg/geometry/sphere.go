package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Primitive wraps the sphere into the intersectable variant
func (s Sphere) Primitive() Primitive {
	return Primitive{kind: KindSphere, sphere: s}
}

// Intersect solves |origin + t*dir - center|² = r² for a unit ray direction
func (s Sphere) Intersect(ray core.Ray) (Intersection, bool) {
	dir := ray.Direction()

	// Quadratic equation coefficients: at² + bt + c = 0
	l := ray.Origin.Subtract(s.Center)
	a := dir.Dot(dir)
	b := 2 * dir.Dot(l)
	c := l.Dot(l) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c

	var t0, t1 float64
	switch {
	case discriminant < -core.Epsilon:
		return Intersection{}, false
	case discriminant < core.Epsilon:
		// Tangent ray, a single root
		t0 = -0.5 * b / a
		t1 = t0
	default:
		// Numerically stable form avoiding cancellation between b and sqrt(discriminant)
		var q float64
		if b > 0 {
			q = -0.5 * (b + math.Sqrt(discriminant))
		} else {
			q = -0.5 * (b - math.Sqrt(discriminant))
		}
		t0 = q / a
		t1 = c / q
	}

	// Smallest root ahead of the origin
	var t float64
	switch forward0, forward1 := core.IsForward(t0), core.IsForward(t1); {
	case forward0 && forward1:
		t = math.Min(t0, t1)
	case forward0:
		t = t0
	case forward1:
		t = t1
	default:
		return Intersection{}, false
	}

	point := ray.At(t)
	return Intersection{
		Point:  point,
		Normal: point.Subtract(s.Center).Normalize(),
		T:      t,
	}, true
}
