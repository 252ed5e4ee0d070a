package geometry

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Intersection contains information about a ray-primitive intersection
type Intersection struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit surface normal at the intersection
	T      float64   // Distance along the ray
}

// Kind identifies which shape a Primitive holds
type Kind int

const (
	KindPlane Kind = iota
	KindTriangle
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Primitive is a closed variant over the intersectable shapes.
// Construct one with Plane.Primitive, Triangle.Primitive or Sphere.Primitive.
type Primitive struct {
	kind     Kind
	plane    Plane
	triangle Triangle
	sphere   Sphere
}

// Kind returns the shape held by the primitive
func (p Primitive) Kind() Kind {
	return p.kind
}

// Plane returns the held plane and whether the primitive is one
func (p Primitive) Plane() (Plane, bool) {
	return p.plane, p.kind == KindPlane
}

// Triangle returns the held triangle and whether the primitive is one
func (p Primitive) Triangle() (Triangle, bool) {
	return p.triangle, p.kind == KindTriangle
}

// Sphere returns the held sphere and whether the primitive is one
func (p Primitive) Sphere() (Sphere, bool) {
	return p.sphere, p.kind == KindSphere
}

// Intersect returns the nearest forward intersection of the ray with the primitive
func (p Primitive) Intersect(ray core.Ray) (Intersection, bool) {
	switch p.kind {
	case KindPlane:
		return p.plane.Intersect(ray)
	case KindTriangle:
		return p.triangle.Intersect(ray)
	case KindSphere:
		return p.sphere.Intersect(ray)
	default:
		return Intersection{}, false
	}
}
