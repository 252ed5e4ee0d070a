package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Object pairs a primitive with the material it is rendered with
type Object struct {
	Primitive Primitive
	Material  material.Material
}

// RayHit is the result of tracing a ray against a scene object
type RayHit struct {
	Color    core.Color // Surface base color
	Point    core.Vec3  // Hit position
	Normal   core.Vec3  // Unit surface normal
	Distance float64    // Distance from the ray origin
	Object   *Object    // The object that was hit
}

// NewObject creates a scene object
func NewObject(primitive Primitive, mat material.Material) Object {
	return Object{Primitive: primitive, Material: mat}
}

// Trace intersects the ray with the object's primitive
func (o *Object) Trace(ray core.Ray) (RayHit, bool) {
	hit, ok := o.Primitive.Intersect(ray)
	if !ok {
		return RayHit{}, false
	}
	return RayHit{
		Color:    o.Material.Color,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.T,
		Object:   o,
	}, true
}
