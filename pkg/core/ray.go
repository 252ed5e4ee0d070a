package core

// Ray is a half-line starting at Origin. The direction is unexported so the
// unit-length invariant established by NewRay cannot be broken afterwards.
type Ray struct {
	Origin    Vec3
	direction Vec3
}

// NewRay creates a ray, normalizing the direction.
// direction must be non-zero.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, direction: direction.Normalize()}
}

// Direction returns the unit direction of the ray
func (r Ray) Direction() Vec3 {
	return r.direction
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.direction.Multiply(t))
}
