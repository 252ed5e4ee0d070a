package core

import "math"

// Epsilon is the tolerance used for every approximate comparison in the engine
const Epsilon = 1e-9

// ApproxEqual reports whether a and b differ by less than Epsilon
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// NearZero reports whether v is within Epsilon of zero
func NearZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// IsForward reports whether a distance along a ray lies strictly ahead of its origin.
// Distances within Epsilon of the origin count as self-intersections.
func IsForward(t float64) bool {
	return t >= Epsilon
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// The zero vector has no direction; callers must not normalize it.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// DirectionTo returns the unit vector pointing from v towards other
func (v Vec3) DirectionTo(other Vec3) Vec3 {
	return other.Subtract(v).Normalize()
}

// Reflect mirrors v about normal: v - 2n(n·v).
// Both v and normal must be unit vectors.
func (v Vec3) Reflect(normal Vec3) Vec3 {
	return v.Subtract(normal.Multiply(2 * normal.Dot(v)))
}

// Rotate transforms the vector by the given basis
func (v Vec3) Rotate(r Rotation) Vec3 {
	m := r.Matrix
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// IsUnit reports whether the vector has length 1 within Epsilon
func (v Vec3) IsUnit() bool {
	return math.Abs(v.Length()-1) < Epsilon
}

// Equals compares two vectors component-wise within Epsilon
func (v Vec3) Equals(other Vec3) bool {
	return ApproxEqual(v.X, other.X) && ApproxEqual(v.Y, other.Y) && ApproxEqual(v.Z, other.Z)
}
