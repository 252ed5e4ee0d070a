package core

import "errors"

// ErrDirectionZero is returned when an orientation is requested for the zero vector
var ErrDirectionZero = errors.New("camera direction must be non-zero")

// WorldUp is the conventional up direction used by scenes and cameras
var WorldUp = Vec3{X: 0, Y: 1, Z: 0}

// Rotation is an orthonormal 3x3 basis. The columns hold the local
// x (right), y (up) and z (forward) axes expressed in world space.
type Rotation struct {
	Matrix [3][3]float64
}

// IdentityRotation returns the basis that leaves vectors unchanged
func IdentityRotation() Rotation {
	return Rotation{Matrix: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// NewRotation builds the basis whose forward axis is direction, oriented so
// that its right axis is perpendicular to up.
func NewRotation(direction, up Vec3) (Rotation, error) {
	if direction.LengthSquared() == 0 {
		return Rotation{}, ErrDirectionZero
	}
	if up.LengthSquared() == 0 {
		up = WorldUp
	}

	forward := direction.Normalize()
	right := up.Cross(forward)
	if right.Length() < Epsilon {
		// Looking straight along up: any perpendicular works, pick one from the z axis.
		right = NewVec3(0, 0, 1).Cross(forward)
		if right.Length() < Epsilon {
			right = NewVec3(1, 0, 0)
		}
	}
	right = right.Normalize()
	localUp := forward.Cross(right)

	return Rotation{Matrix: [3][3]float64{
		{right.X, localUp.X, forward.X},
		{right.Y, localUp.Y, forward.Y},
		{right.Z, localUp.Z, forward.Z},
	}}, nil
}

// Column returns the i-th basis axis
func (r Rotation) Column(i int) Vec3 {
	return Vec3{r.Matrix[0][i], r.Matrix[1][i], r.Matrix[2][i]}
}

// Right returns the local x axis
func (r Rotation) Right() Vec3 { return r.Column(0) }

// Up returns the local y axis
func (r Rotation) Up() Vec3 { return r.Column(1) }

// Forward returns the local z axis
func (r Rotation) Forward() Vec3 { return r.Column(2) }
