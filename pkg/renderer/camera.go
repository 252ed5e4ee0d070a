package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrDirectionZero is returned when a camera is given a zero view direction
var ErrDirectionZero = core.ErrDirectionZero

// Viewport maps pixel coordinates onto the image plane one unit in front of the camera
type Viewport struct {
	Width       int     // Number of horizontal pixels
	Height      int     // Number of vertical pixels
	AspectRatio float64 // Width / Height
	Scale       float64 // tan(fov / 2)
}

// NewViewport creates a viewport for the given pixel size and half field of view in radians
func NewViewport(width, height int, halfFOV float64) Viewport {
	return Viewport{
		Width:       width,
		Height:      height,
		AspectRatio: float64(width) / float64(height),
		Scale:       math.Tan(halfFOV),
	}
}

// Camera generates primary rays for rendering
type Camera struct {
	position core.Vec3
	rotation core.Rotation
	viewport Viewport
	halfFOV  float64 // Half the field of view, in radians
}

// NewCamera creates a camera looking along viewDir with the world up direction.
// fovDegrees is the vertical field of view in degrees, in [0, 180).
func NewCamera(width, height int, position, viewDir core.Vec3, fovDegrees float64) (*Camera, error) {
	return NewCameraWithUp(width, height, position, viewDir, core.WorldUp, fovDegrees)
}

// NewCameraWithUp creates a camera with an explicit up direction
func NewCameraWithUp(width, height int, position, viewDir, up core.Vec3, fovDegrees float64) (*Camera, error) {
	rotation, err := core.NewRotation(viewDir, up)
	if err != nil {
		return nil, fmt.Errorf("failed to orient camera: %w", err)
	}

	halfFOV := (fovDegrees / 2) * math.Pi / 180
	return &Camera{
		position: position,
		rotation: rotation,
		viewport: NewViewport(width, height, halfFOV),
		halfFOV:  halfFOV,
	}, nil
}

// SetWidth changes the horizontal resolution, keeping position, orientation and field of view
func (c *Camera) SetWidth(width int) {
	c.viewport = NewViewport(width, c.viewport.Height, c.halfFOV)
}

// SetHeight changes the vertical resolution, keeping position, orientation and field of view
func (c *Camera) SetHeight(height int) {
	c.viewport = NewViewport(c.viewport.Width, height, c.halfFOV)
}

// Pixels returns the image size as (width, height)
func (c *Camera) Pixels() (int, int) {
	return c.viewport.Width, c.viewport.Height
}

// Viewport returns the camera's current viewport
func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// Position returns the camera position
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// Rotation returns the camera orientation basis
func (c *Camera) Rotation() core.Rotation {
	return c.rotation
}

// FOV returns the full field of view in degrees
func (c *Camera) FOV() float64 {
	return c.halfFOV * 2 * 180 / math.Pi
}

// RayFromPixel returns the world-space ray through the center of pixel (px, py).
// Column 0 is the left edge and row 0 is the top of the image.
func (c *Camera) RayFromPixel(px, py float64) core.Ray {
	vp := c.viewport

	// Map to [-aspect, aspect] x [-1, 1] on the image plane, then scale by the field of view
	x := ((px+0.5)*2/float64(vp.Width) - 1) * vp.AspectRatio * vp.Scale
	y := (1 - (py+0.5)*2/float64(vp.Height)) * vp.Scale

	direction := core.NewVec3(x, y, 1).Rotate(c.rotation)
	return core.NewRay(c.position, direction)
}
