package scene

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// CameraConfig describes where the scene is viewed from
type CameraConfig struct {
	Width     int       // Image width in pixels
	Height    int       // Image height in pixels
	Position  core.Vec3 // Camera position
	Direction core.Vec3 // View direction, need not be normalized
	Up        core.Vec3 // Zero means world up
	FOV       float64   // Vertical field of view in degrees
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if !override.Position.IsZero() {
		result.Position = override.Position
	}
	if !override.Direction.IsZero() {
		result.Direction = override.Direction
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.FOV > 0 {
		result.FOV = override.FOV
	}
	return result
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig CameraConfig
	Objects      []geometry.Object
	Lights       []lights.Light
	Background   core.Color // Color of pixels whose primary ray hits nothing
	RecurseDepth int        // Maximum reflection depth
}

// AddObject adds a primitive with the given material
func (s *Scene) AddObject(primitive geometry.Primitive, mat material.Material) {
	s.Objects = append(s.Objects, geometry.NewObject(primitive, mat))
}

// AddLight adds a point light
func (s *Scene) AddLight(position core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewLight(position, intensity))
}

// AddMesh adds every triangle of an indexed mesh
func (s *Scene) AddMesh(vertices []core.Vec3, faces []int, mat material.Material, options *geometry.MeshOptions) error {
	triangles, err := geometry.NewTriangleMesh(vertices, faces, mat, options)
	if err != nil {
		return err
	}
	s.Objects = append(s.Objects, triangles...)
	return nil
}

// GetPrimitiveCount returns the number of primitives in the scene, counting each mesh triangle
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// NewCamera creates the camera described by the scene's camera config
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	c := s.CameraConfig
	if c.Up.IsZero() {
		return renderer.NewCamera(c.Width, c.Height, c.Position, c.Direction, c.FOV)
	}
	return renderer.NewCameraWithUp(c.Width, c.Height, c.Position, c.Direction, c.Up, c.FOV)
}

// Build creates a raytracer for the scene
func (s *Scene) Build() (*renderer.Raytracer, error) {
	camera, err := s.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", s.Name, err)
	}
	return renderer.NewRaytracer(camera, s.Objects, s.Lights, s.Background, s.RecurseDepth), nil
}
