package loaders

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// DefaultFOV is the camera field of view in degrees when a scene omits it
const DefaultFOV = 90.0

// DefaultRecurseDepth is the recursion depth when a scene omits it
const DefaultRecurseDepth = 5

// SceneDescription is a validated scene as read from a scene file
type SceneDescription struct {
	Camera       CameraDescription
	RecurseDepth int
	Background   core.Color
	Objects      []ObjectDescription
	Lights       []lights.Light
}

// CameraDescription holds the camera parameters of a scene file
type CameraDescription struct {
	Width     int
	Height    int
	Position  core.Vec3
	Direction core.Vec3
	Up        core.Vec3 // Zero means world up
	FOV       float64   // Degrees
}

// ObjectDescription is one renderable entry. Exactly one of Primitive or Mesh is set.
type ObjectDescription struct {
	Primitive *geometry.Primitive
	Mesh      *MeshDescription
	Material  material.Material
}

// MeshDescription references a PLY mesh file
type MeshDescription struct {
	File   string    // Path as written in the scene, resolved by the caller
	Scale  float64   // 0 means 1
	Offset core.Vec3 // Translation applied after scaling
}

func newSceneDescription() *SceneDescription {
	return &SceneDescription{
		Camera:       CameraDescription{FOV: DefaultFOV},
		RecurseDepth: DefaultRecurseDepth,
		Background:   core.Black,
	}
}
