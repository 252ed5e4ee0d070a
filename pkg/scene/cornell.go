package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// cornellBoxSize is the edge length of the box
const cornellBoxSize = 5.0

// NewCornellScene creates a Cornell box with plane walls and a single point light
func NewCornellScene(cameraOverrides ...CameraConfig) *Scene {
	half := cornellBoxSize / 2

	defaultCameraConfig := CameraConfig{
		Width:     300,
		Height:    300,
		Position:  core.NewVec3(0, half, -7), // Outside the open front of the box
		Direction: core.NewVec3(0, 0, 1),
		FOV:       45,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "cornell",
		CameraConfig: cameraConfig,
		Background:   core.Black,
		RecurseDepth: 4,
	}

	white := material.NewUniformMaterial(core.Gray(0.73), 0, 0.85, 0.15)
	red := material.NewUniformMaterial(core.NewColor(0.65, 0.05, 0.05), 0, 0.85, 0.15)
	green := material.NewUniformMaterial(core.NewColor(0.12, 0.45, 0.15), 0, 0.85, 0.15)

	// Wall normals face into the box so they are lit from inside
	walls := []struct {
		point  core.Vec3
		normal core.Vec3
		mat    material.Material
	}{
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), white},               // floor
		{core.NewVec3(0, cornellBoxSize, 0), core.NewVec3(0, -1, 0), white}, // ceiling
		{core.NewVec3(0, 0, half), core.NewVec3(0, 0, -1), white},           // back
		{core.NewVec3(-half, 0, 0), core.NewVec3(1, 0, 0), red},             // left
		{core.NewVec3(half, 0, 0), core.NewVec3(-1, 0, 0), green},           // right
	}
	for _, wall := range walls {
		s.AddObject(geometry.NewPlane(wall.point, wall.normal).Primitive(), wall.mat)
	}

	mirror, _ := material.LookupTemplate("mirror")
	s.AddObject(geometry.NewSphere(core.NewVec3(-1, 1, 1), 1).Primitive(), mirror.Material(core.White))

	matte, _ := material.LookupTemplate("matte")
	s.AddObject(geometry.NewSphere(core.NewVec3(1.2, 0.7, -0.5), 0.7).Primitive(), matte.Material(core.Gray(0.9)))

	s.AddLight(core.NewVec3(0, cornellBoxSize-0.5, 0), 1)

	return s
}
