package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewDefaultScene creates a scene with three spheres and a triangle over a reflective ground plane
func NewDefaultScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Width:     400,
		Height:    300,
		Position:  core.NewVec3(0, 1.5, -6),
		Direction: core.NewVec3(0, -0.15, 1),
		FOV:       60,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "default",
		CameraConfig: cameraConfig,
		Background:   core.NewColor(0.05, 0.05, 0.1),
		RecurseDepth: 5,
	}

	plastic, _ := material.LookupTemplate("plastic")
	metal, _ := material.LookupTemplate("metal")
	matte, _ := material.LookupTemplate("matte")

	// Ground reflects a little of everything above it
	ground := material.NewUniformMaterial(core.Gray(0.6), 0.25, 0.65, 0.1)
	s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)).Primitive(), ground)

	s.AddObject(geometry.NewSphere(core.NewVec3(0, 1, 0), 1).Primitive(), plastic.Material(core.NewColor(0.9, 0.2, 0.2)))
	s.AddObject(geometry.NewSphere(core.NewVec3(-2.2, 0.7, 0.8), 0.7).Primitive(), metal.Material(core.NewColor(0.8, 0.8, 0.9)))
	s.AddObject(geometry.NewSphere(core.NewVec3(2, 0.5, -0.5), 0.5).Primitive(), matte.Material(core.NewColor(0.2, 0.4, 0.9)))

	triangle := geometry.NewTriangle(
		core.NewVec3(1.2, 0, 2.5),
		core.NewVec3(3.2, 0, 2.5),
		core.NewVec3(2.2, 2.2, 3),
	)
	s.AddObject(triangle.Primitive(), plastic.Material(core.NewColor(0.2, 0.8, 0.3)))

	s.AddLight(core.NewVec3(-3, 6, -4), 1)
	s.AddLight(core.NewVec3(4, 4, -2), 0.6)

	return s
}
