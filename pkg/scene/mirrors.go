package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// pyramidVertices and pyramidFaces describe a square pyramid with its base on y=0
var (
	pyramidVertices = []core.Vec3{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(-1, 0, 1),
		core.NewVec3(0, 1.5, 0),
	}
	pyramidFaces = []int{
		0, 4, 1,
		1, 4, 2,
		2, 4, 3,
		3, 4, 0,
	}
)

// NewMirrorsScene creates a scene of mirror spheres around a triangle-mesh pyramid,
// which shows off deep recursive reflections
func NewMirrorsScene(cameraOverrides ...CameraConfig) *Scene {
	defaultCameraConfig := CameraConfig{
		Width:     400,
		Height:    300,
		Position:  core.NewVec3(0, 3, -8),
		Direction: core.NewVec3(0, -0.3, 1),
		FOV:       50,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := &Scene{
		Name:         "mirrors",
		CameraConfig: cameraConfig,
		Background:   core.NewColor(0.1, 0.1, 0.15),
		RecurseDepth: 8,
	}

	// Dimly reflective floor
	floor := material.NewUniformMaterial(core.Gray(0.5), 0.3, 0.6, 0.1)
	s.AddObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)).Primitive(), floor)

	mirror, _ := material.LookupTemplate("mirror")
	s.AddObject(geometry.NewSphere(core.NewVec3(-2.5, 1, 1), 1).Primitive(), mirror.Material(core.White))
	s.AddObject(geometry.NewSphere(core.NewVec3(2.5, 1, 1), 1).Primitive(), mirror.Material(core.White))
	// Tinted mirror reflecting only part of the spectrum
	s.AddObject(
		geometry.NewSphere(core.NewVec3(0, 1.2, 3.5), 1.2).Primitive(),
		material.NewMaterial(core.White, core.NewColor(0.9, 0.7, 0.4), core.Black, core.Gray(0.02)),
	)

	plastic, _ := material.LookupTemplate("plastic")
	pyramid := plastic.Material(core.NewColor(0.9, 0.6, 0.1))
	// The pyramid tables are static; TestPyramidMeshData checks they build without error
	_ = s.AddMesh(pyramidVertices, pyramidFaces, pyramid, &geometry.MeshOptions{Scale: 1.2})

	s.AddLight(core.NewVec3(0, 8, -4), 1)

	return s
}
