package renderer

import (
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

func TestRaytracer_InspectPixel(t *testing.T) {
	mat := material.NewUniformMaterial(red, 0, 0, 1)
	objects := []geometry.Object{sphereObject(core.NewVec3(0, 0, 5), 1, mat)}
	sceneLights := []lights.Light{
		lights.NewLight(core.NewVec3(0, 0, 20), 1), // behind the sphere
		lights.NewLight(core.NewVec3(0, 0, -10), 0.5),
	}

	tests := []struct {
		name     string
		depth    int
		expected core.Color
	}{
		{"shaded", 3, red},
		{"depth exhausted falls back to background", 0, core.NewColor(0.1, 0.2, 0.3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRaytracer(t, objects, sceneLights, tt.depth)

			// The center pixel of the 9x9 camera looks straight down +z
			info, ok := rt.InspectPixel(4, 4)
			if !ok {
				t.Fatal("Expected the center pixel to hit the sphere")
			}
			if !info.Hit.Point.Equals(core.NewVec3(0, 0, 4)) {
				t.Errorf("Expected hit at (0,0,4), got %v", info.Hit.Point)
			}
			if !info.Hit.Normal.Equals(core.NewVec3(0, 0, -1)) {
				t.Errorf("Expected normal (0,0,-1), got %v", info.Hit.Normal)
			}
			if !core.ApproxEqual(info.Hit.Distance, 4) {
				t.Errorf("Expected distance 4, got %f", info.Hit.Distance)
			}
			if info.Hit.Object == nil || !info.Hit.Object.Material.Color.Equals(red) {
				t.Errorf("Expected the red sphere, got %+v", info.Hit.Object)
			}
			if len(info.VisibleLights) != 1 || info.VisibleLights[0].Intensity != 0.5 {
				t.Errorf("Expected only the front light to be visible, got %+v", info.VisibleLights)
			}
			if !info.Color.Equals(tt.expected) {
				t.Errorf("Expected color %v, got %v", tt.expected, info.Color)
			}
		})
	}
}

func TestRaytracer_InspectPixelMiss(t *testing.T) {
	mat := material.NewUniformMaterial(red, 0, 0, 1)
	rt := newTestRaytracer(t, []geometry.Object{sphereObject(core.NewVec3(0, 0, 5), 1, mat)}, nil, 3)

	if _, ok := rt.InspectPixel(0, 0); ok {
		t.Error("Expected the corner pixel to miss the sphere")
	}
}
