package lights

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestNewLight_KeepsIntensity(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
	}{
		{"dim", 0.5},
		{"unit", 1},
		{"bright", 2},
		{"off", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewLight(core.NewVec3(1, 2, 3), tt.intensity)
			if light.Intensity != tt.intensity {
				t.Errorf("Expected intensity %f, got %f", tt.intensity, light.Intensity)
			}
			if !light.Position.Equals(core.NewVec3(1, 2, 3)) {
				t.Errorf("Expected position (1,2,3), got %v", light.Position)
			}
		})
	}
}

func TestLight_DirectionFrom(t *testing.T) {
	light := NewLight(core.NewVec3(0, 10, 0), 1)

	dir, dist := light.DirectionFrom(core.NewVec3(0, 0, 0))
	if !dir.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected direction (0,1,0), got %v", dir)
	}
	if math.Abs(dist-10) > 1e-9 {
		t.Errorf("Expected distance 10, got %f", dist)
	}

	if dir, dist := light.DirectionFrom(light.Position); !dir.IsZero() || dist != 0 {
		t.Errorf("Expected zero direction at the light position, got %v %f", dir, dist)
	}
}
