package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// Light is a point light source
type Light struct {
	Position  core.Vec3
	Intensity float64 // Brightness scale; values above 1 saturate sooner
}

// NewLight creates a point light. Intensity is stored as given; the shading
// brightness is clamped, not the light.
func NewLight(position core.Vec3, intensity float64) Light {
	return Light{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit direction from point toward the light
// and the distance between them
func (l Light) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	toLight := l.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}, 0
	}
	return toLight.Multiply(1 / distance), distance
}
