package material

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Material describes how a surface responds to light. Every coefficient is a
// per-channel color so reflections can be tinted. The coefficients do not have
// to sum to one; over-bright results are clamped by core.Color.
type Material struct {
	Color    core.Color // Base surface color
	Specular core.Color // Mirror reflection strength
	Lambert  core.Color // Diffuse (matte) response
	Ambient  core.Color // Base light independent of any lamp
}

// NewMaterial creates a material with per-channel coefficients
func NewMaterial(color, specular, lambert, ambient core.Color) Material {
	return Material{
		Color:    color,
		Specular: specular,
		Lambert:  lambert,
		Ambient:  ambient,
	}
}

// NewUniformMaterial creates a material whose coefficients apply equally to every channel
func NewUniformMaterial(color core.Color, specular, lambert, ambient float64) Material {
	return NewMaterial(color, core.Gray(specular), core.Gray(lambert), core.Gray(ambient))
}

// IsReflective reports whether the material spawns reflection rays
func (m Material) IsReflective() bool {
	return !m.Specular.IsZero()
}

// IsDiffuse reports whether the material responds to lamps
func (m Material) IsDiffuse() bool {
	return !m.Lambert.IsZero()
}
