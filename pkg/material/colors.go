package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

var namedColors = map[string]core.Color{
	"black":   core.ColorFromRGB8(0, 0, 0),
	"white":   core.ColorFromRGB8(255, 255, 255),
	"gray":    core.ColorFromRGB8(128, 128, 128),
	"grey":    core.ColorFromRGB8(128, 128, 128),
	"red":     core.ColorFromRGB8(255, 0, 0),
	"green":   core.ColorFromRGB8(0, 255, 0),
	"blue":    core.ColorFromRGB8(0, 0, 255),
	"yellow":  core.ColorFromRGB8(255, 255, 0),
	"cyan":    core.ColorFromRGB8(0, 255, 255),
	"magenta": core.ColorFromRGB8(255, 0, 255),
	"orange":  core.ColorFromRGB8(255, 165, 0),
	"purple":  core.ColorFromRGB8(128, 0, 128),
}

// ColorByName resolves a named color such as "red" (case-insensitive)
func ColorByName(name string) (core.Color, error) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return core.Color{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}
