package renderer

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// Inspection describes what the primary ray through one pixel sees
type Inspection struct {
	Hit   geometry.RayHit
	Color core.Color // Final pixel color, background when depth is exhausted
	// Lights visible from the hit point, in scene order. Only the first one shades.
	VisibleLights []lights.Light
}

// InspectPixel traces the primary ray through pixel (col, row) and reports the
// nearest hit. The boolean is false when the ray misses every object.
func (rt *Raytracer) InspectPixel(col, row int) (Inspection, bool) {
	ray := rt.camera.RayFromPixel(float64(col), float64(row))
	hit, ok := rt.nearestHit(ray)
	if !ok {
		return Inspection{}, false
	}

	color, _ := rt.tracePixel(col, row)
	return Inspection{
		Hit:           hit,
		Color:         color,
		VisibleLights: rt.visibleLights(hit.Point),
	}, true
}
