package renderer

import (
	"go.uber.org/zap"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// DefaultRecurseDepth is the number of ray generations traced when a scene does not say
const DefaultRecurseDepth = 5

// Raytracer holds an immutable scene and renders it with recursive Whitted-style shading
type Raytracer struct {
	camera       *Camera
	objects      []geometry.Object
	lights       []lights.Light
	background   core.Color
	recurseDepth int
	logger       *zap.Logger
}

// NewRaytracer creates a new raytracer. The object and light slices are shared, not copied,
// and must not be modified while rendering.
func NewRaytracer(camera *Camera, objects []geometry.Object, sceneLights []lights.Light, background core.Color, recurseDepth int) *Raytracer {
	return &Raytracer{
		camera:       camera,
		objects:      objects,
		lights:       sceneLights,
		background:   background,
		recurseDepth: recurseDepth,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the logger used for render progress. A nil logger disables logging.
func (rt *Raytracer) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt.logger = logger
}

// SetWidth changes the output width in pixels
func (rt *Raytracer) SetWidth(width int) {
	rt.camera.SetWidth(width)
}

// SetHeight changes the output height in pixels
func (rt *Raytracer) SetHeight(height int) {
	rt.camera.SetHeight(height)
}

// SetRecurseDepth changes how many ray generations are traced per pixel
func (rt *Raytracer) SetRecurseDepth(depth int) {
	rt.recurseDepth = depth
}

// RecurseDepth returns the configured recursion depth
func (rt *Raytracer) RecurseDepth() int {
	return rt.recurseDepth
}

// Camera returns the scene camera
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Background returns the color used for rays that hit nothing
func (rt *Raytracer) Background() core.Color {
	return rt.background
}

// Objects returns the scene objects
func (rt *Raytracer) Objects() []geometry.Object {
	return rt.objects
}

// Lights returns the scene lights
func (rt *Raytracer) Lights() []lights.Light {
	return rt.lights
}

// Trace returns the color seen along ray with depth generations remaining.
// The boolean is false when depth is exhausted or nothing is hit; callers
// substitute the background color in that case.
func (rt *Raytracer) Trace(ray core.Ray, depth int) (core.Color, bool) {
	if depth <= 0 {
		return core.Black, false
	}

	hit, ok := rt.nearestHit(ray)
	if !ok {
		return core.Black, false
	}

	return rt.shade(hit.Object.Material, hit.Point, hit.Normal, depth), true
}

// nearestHit scans every object and keeps the closest forward intersection
func (rt *Raytracer) nearestHit(ray core.Ray) (geometry.RayHit, bool) {
	var closest geometry.RayHit
	found := false

	for i := range rt.objects {
		hit, ok := rt.objects[i].Trace(ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}

	return closest, found
}

// shade combines the diffuse, reflected and ambient terms for a surface point.
// Every step goes through core.Color so the sum never leaves [0,1].
func (rt *Raytracer) shade(mat material.Material, point, normal core.Vec3, depth int) core.Color {
	diffuse := mat.Color.Multiply(rt.lambertian(mat, point, normal))
	reflected := rt.specular(mat, point, normal, depth)
	ambient := mat.Color.Multiply(mat.Ambient)

	return diffuse.Add(reflected).Add(ambient)
}

// lambertian scales the diffuse coefficient by the cosine between the surface
// normal and the first visible light
func (rt *Raytracer) lambertian(mat material.Material, point, normal core.Vec3) core.Color {
	if mat.Lambert.IsZero() {
		return core.Black
	}

	visible := rt.visibleLights(point)
	if len(visible) == 0 {
		return core.Black
	}

	// Only the first visible light contributes
	light := visible[0]
	brightness := 0.0
	if contribution := point.DirectionTo(light.Position).Dot(normal) * light.Intensity; contribution > 0 {
		brightness = contribution
	}
	if brightness > 1 {
		brightness = 1
	}

	return mat.Lambert.Scale(brightness)
}

// specular reflects the hit position about the normal and traces one generation deeper
func (rt *Raytracer) specular(mat material.Material, point, normal core.Vec3, depth int) core.Color {
	if mat.Specular.IsZero() || point.IsZero() {
		return core.Black
	}

	reflected := point.Normalize().Reflect(normal)
	color, ok := rt.Trace(core.NewRay(point, reflected), depth-1)
	if !ok {
		return core.Black
	}

	return color.Multiply(mat.Specular)
}

// visibleLights returns the lights reachable from point, in scene order.
// A light is hidden when any object intersects the shadow ray before reaching it.
func (rt *Raytracer) visibleLights(point core.Vec3) []lights.Light {
	var visible []lights.Light

	for _, light := range rt.lights {
		direction, distance := light.DirectionFrom(point)
		if distance == 0 {
			visible = append(visible, light)
			continue
		}

		shadowRay := core.NewRay(point, direction)
		occluded := false
		for i := range rt.objects {
			if hit, ok := rt.objects[i].Trace(shadowRay); ok && hit.Distance < distance-core.Epsilon {
				occluded = true
				break
			}
		}
		if !occluded {
			visible = append(visible, light)
		}
	}

	return visible
}

// tracePixel returns the color for a single pixel and whether any object was hit
func (rt *Raytracer) tracePixel(col, row int) (core.Color, bool) {
	ray := rt.camera.RayFromPixel(float64(col), float64(row))
	if color, ok := rt.Trace(ray, rt.recurseDepth); ok {
		return color, true
	}
	return rt.background, false
}
