package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit           bool           `json:"hit"`
	MaterialType  string         `json:"materialType,omitempty"`
	GeometryType  string         `json:"geometryType,omitempty"`
	Point         [3]float64     `json:"point"`
	Normal        [3]float64     `json:"normal"`
	Distance      float64        `json:"distance"`
	PixelColor    string         `json:"pixelColor,omitempty"`
	VisibleLights int            `json:"visibleLights"`
	Properties    map[string]any `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func channels(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

// extractMaterialInfo classifies a material by which terms it contributes
func extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := map[string]any{
		"color":    hexColor(mat.Color),
		"specular": channels(mat.Specular),
		"lambert":  channels(mat.Lambert),
		"ambient":  channels(mat.Ambient),
	}

	switch {
	case mat.IsReflective() && mat.IsDiffuse():
		return "glossy", properties
	case mat.IsReflective():
		return "mirror", properties
	case mat.IsDiffuse():
		return "matte", properties
	default:
		return "ambient", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(prim geometry.Primitive) (string, map[string]any) {
	properties := make(map[string]any)

	switch prim.Kind() {
	case geometry.KindSphere:
		sphere, _ := prim.Sphere()
		properties["center"] = vec(sphere.Center)
		properties["radius"] = sphere.Radius
	case geometry.KindPlane:
		plane, _ := prim.Plane()
		properties["point"] = vec(plane.Point)
		properties["normal"] = vec(plane.Normal)
	case geometry.KindTriangle:
		tri, _ := prim.Triangle()
		properties["vertices"] = [3][3]float64{vec(tri.V0), vec(tri.V1), vec(tri.V2)}
		properties["normal"] = vec(tri.Normal())
	}
	return prim.Kind().String(), properties
}

// handleInspect casts the primary ray through one pixel and describes what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rt, err := s.buildRaytracer(sceneObj, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := rt.Camera().Pixels()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result, ok := rt.InspectPixel(pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, PixelColor: hexColor(rt.Background())})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.Hit.Object.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Hit.Object.Primitive)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:           true,
		MaterialType:  materialType,
		GeometryType:  geometryType,
		Point:         vec(result.Hit.Point),
		Normal:        vec(result.Hit.Normal),
		Distance:      result.Hit.Distance,
		PixelColor:    hexColor(result.Color),
		VisibleLights: len(result.VisibleLights),
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
