package scene

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Width:     400,
		Height:    300,
		Position:  core.NewVec3(0, 1, -5),
		Direction: core.NewVec3(0, 0, 1),
		FOV:       60,
	}

	tests := []struct {
		name     string
		override CameraConfig
		expected CameraConfig
	}{
		{
			name:     "empty override keeps base",
			override: CameraConfig{},
			expected: base,
		},
		{
			name:     "size only",
			override: CameraConfig{Width: 32, Height: 24},
			expected: CameraConfig{Width: 32, Height: 24, Position: base.Position, Direction: base.Direction, FOV: 60},
		},
		{
			name:     "placement and up",
			override: CameraConfig{Position: core.NewVec3(1, 2, 3), Up: core.NewVec3(0, 0, 1), FOV: 30},
			expected: CameraConfig{Width: 400, Height: 300, Position: core.NewVec3(1, 2, 3), Direction: base.Direction, Up: core.NewVec3(0, 0, 1), FOV: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeCameraConfig(base, tt.override); got != tt.expected {
				t.Errorf("MergeCameraConfig() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestBuiltinScenesRender(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewScene(info.ID, CameraConfig{Width: 16, Height: 12})
			if err != nil {
				t.Fatalf("NewScene(%q) error: %v", info.ID, err)
			}
			if s.Name != info.ID {
				t.Errorf("Name = %q, want %q", s.Name, info.ID)
			}
			if s.GetPrimitiveCount() == 0 || len(s.Lights) == 0 {
				t.Errorf("scene %q should have objects and lights", info.ID)
			}

			rt, err := s.Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if w, h := rt.Camera().Pixels(); w != 16 || h != 12 {
				t.Errorf("camera size = %dx%d, want 16x12", w, h)
			}

			img := rt.Render(renderer.DefaultRenderOptions())
			if img.Width() != 16 || img.Height() != 12 {
				t.Fatalf("image size = %dx%d, want 16x12", img.Width(), img.Height())
			}

			lit := 0
			for _, row := range img {
				for _, c := range row {
					if !c.Equals(s.Background) {
						lit++
					}
				}
			}
			if lit == 0 {
				t.Errorf("scene %q rendered only background", info.ID)
			}
		})
	}
}

func TestMirrorsSceneContainsMesh(t *testing.T) {
	s := NewMirrorsScene()

	triangles := 0
	for _, obj := range s.Objects {
		if obj.Primitive.Kind() == geometry.KindTriangle {
			triangles++
		}
	}
	if triangles != len(pyramidFaces)/3 {
		t.Errorf("expected %d pyramid triangles, got %d", len(pyramidFaces)/3, triangles)
	}
}

func TestPyramidMeshData(t *testing.T) {
	triangles, err := geometry.NewTriangleMesh(pyramidVertices, pyramidFaces, material.NewUniformMaterial(core.White, 0, 1, 0), &geometry.MeshOptions{Scale: 1.2})
	if err != nil {
		t.Fatalf("pyramid mesh failed to build: %v", err)
	}
	if len(triangles) != len(pyramidFaces)/3 {
		t.Errorf("expected %d triangles, got %d", len(pyramidFaces)/3, len(triangles))
	}

	s := &Scene{}
	if err := s.AddMesh(pyramidVertices, pyramidFaces, material.NewUniformMaterial(core.White, 0, 1, 0), nil); err != nil {
		t.Errorf("AddMesh returned %v", err)
	}
}

func TestSceneBuild_ZeroDirection(t *testing.T) {
	s := &Scene{
		Name:         "broken",
		CameraConfig: CameraConfig{Width: 4, Height: 4, FOV: 60},
	}

	_, err := s.Build()
	if !errors.Is(err, renderer.ErrDirectionZero) {
		t.Fatalf("expected ErrDirectionZero, got %v", err)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("error should name the scene: %v", err)
	}
}

func TestSceneBuild_ExplicitUp(t *testing.T) {
	s := &Scene{
		CameraConfig: CameraConfig{
			Width:     4,
			Height:    4,
			Direction: core.NewVec3(0, -1, 0),
			Up:        core.NewVec3(0, 0, 1),
			FOV:       60,
		},
	}

	rt, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if forward := rt.Camera().Rotation().Forward(); !forward.Equals(core.NewVec3(0, -1, 0)) {
		t.Errorf("forward = %v, want (0,-1,0)", forward)
	}
}

const meshSceneSource = `# Scene: Mesh Test
Camera { width: 8, height: 8, pos: (0.5, 0.5, -3), dir: (0, 0, 1), fov: 40 }
Light { pos: (0, 0, -5), intensity: 1 }
Mesh { file: "quad.ply", scale: 2, offset: (0, 0, 1), material: { color: "white", template: "matte" } }
`

const quadPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

func TestNewFileScene_Mesh(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "quad.ply", quadPLY)
	path := writeSceneFile(t, dir, "mesh.scene", meshSceneSource)

	s, err := NewFileScene(path, CameraConfig{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("NewFileScene() error: %v", err)
	}

	if s.Name != "mesh" {
		t.Errorf("Name = %q, want mesh", s.Name)
	}
	if s.GetPrimitiveCount() != 2 {
		t.Fatalf("expected the quad as 2 triangles, got %d objects", s.GetPrimitiveCount())
	}
	if s.CameraConfig.Width != 4 || s.CameraConfig.FOV != 40 {
		t.Errorf("camera override not merged: %+v", s.CameraConfig)
	}

	tri, ok := s.Objects[0].Primitive.Triangle()
	if !ok {
		t.Fatalf("expected triangles")
	}
	// Scaled by 2 then offset along z
	if !tri.V1.Equals(core.NewVec3(2, 0, 1)) {
		t.Errorf("V1 = %v, want (2,0,1)", tri.V1)
	}
}

func TestNewFileScene_Errors(t *testing.T) {
	dir := t.TempDir()

	missingMesh := writeSceneFile(t, dir, "missing.scene", strings.Replace(meshSceneSource, "quad.ply", "nowhere.ply", 1))
	_, err := NewFileScene(missingMesh)
	if err == nil || !strings.Contains(err.Error(), "failed to load mesh nowhere.ply") {
		t.Errorf("expected mesh load error, got %v", err)
	}

	invalid := writeSceneFile(t, dir, "invalid.scene", "Sphere { }\n")
	_, err = NewFileScene(invalid)
	if len(loaders.ParseErrors(err)) == 0 {
		t.Errorf("expected located scene errors, got %v", err)
	}

	_, err = NewFileScene(filepath.Join(dir, "absent.scene"))
	if err == nil {
		t.Error("expected an error for a missing scene file")
	}
}
