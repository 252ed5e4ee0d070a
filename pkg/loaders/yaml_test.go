package loaders

import (
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

const validYAMLScene = `# same content as the scene language fixture
global:
  recurse_depth: 3
camera:
  width: 64
  height: 48
  pos: [0, 1, -5]
  dir: [0, 0, 1]
  fov: 60
background:
  color: [10, 20, 30]
lights:
  - pos: [2, 5, -3]
    intensity: 0.8
objects:
  - type: sphere
    pos: [0, 1, 0]
    r: 1.5
    material: {color: red, template: plastic}
  - type: triangle
    t1: [0, 0, 0]
    t2: [1, 0, 0]
    t3: [0, 1, 0]
    material: {color: blue, lambert: 0.5, specular: 0.1, ambient: 0.2}
  - type: plane
    point: [0, 0, 0]
    normal: [0, 2, 0]
    material:
      color: [128, 128, 128]
      template: matte
      specular: 0.3
`

func TestParseSceneYAMLValid(t *testing.T) {
	desc, err := ParseSceneYAML([]byte(validYAMLScene))
	if err != nil {
		t.Fatalf("unexpected error:\n%s", FormatError(err))
	}

	if desc.RecurseDepth != 3 {
		t.Errorf("RecurseDepth = %d, want 3", desc.RecurseDepth)
	}
	if desc.Camera.Width != 64 || desc.Camera.Height != 48 || desc.Camera.FOV != 60 {
		t.Errorf("camera = %+v", desc.Camera)
	}
	if !desc.Background.Equals(core.ColorFromRGB8(10, 20, 30)) {
		t.Errorf("Background = %v", desc.Background)
	}
	if len(desc.Lights) != 1 || !desc.Lights[0].Position.Equals(core.NewVec3(2, 5, -3)) {
		t.Errorf("lights = %+v", desc.Lights)
	}

	wantKinds := []geometry.Kind{geometry.KindSphere, geometry.KindTriangle, geometry.KindPlane}
	if len(desc.Objects) != len(wantKinds) {
		t.Fatalf("expected %d objects, got %d", len(wantKinds), len(desc.Objects))
	}
	for i, want := range wantKinds {
		if got := desc.Objects[i].Primitive.Kind(); got != want {
			t.Errorf("object %d kind = %v, want %v", i, got, want)
		}
	}

	if got := desc.Objects[2].Material.Specular; !got.Equals(core.Gray(0.3)) {
		t.Errorf("template override specular = %v", got)
	}
}

func TestParseSceneYAMLMatchesSceneLanguage(t *testing.T) {
	fromYAML, err := ParseSceneYAML([]byte(validYAMLScene))
	if err != nil {
		t.Fatalf("yaml: %s", FormatError(err))
	}
	fromSDL, err := ParseScene(validScene)
	if err != nil {
		t.Fatalf("sdl: %s", FormatError(err))
	}

	if fromYAML.Camera != fromSDL.Camera {
		t.Errorf("camera differs: %+v vs %+v", fromYAML.Camera, fromSDL.Camera)
	}
	for i := range fromSDL.Objects {
		if fromYAML.Objects[i].Material != fromSDL.Objects[i].Material {
			t.Errorf("object %d material differs: %+v vs %+v", i, fromYAML.Objects[i].Material, fromSDL.Objects[i].Material)
		}
		if *fromYAML.Objects[i].Primitive != *fromSDL.Objects[i].Primitive {
			t.Errorf("object %d primitive differs", i)
		}
	}
}

func TestParseSceneYAMLErrors(t *testing.T) {
	const camera = "camera: {width: 4, height: 4, pos: [0, 0, 0], dir: [0, 0, 1]}\n"

	tests := []struct {
		name    string
		source  string
		message string
		line    int
		col     int
	}{
		{
			name:    "unknown section",
			source:  camera + "meshes: []\n",
			message: "Unknown section 'meshes'",
			line:    2,
			col:     1,
		},
		{
			name:    "object without type",
			source:  camera + "objects:\n  - pos: [0, 0, 0]\n",
			message: "Object is missing a 'type'",
			line:    3,
			col:     5,
		},
		{
			name:    "unknown object type",
			source:  camera + "objects:\n  - type: cube\n",
			message: "Unknown object 'cube'",
			line:    3,
			col:     11,
		},
		{
			name:    "unknown option",
			source:  camera + "objects:\n  - type: sphere\n    pos: [0, 0, 0]\n    r: 1\n    shiny: true\n    material: {color: red, template: matte}\n",
			message: "Unknown option 'shiny'",
			line:    6,
			col:     5,
		},
		{
			name:    "wrong type",
			source:  camera + "lights:\n  - pos: [0, 0, 0]\n    intensity: bright\n",
			message: "Expected type 'f64' but found type 'Str'",
			line:    4,
			col:     16,
		},
		{
			name:    "negative light intensity",
			source:  camera + "lights:\n  - pos: [0, 0, 0]\n    intensity: -1\n",
			message: "Light intensity must be non-negative, found -1",
			line:    4,
			col:     16,
		},
		{
			name:    "lights must be a list",
			source:  camera + "lights: {pos: [0, 0, 0]}\n",
			message: "Section 'lights' must be a list",
			line:    2,
			col:     9,
		},
		{
			name:    "camera must be a mapping",
			source:  "camera: [1, 2]\n",
			message: "Section 'camera' must be a mapping",
			line:    1,
			col:     9,
		},
		{
			name:    "scene must be a mapping",
			source:  "- camera\n",
			message: "Scene must be a mapping of sections",
			line:    1,
			col:     1,
		},
		{
			name:    "missing camera",
			source:  "global: {recurse_depth: 2}\n",
			message: "There must be exactly one camera in a scene, found 0",
			line:    1,
			col:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSceneYAML([]byte(tt.source))
			if err == nil {
				t.Fatal("expected an error")
			}

			for _, pe := range ParseErrors(err) {
				if pe.Message == tt.message {
					if pe.Start.Line != tt.line || pe.Start.Col != tt.col {
						t.Errorf("%q reported at %s, want %d:%d", tt.message, pe.Start, tt.line, tt.col)
					}
					return
				}
			}
			t.Errorf("expected message %q, got:\n%s", tt.message, FormatError(err))
		})
	}
}

func TestParseSceneYAMLSyntaxError(t *testing.T) {
	_, err := ParseSceneYAML([]byte("camera: [unclosed\n"))
	if err == nil {
		t.Fatal("expected a YAML syntax error")
	}
	if len(ParseErrors(err)) != 0 {
		t.Errorf("YAML syntax errors are reported by the decoder, got located errors: %v", err)
	}
}
