package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"mirror_hall", "Mirror Hall"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.scene",
			content: `# Scene: Cornell Box
# Variant: Empty Room
# Description: Classic Cornell box with no objects
# Group: Cornell Variants

Camera { width: 4, height: 4, pos: (0, 0, 0), dir: (0, 0, 1) }`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Variant:     "Empty Room",
			},
		},
		{
			name: "slash_comments.scene",
			content: `// Scene: Mirrors
// Description: Two mirrors

Camera { width: 4, height: 4, pos: (0, 0, 0), dir: (0, 0, 1) }`,
			expected: SceneInfo{
				ID:          "file:slash_comments",
				Name:        "Mirrors",
				DisplayName: "Mirrors",
				Description: "Two mirrors",
				Group:       "Scene Files",
			},
		},
		{
			name:    "no-metadata.yaml",
			content: `camera: {width: 4, height: 4, pos: [0, 0, 0], dir: [0, 0, 1]}`,
			expected: SceneInfo{
				ID:          "file:no-metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Files",
			},
		},
		{
			name: "mixed_content.scene",
			content: `# Scene: Test Scene
Camera { width: 4, height: 4, pos: (0, 0, 0), dir: (0, 0, 1) }
# Variant: Ignored After Content`,
			expected: SceneInfo{
				ID:          "file:mixed_content",
				Name:        "Test Scene",
				DisplayName: "Test Scene",
				Group:       "Scene Files",
			},
		},
		{
			name: "malformed_comments.scene",
			content: `#Scene: Missing space
# Description:   Extra spaces
Camera { width: 4, height: 4, pos: (0, 0, 0), dir: (0, 0, 1) }`,
			expected: SceneInfo{
				ID:          "file:malformed_comments",
				Name:        "Malformed Comments",
				DisplayName: "Malformed Comments",
				Description: "Extra spaces",
				Group:       "Scene Files",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.Type = TypeFile
			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() =\n%+v\nwant\n%+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	result, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "nonexistent.scene"))
	if err != nil {
		t.Errorf("ParseSceneMetadata() should fall back for missing files, got %v", err)
	}
	if result.ID != "file:nonexistent" || result.DisplayName != "Nonexistent" {
		t.Errorf("unexpected fallback info %+v", result)
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.scene", "# Scene: Beta\n")
	writeSceneFile(t, dir, "a.yaml", "# Scene: Alpha\n")
	writeSceneFile(t, dir, "notes.txt", "# Scene: Not A Scene\n")
	if err := os.Mkdir(filepath.Join(dir, "nested.scene"), 0o755); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scene files, got %+v", scenes)
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("scenes should be sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "hall.scene", "# Scene: Hall\n# Group: Architecture\n")
	writeSceneFile(t, dir, "plain.scene", "# Scene: Plain\n")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	wantGroups := []string{"Built-in Scenes", "Architecture", "Scene Files"}
	if len(response.Groups) != len(wantGroups) {
		t.Fatalf("expected %d groups, got %+v", len(wantGroups), response.Groups)
	}
	for i, want := range wantGroups {
		if response.Groups[i].Name != want {
			t.Errorf("group %d = %q, want %q", i, response.Groups[i].Name, want)
		}
	}

	expectedBuiltins := []string{"default", "cornell", "mirrors"}
	builtins := response.Groups[0].Scenes
	if len(builtins) != len(expectedBuiltins) {
		t.Fatalf("Built-in scenes count = %d, want %d", len(builtins), len(expectedBuiltins))
	}
	for i, id := range expectedBuiltins {
		if builtins[i].ID != id || builtins[i].Type != TypeBuiltin || builtins[i].DisplayName == "" {
			t.Errorf("unexpected built-in scene %+v", builtins[i])
		}
	}

	for _, group := range response.Groups[1:] {
		for _, info := range group.Scenes {
			if info.Type != TypeFile || info.FilePath == "" || !strings.HasPrefix(info.ID, "file:") {
				t.Errorf("unexpected file scene %+v", info)
			}
		}
	}
}

func TestNewScene_Unknown(t *testing.T) {
	_, err := NewScene("teapot")
	if err == nil {
		t.Fatal("expected an error for an unknown scene")
	}
	if !strings.Contains(err.Error(), "default, cornell, mirrors") {
		t.Errorf("error should list the available scenes: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "tiny.scene", `# Scene: Tiny
Camera { width: 8, height: 6, pos: (0, 0, -3), dir: (0, 0, 1) }
Sphere { pos: (0, 0, 0), r: 1, material: { color: "red", template: "matte" } }
`)

	tests := []struct {
		name      string
		input     string
		wantName  string
		wantError bool
	}{
		{name: "builtin", input: "cornell", wantName: "cornell"},
		{name: "file id", input: "file:tiny", wantName: "tiny"},
		{name: "path", input: path, wantName: "tiny"},
		{name: "missing file id", input: "file:huge", wantError: true},
		{name: "unknown", input: "no-such-scene", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.input, dir)
			if tt.wantError {
				if err == nil {
					t.Errorf("expected an error, got scene %q", s.Name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) error: %v", tt.input, err)
			}
			if s.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", s.Name, tt.wantName)
			}
		})
	}
}

func TestSampleSceneFiles(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListSceneFiles() error: %v", err)
	}
	if len(scenes) != 4 {
		t.Fatalf("expected 4 sample scenes, got %d", len(scenes))
	}

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			if info.Description == "" || info.Group == "Scene Files" {
				t.Errorf("sample scene should carry metadata, got %+v", info)
			}

			s, err := NewFileScene(info.FilePath, CameraConfig{Width: 8, Height: 6})
			if err != nil {
				t.Fatalf("failed to load %s:\n%s", info.FilePath, loaders.FormatError(err))
			}
			rt, err := s.Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			img := rt.Render(renderer.RenderOptions{Strategy: renderer.StrategySequential})
			if img.Width() != 8 || img.Height() != 6 {
				t.Errorf("image size = %dx%d, want 8x6", img.Width(), img.Height())
			}
		})
	}
}
