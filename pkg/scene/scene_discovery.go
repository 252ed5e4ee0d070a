package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scene types reported in SceneInfo.Type
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the scene file (file type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type builtinScene struct {
	info  SceneInfo
	build func(...CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Spheres and a triangle over a reflective ground plane",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "cornell",
			Name:        "Cornell Box",
			Description: "Cornell box with a mirror sphere and a matte sphere",
		},
		build: NewCornellScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			Name:        "Mirrors",
			Description: "Mirror spheres around a triangle mesh pyramid",
		},
		build: NewMirrorsScene,
	},
}

// ListBuiltinScenes returns the scenes that are compiled into the renderer
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = TypeBuiltin
		scenes[i] = info
	}
	return scenes
}

// NewScene creates a built-in scene by ID
func NewScene(id string, cameraOverrides ...CameraConfig) (*Scene, error) {
	if b, ok := lookupBuiltin(id); ok {
		return b.build(cameraOverrides...), nil
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(builtinIDs(), ", "))
}

func lookupBuiltin(id string) (builtinScene, bool) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b, true
		}
	}
	return builtinScene{}, false
}

func builtinIDs() []string {
	ids := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		ids[i] = b.info.ID
	}
	return ids
}

// Load resolves a scene by built-in ID, "file:" ID from dir, or path to a scene file
func Load(nameOrPath, dir string, cameraOverrides ...CameraConfig) (*Scene, error) {
	if b, ok := lookupBuiltin(nameOrPath); ok {
		return b.build(cameraOverrides...), nil
	}

	if name, ok := strings.CutPrefix(nameOrPath, TypeFile+":"); ok {
		scenes, err := ListSceneFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, info := range scenes {
			if info.ID == nameOrPath {
				return NewFileScene(info.FilePath, cameraOverrides...)
			}
		}
		return nil, fmt.Errorf("scene file %q not found in %s", name, dir)
	}

	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("unknown scene %q: not a built-in scene (%s) or a readable file", nameOrPath, strings.Join(builtinIDs(), ", "))
	}
	return NewFileScene(nameOrPath, cameraOverrides...)
}

// IsSceneFile reports whether a path has a scene file extension
func IsSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".scene", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ListSceneFiles scans dir for scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !IsSceneFile(entry.Name()) {
			continue
		}
		info, err := ParseSceneMetadata(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		scenes = append(scenes, info)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from a scene file's leading comments:
//
//	# Scene: Cornell Box
//	// Variant: Empty Room
//	# Description: ...
//	# Group: ...
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	// Fallback values
	sceneInfo := SceneInfo{
		ID:          TypeFile + ":" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        TypeFile,
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata ends at the first non-comment line
		if !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "//") {
			break
		}
		content := strings.TrimPrefix(strings.TrimPrefix(line, "//"), "#")

		if !strings.HasPrefix(content, " ") {
			continue
		}
		content = strings.TrimSpace(content)

		if value, ok := strings.CutPrefix(content, "Scene:"); ok {
			sceneInfo.Name = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Variant:"); ok {
			sceneInfo.Variant = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			sceneInfo.Description = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Group:"); ok {
			sceneInfo.Group = strings.TrimSpace(value)
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(ListBuiltinScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: groupMap[builtinGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
