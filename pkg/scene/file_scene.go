package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
)

// NewFileScene creates a scene from a .scene or .yaml file. Mesh paths are
// resolved relative to the scene file.
func NewFileScene(filename string, cameraOverrides ...CameraConfig) (*Scene, error) {
	desc, err := loaders.LoadScene(filename)
	if err != nil {
		// Returned unwrapped so callers can annotate the located errors
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s, err := NewSceneFromDescription(name, desc, filepath.Dir(filename))
	if err != nil {
		return nil, err
	}
	if len(cameraOverrides) > 0 {
		s.CameraConfig = MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}
	return s, nil
}

// NewSceneFromDescription converts a parsed scene description, loading any meshes
// it references from baseDir.
func NewSceneFromDescription(name string, desc *loaders.SceneDescription, baseDir string) (*Scene, error) {
	s := &Scene{
		Name: name,
		CameraConfig: CameraConfig{
			Width:     desc.Camera.Width,
			Height:    desc.Camera.Height,
			Position:  desc.Camera.Position,
			Direction: desc.Camera.Direction,
			Up:        desc.Camera.Up,
			FOV:       desc.Camera.FOV,
		},
		Lights:       desc.Lights,
		Background:   desc.Background,
		RecurseDepth: desc.RecurseDepth,
	}

	for _, obj := range desc.Objects {
		switch {
		case obj.Primitive != nil:
			s.AddObject(*obj.Primitive, obj.Material)
		case obj.Mesh != nil:
			if err := s.addMeshFile(obj, baseDir); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func (s *Scene) addMeshFile(obj loaders.ObjectDescription, baseDir string) error {
	mesh := obj.Mesh
	path := mesh.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := loaders.LoadPLY(path)
	if err != nil {
		return fmt.Errorf("failed to load mesh %s: %w", mesh.File, err)
	}

	options := &geometry.MeshOptions{Scale: mesh.Scale, Offset: mesh.Offset}
	if err := s.AddMesh(data.Vertices, data.Faces, obj.Material, options); err != nil {
		return fmt.Errorf("invalid mesh %s: %w", mesh.File, err)
	}
	return nil
}
