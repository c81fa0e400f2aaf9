package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteScene writes a scene to a YAML file
func WriteScene(scene *Scene, path string) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}

// ReadScene reads a scene from a YAML file
func ReadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scene, nil
}
