package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec describes the static geometry a character moves through.
type LevelSpec struct {
	Name      string         `yaml:"name"`
	Gravity   float64        `yaml:"gravity"`
	Spawn     PointSpec      `yaml:"spawn"`
	Character string         `yaml:"character"`
	Script    string         `yaml:"script"`
	Colliders []ColliderSpec `yaml:"colliders"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColliderSpec is an axis-aligned box given by its center.
type ColliderSpec struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Friction float64 `yaml:"friction"`
}
