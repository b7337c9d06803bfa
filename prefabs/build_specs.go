package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name plus raw component specs keyed by
// component name. Each component decodes its own entry.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
}

type LocomotionComponentSpec struct {
	WalkSpeed float64     `yaml:"walk_speed"`
	JumpForce float64     `yaml:"jump_force"`
	Timings   TimingsSpec `yaml:"timings"`
}

// TimingsSpec holds lock and blend durations in milliseconds. Omitted
// fields keep their defaults.
type TimingsSpec struct {
	JumpLockMS   *int `yaml:"jump_lock_ms"`
	FallLockMS   *int `yaml:"fall_lock_ms"`
	LandLockMS   *int `yaml:"land_lock_ms"`
	FallBlendMS  *int `yaml:"fall_blend_ms"`
	LandBlendMS  *int `yaml:"land_blend_ms"`
	StateBlendMS *int `yaml:"state_blend_ms"`
}

type AnimationComponentSpec struct {
	Clips []ClipSpec `yaml:"clips"`
}

type ClipSpec struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

type ScriptInputComponentSpec struct {
	Script string `yaml:"script"`
}
