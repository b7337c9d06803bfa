package entity

import (
	"fmt"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/prefabs"
)

// Level is a loaded level: its spec, the collider entities and the player.
type Level struct {
	Spec      *prefabs.LevelSpec
	Colliders []ecs.Entity
	Player    ecs.Entity
}

// LevelOptions override parts of a level spec at load time.
type LevelOptions struct {
	// Script, when set, replaces the level's input script.
	Script string
}

// LoadLevel loads a level spec into w: one static body per collider and the
// character prefab at the spawn point.
func LoadLevel(w *ecs.World, levelPath string, opts LevelOptions) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(levelPath)
	if err != nil {
		return nil, err
	}
	if spec.Character == "" {
		return nil, fmt.Errorf("level %q: no character prefab", levelPath)
	}

	lvl := &Level{Spec: spec}
	for i, c := range spec.Colliders {
		if c.Width <= 0 || c.Height <= 0 {
			return nil, fmt.Errorf("level %q: collider %d (%s): width and height must be positive", levelPath, i, c.Name)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: c.X, Y: c.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return nil, err
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:    c.Width,
			Height:   c.Height,
			Friction: c.Friction,
			Static:   true,
		}); err != nil {
			return nil, err
		}
		lvl.Colliders = append(lvl.Colliders, e)
	}

	player, err := NewCharacterAt(w, spec.Character, spec.Spawn.X, spec.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", levelPath, err)
	}
	lvl.Player = player

	script := spec.Script
	if opts.Script != "" {
		script = opts.Script
	}
	if script != "" {
		if err := AttachScript(w, player, script); err != nil {
			return nil, fmt.Errorf("level %q: %w", levelPath, err)
		}
	}
	return lvl, nil
}
