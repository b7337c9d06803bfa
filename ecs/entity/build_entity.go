package entity

import (
	"fmt"

	"github.com/milk9111/locomotion/animation"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"input":         addInput,
	"transform":     addTransform,
	"physics_body":  addPhysicsBody,
	"ground_sensor": addGroundSensor,
	"animation":     addAnimation,
	"locomotion":    addLocomotion,
	"script_input":  addScriptInput,
}

var componentBuildOrder = []string{
	"player_tag",
	"input",
	"transform",
	"physics_body",
	"ground_sensor",
	"animation",
	"locomotion",
	"script_input",
}

// BuildEntity creates an entity from a prefab file. Components are added in
// componentBuildOrder; unknown names fail the whole build.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addGroundSensor(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundSensorComponent.Kind(), &component.GroundSensor{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive width and height, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	clips := make([]animation.Clip, 0, len(spec.Clips))
	for _, c := range spec.Clips {
		clips = append(clips, animation.Clip{Name: c.Name, Frames: c.Frames, FPS: c.FPS, Loop: c.Loop})
	}
	anim, err := animation.New(clips...)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Animator: anim})
}

type locomotionSpec = prefabs.LocomotionComponentSpec

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	cfg := LocomotionConfig(spec)
	if err := cfg.Validate(); err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{Config: cfg})
}

type scriptInputSpec = prefabs.ScriptInputComponentSpec

func addScriptInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptInputSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script input spec: %w", err)
	}
	return AttachScript(w, e, spec.Script)
}
