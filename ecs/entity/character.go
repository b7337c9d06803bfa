package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/prefabs"
)

// LocomotionConfig converts a prefab spec, filling omitted timings with
// defaults.
func LocomotionConfig(spec prefabs.LocomotionComponentSpec) locomotion.Config {
	cfg := locomotion.DefaultConfig(spec.WalkSpeed, spec.JumpForce)
	t := spec.Timings
	setMS(&cfg.Timings.JumpLock, t.JumpLockMS)
	setMS(&cfg.Timings.FallLock, t.FallLockMS)
	setMS(&cfg.Timings.LandLock, t.LandLockMS)
	setMS(&cfg.Timings.FallBlend, t.FallBlendMS)
	setMS(&cfg.Timings.LandBlend, t.LandBlendMS)
	setMS(&cfg.Timings.StateBlend, t.StateBlendMS)
	return cfg
}

func setMS(dst *time.Duration, ms *int) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}

// NewCharacterAt builds a character prefab and places it at x, y.
func NewCharacterAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

// AttachScript makes e script driven. The script is loaded through prefabs,
// so a file on disk overrides the embedded copy.
func AttachScript(w *ecs.World, e ecs.Entity, name string) error {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return fmt.Errorf("load script %q: %w", name, err)
	}
	si := &component.ScriptInput{Name: name, Source: src}
	if old, ok := ecs.Get(w, e, component.ScriptInputComponent.Kind()); ok {
		si.Tick = old.Tick
		si.Revision = old.Revision + 1
	}
	return ecs.Add(w, e, component.ScriptInputComponent.Kind(), si)
}

// ReloadLocomotion re-reads the locomotion block of a prefab and applies it
// to e. A running controller keeps its motion state.
func ReloadLocomotion(w *ecs.World, e ecs.Entity, prefabPath string) error {
	loco, ok := ecs.Get(w, e, component.LocomotionComponent.Kind())
	if !ok {
		return fmt.Errorf("reload %q: entity %s has no locomotion", prefabPath, e)
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("reload %q: %w", prefabPath, err)
	}
	raw, ok := spec.Components["locomotion"]
	if !ok {
		return fmt.Errorf("reload %q: no locomotion component", prefabPath)
	}
	ls, err := prefabs.DecodeComponentSpec[locomotionSpec](raw)
	if err != nil {
		return fmt.Errorf("reload %q: decode locomotion spec: %w", prefabPath, err)
	}

	cfg := LocomotionConfig(ls)
	if loco.Controller != nil {
		if err := loco.Controller.Reconfigure(cfg); err != nil {
			return fmt.Errorf("reload %q: %w", prefabPath, err)
		}
	} else if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reload %q: %w", prefabPath, err)
	}
	loco.Config = cfg
	return nil
}
