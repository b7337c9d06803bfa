// Command locosim runs a level headless with a scripted character and prints
// every locomotion transition.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/ecs/entity"
	"github.com/milk9111/locomotion/ecs/system"
	"github.com/milk9111/locomotion/prefabs"
)

func main() {
	levelPath := flag.String("level", "level.yaml", "level prefab to load")
	script := flag.String("script", "hop.tengo", "input script driving the character")
	frames := flag.Int("frames", 300, "frames to simulate")
	frameDelta := flag.Duration("dt", time.Second/60, "wall time per frame")
	step := flag.Duration("step", ecs.DefaultFixedStep, "fixed physics step")
	dir := flag.String("prefabs", prefabs.Dir, "directory whose files override the embedded prefabs")
	flag.Parse()

	prefabs.Dir = *dir
	if err := run(*levelPath, *script, *frames, *frameDelta, *step); err != nil {
		log.Fatal(err)
	}
}

func run(levelPath, script string, frames int, frameDelta, step time.Duration) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	w := ecs.NewWorld()
	lvl, err := entity.LoadLevel(w, levelPath, entity.LevelOptions{Script: script})
	if err != nil {
		return err
	}

	out := log.New(os.Stdout, "", 0)
	d := ecs.NewDispatcher(step)
	d.Sample.Add(system.NewScriptInputSystem())
	d.Fixed.Add(system.NewPhysicsSystem(lvl.Spec.Gravity))
	d.Fixed.Add(system.NewLocomotionPhysicsSystem())
	d.Render.Add(system.NewLocomotionRenderSystem())
	d.Render.Add(system.NewAnimationSystem())
	d.Render.Add(system.NewStateLogSystem(out))

	steps := 0
	for i := 0; i < frames; i++ {
		steps += d.Frame(w, frameDelta)
	}

	tr, _ := ecs.Get(w, lvl.Player, component.TransformComponent.Kind())
	loco, _ := ecs.Get(w, lvl.Player, component.LocomotionComponent.Kind())
	state := "none"
	if loco != nil && loco.Controller != nil {
		state = loco.Controller.State().String()
	}
	x, y := 0.0, 0.0
	if tr != nil {
		x, y = tr.X, tr.Y
	}
	out.Printf("done: frames=%d steps=%d t=%v state=%s pos=(%.2f, %.2f)", frames, steps, w.Clock().Now(), state, x, y)
	return nil
}
