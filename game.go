package main

import (
	"log"
	"path"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/entity"
	"github.com/milk9111/locomotion/ecs/render"
	"github.com/milk9111/locomotion/ecs/system"
	"github.com/milk9111/locomotion/prefabs"
)

type Game struct {
	levelPath string
	script    string

	world      *ecs.World
	dispatcher *ecs.Dispatcher
	physics    *system.PhysicsSystem
	level      *entity.Level
	debug      *render.DebugRenderSystem

	watcher *prefabs.Watcher

	paused bool
	ui     *ebitenui.UI
}

func NewGame(levelPath, script string, watch bool) (*Game, error) {
	g := &Game{
		levelPath: levelPath,
		script:    script,
		world:     ecs.NewWorld(),
		debug:     render.NewDebugRenderSystem(),
	}
	lvl, err := entity.LoadLevel(g.world, g.levelPath, entity.LevelOptions{Script: g.script})
	if err != nil {
		return nil, err
	}
	g.level = lvl
	g.physics = system.NewPhysicsSystem(lvl.Spec.Gravity)

	d := ecs.NewDispatcher(ecs.DefaultFixedStep)
	d.Sample.Add(render.NewKeyboardInputSystem())
	d.Sample.Add(system.NewScriptInputSystem())
	d.Fixed.Add(g.physics)
	d.Fixed.Add(system.NewLocomotionPhysicsSystem())
	d.Render.Add(system.NewLocomotionRenderSystem())
	d.Render.Add(system.NewAnimationSystem())
	d.Render.Add(system.NewStateLogSystem(nil))
	g.dispatcher = d

	g.ui = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reset empties the world and loads the level again into the same systems.
func (g *Game) reset() error {
	ecs.Clear(g.world)
	g.dispatcher.Reset()
	g.physics.Reset()

	lvl, err := entity.LoadLevel(g.world, g.levelPath, entity.LevelOptions{Script: g.script})
	if err != nil {
		return err
	}
	g.physics.SetGravity(lvl.Spec.Gravity)
	g.level = lvl
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	if g.paused {
		g.ui.Update()
		return nil
	}

	g.dispatcher.Frame(g.world, time.Second/common.TPS)
	return nil
}

func (g *Game) restart() {
	if err := g.reset(); err != nil {
		log.Printf("reset %s: %v", g.levelPath, err)
	}
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == g.levelPath:
		log.Printf("reload: level %s", name)
		g.restart()
	case name == g.level.Spec.Character:
		if err := entity.ReloadLocomotion(g.world, g.level.Player, name); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		log.Printf("reload: locomotion from %s", name)
	case path.Ext(name) == ".tengo" && g.scriptName() == path.Base(name):
		if err := entity.AttachScript(g.world, g.level.Player, path.Base(name)); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		log.Printf("reload: script %s", name)
	}
}

func (g *Game) scriptName() string {
	if g.script != "" {
		return path.Base(g.script)
	}
	return path.Base(g.level.Spec.Script)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.debug.Draw(g.world, screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
