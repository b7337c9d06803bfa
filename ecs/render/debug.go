package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/locomotion/animation"
	"github.com/milk9111/locomotion/common"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const defaultPixelsPerUnit = 32.0

var stateColors = map[string]color.RGBA{
	locomotion.Idle.String(): colornames.Steelblue,
	locomotion.Walk.String(): colornames.Seagreen,
	locomotion.Jump.String(): colornames.Orange,
	locomotion.Fall.String(): colornames.Crimson,
}

// DebugRenderSystem draws colliders as rectangles, tints characters by their
// animation blend and prints a HUD for the player. The camera follows the
// player horizontally; world Y is flipped to screen space.
type DebugRenderSystem struct {
	PixelsPerUnit float64
	face          ebtext.Face
}

func NewDebugRenderSystem() *DebugRenderSystem {
	return &DebugRenderSystem{
		PixelsPerUnit: defaultPixelsPerUnit,
		face:          ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *DebugRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)

	camX, camY := 0.0, 0.0
	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())
	if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); hasPlayer && ok {
		camX, camY = tr.X, tr.Y
	}

	bounds := screen.Bounds()
	originX := float64(bounds.Dx()) / 2
	originY := float64(bounds.Dy()) * 0.6
	toScreen := func(x, y float64) (float32, float32) {
		return float32(originX + (x-camX)*r.PixelsPerUnit), float32(originY - (y-camY)*r.PixelsPerUnit)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		sx, sy := toScreen(tr.X-pb.Width/2, tr.Y+pb.Height/2)
		sw := float32(pb.Width * r.PixelsPerUnit)
		sh := float32(pb.Height * r.PixelsPerUnit)

		if pb.Static {
			vector.FillRect(screen, sx, sy, sw, sh, colornames.Dimgray, false)
			vector.StrokeRect(screen, sx, sy, sw, sh, 1, colornames.Lightgrey, false)
			return
		}

		fill := colornames.White
		anim, hasAnim := ecs.Get(w, e, component.AnimationComponent.Kind())
		if hasAnim && anim.Animator != nil {
			fill = blendColor(anim.Animator)
		}
		vector.FillRect(screen, sx, sy, sw, sh, fill, false)
		if hasAnim && anim.Flash > 0 {
			vector.StrokeRect(screen, sx-2, sy-2, sw+4, sh+4, 2, colornames.White, false)
		}

		// facing marker on the leading edge
		mx := sx + sw - 3
		if tr.ScaleX < 0 {
			mx = sx
		}
		vector.FillRect(screen, mx, sy+sh/4, 3, sh/4, colornames.White, false)

		if gs, ok := ecs.Get(w, e, component.GroundSensorComponent.Kind()); ok && gs.Grounded {
			vector.StrokeLine(screen, sx, sy+sh+1, sx+sw, sy+sh+1, 2, colornames.Yellow, false)
		}
	})

	if hasPlayer {
		r.drawHUD(w, player, screen)
	}
}

func (r *DebugRenderSystem) drawHUD(w *ecs.World, player ecs.Entity, screen *ebiten.Image) {
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller == nil {
		return
	}
	m := loco.Controller.Motion()
	now := w.Clock().Now()

	vx, vy := 0.0, 0.0
	if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		v := pb.Body.Velocity()
		vx, vy = v.X, v.Y
	}
	grounded := false
	if gs, ok := ecs.Get(w, player, component.GroundSensorComponent.Kind()); ok {
		grounded = gs.Grounded
	}
	var lock time.Duration
	if m.Locked(now) {
		lock = m.LockedUntil - now
	}
	fallSpeed, walking := 0.0, false
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok && anim.Animator != nil {
		fallSpeed = anim.Animator.Float(locomotion.ParamFallSpeed)
		walking = anim.Animator.Bool(locomotion.ParamWalk)
	}

	lines := fmt.Sprintf("state: %s\nlocked: %v\ngrounded: %v\nvel: %.2f, %.2f\ninput: %.2f\nwalk: %v\nfall speed: %.2f\nt: %v",
		m.Current, lock, grounded, vx, vy, m.HorizontalInput, walking, fallSpeed, now)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.LineSpacing = 14
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, lines, r.face, op)
}

// blendColor mixes the colour of the clip being faded out into the current
// clip's colour by the animator's blend weight.
func blendColor(anim *animation.Animator) color.RGBA {
	to := clipColor(anim.Current(locomotion.BaseLayer).Clip)
	from, weight, ok := anim.Blend(locomotion.BaseLayer)
	if !ok {
		return to
	}
	fc := clipColor(from.Clip)
	mix := func(a, b uint8) uint8 {
		return uint8(common.Lerp(float32(a), float32(b), weight))
	}
	return color.RGBA{R: mix(fc.R, to.R), G: mix(fc.G, to.G), B: mix(fc.B, to.B), A: 255}
}

func clipColor(clip string) color.RGBA {
	if c, ok := stateColors[clip]; ok {
		return c
	}
	return colornames.White
}
