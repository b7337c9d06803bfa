package system

import (
	"time"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

const jumpFlash = 150 * time.Millisecond

// AnimationSystem advances every animator by the frame's wall time and
// consumes the jump trigger into a short flash.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.FrameDelta()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		if anim.Animator == nil {
			return
		}
		if anim.Animator.ConsumeTrigger(locomotion.TriggerJump) {
			anim.Flash = jumpFlash
		} else if anim.Flash > 0 {
			anim.Flash = max(0, anim.Flash-dt)
		}
		anim.Animator.Update(dt)
	})
}
