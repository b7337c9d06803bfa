package system

import (
	"log"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

// LocomotionPhysicsSystem runs each controller's fixed-tick half. It must be
// scheduled after PhysicsSystem so ground contacts are current.
type LocomotionPhysicsSystem struct {
	failed map[ecs.Entity]bool
}

func NewLocomotionPhysicsSystem() *LocomotionPhysicsSystem {
	return &LocomotionPhysicsSystem{failed: make(map[ecs.Entity]bool)}
}

func (s *LocomotionPhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, input *component.Input) {
		if !s.ensureController(w, e, loco, input) {
			return
		}

		before := loco.Controller.Motion()
		loco.Controller.PhysicsStep()
		after := loco.Controller.Motion()

		// a press only counts for the tick that sees it
		input.JumpPressed = false

		if after.JumpTriggered && !before.JumpTriggered {
			w.Events().Push(ecs.Event{Type: ecs.EventJumped, Data: e})
		}
		if before.Current == locomotion.Fall && after.Current != locomotion.Fall {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Data: e})
		}
	})
}

func (s *LocomotionPhysicsSystem) ensureController(w *ecs.World, e ecs.Entity, loco *component.Locomotion, input *component.Input) bool {
	if loco.Controller != nil {
		return true
	}
	if s.failed[e] {
		return false
	}

	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		// body not created yet
		return false
	}

	deps := locomotion.Deps{
		Input:  inputAdapter{input: input},
		Ground: groundAdapter{w: w, e: e},
		Body:   bodyAdapter{pb: pb},
		Clock:  w.Clock(),
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && anim.Animator != nil {
		deps.Animator = anim.Animator
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		deps.Facing = tr
	}

	ctrl, err := locomotion.New(loco.Config, deps)
	if err != nil {
		log.Printf("locomotion: entity=%s: %v", e, err)
		s.failed[e] = true
		return false
	}
	loco.Controller = ctrl
	return true
}

// LocomotionRenderSystem runs each controller's per-frame half and reports
// changes in the state it last reported for each entity.
type LocomotionRenderSystem struct {
	reported map[ecs.Entity]locomotion.State
}

func NewLocomotionRenderSystem() *LocomotionRenderSystem {
	return &LocomotionRenderSystem{reported: make(map[ecs.Entity]locomotion.State)}
}

func (s *LocomotionRenderSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.reported {
		if !ecs.IsAlive(w, e) {
			delete(s.reported, e)
		}
	}

	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Controller == nil {
			return
		}
		loco.Controller.RenderStep()

		to := loco.Controller.State()
		from, seen := s.reported[e]
		if !seen {
			from = locomotion.Idle
		}
		s.reported[e] = to
		if to == from {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventStateChanged,
			Data: ecs.StateChanged{Entity: e, From: from, To: to},
		})
	})
}
