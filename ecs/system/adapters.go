package system

import (
	"math"

	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
	"github.com/milk9111/locomotion/locomotion"
)

// inputAdapter exposes an Input component to the controller. Reads never
// clear the latched press; LocomotionPhysicsSystem does that after the tick.
type inputAdapter struct {
	input *component.Input
}

func (a inputAdapter) Axis(axis locomotion.Axis) float64 {
	if axis != locomotion.AxisX {
		return 0
	}
	return a.input.MoveX
}

func (a inputAdapter) ActionPressed(action locomotion.Action) bool {
	return action == locomotion.ActionJump && a.input.JumpPressed
}

// groundAdapter looks the sensor up on every call so it always reports the
// latest physics step.
type groundAdapter struct {
	w *ecs.World
	e ecs.Entity
}

func (a groundAdapter) Check() bool {
	gs, ok := ecs.Get(a.w, a.e, component.GroundSensorComponent.Kind())
	return ok && gs.Grounded
}

// restingEpsilon absorbs contact solver noise so a body at rest never reads
// as rising or falling.
const restingEpsilon = 1e-6

type bodyAdapter struct {
	pb *component.PhysicsBody
}

func (a bodyAdapter) Velocity() locomotion.Vector {
	if a.pb.Body == nil {
		return locomotion.Vector{}
	}
	v := a.pb.Body.Velocity()
	if math.Abs(v.Y) < restingEpsilon {
		v.Y = 0
	}
	return locomotion.Vector{X: v.X, Y: v.Y}
}

func (a bodyAdapter) SetVelocity(axis locomotion.Axis, value float64) {
	if a.pb.Body == nil {
		return
	}
	v := a.pb.Body.Velocity()
	switch axis {
	case locomotion.AxisX:
		v.X = value
	case locomotion.AxisY:
		v.Y = value
	}
	a.pb.Body.SetVelocityVector(v)
}
