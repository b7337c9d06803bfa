package locomotion

import "time"

// Axis selects a component of a 2D vector.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Action is a discrete input action.
type Action uint8

const (
	ActionJump Action = iota
)

// Vector is a 2D velocity. Y grows upward.
type Vector struct {
	X, Y float64
}

// InputSource exposes the continuous axis and edge-triggered actions.
type InputSource interface {
	Axis(axis Axis) float64
	// ActionPressed reports true only on the tick the action started.
	ActionPressed(action Action) bool
}

// GroundCheck reports ground contact. It is queried every time grounded-ness
// is needed and must not be cached by the caller.
type GroundCheck interface {
	Check() bool
}

// Body is the rigid body whose velocity the controller drives.
type Body interface {
	Velocity() Vector
	SetVelocity(axis Axis, value float64)
}

// Animator consumes playback commands.
type Animator interface {
	CrossFade(clip string, duration time.Duration, layer int)
	SetTrigger(name string)
	SetFloat(name string, value float64)
	SetBool(name string, value bool)
}

// Clock returns a monotonically non-decreasing timestamp.
type Clock interface {
	Now() time.Duration
}

// Facer receives the horizontal facing scale (+1 right, -1 left).
type Facer interface {
	SetFacing(scaleX float64)
}

// Deps lists the collaborators a Controller is built from. Facing is
// optional; everything else is required.
type Deps struct {
	Input    InputSource
	Ground   GroundCheck
	Body     Body
	Animator Animator
	Clock    Clock
	Facing   Facer
}

type nopFacer struct{}

func (nopFacer) SetFacing(float64) {}
