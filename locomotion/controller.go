package locomotion

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/locomotion/common"
)

// Controller drives one character's body and locomotion state. It is not
// safe for concurrent use; the host calls PhysicsStep and RenderStep from a
// single goroutine.
type Controller struct {
	cfg    Config
	motion MotionState

	input  InputSource
	ground GroundCheck
	body   Body
	anim   Animator
	clock  Clock
	facing Facer
}

// New validates cfg and deps and returns a grounded, idle, unlocked
// controller.
func New(cfg Config, deps Deps) (*Controller, error) {
	var errs []error
	if deps.Input == nil {
		errs = append(errs, fmt.Errorf("%w: input source", ErrMissingCollaborator))
	}
	if deps.Ground == nil {
		errs = append(errs, fmt.Errorf("%w: ground check", ErrMissingCollaborator))
	}
	if deps.Body == nil {
		errs = append(errs, fmt.Errorf("%w: rigid body", ErrMissingCollaborator))
	}
	if deps.Animator == nil {
		errs = append(errs, fmt.Errorf("%w: animator", ErrMissingCollaborator))
	}
	if deps.Clock == nil {
		errs = append(errs, fmt.Errorf("%w: clock", ErrMissingCollaborator))
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("locomotion: new controller: %w", err)
	}

	facing := deps.Facing
	if facing == nil {
		facing = nopFacer{}
	}

	return &Controller{
		cfg:    cfg,
		motion: MotionState{Current: Idle},
		input:  deps.Input,
		ground: deps.Ground,
		body:   deps.Body,
		anim:   deps.Animator,
		clock:  deps.Clock,
		facing: facing,
	}, nil
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Reconfigure swaps speeds and timings. The motion state is kept as is.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("locomotion: reconfigure: %w", err)
	}
	c.cfg = cfg
	return nil
}

// State returns the current displayed state.
func (c *Controller) State() State {
	return c.motion.Current
}

// Motion returns a copy of the motion state.
func (c *Controller) Motion() MotionState {
	return c.motion
}

// PhysicsStep runs once per fixed tick: horizontal, then jump, then fall.
func (c *Controller) PhysicsStep() {
	c.applyHorizontalMovement()
	c.applyJump()
	c.applyFall()
}

// RenderStep runs once per render tick after at least one PhysicsStep.
func (c *Controller) RenderStep() {
	c.captureHorizontalInput()
	c.applyFacing()

	state := c.resolve()
	if state == c.motion.Current {
		return
	}
	c.anim.CrossFade(state.String(), c.cfg.Timings.StateBlend, BaseLayer)
	c.motion.Current = state
}

func (c *Controller) resolve() State {
	return Resolve(c.motion, c.ground.Check(), c.body.Velocity().Y, c.clock.Now())
}

func (c *Controller) applyHorizontalMovement() {
	x := c.motion.HorizontalInput
	c.body.SetVelocity(AxisX, x*c.cfg.WalkSpeed)

	// The walk visual is issued every tick regardless of the resolved state;
	// jump and fall crossfades later in the tick take precedence.
	walking := x != 0
	c.anim.SetBool(ParamWalk, walking)
	if walking {
		c.anim.CrossFade(Walk.String(), 0, BaseLayer)
	} else {
		c.anim.CrossFade(Idle.String(), 0, BaseLayer)
	}
}

func (c *Controller) applyJump() {
	now := c.clock.Now()
	switch {
	case c.ground.Check() && c.input.ActionPressed(ActionJump):
		c.body.SetVelocity(AxisY, c.cfg.JumpForce)
		c.anim.SetTrigger(TriggerJump)
		c.anim.CrossFade(Jump.String(), 0, BaseLayer)
		c.motion.JumpTriggered = true
		c.motion.lock(Jump, now, c.cfg.Timings.JumpLock)
	case jumpHold(c.motion, now):
		c.motion.JumpTriggered = false
	default:
		c.motion.JumpTriggered = false
		c.motion.Current = c.resolve()
	}
}

func (c *Controller) applyFall() {
	vy := c.body.Velocity().Y
	if !c.ground.Check() && vy < 0 {
		c.anim.SetFloat(ParamFallSpeed, math.Abs(vy))
		if c.motion.Current != Fall {
			c.anim.CrossFade(Fall.String(), c.cfg.Timings.FallBlend, BaseLayer)
			c.motion.lock(Fall, c.clock.Now(), c.cfg.Timings.FallLock)
		}
		return
	}

	c.anim.SetFloat(ParamFallSpeed, 0)
	if c.motion.Current == Fall {
		c.anim.CrossFade(Idle.String(), c.cfg.Timings.LandBlend, BaseLayer)
		c.motion.lock(Idle, c.clock.Now(), c.cfg.Timings.LandLock)
	}
}

func (c *Controller) captureHorizontalInput() {
	c.motion.HorizontalInput = common.ClampAxis(c.input.Axis(AxisX))
}

func (c *Controller) applyFacing() {
	if x := c.motion.HorizontalInput; x != 0 {
		c.facing.SetFacing(common.Sign(x))
	}
}
