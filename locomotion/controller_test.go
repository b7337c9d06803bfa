package locomotion

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewRejectsMissingCollaborators(t *testing.T) {
	_, err := New(DefaultConfig(5, 10), Deps{})
	if err == nil {
		t.Fatal("expected error for empty deps")
	}
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("expected ErrMissingCollaborator, got %v", err)
	}
	for _, name := range []string{"input source", "ground check", "rigid body", "animator", "clock"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name %q", err, name)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	deps := Deps{
		Input:    &fakeInput{},
		Ground:   &fakeGround{},
		Body:     &fakeBody{},
		Animator: newFakeAnimator(),
		Clock:    &fakeClock{},
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative_walk_speed", func(c *Config) { c.WalkSpeed = -1 }},
		{"nan_jump_force", func(c *Config) { c.JumpForce = math.NaN() }},
		{"inf_walk_speed", func(c *Config) { c.WalkSpeed = math.Inf(1) }},
		{"negative_jump_lock", func(c *Config) { c.Timings.JumpLock = -time.Millisecond }},
		{"negative_state_blend", func(c *Config) { c.Timings.StateBlend = -time.Second }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig(5, 10)
			c.mutate(&cfg)
			_, err := New(cfg, deps)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if errors.Is(err, ErrMissingCollaborator) {
				t.Fatalf("did not expect ErrMissingCollaborator, got %v", err)
			}
		})
	}
}

func TestNewWithoutFacing(t *testing.T) {
	ctrl, err := New(DefaultConfig(5, 10), Deps{
		Input:    &fakeInput{axis: -1},
		Ground:   &fakeGround{grounded: true},
		Body:     &fakeBody{},
		Animator: newFakeAnimator(),
		Clock:    &fakeClock{},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctrl.RenderStep()
	if ctrl.State() != Walk {
		t.Fatalf("state = %s, want Walk", ctrl.State())
	}
}

func TestNewStartsIdleUnlocked(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.ctrl.Motion(); got != (MotionState{Current: Idle}) {
		t.Fatalf("initial motion = %+v", got)
	}
}

func TestRenderStepWalkAndFacing(t *testing.T) {
	cases := []struct {
		name   string
		axis   float64
		facing float64
	}{
		{"full_right", 1, 1},
		{"full_left", -1, -1},
		{"partial_right", 0.4, 1},
		{"partial_left", -0.2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := newRig(5, 10)
			if err != nil {
				t.Fatal(err)
			}
			r.input.axis = c.axis
			r.ctrl.RenderStep()

			if r.ctrl.State() != Walk {
				t.Fatalf("state = %s, want Walk", r.ctrl.State())
			}
			if r.facing.scaleX != c.facing {
				t.Fatalf("facing = %v, want %v", r.facing.scaleX, c.facing)
			}
			want := crossFade{clip: "Walk", duration: 350 * time.Millisecond, layer: BaseLayer}
			if got := r.anim.lastCrossFade(); got != want {
				t.Fatalf("crossfade = %+v, want %+v", got, want)
			}
		})
	}
}

func TestRenderStepIdleWithoutInput(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.ctrl.RenderStep()

	if r.ctrl.State() != Idle {
		t.Fatalf("state = %s, want Idle", r.ctrl.State())
	}
	if len(r.anim.crossFades) != 0 {
		t.Fatalf("expected no crossfade, got %+v", r.anim.crossFades)
	}
	if r.facing.calls != 0 {
		t.Fatalf("facing should not change without input")
	}
}

func TestRenderStepIdempotent(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.input.axis = 1
	r.ctrl.RenderStep()
	if len(r.anim.crossFades) != 1 {
		t.Fatalf("expected one crossfade after first render, got %d", len(r.anim.crossFades))
	}
	r.ctrl.RenderStep()
	if len(r.anim.crossFades) != 1 {
		t.Fatalf("second render issued extra crossfades: %+v", r.anim.crossFades)
	}
}

func TestRenderStepClampsAxis(t *testing.T) {
	cases := []struct {
		name string
		axis float64
		want float64
	}{
		{"above_range", 3, 1},
		{"below_range", -7, -1},
		{"nan", math.NaN(), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := newRig(5, 10)
			if err != nil {
				t.Fatal(err)
			}
			r.input.axis = c.axis
			r.ctrl.RenderStep()
			r.ctrl.PhysicsStep()

			if got := r.ctrl.Motion().HorizontalInput; got != c.want {
				t.Fatalf("horizontal input = %v, want %v", got, c.want)
			}
			if got := r.body.v.X; got != c.want*5 {
				t.Fatalf("velocity x = %v, want %v", got, c.want*5)
			}
		})
	}
}

func TestPhysicsStepDrivesWalkVisualEveryTick(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.input.axis = 0.5
	r.ctrl.RenderStep()

	for i := 0; i < 3; i++ {
		r.ctrl.PhysicsStep()
	}

	if r.body.v.X != 2.5 {
		t.Fatalf("velocity x = %v, want 2.5", r.body.v.X)
	}
	if !r.anim.bools[ParamWalk] {
		t.Fatalf("walk flag should be set")
	}
	walkVisuals := 0
	for _, cf := range r.anim.blendsOf(0) {
		if cf.clip == "Walk" {
			walkVisuals++
		}
	}
	if walkVisuals != 3 {
		t.Fatalf("expected 3 zero-duration Walk crossfades, got %d", walkVisuals)
	}

	r.input.axis = 0
	r.ctrl.RenderStep()
	r.ctrl.PhysicsStep()
	if r.anim.bools[ParamWalk] {
		t.Fatalf("walk flag should be cleared")
	}
	if got := r.anim.lastCrossFade(); got.clip != "Idle" || got.duration != 0 {
		t.Fatalf("last crossfade = %+v, want zero-duration Idle", got)
	}
}

func TestJumpInitiationAndLock(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.clock.now = time.Second
	r.input.jump = true
	r.ctrl.PhysicsStep()

	m := r.ctrl.Motion()
	if r.body.v.Y != 10 {
		t.Fatalf("velocity y = %v, want 10", r.body.v.Y)
	}
	if m.Current != Jump || !m.JumpTriggered {
		t.Fatalf("motion after jump = %+v", m)
	}
	if m.LockedUntil != 1200*time.Millisecond {
		t.Fatalf("locked until = %s, want 1.2s", m.LockedUntil)
	}
	if len(r.anim.triggers) != 1 || r.anim.triggers[0] != TriggerJump {
		t.Fatalf("triggers = %v", r.anim.triggers)
	}
	if got := r.anim.lastCrossFade(); got != (crossFade{clip: "Jump"}) {
		t.Fatalf("crossfade = %+v, want immediate Jump", got)
	}

	// Inside the lock window the flag clears but the label stays Jump, even
	// once the body stops rising.
	r.input.jump = false
	r.body.v.Y = 0
	for _, at := range []int{1050, 1100, 1150, 1199} {
		r.clock.now = ms(at)
		r.ctrl.PhysicsStep()
		m := r.ctrl.Motion()
		if m.JumpTriggered {
			t.Fatalf("t=%dms: jump flag should be cleared", at)
		}
		if m.Current != Jump {
			t.Fatalf("t=%dms: state = %s, want Jump", at, m.Current)
		}
	}

	r.clock.now = ms(1250)
	r.ctrl.PhysicsStep()
	if r.ctrl.State() != Idle {
		t.Fatalf("after lock: state = %s, want Idle", r.ctrl.State())
	}
	if len(r.anim.triggers) != 1 {
		t.Fatalf("jump trigger fired %d times", len(r.anim.triggers))
	}
}

func TestJumpIgnoredWhenAirborne(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.ground.grounded = false
	r.input.jump = true
	r.ctrl.PhysicsStep()

	if r.body.v.Y != 0 {
		t.Fatalf("velocity y = %v, want 0", r.body.v.Y)
	}
	if len(r.anim.triggers) != 0 {
		t.Fatalf("unexpected triggers %v", r.anim.triggers)
	}
	if r.ctrl.Motion().JumpTriggered {
		t.Fatalf("jump flag should not be set while airborne")
	}
}

func TestConcreteJumpScenario(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}

	r.ctrl.RenderStep()
	r.ctrl.PhysicsStep()
	if r.ctrl.State() != Idle || r.body.v.X != 0 {
		t.Fatalf("start: state=%s vx=%v", r.ctrl.State(), r.body.v.X)
	}

	r.clock.now = ms(20)
	r.input.jump = true
	r.ctrl.PhysicsStep()
	if r.body.v.Y != 10 || r.ctrl.State() != Jump {
		t.Fatalf("jump: state=%s vy=%v", r.ctrl.State(), r.body.v.Y)
	}
	if got := r.ctrl.Motion().LockedUntil; got != ms(220) {
		t.Fatalf("jump lock = %s, want 220ms", got)
	}
	r.input.jump = false

	r.clock.now = ms(120)
	r.ground.grounded = false
	r.body.v.Y = 6
	r.ctrl.PhysicsStep()
	if r.ctrl.State() != Jump {
		t.Fatalf("rising: state = %s, want Jump", r.ctrl.State())
	}
	if r.ctrl.Motion().JumpTriggered {
		t.Fatalf("rising: jump flag should be cleared")
	}

	r.clock.now = ms(320)
	r.body.v.Y = -3
	r.ctrl.PhysicsStep()
	if r.ctrl.State() != Fall {
		t.Fatalf("falling: state = %s, want Fall", r.ctrl.State())
	}
	if got := r.anim.floats[ParamFallSpeed]; got != 3 {
		t.Fatalf("fall speed = %v, want 3", got)
	}
}

// hopIntoFall jumps at t=0 and starts falling at t=100ms, inside the jump
// lock, which locks Fall until t=300ms.
func hopIntoFall(t *testing.T) *rig {
	t.Helper()
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.input.jump = true
	r.ctrl.PhysicsStep()
	r.input.jump = false

	r.clock.now = ms(100)
	r.ground.grounded = false
	r.body.v.Y = -1
	r.ctrl.PhysicsStep()

	m := r.ctrl.Motion()
	if m.Current != Fall {
		t.Fatalf("state = %s, want Fall", m.Current)
	}
	if m.LockedUntil != ms(300) {
		t.Fatalf("fall lock = %s, want 300ms", m.LockedUntil)
	}
	if got := r.anim.lastCrossFade(); got != (crossFade{clip: "Fall", duration: 100 * time.Millisecond}) {
		t.Fatalf("crossfade = %+v, want Fall over 100ms", got)
	}
	return r
}

func TestFallHoldSurvivesGroundFlicker(t *testing.T) {
	r := hopIntoFall(t)
	before := len(r.anim.crossFades)

	r.ground.grounded = true
	r.body.v.Y = 0
	r.input.axis = 1
	for _, at := range []int{150, 299} {
		r.clock.now = ms(at)
		r.ctrl.RenderStep()
		if r.ctrl.State() != Fall {
			t.Fatalf("t=%dms: state = %s, want Fall", at, r.ctrl.State())
		}
	}
	if len(r.anim.crossFades) != before {
		t.Fatalf("render issued crossfades during the fall hold: %+v", r.anim.crossFades[before:])
	}

	r.clock.now = ms(300)
	r.ctrl.RenderStep()
	if r.ctrl.State() != Walk {
		t.Fatalf("after hold: state = %s, want Walk", r.ctrl.State())
	}
}

func TestLandingInsideFallLockPassesThroughIdle(t *testing.T) {
	r := hopIntoFall(t)

	r.clock.now = ms(120)
	r.input.axis = 1
	r.ctrl.RenderStep()

	var seen []State
	r.ground.grounded = true
	r.body.v.Y = 0
	for _, at := range []int{150, 170, 190} { // fall lock ends at 300ms
		r.clock.now = ms(at)
		r.ctrl.PhysicsStep()
		seen = append(seen, r.ctrl.State())
	}

	want := []State{Idle, Walk, Walk}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("states = %v, want %v", seen, want)
		}
	}
	land := r.anim.blendsOf(100 * time.Millisecond)
	if len(land) != 2 || land[1].clip != "Idle" {
		t.Fatalf("expected Fall then Idle 100ms crossfades, got %+v", land)
	}
}

func TestLandingAfterFallLockResolvesDirectly(t *testing.T) {
	r := hopIntoFall(t)

	r.clock.now = ms(150)
	r.input.axis = 1
	r.ctrl.RenderStep()

	r.clock.now = ms(500)
	r.ground.grounded = true
	r.body.v.Y = 0
	r.ctrl.PhysicsStep()

	if r.ctrl.State() != Walk {
		t.Fatalf("state = %s, want Walk", r.ctrl.State())
	}
	if land := r.anim.blendsOf(100 * time.Millisecond); len(land) != 1 {
		t.Fatalf("expected only the Fall crossfade, got %+v", land)
	}
}

func TestWalkingOffLedgeFallsWithoutLock(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.input.axis = 1
	r.ctrl.RenderStep()
	r.clock.now = ms(50)
	r.ctrl.PhysicsStep()
	if r.ctrl.State() != Walk {
		t.Fatalf("state = %s, want Walk", r.ctrl.State())
	}

	r.ground.grounded = false
	r.body.v.Y = -1
	r.clock.now = ms(70)
	r.ctrl.PhysicsStep()

	// the jump branch recompute reaches Fall first, so the fall branch
	// neither locks nor crossfades
	if r.ctrl.State() != Fall {
		t.Fatalf("state = %s, want Fall", r.ctrl.State())
	}
	if m := r.ctrl.Motion(); m.LockedUntil != 0 {
		t.Fatalf("locked until %v, want unlocked", m.LockedUntil)
	}
	if blends := r.anim.blendsOf(100 * time.Millisecond); len(blends) != 0 {
		t.Fatalf("unexpected fall crossfade: %+v", blends)
	}
	if got := r.anim.floats[ParamFallSpeed]; got != 1 {
		t.Fatalf("fall speed = %v, want 1", got)
	}
	if r.body.v.X != 5 {
		t.Fatalf("vx = %v, want walking speed kept", r.body.v.X)
	}
}

func TestReconfigure(t *testing.T) {
	r, err := newRig(5, 10)
	if err != nil {
		t.Fatal(err)
	}
	r.input.axis = 1
	r.ctrl.RenderStep()

	bad := DefaultConfig(-2, 10)
	if err := r.ctrl.Reconfigure(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if r.ctrl.Config().WalkSpeed != 5 {
		t.Fatalf("walk speed changed on rejected config")
	}

	if err := r.ctrl.Reconfigure(DefaultConfig(8, 12)); err != nil {
		t.Fatalf("Reconfigure() error: %v", err)
	}
	if r.ctrl.State() != Walk {
		t.Fatalf("reconfigure should keep motion state, got %s", r.ctrl.State())
	}
	r.ctrl.PhysicsStep()
	if r.body.v.X != 8 {
		t.Fatalf("velocity x = %v, want 8", r.body.v.X)
	}
}
