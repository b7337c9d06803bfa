package locomotion

import "time"

type fakeInput struct {
	axis float64
	jump bool
}

func (f *fakeInput) Axis(axis Axis) float64 {
	if axis != AxisX {
		return 0
	}
	return f.axis
}

func (f *fakeInput) ActionPressed(action Action) bool {
	return action == ActionJump && f.jump
}

type fakeGround struct {
	grounded bool
	checks   int
}

func (f *fakeGround) Check() bool {
	f.checks++
	return f.grounded
}

type fakeBody struct {
	v Vector
}

func (f *fakeBody) Velocity() Vector {
	return f.v
}

func (f *fakeBody) SetVelocity(axis Axis, value float64) {
	switch axis {
	case AxisX:
		f.v.X = value
	case AxisY:
		f.v.Y = value
	}
}

type crossFade struct {
	clip     string
	duration time.Duration
	layer    int
}

type fakeAnimator struct {
	crossFades []crossFade
	triggers   []string
	floats     map[string]float64
	bools      map[string]bool
}

func newFakeAnimator() *fakeAnimator {
	return &fakeAnimator{
		floats: map[string]float64{},
		bools:  map[string]bool{},
	}
}

func (f *fakeAnimator) CrossFade(clip string, duration time.Duration, layer int) {
	f.crossFades = append(f.crossFades, crossFade{clip: clip, duration: duration, layer: layer})
}

func (f *fakeAnimator) SetTrigger(name string) {
	f.triggers = append(f.triggers, name)
}

func (f *fakeAnimator) SetFloat(name string, value float64) {
	f.floats[name] = value
}

func (f *fakeAnimator) SetBool(name string, value bool) {
	f.bools[name] = value
}

// lastCrossFade returns the most recent crossfade, or a zero value.
func (f *fakeAnimator) lastCrossFade() crossFade {
	if len(f.crossFades) == 0 {
		return crossFade{}
	}
	return f.crossFades[len(f.crossFades)-1]
}

// blendsOf returns the crossfades issued with duration d.
func (f *fakeAnimator) blendsOf(d time.Duration) []crossFade {
	var out []crossFade
	for _, cf := range f.crossFades {
		if cf.duration == d {
			out = append(out, cf)
		}
	}
	return out
}

type fakeClock struct {
	now time.Duration
}

func (f *fakeClock) Now() time.Duration {
	return f.now
}

type fakeFacer struct {
	scaleX float64
	calls  int
}

func (f *fakeFacer) SetFacing(scaleX float64) {
	f.scaleX = scaleX
	f.calls++
}

type rig struct {
	input  *fakeInput
	ground *fakeGround
	body   *fakeBody
	anim   *fakeAnimator
	clock  *fakeClock
	facing *fakeFacer
	ctrl   *Controller
}

func newRig(walkSpeed, jumpForce float64) (*rig, error) {
	r := &rig{
		input:  &fakeInput{},
		ground: &fakeGround{grounded: true},
		body:   &fakeBody{},
		anim:   newFakeAnimator(),
		clock:  &fakeClock{},
		facing: &fakeFacer{scaleX: 1},
	}
	ctrl, err := New(DefaultConfig(walkSpeed, jumpForce), Deps{
		Input:    r.input,
		Ground:   r.ground,
		Body:     r.body,
		Animator: r.anim,
		Clock:    r.clock,
		Facing:   r.facing,
	})
	if err != nil {
		return nil, err
	}
	r.ctrl = ctrl
	return r, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
