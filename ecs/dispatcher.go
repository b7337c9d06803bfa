package ecs

import "time"

const (
	DefaultFixedStep = 20 * time.Millisecond
	DefaultMaxSteps  = 5
)

// Dispatcher runs one frame of the world in three phases: Sample systems
// once, Fixed systems zero or more times at a constant step, then Render
// systems once. The first frame always runs one fixed step so render
// systems never see a world that has not been simulated.
type Dispatcher struct {
	Sample *Scheduler
	Fixed  *Scheduler
	Render *Scheduler

	Step     time.Duration
	MaxSteps int

	acc     time.Duration
	stepped bool
}

func NewDispatcher(step time.Duration) *Dispatcher {
	if step <= 0 {
		step = DefaultFixedStep
	}
	return &Dispatcher{
		Sample:   NewScheduler(),
		Fixed:    NewScheduler(),
		Render:   NewScheduler(),
		Step:     step,
		MaxSteps: DefaultMaxSteps,
	}
}

// Frame advances the world by dt of wall time and returns the number of
// fixed steps executed. Time left over after MaxSteps is dropped.
func (d *Dispatcher) Frame(w *World, dt time.Duration) int {
	if d == nil || w == nil {
		return 0
	}
	if dt < 0 {
		dt = 0
	}
	w.fixedStep = d.Step
	w.frameDelta = dt

	d.Sample.Update(w)

	d.acc += dt
	steps := 0
	for d.acc >= d.Step && (d.MaxSteps <= 0 || steps < d.MaxSteps) {
		d.acc -= d.Step
		d.tick(w)
		steps++
	}
	if d.MaxSteps > 0 && steps == d.MaxSteps && d.acc >= d.Step {
		d.acc = 0
	}
	if !d.stepped {
		d.tick(w)
		steps++
	}

	d.Render.Update(w)
	w.events.flush()
	return steps
}

// Reset clears the accumulator and first-frame state.
func (d *Dispatcher) Reset() {
	if d == nil {
		return
	}
	d.acc = 0
	d.stepped = false
}

func (d *Dispatcher) tick(w *World) {
	w.clock.Advance(d.Step)
	d.Fixed.Update(w)
	d.stepped = true
}
