package locomotion

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Timings holds the lock windows and crossfade durations.
type Timings struct {
	JumpLock   time.Duration
	FallLock   time.Duration
	LandLock   time.Duration
	FallBlend  time.Duration
	LandBlend  time.Duration
	StateBlend time.Duration
}

// DefaultTimings returns the stock lock and blend durations.
func DefaultTimings() Timings {
	return Timings{
		JumpLock:   200 * time.Millisecond,
		FallLock:   200 * time.Millisecond,
		LandLock:   200 * time.Millisecond,
		FallBlend:  100 * time.Millisecond,
		LandBlend:  100 * time.Millisecond,
		StateBlend: 350 * time.Millisecond,
	}
}

// Config is the construction-time tuning of a Controller.
type Config struct {
	// WalkSpeed is the horizontal speed at full axis deflection, units/sec.
	WalkSpeed float64
	// JumpForce is the vertical velocity set when a jump starts.
	JumpForce float64
	Timings   Timings
}

// DefaultConfig returns a config with the given speeds and default timings.
func DefaultConfig(walkSpeed, jumpForce float64) Config {
	return Config{
		WalkSpeed: walkSpeed,
		JumpForce: jumpForce,
		Timings:   DefaultTimings(),
	}
}

// Validate rejects negative or non-finite values.
func (c Config) Validate() error {
	var errs []error
	checkFloat := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be a finite value >= 0, got %v", ErrInvalidConfig, name, v))
		}
	}
	checkDuration := func(name string, d time.Duration) {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %s", ErrInvalidConfig, name, d))
		}
	}

	checkFloat("walk speed", c.WalkSpeed)
	checkFloat("jump force", c.JumpForce)
	checkDuration("jump lock", c.Timings.JumpLock)
	checkDuration("fall lock", c.Timings.FallLock)
	checkDuration("land lock", c.Timings.LandLock)
	checkDuration("fall blend", c.Timings.FallBlend)
	checkDuration("land blend", c.Timings.LandBlend)
	checkDuration("state blend", c.Timings.StateBlend)

	return errors.Join(errs...)
}
