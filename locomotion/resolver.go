package locomotion

import "time"

// Resolve picks the state for the given snapshot. First match wins:
//
//  1. fall hold: locked and currently falling stays Fall
//  2. a jump started this tick is Jump
//  3. airborne is Fall
//  4. rising while grounded is Jump
//  5. Idle without horizontal input, Walk with it
//
// Resolve reads m and never mutates it.
func Resolve(m MotionState, grounded bool, verticalVelocity float64, now time.Duration) State {
	if fallHold(m, now) {
		return Fall
	}
	if m.JumpTriggered {
		return Jump
	}
	if !grounded {
		return Fall
	}
	if verticalVelocity > 0 {
		return Jump
	}
	if m.HorizontalInput == 0 {
		return Idle
	}
	return Walk
}

// fallHold is the resolver-level lock. Only Fall is protected here.
func fallHold(m MotionState, now time.Duration) bool {
	return m.Locked(now) && m.Current == Fall
}

// jumpHold is the physics-step lock for Jump. While it holds, the edge flag
// is consumed but the displayed state is left alone.
func jumpHold(m MotionState, now time.Duration) bool {
	return m.Locked(now) && m.Current == Jump
}
