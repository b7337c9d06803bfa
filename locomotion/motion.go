package locomotion

import "time"

// MotionState is the only memory the controller carries between ticks.
type MotionState struct {
	Current         State
	LockedUntil     time.Duration
	JumpTriggered   bool
	HorizontalInput float64
}

// Locked reports whether now falls inside the lock window.
func (m MotionState) Locked(now time.Duration) bool {
	return now < m.LockedUntil
}

// lock enters s and suppresses transitions until now+d.
func (m *MotionState) lock(s State, now, d time.Duration) {
	m.LockedUntil = now + d
	m.Current = s
}
