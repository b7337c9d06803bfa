package locomotion

// State is one of the four mutually exclusive locomotion states.
type State uint8

const (
	Idle State = iota
	Walk
	Jump
	Fall
)

// String returns the animation clip identifier for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Walk:
		return "Walk"
	case Jump:
		return "Jump"
	case Fall:
		return "Fall"
	default:
		return "Unknown"
	}
}

// Animation parameter names driven by the controller.
const (
	ParamWalk      = "Walk"
	ParamFallSpeed = "FallSpeed"
	TriggerJump    = "Jump"
)

// BaseLayer is the animation layer every crossfade targets.
const BaseLayer = 0
