package component

// Input stores sampled input for an entity. JumpPressed is latched by the
// sampling system and cleared by the first physics tick that reads it, so a
// press is never lost when a frame runs no fixed steps.
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// Sample stores one frame's reading. A press stays latched until cleared.
func (in *Input) Sample(moveX float64, jump, jumpPressed bool) {
	in.MoveX = moveX
	in.Jump = jump
	in.JumpPressed = in.JumpPressed || jumpPressed
}
