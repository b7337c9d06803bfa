package component

// ScriptInput drives an entity's Input from a tengo script instead of the
// keyboard. Source is the script text; Name is used in error messages.
// Revision changes whenever Source is replaced.
type ScriptInput struct {
	Name     string
	Source   []byte
	Revision int
	Tick     int
}

var ScriptInputComponent = NewComponent[ScriptInput]()
