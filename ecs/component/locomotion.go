package component

import "github.com/milk9111/locomotion/locomotion"

// Locomotion holds the controller driving an entity. Controller is nil until
// the locomotion system wires it to the entity's other components.
type Locomotion struct {
	Config     locomotion.Config
	Controller *locomotion.Controller
}

var LocomotionComponent = NewComponent[Locomotion]()
