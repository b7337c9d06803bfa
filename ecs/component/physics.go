package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are created lazily by the physics system.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// GroundSensor tracks contacts reported by the sensor under a dynamic body.
type GroundSensor struct {
	Shape    *cp.Shape
	Contacts int
	Grounded bool
}

var GroundSensorComponent = NewComponent[GroundSensor]()
