package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/locomotion/ecs"
	"github.com/milk9111/locomotion/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeGround
	collisionTypeSolid
)

const (
	defaultGravity    = 30.0
	spaceIterations   = 20
	groundSensorDepth = 0.1
)

// PhysicsSystem owns a Chipmunk space mirroring every entity with a
// PhysicsBody and Transform. Y points up.
type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	contacts     map[ecs.Entity]int
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	static      bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	if gravity <= 0 || math.IsNaN(gravity) || math.IsInf(gravity, 0) {
		gravity = defaultGravity
	}
	ps := &PhysicsSystem{gravity: gravity}
	ps.Reset()
	return ps
}

// Reset drops every body and starts from an empty space.
func (ps *PhysicsSystem) Reset() {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: -ps.gravity})
	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]int)
}

// SetGravity changes gravity magnitude for subsequent steps.
func (ps *PhysicsSystem) SetGravity(g float64) {
	if ps == nil || g <= 0 || math.IsNaN(g) || math.IsInf(g, 0) {
		return
	}
	ps.gravity = g
	ps.space.SetGravity(cp.Vector{X: 0, Y: -g})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.resetContacts()

	dt := w.FixedStep().Seconds()
	if dt <= 0 {
		dt = ecs.DefaultFixedStep.Seconds()
	}
	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, ok := sys.groundShapes[shapeA]
		if !ok {
			if e, ok = sys.groundShapes[shapeB]; !ok {
				return true
			}
		}
		// any overlap with solid geometry counts, walls included
		sys.contacts[e]++
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if info := ps.entities[e]; info != nil {
			pb.Body = info.body
			pb.Shape = info.mainShape
			return
		}

		sensor, hasSensor := ecs.Get(w, e, component.GroundSensorComponent.Kind())
		info := ps.createBodyInfo(*tr, *pb, hasSensor)
		ps.entities[e] = info
		pb.Body = info.body
		pb.Shape = info.mainShape
		if hasSensor {
			sensor.Shape = info.groundShape
			ps.groundShapes[info.groundShape] = e
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(tr component.Transform, pb component.PhysicsBody, withSensor bool) *bodyInfo {
	width, height := pb.Width, pb.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	if pb.Static {
		bb := cp.BB{L: tr.X - width/2, B: tr.Y - height/2, R: tr.X + width/2, T: tr.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(pb.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, mainShape: shape, static: true}
	}

	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	// infinite moment keeps the character upright
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(pb.Friction)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info := &bodyInfo{body: body, mainShape: shape}
	if withSensor {
		info.groundShape = createGroundSensor(body, width, height)
		ps.space.AddShape(info.groundShape)
	}
	return info
}

// createGroundSensor places a thin sensor box just under the body's feet.
func createGroundSensor(body *cp.Body, width, height float64) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: -height/2 - groundSensorDepth,
		R: width * 0.45,
		T: -height / 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypeGround)
	return groundShape
}

func (ps *PhysicsSystem) resetContacts() {
	for e := range ps.contacts {
		ps.contacts[e] = 0
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.GroundSensorComponent.Kind(), func(e ecs.Entity, gs *component.GroundSensor) {
		gs.Contacts = ps.contacts[e]
		gs.Grounded = gs.Contacts > 0
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if pb.Static || pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		tr.X = pos.X
		tr.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.groundShape != nil {
			ps.space.RemoveShape(info.groundShape)
			delete(ps.groundShapes, info.groundShape)
		}
		if info.mainShape != nil {
			ps.space.RemoveShape(info.mainShape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
