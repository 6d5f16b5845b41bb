package component

import (
	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/physics"
)

// PhysicsBody links an entity to its Chipmunk2D body.
type PhysicsBody struct {
	Body   *physics.Body
	Width  float64
	Height float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// GroundCheck holds the probe that feeds the controller and its gizmo bounds.
type GroundCheck struct {
	Probe  controller.GroundProbe
	Gizmo  physics.Gizmo
	Layer  string
	Kind   string
	Latest bool
}

var GroundCheckComponent = NewComponent[GroundCheck]()
