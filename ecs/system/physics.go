package system

import (
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/physics"
)

// PhysicsSystem steps the Chipmunk space and copies body positions back
// into transforms.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (p *PhysicsSystem) World() *physics.World {
	return p.world
}

func (p *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil || p.world == nil {
		return
	}

	p.world.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		t.PrevX, t.PrevY = t.X, t.Y
		t.X, t.Y = body.Body.Position()
	})
}
