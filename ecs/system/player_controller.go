package system

import (
	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
)

// PlayerControllerSystem runs the sense-and-decide half of each controller
// at frame rate.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.Controller == nil {
			return
		}
		player.Controller.Decide(dt)

		if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
			gc.Latest = player.Controller.Grounded()
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.FacingLeft = player.Controller.Facing() == controller.FacingLeft
		}
	})
}

// PlayerMotionSystem hands the latched command to the body once per fixed
// step. It must run before PhysicsSystem.
type PlayerMotionSystem struct{}

func NewPlayerMotionSystem() *PlayerMotionSystem {
	return &PlayerMotionSystem{}
}

func (p *PlayerMotionSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(_ ecs.Entity, player *component.Player) {
		if player.Controller != nil {
			player.Controller.Apply(dt)
		}
	})
}
