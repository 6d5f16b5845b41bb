package system

import (
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/rs/zerolog"
)

// RespawnSystem returns a player that fell below its kill line to the spawn
// point and resets its controller timers. It should run after PhysicsSystem
// so the transform is current.
type RespawnSystem struct {
	log zerolog.Logger
}

func NewRespawnSystem(log zerolog.Logger) *RespawnSystem {
	return &RespawnSystem{log: log}
}

func (s *RespawnSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, t *component.Transform) {
		if player.KillY <= 0 || t.Y < player.KillY {
			return
		}

		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil {
			return
		}
		body.Body.Teleport(player.SpawnX, player.SpawnY)
		t.X, t.Y = player.SpawnX, player.SpawnY
		t.PrevX, t.PrevY = t.X, t.Y
		if player.Controller != nil {
			player.Controller.Reset()
		}
		s.log.Info().Float64("x", player.SpawnX).Float64("y", player.SpawnY).Msg("player respawned")
	})
}
