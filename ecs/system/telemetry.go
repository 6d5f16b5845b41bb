package system

import (
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
)

type TelemetrySystem struct{}

func NewTelemetrySystem() *TelemetrySystem {
	return &TelemetrySystem{}
}

func (s *TelemetrySystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TelemetryComponent.Kind(), func(_ ecs.Entity, player *component.Player, tel *component.Telemetry) {
		if player.Controller == nil {
			return
		}
		tel.Telemetry = player.Controller.Telemetry()
		tel.Steps++
	})
}
