package component

import "github.com/milk9111/jumpctl/controller"

// Player marks the controlled character and carries its controller.
type Player struct {
	Controller *controller.Controller
	SpawnX     float64
	SpawnY     float64
	// KillY is the world y below which the player respawns.
	KillY float64
}

var PlayerComponent = NewComponent[Player]()

// Telemetry is the debug readout refreshed after every fixed step.
type Telemetry struct {
	controller.Telemetry
	Steps int
}

var TelemetryComponent = NewComponent[Telemetry]()
