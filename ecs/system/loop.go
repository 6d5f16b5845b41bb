package system

import (
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/physics"
	"github.com/rs/zerolog"
)

// NewLoop wires the standard schedule: input and decisions per frame; motion,
// physics, respawn and telemetry per fixed step.
func NewLoop(world *physics.World, step float64, maxSteps int, log zerolog.Logger) *ecs.Loop {
	loop := ecs.NewLoop(step, maxSteps)

	loop.Frame.Add(NewInputSystem())
	loop.Frame.Add(NewPlayerControllerSystem())

	loop.Fixed.Add(NewPlayerMotionSystem())
	loop.Fixed.Add(NewPhysicsSystem(world))
	loop.Fixed.Add(NewRespawnSystem(log))
	loop.Fixed.Add(NewTelemetrySystem())

	return loop
}
