package main

import (
	"fmt"

	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/ecs/entity"
	"github.com/milk9111/jumpctl/ecs/system"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/physics"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
)

// sim runs the game's ECS schedule headless, one frame per fixed step.
type sim struct {
	world  *ecs.World
	loop   *ecs.Loop
	player ecs.Entity
	step   float64
	ticks  int
}

// Sample is one row of trajectory output. Y is up from the spawn floor.
type Sample struct {
	Step     int     `yaml:"step"`
	Time     float64 `yaml:"t"`
	X        float64 `yaml:"x"`
	Height   float64 `yaml:"height"`
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	Grounded bool    `yaml:"grounded"`
	Coyote   float64 `yaml:"coyote"`
	Buffer   float64 `yaml:"buffer"`
	Hold     float64 `yaml:"hold"`
}

func newSim(spec prefabs.ControllerSpec, lvl *levels.Level, src controller.InputSource, log zerolog.Logger) (*sim, error) {
	pw := physics.NewWorld(physics.Settings{Gravity: spec.Physics.Gravity, Iterations: spec.Physics.Iterations})
	if err := lvl.Build(pw); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	player, err := entity.NewPlayer(w, pw, entity.PlayerOptions{
		Spec:   spec,
		Level:  lvl,
		Source: src,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	return &sim{
		world:  w,
		loop:   system.NewLoop(pw, spec.Physics.FixedStep, spec.Physics.MaxSteps, log),
		player: player,
		step:   spec.Physics.FixedStep,
	}, nil
}

func (s *sim) tick() {
	s.ticks += s.loop.Advance(s.world, s.step)
}

// settle idles until the player is grounded, up to limit ticks.
func (s *sim) settle(limit int) error {
	for i := 0; i < limit; i++ {
		s.tick()
		if s.sample(0).Grounded && i > 0 {
			return nil
		}
	}
	return fmt.Errorf("jumpsim: player never landed after %d steps", limit)
}

func (s *sim) setInput(src controller.InputSource) error {
	return entity.SetInputSource(s.world, s.player, src)
}

// sample reads the current state; floorY is the world y heights are measured
// from.
func (s *sim) sample(floorY float64) Sample {
	out := Sample{Step: s.ticks, Time: float64(s.ticks) * s.step}
	if t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind()); ok {
		out.X = t.X
		out.Height = floorY - t.Y
	}
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok && p.Controller != nil {
		tel := p.Controller.Telemetry()
		out.VY = tel.VerticalSpeed
		out.Grounded = p.Controller.Grounded()
		out.Coyote = tel.CoyoteRemaining
		out.Buffer = tel.BufferRemaining
		out.Hold = tel.HoldElapsed
	}
	if b, ok := ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind()); ok {
		out.VX, _ = b.Body.Velocity()
	}
	return out
}

func (s *sim) y() float64 {
	t, _ := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	return t.Y
}
