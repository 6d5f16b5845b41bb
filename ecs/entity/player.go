package entity

import (
	"fmt"

	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/physics"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
)

// PlayerOptions describes everything a player entity is assembled from.
type PlayerOptions struct {
	Spec   prefabs.ControllerSpec
	Level  *levels.Level
	Source controller.InputSource
	Logger zerolog.Logger
}

// groundAware is implemented by input sources that want to see the probe.
type groundAware interface {
	SetProbe(controller.GroundProbe)
}

// NewPlayer spawns the controlled body at the level's spawn point, attaches
// the configured ground probe and wires a controller to both.
func NewPlayer(w *ecs.World, pw *physics.World, opts PlayerOptions) (ecs.Entity, error) {
	if w == nil || pw == nil || opts.Level == nil || opts.Source == nil {
		return 0, fmt.Errorf("player: %w", controller.ErrNilCollaborator)
	}
	spec := opts.Spec
	lvl := opts.Level

	spawnY := lvl.SpawnY - spec.Body.Height/2
	body := pw.AddBody(physics.BodySpec{
		X:        lvl.SpawnX,
		Y:        spawnY,
		Width:    spec.Body.Width,
		Height:   spec.Body.Height,
		Mass:     spec.Body.Mass,
		Friction: spec.Body.Friction,
	})

	probe, gizmo, err := newGroundProbe(pw, lvl, body, spec.GroundCheck)
	if err != nil {
		return 0, err
	}
	if ga, ok := opts.Source.(groundAware); ok {
		ga.SetProbe(probe)
	}

	e := ecs.CreateEntity(w)
	in := &component.Input{Source: opts.Source}
	ctrl, err := newController(spec, body, probe, in, opts.Logger)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	killY := spec.Body.KillY
	if killY <= 0 {
		killY = lvl.Height + spec.Body.Height
	}

	x, y := body.Position()
	adds := []func() error{
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), in) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
				Controller: ctrl,
				SpawnX:     lvl.SpawnX,
				SpawnY:     spawnY,
				KillY:      killY,
			})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Body:   body,
				Width:  spec.Body.Width,
				Height: spec.Body.Height,
			})
		},
		func() error {
			return ecs.Add(w, e, component.GroundCheckComponent.Kind(), &component.GroundCheck{
				Probe: probe,
				Gizmo: gizmo,
				Layer: spec.GroundCheck.Layer,
				Kind:  spec.GroundCheck.Probe,
			})
		},
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, PrevX: x, PrevY: y}) },
		func() error { return ecs.Add(w, e, component.TelemetryComponent.Kind(), &component.Telemetry{}) },
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("player: add component: %w", err)
		}
	}

	opts.Logger.Info().
		Str("probe", spec.GroundCheck.Probe).
		Float64("x", x).
		Float64("y", y).
		Msg("player spawned")
	return e, nil
}

// ReloadController swaps the player's controller for one built from spec.
// Body and probe geometry are kept; timers start fresh.
func ReloadController(w *ecs.World, e ecs.Entity, spec prefabs.ControllerSpec, log zerolog.Logger) error {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: reload: missing player component")
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return fmt.Errorf("player: reload: missing physics body")
	}
	gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind())
	if !ok {
		return fmt.Errorf("player: reload: missing ground check")
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return fmt.Errorf("player: reload: missing input")
	}

	ctrl, err := newController(spec, body.Body, gc.Probe, in, log)
	if err != nil {
		return err
	}
	player.Controller = ctrl
	return nil
}

// SetInputSource replaces where the player's input comes from.
func SetInputSource(w *ecs.World, e ecs.Entity, src controller.InputSource) error {
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return fmt.Errorf("player: set input: missing input")
	}
	if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
		if ga, ok := src.(groundAware); ok {
			ga.SetProbe(gc.Probe)
		}
	}
	in.Source = src
	in.Input = controller.Input{}
	return nil
}

func newController(spec prefabs.ControllerSpec, body controller.Body, probe controller.GroundProbe, in *component.Input, log zerolog.Logger) (*controller.Controller, error) {
	// The controller reads the frame's snapshot rather than polling the
	// source a second time.
	snapshot := controller.InputFunc(func() controller.Input { return in.Input })
	ctrl, err := controller.New(spec.Config(), body, probe, snapshot, controller.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("player: controller: %w", err)
	}
	return ctrl, nil
}

func newGroundProbe(pw *physics.World, lvl *levels.Level, body *physics.Body, gc prefabs.GroundCheckSpec) (controller.GroundProbe, physics.Gizmo, error) {
	layer := gc.Layer
	if layer == "" {
		layer = "ground"
	}
	mask, err := physics.LayerByName(layer)
	if err != nil {
		return nil, nil, fmt.Errorf("player: ground check: %w", err)
	}
	ps := physics.NormalizeProbe(body, physics.ProbeSpec{
		Width:   gc.Width,
		Height:  gc.Height,
		OffsetY: gc.OffsetY,
		Mask:    mask,
	})

	switch gc.Probe {
	case prefabs.ProbeSensor, "":
		p := pw.NewContactProbe(body, ps)
		return p, p, nil
	case prefabs.ProbeBox:
		p := pw.NewBoxProbe(body, ps)
		return p, p, nil
	case prefabs.ProbeResolv:
		p := levels.NewOverlapProbe(lvl.CollisionSpace(), body, ps.Width, ps.Height, ps.OffsetY, layer)
		return p, p, nil
	}
	return nil, nil, fmt.Errorf("player: ground check: unknown probe %q", gc.Probe)
}
