package controller

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Facing is the presentational direction derived from horizontal input.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Telemetry is a read-only view of the controller and its body.
type Telemetry struct {
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	VerticalSpeed   float64 `yaml:"vertical_speed"`
	Grounded        bool    `yaml:"grounded"`
	CoyoteRemaining float64 `yaml:"coyote_remaining"`
	BufferRemaining float64 `yaml:"buffer_remaining"`
	HoldElapsed     float64 `yaml:"hold_elapsed"`
	Facing          string  `yaml:"facing"`
}

type Option func(*Controller)

// WithLogger routes jump events to l at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller drives one body from one input source.
//
// It exposes two hooks that must be driven at different cadences: Decide once
// per rendered frame, Apply once per fixed physics step.
type Controller struct {
	cfg   Config
	body  Body
	probe GroundProbe
	input InputSource
	log   zerolog.Logger

	ground GroundSensor
	jump   JumpArbiter
	motion MotionIntegrator

	grounded   bool
	sustaining bool
	facing     Facing

	pending    MotionCommand
	hasPending bool
}

// New validates cfg and wires the collaborators.
func New(cfg Config, body Body, probe GroundProbe, input InputSource, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case body == nil:
		return nil, fmt.Errorf("%w: body", ErrNilCollaborator)
	case probe == nil:
		return nil, fmt.Errorf("%w: ground probe", ErrNilCollaborator)
	case input == nil:
		return nil, fmt.Errorf("%w: input source", ErrNilCollaborator)
	}

	c := &Controller{
		cfg:   cfg,
		body:  body,
		probe: probe,
		input: input,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the controller's immutable tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// Decide samples input and ground state, runs the jump state machine and
// latches the resulting command for the next Apply. dt is the frame time.
func (c *Controller) Decide(dt float64) MotionCommand {
	in := c.input.Poll()

	grounded, coyote := c.ground.Update(c.probe.Grounded(), dt, c.cfg.CoyoteDuration)
	c.grounded = grounded

	_, vy := c.body.Velocity()
	d := c.jump.Update(JumpInput{Pressed: in.JumpPressed, Held: in.JumpHeld}, dt, grounded, coyote, vy, c.cfg)
	cmd := c.motion.Update(in.Horizontal, in.Sprint, d, c.cfg)

	if in.Horizontal < 0 {
		c.facing = FacingLeft
	} else if in.Horizontal > 0 {
		c.facing = FacingRight
	}

	if d.Fire {
		c.log.Debug().
			Bool("grounded", grounded).
			Float64("coyote", coyote).
			Float64("vy", vy).
			Msg("jump fired")
	}
	if c.sustaining && !d.Sustain {
		c.log.Debug().Float64("hold", c.jump.HoldElapsed()).Msg("jump sustain ended")
	}
	c.sustaining = d.Sustain

	// A jump decided on an earlier frame that no physics step has consumed yet
	// must still reach the body.
	if !cmd.Fired() && c.hasPending && c.pending.Fired() {
		cmd.VerticalVelocityOverride = c.pending.VerticalVelocityOverride
		cmd.Impulse = c.pending.Impulse
	}
	c.pending = cmd
	c.hasPending = true
	return cmd
}

// Apply hands the latched command to the body: vertical override, horizontal
// velocity, impulse, then sustained force for dt. Override and impulse are
// consumed; horizontal velocity and sustain stay latched until the next
// Decide.
func (c *Controller) Apply(dt float64) {
	if !c.hasPending {
		return
	}
	cmd := c.pending

	if cmd.VerticalVelocityOverride != nil {
		x, _ := c.body.Velocity()
		c.body.SetVelocity(x, *cmd.VerticalVelocityOverride)
	}
	_, y := c.body.Velocity()
	c.body.SetVelocity(cmd.HorizontalVelocity, y)
	if cmd.Impulse != nil {
		c.body.ApplyImpulse(*cmd.Impulse)
	}
	if cmd.SustainedForce != nil {
		c.body.ApplyForce(*cmd.SustainedForce, dt)
	}

	c.pending.VerticalVelocityOverride = nil
	c.pending.Impulse = nil
}

// Pending returns the command the next Apply will use.
func (c *Controller) Pending() (MotionCommand, bool) {
	return c.pending, c.hasPending
}

// Grounded reports the ground state seen by the last Decide.
func (c *Controller) Grounded() bool {
	return c.grounded
}

// Facing reports the direction of the last non-zero horizontal input.
func (c *Controller) Facing() Facing {
	return c.facing
}

func (c *Controller) Telemetry() Telemetry {
	vx, vy := c.body.Velocity()
	return Telemetry{
		HorizontalSpeed: math.Abs(vx),
		VerticalSpeed:   vy,
		Grounded:        c.grounded,
		CoyoteRemaining: c.ground.CoyoteRemaining(),
		BufferRemaining: c.jump.BufferRemaining(),
		HoldElapsed:     c.jump.HoldElapsed(),
		Facing:          c.facing.String(),
	}
}

// Reset drops all timers and any latched command.
func (c *Controller) Reset() {
	c.ground.reset()
	c.jump.reset()
	c.grounded = false
	c.sustaining = false
	c.pending = MotionCommand{}
	c.hasPending = false
}
