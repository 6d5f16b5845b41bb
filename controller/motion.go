package controller

// MotionCommand is the single per-tick request handed to the physics body.
// Nil pointers mean "leave untouched".
type MotionCommand struct {
	HorizontalVelocity       float64
	VerticalVelocityOverride *float64
	Impulse                  *float64
	SustainedForce           *float64
}

// Fired reports whether the command carries a jump.
func (c MotionCommand) Fired() bool {
	return c.Impulse != nil
}

// Sustaining reports whether the command carries variable-jump force.
func (c MotionCommand) Sustaining() bool {
	return c.SustainedForce != nil
}

// MotionIntegrator folds horizontal input, the speed modifier and the jump
// decision into a MotionCommand. It holds no state.
type MotionIntegrator struct{}

func (MotionIntegrator) Update(horizontal float64, sprint bool, d JumpDecision, cfg Config) MotionCommand {
	speed := cfg.WalkSpeed
	if sprint {
		speed = cfg.SprintSpeed
	}

	cmd := MotionCommand{HorizontalVelocity: clampAxis(horizontal) * speed}
	if d.Fire {
		cmd.VerticalVelocityOverride = float64Ptr(0)
		cmd.Impulse = float64Ptr(cfg.JumpImpulse)
	}
	if d.Sustain {
		cmd.SustainedForce = float64Ptr(cfg.SustainForce)
	}
	return cmd
}

func clampAxis(v float64) float64 {
	if v != v {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func float64Ptr(v float64) *float64 {
	return &v
}
