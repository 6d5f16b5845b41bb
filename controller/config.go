package controller

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfig   = errors.New("controller: invalid config")
	ErrNilCollaborator = errors.New("controller: nil collaborator")
)

// Config holds the tuning values of a controller. It is copied into the
// controller at construction and never changes afterwards.
type Config struct {
	WalkSpeed   float64
	SprintSpeed float64

	JumpImpulse  float64
	SustainForce float64

	CoyoteDuration  float64
	BufferDuration  float64
	MaxHoldDuration float64
}

// DefaultConfig returns the stock tuning: walk 10, sprint 15, impulse 10,
// sustain 5, and 0.2s/0.2s/0.25s for coyote, buffer and hold.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:       10,
		SprintSpeed:     15,
		JumpImpulse:     10,
		SustainForce:    5,
		CoyoteDuration:  0.2,
		BufferDuration:  0.2,
		MaxHoldDuration: 0.25,
	}
}

// Validate rejects negative or NaN values. The timer math assumes every field
// is non-negative.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"walk_speed", c.WalkSpeed},
		{"sprint_speed", c.SprintSpeed},
		{"jump_impulse", c.JumpImpulse},
		{"sustain_force", c.SustainForce},
		{"coyote_duration", c.CoyoteDuration},
		{"buffer_duration", c.BufferDuration},
		{"max_hold_duration", c.MaxHoldDuration},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}
