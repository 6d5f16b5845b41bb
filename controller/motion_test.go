package controller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotionIntegratorHorizontal(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name   string
		axis   float64
		sprint bool
		want   float64
	}{
		{"idle", 0, false, 0},
		{"walk_right", 1, false, 10},
		{"walk_left", -1, false, -10},
		{"sprint_left", -1, true, -15},
		{"half_stick", 0.5, true, 7.5},
		{"clamped", 3, false, 10},
		{"nan", math.NaN(), false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cmd := MotionIntegrator{}.Update(c.axis, c.sprint, JumpDecision{}, cfg)
			assert.Equal(t, c.want, cmd.HorizontalVelocity)
			assert.Nil(t, cmd.Impulse)
			assert.Nil(t, cmd.VerticalVelocityOverride)
			assert.Nil(t, cmd.SustainedForce)
		})
	}
}

func TestMotionIntegratorJump(t *testing.T) {
	cfg := DefaultConfig()

	cmd := MotionIntegrator{}.Update(1, false, JumpDecision{Fire: true, Sustain: true}, cfg)
	require.True(t, cmd.Fired())
	require.True(t, cmd.Sustaining())
	assert.Equal(t, 0.0, *cmd.VerticalVelocityOverride)
	assert.Equal(t, cfg.JumpImpulse, *cmd.Impulse)
	assert.Equal(t, cfg.SustainForce, *cmd.SustainedForce)
}
