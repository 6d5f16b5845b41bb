package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 0.016

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CoyoteDuration = 0.2
	cfg.BufferDuration = 0.2
	cfg.MaxHoldDuration = 0.25
	return cfg
}

func TestJumpArbiterPressFiresInsideCoyoteWindow(t *testing.T) {
	cfg := testConfig()
	g := GroundSensor{coyoteRemaining: 0.15}
	var a JumpArbiter

	grounded, coyote := g.Update(false, tick, cfg.CoyoteDuration)
	require.False(t, grounded)
	require.InDelta(t, 0.134, coyote, 1e-9)

	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, grounded, coyote, 0, cfg)
	assert.True(t, d.Fire)
	assert.Equal(t, 0.0, a.BufferRemaining(), "firing consumes the buffer")
}

func TestJumpArbiterPressOnTickDecaysBeforeEligibility(t *testing.T) {
	cfg := testConfig()
	var a JumpArbiter

	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, false, 0, 0, cfg)
	require.False(t, d.Fire)
	assert.InDelta(t, 0.184, a.BufferRemaining(), 1e-9)
}

func TestJumpArbiterPressLostWithoutGround(t *testing.T) {
	cfg := testConfig()
	var g GroundSensor
	var a JumpArbiter

	_, coyote := g.Update(false, tick, cfg.CoyoteDuration)
	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, false, coyote, 0, cfg)
	require.False(t, d.Fire)

	_, coyote = g.Update(false, tick, cfg.CoyoteDuration)
	d = a.Update(JumpInput{Held: true}, tick, false, coyote, 0, cfg)
	require.False(t, d.Fire)
	assert.InDelta(t, 0.168, a.BufferRemaining(), 1e-9)

	for i := 0; i < 20; i++ {
		_, coyote = g.Update(false, tick, cfg.CoyoteDuration)
		d = a.Update(JumpInput{Held: true}, tick, false, coyote, 0, cfg)
		require.False(t, d.Fire, "tick %d", i)
	}
	assert.Equal(t, 0.0, a.BufferRemaining())
}

func TestJumpArbiterBufferedPressFiresOnLanding(t *testing.T) {
	cfg := testConfig()
	var a JumpArbiter

	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, false, 0, -4, cfg)
	require.False(t, d.Fire)
	d = a.Update(JumpInput{Held: true}, tick, false, 0, -4, cfg)
	require.False(t, d.Fire)

	d = a.Update(JumpInput{Held: true}, tick, true, cfg.CoyoteDuration, 0, cfg)
	assert.True(t, d.Fire)

	// One press, one jump.
	d = a.Update(JumpInput{Held: true}, tick, true, cfg.CoyoteDuration, 0, cfg)
	assert.False(t, d.Fire)
}

func TestJumpArbiterNoCoyoteJumpAfterWindow(t *testing.T) {
	cfg := testConfig()
	var g GroundSensor
	var a JumpArbiter

	grounded, coyote := g.Update(true, tick, cfg.CoyoteDuration)
	a.Update(JumpInput{}, tick, grounded, coyote, 0, cfg)

	elapsed := 0.0
	for elapsed <= cfg.CoyoteDuration {
		grounded, coyote = g.Update(false, tick, cfg.CoyoteDuration)
		d := a.Update(JumpInput{}, tick, grounded, coyote, -1, cfg)
		require.False(t, d.Fire)
		elapsed += tick
	}
	require.Equal(t, 0.0, coyote)

	grounded, coyote = g.Update(false, tick, cfg.CoyoteDuration)
	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, grounded, coyote, -1, cfg)
	assert.False(t, d.Fire)
}

func TestJumpArbiterSustainStopsAtCeiling(t *testing.T) {
	cfg := testConfig()
	var a JumpArbiter

	a.Update(JumpInput{Pressed: true, Held: true}, tick, true, cfg.CoyoteDuration, 0, cfg)

	sustained := 0
	for i := 0; i < 40; i++ {
		d := a.Update(JumpInput{Held: true}, tick, false, 0, 3, cfg)
		if d.Sustain {
			sustained++
			continue
		}
		require.GreaterOrEqual(t, a.HoldElapsed(), cfg.MaxHoldDuration, "tick %d", i)
	}
	assert.Equal(t, 15, sustained)
	assert.Less(t, a.HoldElapsed(), cfg.MaxHoldDuration+tick, "hold counter stops at the ceiling")
}

func TestJumpArbiterSustainNeedsRiseAndHold(t *testing.T) {
	cfg := testConfig()
	cases := []struct {
		name string
		in   JumpInput
		vy   float64
		want bool
	}{
		{"rising_held", JumpInput{Held: true}, 2, true},
		{"rising_released", JumpInput{}, 2, false},
		{"falling_held", JumpInput{Held: true}, -2, false},
		{"apex_held", JumpInput{Held: true}, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var a JumpArbiter
			d := a.Update(c.in, tick, false, 0, c.vy, cfg)
			assert.Equal(t, c.want, d.Sustain)
			if !c.want {
				assert.Equal(t, 0.0, a.HoldElapsed())
			}
		})
	}
}

func TestJumpArbiterNewPressResetsHold(t *testing.T) {
	cfg := testConfig()
	var a JumpArbiter
	for i := 0; i < 30; i++ {
		a.Update(JumpInput{Held: true}, tick, false, 0, 1, cfg)
	}
	require.GreaterOrEqual(t, a.HoldElapsed(), cfg.MaxHoldDuration)

	d := a.Update(JumpInput{Pressed: true, Held: true}, tick, true, cfg.CoyoteDuration, 1, cfg)
	assert.True(t, d.Fire)
	assert.True(t, d.Sustain, "fire and sustain are not exclusive")
	assert.InDelta(t, tick, a.HoldElapsed(), 1e-9)
}

func TestJumpArbiterTimersNeverNegative(t *testing.T) {
	cfg := testConfig()
	for _, dt := range []float64{0, 1e-6, tick, 0.1, 0.5, 10, -0.3} {
		var g GroundSensor
		var a JumpArbiter
		a.Update(JumpInput{Pressed: true, Held: true}, dt, false, 0, 1, cfg)
		for i := 0; i < 50; i++ {
			_, coyote := g.Update(i%7 == 0, dt, cfg.CoyoteDuration)
			a.Update(JumpInput{Pressed: i%5 == 0, Held: i%3 != 0}, dt, false, coyote, 1, cfg)
			require.GreaterOrEqual(t, coyote, 0.0)
			require.GreaterOrEqual(t, a.BufferRemaining(), 0.0)
			require.GreaterOrEqual(t, a.HoldElapsed(), 0.0)
		}
	}
}

func TestJumpArbiterZeroDtIsIdempotent(t *testing.T) {
	cfg := testConfig()

	g := GroundSensor{coyoteRemaining: 0.1}
	_, c1 := g.Update(false, 0, cfg.CoyoteDuration)
	_, c2 := g.Update(false, 0, cfg.CoyoteDuration)
	assert.Equal(t, c1, c2)

	a := JumpArbiter{bufferRemaining: 0.1, holdElapsed: 0.05}
	d1 := a.Update(JumpInput{Held: true}, 0, false, 0, 2, cfg)
	s1 := a
	d2 := a.Update(JumpInput{Held: true}, 0, false, 0, 2, cfg)
	assert.Equal(t, d1, d2)
	assert.Equal(t, s1, a)
}
