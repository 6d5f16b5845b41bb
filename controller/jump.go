package controller

// JumpInput is the jump button state sampled for one tick.
type JumpInput struct {
	// Pressed is true only on the tick the button went down.
	Pressed bool
	// Held is true on every tick the button is down.
	Held bool
}

// JumpDecision is the arbiter's verdict for one tick. Fire and Sustain are
// independent; both may be set on the same tick.
type JumpDecision struct {
	Fire    bool
	Sustain bool
}

// JumpArbiter owns the jump buffer and the variable-height hold counter.
//
// Eligibility is graded rather than an explicit state enum: a request is
// "buffered" while bufferRemaining > 0, "eligible" when it is buffered and the
// body is grounded or inside the coyote window, and "sustaining" while the
// hold counter is under the ceiling.
type JumpArbiter struct {
	bufferRemaining float64
	holdElapsed     float64
}

// Update advances the arbiter by one tick.
//
// Ordering matters and is kept exactly: a press refills the buffer, the buffer
// then decays unconditionally, and eligibility is tested against the decayed
// value. A press is therefore eligible on its own tick as long as
// BufferDuration > dt.
func (a *JumpArbiter) Update(in JumpInput, dt float64, grounded bool, coyoteRemaining, verticalVelocity float64, cfg Config) JumpDecision {
	if dt < 0 {
		dt = 0
	}

	if in.Pressed {
		a.bufferRemaining = cfg.BufferDuration
		a.holdElapsed = 0
	}

	a.bufferRemaining = decay(a.bufferRemaining, dt)

	var d JumpDecision
	if (grounded || coyoteRemaining > 0) && a.bufferRemaining > 0 {
		d.Fire = true
		a.bufferRemaining = 0
	}

	// The hold counter stops at the ceiling; past it no sustain is emitted.
	if verticalVelocity > 0 && in.Held && a.holdElapsed < cfg.MaxHoldDuration {
		a.holdElapsed += dt
		if a.holdElapsed < cfg.MaxHoldDuration {
			d.Sustain = true
		}
	}

	return d
}

// BufferRemaining reports the time left on the buffered request.
func (a *JumpArbiter) BufferRemaining() float64 {
	return a.bufferRemaining
}

// HoldElapsed reports how long the current jump has been sustained.
func (a *JumpArbiter) HoldElapsed() float64 {
	return a.holdElapsed
}

func (a *JumpArbiter) reset() {
	a.bufferRemaining = 0
	a.holdElapsed = 0
}
