package controller

// GroundSensor tracks whether the body stands on ground and how much coyote
// time is left after it walked off an edge.
type GroundSensor struct {
	coyoteRemaining float64
}

// Update records this tick's overlap result. While grounded the coyote window
// is refilled to coyoteDuration every tick; while airborne it drains by dt.
func (g *GroundSensor) Update(overlapping bool, dt, coyoteDuration float64) (bool, float64) {
	if overlapping {
		g.coyoteRemaining = coyoteDuration
	} else {
		g.coyoteRemaining = decay(g.coyoteRemaining, dt)
	}
	return overlapping, g.coyoteRemaining
}

// CoyoteRemaining reports the grace time left.
func (g *GroundSensor) CoyoteRemaining() float64 {
	return g.coyoteRemaining
}

func (g *GroundSensor) reset() {
	g.coyoteRemaining = 0
}

// decay drains a timer by dt, floored at zero. Negative dt counts as zero.
func decay(v, dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	v -= dt
	if v < 0 {
		return 0
	}
	return v
}
