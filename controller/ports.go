package controller

// Input is one tick's worth of raw player intent.
type Input struct {
	// Horizontal is the movement axis in [-1, 1].
	Horizontal  float64
	JumpPressed bool
	JumpHeld    bool
	Sprint      bool
}

// InputSource supplies per-tick input snapshots.
type InputSource interface {
	Poll() Input
}

// GroundProbe reports whether the ground-check region overlaps the ground
// layer this tick. It must not have side effects.
type GroundProbe interface {
	Grounded() bool
}

// Body is the rigid body the controller drives. Positive y is up.
type Body interface {
	Velocity() (x, y float64)
	SetVelocity(x, y float64)
	// ApplyImpulse changes momentum instantly along +y.
	ApplyImpulse(up float64)
	// ApplyForce pushes along +y for the coming step of length dt.
	ApplyForce(up, dt float64)
}

// InputFunc adapts a plain function to InputSource.
type InputFunc func() Input

func (f InputFunc) Poll() Input { return f() }

// ProbeFunc adapts a plain function to GroundProbe.
type ProbeFunc func() bool

func (f ProbeFunc) Grounded() bool { return f() }
