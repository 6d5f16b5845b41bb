package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodySpec describes a dynamic box body centered on X, Y.
type BodySpec struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
}

// Body adapts a Chipmunk body to the controller's y-up convention. The
// simulation is screen-down, so every vertical quantity is negated at this
// boundary.
type Body struct {
	body  *cp.Body
	shape *cp.Shape

	width  float64
	height float64
}

// AddBody creates a rotation-locked dynamic box.
func (w *World) AddBody(spec BodySpec) *Body {
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(filter(LayerPlayer, cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	return &Body{body: body, shape: shape, width: width, height: height}
}

func (b *Body) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, -v.Y
}

func (b *Body) SetVelocity(x, y float64) {
	b.body.SetVelocity(x, -y)
}

func (b *Body) ApplyImpulse(up float64) {
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: 0, Y: -up}, b.body.Position())
}

// ApplyForce adds force for the next space step. Chipmunk clears accumulated
// force after every step, so dt is implied by the step itself.
func (b *Body) ApplyForce(up, dt float64) {
	b.body.ApplyForceAtWorldPoint(cp.Vector{X: 0, Y: -up}, b.body.Position())
}

// Position returns the body center in world (screen-down) coordinates.
func (b *Body) Position() (float64, float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// Teleport moves the body and zeroes its velocity.
func (b *Body) Teleport(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	b.body.SetVelocity(0, 0)
}

func (b *Body) Size() (float64, float64) {
	return b.width, b.height
}

func (b *Body) Mass() float64 {
	return b.body.Mass()
}

func (b *Body) CP() *cp.Body {
	return b.body
}
