package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groundTop is the y of the floor surface in newFloorWorld.
const groundTop = 100.0

func newFloorWorld(gravity float64) *World {
	w := NewWorld(Settings{Gravity: gravity, Iterations: 10})
	w.AddStaticBox(0, groundTop, 400, 20, LayerGround)
	return w
}

func TestBodyFlipsVerticalAxis(t *testing.T) {
	w := NewWorld(Settings{})
	b := w.AddBody(BodySpec{X: 10, Y: 10, Width: 16, Height: 16, Mass: 1})

	b.SetVelocity(3, 5)
	assert.Equal(t, -5.0, b.CP().Velocity().Y, "up is negative y in the space")

	x, y := b.Velocity()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 5.0, y)
}

func TestBodyImpulseScalesWithMass(t *testing.T) {
	w := NewWorld(Settings{})
	b := w.AddBody(BodySpec{X: 10, Y: 10, Width: 16, Height: 16, Mass: 2})

	b.ApplyImpulse(10)
	_, vy := b.Velocity()
	assert.InDelta(t, 5.0, vy, 1e-9)
}

func TestBodyForceLastsOneStep(t *testing.T) {
	w := NewWorld(Settings{})
	b := w.AddBody(BodySpec{X: 10, Y: 10, Width: 16, Height: 16, Mass: 1})

	b.ApplyForce(10, 0.1)
	w.Step(0.1)
	_, vy := b.Velocity()
	require.InDelta(t, 1.0, vy, 1e-9)

	w.Step(0.1)
	_, vy = b.Velocity()
	assert.InDelta(t, 1.0, vy, 1e-9, "force is cleared after the step")
}

func TestBoxProbeOverlapsGroundLayer(t *testing.T) {
	w := newFloorWorld(0)
	standing := w.AddBody(BodySpec{X: 50, Y: groundTop - 8, Width: 16, Height: 16})
	floating := w.AddBody(BodySpec{X: 150, Y: groundTop - 60, Width: 16, Height: 16})

	assert.True(t, w.NewBoxProbe(standing, ProbeSpec{}).Grounded())
	assert.False(t, w.NewBoxProbe(floating, ProbeSpec{}).Grounded())

	// Walls are not ground.
	w.AddStaticBox(200, 0, 20, groundTop, LayerWall)
	leaning := w.AddBody(BodySpec{X: 192, Y: 40, Width: 16, Height: 16})
	assert.False(t, w.NewBoxProbe(leaning, ProbeSpec{Width: 20, Height: 40, OffsetY: 1}).Grounded())
	assert.True(t, w.NewBoxProbe(leaning, ProbeSpec{Width: 20, Height: 40, OffsetY: 1, Mask: LayerWall}).Grounded())
}

func TestContactProbeFollowsSteps(t *testing.T) {
	w := newFloorWorld(0)
	b := w.AddBody(BodySpec{X: 50, Y: groundTop - 8, Width: 16, Height: 16})
	p := w.NewContactProbe(b, ProbeSpec{})

	require.False(t, p.Grounded(), "nothing reported before the first step")
	w.Step(1.0 / 60)
	assert.True(t, p.Grounded())

	b.Teleport(50, groundTop-80)
	w.Step(1.0 / 60)
	assert.False(t, p.Grounded())
}

func TestBodyLandsUnderGravity(t *testing.T) {
	w := newFloorWorld(900)
	b := w.AddBody(BodySpec{X: 50, Y: groundTop - 40, Width: 16, Height: 16})
	p := w.NewBoxProbe(b, ProbeSpec{})

	require.False(t, p.Grounded())
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	assert.True(t, p.Grounded())
	_, y := b.Position()
	assert.InDelta(t, groundTop-8, y, 1.5)
}

func TestProbeBoundsHugFeet(t *testing.T) {
	w := NewWorld(Settings{})
	b := w.AddBody(BodySpec{X: 100, Y: 50, Width: 20, Height: 40})
	x, y, width, height := w.NewBoxProbe(b, ProbeSpec{Width: 10, Height: 4}).Bounds()
	assert.Equal(t, 95.0, x)
	assert.Equal(t, 68.0, y)
	assert.Equal(t, 10.0, width)
	assert.Equal(t, 4.0, height)
}

func TestLayerByName(t *testing.T) {
	bit, err := LayerByName("ground")
	require.NoError(t, err)
	assert.Equal(t, LayerGround, bit)

	_, err = LayerByName("lava")
	assert.Error(t, err)
}
