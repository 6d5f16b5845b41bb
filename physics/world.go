package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeGroundSensor
	collisionTypeSolid
)

// Collision layers, used as Chipmunk shape filter category bits.
const (
	LayerGround uint = 1 << iota
	LayerWall
	LayerPlayer
	LayerSensor
)

var layerNames = map[string]uint{
	"ground": LayerGround,
	"wall":   LayerWall,
	"player": LayerPlayer,
}

// LayerByName resolves a layer name from level or config files.
func LayerByName(name string) (uint, error) {
	bit, ok := layerNames[name]
	if !ok {
		return 0, fmt.Errorf("physics: unknown layer %q", name)
	}
	return bit, nil
}

// Settings configures the simulation space. Coordinates are screen-down:
// positive gravity pulls toward larger y.
type Settings struct {
	Gravity    float64
	Iterations int
}

// World owns the Chipmunk space, static geometry and contact probes.
type World struct {
	space         *cp.Space
	handlersReady bool

	sensors map[*cp.Shape]*ContactProbe
	statics []*cp.Shape
}

func NewWorld(s Settings) *World {
	space := cp.NewSpace()
	space.Iterations = uint(s.Iterations)
	if s.Iterations <= 0 {
		space.Iterations = 20
	}
	space.SetGravity(cp.Vector{X: 0, Y: s.Gravity})

	w := &World{
		space:   space,
		sensors: make(map[*cp.Shape]*ContactProbe),
	}
	w.ensureHandlers()
	return w
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddStaticBox adds a solid axis-aligned box given by its top-left corner.
func (w *World) AddStaticBox(x, y, width, height float64, layer uint) *cp.Shape {
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filter(layer, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	w.statics = append(w.statics, shape)
	return shape
}

// AddBounds closes the level's sides and ceiling. The bottom stays open so
// pits remain lethal.
func (w *World) AddBounds(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	segments := []struct {
		a, b  cp.Vector
		layer uint
	}{
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: width, Y: 0}, LayerWall},
		{cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: height}, LayerWall},
		{cp.Vector{X: width, Y: 0}, cp.Vector{X: width, Y: height}, LayerWall},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter(seg.layer, cp.ALL_CATEGORIES))
		w.space.AddShape(shape)
		w.statics = append(w.statics, shape)
	}
}

// Step clears contact probes and advances the space by dt seconds. Probes
// report what the step touched.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, p := range w.sensors {
		p.touching = false
	}
	w.space.Step(dt)
}

func (w *World) ensureHandlers() {
	if w.handlersReady {
		return
	}

	groundHandler := w.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		if p, ok := world.sensors[shapeA]; ok {
			p.touching = true
		} else if p, ok := world.sensors[shapeB]; ok {
			p.touching = true
		}
		return true
	}

	w.handlersReady = true
}

func filter(categories, mask uint) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: categories, Mask: mask}
}
