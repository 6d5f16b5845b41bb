package levels

import (
	"github.com/solarlune/resolv"
)

const (
	cellSize = 16
	probeTag = "probe"
)

// Anchor is anything with a world-space center, typically a physics body.
type Anchor interface {
	Position() (x, y float64)
}

// CollisionSpace builds a resolv space holding every solid tagged with its
// layer name.
func (l *Level) CollisionSpace() *resolv.Space {
	space := resolv.NewSpace(int(l.Width), int(l.Height), cellSize, cellSize)
	for _, r := range l.Solids {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, r.Layer)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		space.Add(obj)
	}
	return space
}

// OverlapProbe answers "does the box under the anchor overlap any object
// tagged with layer" against a resolv space. It is independent of the
// rigid-body simulation.
type OverlapProbe struct {
	obj     *resolv.Object
	anchor  Anchor
	layer   string
	offsetY float64
}

// NewOverlapProbe places a width x height probe offsetY below the anchor.
func NewOverlapProbe(space *resolv.Space, anchor Anchor, width, height, offsetY float64, layer string) *OverlapProbe {
	obj := resolv.NewObject(0, 0, width, height, probeTag)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	space.Add(obj)
	if layer == "" {
		layer = defaultLayer
	}
	return &OverlapProbe{obj: obj, anchor: anchor, layer: layer, offsetY: offsetY}
}

func (p *OverlapProbe) Grounded() bool {
	p.sync()
	check := p.obj.Check(0, 0, p.layer)
	if check == nil {
		return false
	}
	// The cell check is coarse; confirm with an exact box test.
	for _, o := range check.ObjectsByTags(p.layer) {
		if overlaps(p.obj, o) {
			return true
		}
	}
	return false
}

func (p *OverlapProbe) Bounds() (float64, float64, float64, float64) {
	p.sync()
	return p.obj.X, p.obj.Y, p.obj.W, p.obj.H
}

func (p *OverlapProbe) sync() {
	cx, cy := p.anchor.Position()
	p.obj.X = cx - p.obj.W/2
	p.obj.Y = cy + p.offsetY - p.obj.H/2
	p.obj.Update()
}

// overlaps counts touching edges as overlap.
func overlaps(a, b *resolv.Object) bool {
	return a.X <= b.X+b.W && b.X <= a.X+a.W && a.Y <= b.Y+b.H && b.Y <= a.Y+a.H
}
