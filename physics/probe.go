package physics

import "github.com/jakecoffman/cp"

// ProbeSpec sizes a ground-check region. OffsetY is the distance from the
// body center to the region center, positive toward the feet.
type ProbeSpec struct {
	Width   float64
	Height  float64
	OffsetY float64
	Mask    uint
}

// Gizmo exposes a probe region for debug drawing, as a top-left box.
type Gizmo interface {
	Bounds() (x, y, w, h float64)
}

// ContactProbe is a sensor shape glued under the body. The space's collision
// handler flags it during each step.
type ContactProbe struct {
	shape    *cp.Shape
	body     *Body
	spec     ProbeSpec
	touching bool
}

// NewContactProbe attaches a sensor box to b that reports contact with any
// shape in spec.Mask.
func (w *World) NewContactProbe(b *Body, spec ProbeSpec) *ContactProbe {
	spec = NormalizeProbe(b, spec)
	bb := cp.BB{
		L: -spec.Width / 2,
		B: spec.OffsetY - spec.Height/2,
		R: spec.Width / 2,
		T: spec.OffsetY + spec.Height/2,
	}
	shape := cp.NewBox2(b.body, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeGroundSensor)
	shape.SetFilter(filter(LayerSensor, spec.Mask))
	w.space.AddShape(shape)

	p := &ContactProbe{shape: shape, body: b, spec: spec}
	w.sensors[shape] = p
	return p
}

func (p *ContactProbe) Grounded() bool {
	return p.touching
}

func (p *ContactProbe) Bounds() (float64, float64, float64, float64) {
	return probeBounds(p.body, p.spec)
}

// BoxProbe queries the space for shapes overlapping a box under the body,
// the same way an overlap-box query against a layer mask would.
type BoxProbe struct {
	space *cp.Space
	body  *Body
	spec  ProbeSpec
}

func (w *World) NewBoxProbe(b *Body, spec ProbeSpec) *BoxProbe {
	return &BoxProbe{space: w.space, body: b, spec: NormalizeProbe(b, spec)}
}

func (p *BoxProbe) Grounded() bool {
	x, y, width, height := p.Bounds()
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	query := filter(cp.ALL_CATEGORIES, p.spec.Mask)

	hit := false
	p.space.BBQuery(bb, query, func(shape *cp.Shape, data interface{}) {
		if shape.Body() == p.body.body {
			return
		}
		hit = true
	}, nil)
	return hit
}

func (p *BoxProbe) Bounds() (float64, float64, float64, float64) {
	return probeBounds(p.body, p.spec)
}

func probeBounds(b *Body, spec ProbeSpec) (float64, float64, float64, float64) {
	cx, cy := b.Position()
	return cx - spec.Width/2, cy + spec.OffsetY - spec.Height/2, spec.Width, spec.Height
}

// NormalizeProbe fills unset fields: a strip 90% of the body width, 2 units
// tall, hugging the feet, against the ground layer.
func NormalizeProbe(b *Body, spec ProbeSpec) ProbeSpec {
	if spec.Width <= 0 {
		spec.Width = b.width * 0.9
	}
	if spec.Height <= 0 {
		spec.Height = 2
	}
	if spec.OffsetY == 0 {
		spec.OffsetY = b.height / 2
	}
	if spec.Mask == 0 {
		spec.Mask = LayerGround
	}
	return spec
}
