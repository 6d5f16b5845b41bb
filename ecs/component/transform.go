package component

// Transform is the body center in world pixels. PrevX and PrevY hold the
// position before the latest fixed step, for render interpolation.
type Transform struct {
	X          float64
	Y          float64
	PrevX      float64
	PrevY      float64
	Rotation   float64
	FacingLeft bool
}

var TransformComponent = NewComponent[Transform]()
