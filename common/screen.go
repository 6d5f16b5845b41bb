package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// MaxFrameTime caps one frame's dt.
const MaxFrameTime = 0.25
