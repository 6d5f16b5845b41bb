package component

import "github.com/milk9111/jumpctl/controller"

// Input stores the per-frame input snapshot for an entity and where it came
// from.
type Input struct {
	Source controller.InputSource
	controller.Input
}

var InputComponent = NewComponent[Input]()
