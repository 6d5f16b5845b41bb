package system

import (
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/input"
)

// InputSystem snapshots every entity's input source once per frame.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		if in.Source == nil {
			return
		}
		if clock, ok := in.Source.(input.Clock); ok {
			clock.Advance(dt)
		}
		in.Input = in.Source.Poll()
	})
}
