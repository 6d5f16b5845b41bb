package input

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/prefabs"
)

const scriptDispatch = `
__out := input(__t, __grounded)
`

// Script drives input from a tengo script defining
//
//	input := func(t, grounded) { return {horizontal: 1.0, jump: true, sprint: false} }
//
// t is the script clock in seconds, advanced by Advance. The jump press edge
// is derived from jump going from false to true.
type Script struct {
	name     string
	compiled *tengo.Compiled
	probe    controller.GroundProbe

	t        float64
	prevHeld bool
	err      error
}

// LoadScript compiles a script from prefabs/scripts.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	return NewScript(name, src)
}

func NewScript(name string, src []byte) (*Script, error) {
	full := strings.TrimRight(string(src), "\n") + "\n" + scriptDispatch
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__t", 0.0)
	_ = script.Add("__grounded", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// SetProbe feeds the script's grounded argument.
func (s *Script) SetProbe(p controller.GroundProbe) {
	s.probe = p
}

// Advance moves the script clock forward by dt.
func (s *Script) Advance(dt float64) {
	if dt > 0 {
		s.t += dt
	}
}

func (s *Script) Time() float64 {
	return s.t
}

// Err is the last runtime error; the script yields neutral input while it is
// set.
func (s *Script) Err() error {
	return s.err
}

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Poll() controller.Input {
	grounded := s.probe != nil && s.probe.Grounded()
	in, err := s.eval(grounded)
	s.err = err
	if err != nil {
		s.prevHeld = false
		return controller.Input{}
	}
	in.JumpPressed = in.JumpHeld && !s.prevHeld
	s.prevHeld = in.JumpHeld
	return in
}

func (s *Script) eval(grounded bool) (controller.Input, error) {
	if err := s.compiled.Set("__t", s.t); err != nil {
		return controller.Input{}, err
	}
	if err := s.compiled.Set("__grounded", grounded); err != nil {
		return controller.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return controller.Input{}, fmt.Errorf("input: run script %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Map()
	if out == nil {
		return controller.Input{}, fmt.Errorf("input: script %s: input must return a map", s.name)
	}
	return controller.Input{
		Horizontal: toFloat(out["horizontal"]),
		JumpHeld:   toBool(out["jump"]),
		Sprint:     toBool(out["sprint"]),
	}, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}
