package input

import "github.com/milk9111/jumpctl/controller"

// Sequence replays a fixed list of inputs, one per Poll, then holds the
// zero input.
type Sequence struct {
	frames []controller.Input
	next   int
}

func NewSequence(frames ...controller.Input) *Sequence {
	return &Sequence{frames: frames}
}

// Hold builds a sequence that holds jump for n frames, pressing on the first.
func Hold(n int, horizontal float64) *Sequence {
	frames := make([]controller.Input, n)
	for i := range frames {
		frames[i] = controller.Input{Horizontal: horizontal, JumpHeld: true, JumpPressed: i == 0}
	}
	return NewSequence(frames...)
}

func (s *Sequence) Poll() controller.Input {
	if s.next >= len(s.frames) {
		return controller.Input{}
	}
	in := s.frames[s.next]
	s.next++
	return in
}

func (s *Sequence) Done() bool {
	return s.next >= len(s.frames)
}

// Clock is implemented by sources whose output depends on elapsed time.
type Clock interface {
	Advance(dt float64)
}
