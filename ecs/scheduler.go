package ecs

// System updates a world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) { f(w, dt) }

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Loop runs two schedulers at two cadences: Frame once per call to Advance
// with the real frame time, Fixed as many whole Step intervals as the frame
// time accumulated. At most MaxSteps fixed steps run per frame; leftover
// backlog beyond that is dropped.
type Loop struct {
	Frame    *Scheduler
	Fixed    *Scheduler
	Step     float64
	MaxSteps int

	acc float64
}

func NewLoop(step float64, maxSteps int) *Loop {
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Loop{
		Frame:    NewScheduler(),
		Fixed:    NewScheduler(),
		Step:     step,
		MaxSteps: maxSteps,
	}
}

// Advance runs one frame and returns how many fixed steps ran.
func (l *Loop) Advance(w *World, frameDt float64) int {
	if frameDt < 0 {
		frameDt = 0
	}
	l.Frame.Update(w, frameDt)
	if l.Step <= 0 {
		return 0
	}

	l.acc += frameDt
	steps := 0
	for l.acc >= l.Step && steps < l.MaxSteps {
		l.Fixed.Update(w, l.Step)
		l.acc -= l.Step
		steps++
	}
	if l.acc >= l.Step {
		l.acc = 0
	}
	return steps
}

// Alpha is the fraction of a fixed step left in the accumulator, for
// interpolating rendered positions.
func (l *Loop) Alpha() float64 {
	if l.Step <= 0 {
		return 0
	}
	return l.acc / l.Step
}
