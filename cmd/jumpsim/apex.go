package main

import (
	"math"

	"github.com/milk9111/jumpctl/input"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
)

// ApexResult is the outcome of one standing jump with jump held for Hold
// seconds.
type ApexResult struct {
	Hold    float64 `yaml:"hold"`
	Apex    float64 `yaml:"apex"`
	AirTime float64 `yaml:"air_time"`
}

// measureApex settles the player, holds jump for hold seconds from a
// standstill and records the highest point reached before landing.
func measureApex(spec prefabs.ControllerSpec, lvl *levels.Level, hold float64, log zerolog.Logger) (ApexResult, error) {
	s, err := newSim(spec, lvl, input.NewSequence(), log)
	if err != nil {
		return ApexResult{}, err
	}
	if err := s.settle(600); err != nil {
		return ApexResult{}, err
	}

	frames := max(1, int(math.Round(hold/s.step)))
	if err := s.setInput(input.Hold(frames, 0)); err != nil {
		return ApexResult{}, err
	}

	restY := s.y()
	top := restY
	left := false
	air := 0
	for i := 0; i < int(5/s.step); i++ {
		s.tick()
		top = math.Min(top, s.y())
		grounded := s.sample(restY).Grounded
		if !grounded {
			left = true
			air++
		} else if left {
			break
		}
	}

	return ApexResult{
		Hold:    float64(frames) * s.step,
		Apex:    restY - top,
		AirTime: float64(air) * s.step,
	}, nil
}

func sweepApex(spec prefabs.ControllerSpec, lvl *levels.Level, maxHold float64, samples int, log zerolog.Logger) ([]ApexResult, error) {
	if samples < 2 {
		samples = 2
	}
	out := make([]ApexResult, 0, samples)
	for i := 0; i < samples; i++ {
		hold := maxHold * float64(i) / float64(samples-1)
		r, err := measureApex(spec, lvl, hold, log)
		if err != nil {
			return nil, err
		}
		log.Debug().Float64("hold", r.Hold).Float64("apex", r.Apex).Msg("apex measured")
		out = append(out, r)
	}
	return out, nil
}
