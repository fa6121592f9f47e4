package config

import (
	"fmt"
	"strings"
)

// Pace is a named playback speed applied to every pause.
type Pace string

const (
	PaceSlow    Pace = "slow"
	PaceNormal  Pace = "normal"
	PaceFast    Pace = "fast"
	PaceInstant Pace = "instant"
)

// Paces returns all presets from slowest to fastest.
func Paces() []Pace {
	return []Pace{PaceSlow, PaceNormal, PaceFast, PaceInstant}
}

// ParsePace resolves a preset name. An empty name is PaceNormal.
func ParsePace(s string) (Pace, error) {
	p := Pace(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PaceNormal, nil
	}
	for _, known := range Paces() {
		if p == known {
			return p, nil
		}
	}
	return PaceNormal, fmt.Errorf("config: unknown pace %q", s)
}

// Multiplier returns the factor applied to pause durations.
func (p Pace) Multiplier() float64 {
	switch p {
	case PaceSlow:
		return 2.0
	case PaceFast:
		return 0.5
	case PaceInstant:
		return 0
	default:
		return 1.0
	}
}

// Next returns the following preset, wrapping around.
func (p Pace) Next() Pace {
	paces := Paces()
	for i, known := range paces {
		if p == known {
			return paces[(i+1)%len(paces)]
		}
	}
	return PaceNormal
}
