package effects

import (
	"fmt"

	"github.com/ivlev/sitemotion/internal/track"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Letter pairs a visible glyph with the duplicate that rolls in to replace it.
type Letter struct {
	Original  track.UnitID `yaml:"original"`
	Duplicate track.UnitID `yaml:"duplicate"`
}

type RollingConfig struct {
	Duration      float64   `yaml:"duration"`
	Stagger       float64   `yaml:"stagger"`
	Ease          string    `yaml:"ease"`
	Direction     Direction `yaml:"direction"`
	ArrowDelay    float64   `yaml:"arrow_delay"`
	ArrowDistance float64   `yaml:"arrow_distance"`

	// Interval separates consecutive rolls once the first one is done.
	// RestartAfter delays the start of that rhythm.
	Interval     float64 `yaml:"interval"`
	RestartAfter float64 `yaml:"restart_after"`

	IndicatorOffset float64 `yaml:"indicator_offset"`
}

func DefaultRolling() RollingConfig {
	return RollingConfig{
		Duration:        0.8,
		Stagger:         0.2,
		Ease:            "power2.inOut",
		Direction:       Down,
		ArrowDelay:      0.2,
		ArrowDistance:   -5,
		Interval:        3,
		RestartAfter:    1,
		IndicatorOffset: -20,
	}
}

const (
	arrowLeg        = 0.3
	indicatorReveal = 0.5
)

// Rolling is the odometer roll: each letter slides out while its duplicate
// slides in from the opposite side. Compose plays the first roll; Cycle
// keeps rolling after it, swapping the roles of originals and duplicates
// on every pass.
type Rolling struct {
	Letters   []Letter
	Arrow     track.UnitID // optional
	Indicator track.UnitID // optional, revealed before the first roll
	Config    RollingConfig
}

func (r Rolling) sign() (float64, error) {
	switch r.Config.Direction {
	case Down, "":
		return 1, nil
	case Up:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: rolling direction %q", ErrInvalidEffect, r.Config.Direction)
}

func (r Rolling) check() (float64, error) {
	c := r.Config
	if err := checkTimings("rolling", c.Duration, c.Stagger, c.ArrowDelay, c.Interval, c.RestartAfter); err != nil {
		return 0, err
	}
	return r.sign()
}

// pass rolls every letter once starting at at. With swapped set the
// duplicates roll out and the originals come back.
func (r Rolling) pass(at, sign float64, swapped bool) []track.Event {
	c := r.Config
	var events []track.Event
	for i, l := range r.Letters {
		out, in := l.Original, l.Duplicate
		if swapped {
			out, in = in, out
		}
		start := at + float64(i)*c.Stagger
		events = append(events,
			tween(out, track.KindRollOut, start, c.Duration, c.Ease,
				map[track.Property]track.Change{track.YPercent: track.FromTo(0, sign*100)}),
			tween(in, track.KindRollIn, start, c.Duration, c.Ease,
				map[track.Property]track.Change{track.YPercent: track.FromTo(-sign*100, 0)}),
		)
	}

	if r.Arrow != "" {
		t := at + c.ArrowDelay
		events = append(events,
			tween(r.Arrow, track.KindBounce, t, arrowLeg, "power2.out",
				map[track.Property]track.Change{track.Y: track.FromTo(0, c.ArrowDistance)}),
			tween(r.Arrow, track.KindBounce, t+arrowLeg, arrowLeg, "power2.inOut",
				map[track.Property]track.Change{track.Y: track.To(0)}),
		)
	}
	return events
}

func (r Rolling) Compose(at float64) (*track.Track, error) {
	sign, err := r.check()
	if err != nil {
		return nil, err
	}
	events := r.pass(at, sign, false)
	if r.Indicator != "" {
		events = append(events, tween(r.Indicator, track.KindReveal, at, indicatorReveal, "power2.out",
			map[track.Property]track.Change{
				track.Opacity: track.FromTo(0, 1),
				track.X:       track.FromTo(r.Config.IndicatorOffset, 0),
			}))
	}
	return track.New(events...), nil
}

// Cycle is the endless roll that follows Compose. Each loop holds two
// passes one Interval apart: the first rolls the duplicates back out, the
// second rolls the originals out again.
func (r Rolling) Cycle() (Loop, error) {
	sign, err := r.check()
	if err != nil {
		return Loop{}, err
	}
	if r.Config.Interval <= 0 {
		return Loop{}, fmt.Errorf("%w: rolling interval %f", ErrInvalidEffect, r.Config.Interval)
	}
	events := append(r.pass(0, sign, true), r.pass(r.Config.Interval, sign, false)...)
	return Loop{
		Track:  track.New(events...),
		Repeat: -1,
		Period: 2 * r.Config.Interval,
	}, nil
}

// CycleStart is when Cycle begins, relative to the start of Compose.
func (r Rolling) CycleStart() float64 {
	return r.Config.RestartAfter + r.Config.Interval
}
