// Package reveal generates tracks that reveal an ordered run of units one
// by one, either with a uniform stagger or with simulated human typing.
package reveal

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ivlev/sitemotion/internal/track"
)

var ErrInvalidConfig = errors.New("invalid reveal config")

// Mode selects the pacing strategy.
type Mode int

const (
	Uniform Mode = iota
	HumanTyping
)

func (m Mode) String() string {
	switch m {
	case Uniform:
		return "uniform"
	case HumanTyping:
		return "human-typing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a scene file name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "uniform", "clean", "":
		return Uniform, nil
	case "human-typing", "typing", "human":
		return HumanTyping, nil
	}
	return Uniform, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// Rand is a uniform [0,1) source. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a source seeded from seed, or from the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Config is the pacing for one reveal. All times are in seconds.
type Config struct {
	Stagger        float64 `yaml:"stagger"`         // Uniform: gap between units
	Duration       float64 `yaml:"duration"`        // per-unit fade
	BaseDelay      float64 `yaml:"base_delay"`      // HumanTyping: mean gap
	DelayVariation float64 `yaml:"delay_variation"` // HumanTyping: jitter width
	TypoChance     float64 `yaml:"typo_chance"`     // per-unit probability, at most one typo
	StartTime      float64 `yaml:"start_time"`
	Ease           string  `yaml:"ease,omitempty"`
}

// DefaultTyping is the human typing pacing used when a scene sets none.
func DefaultTyping() Config {
	return Config{
		BaseDelay:      0.03,
		DelayVariation: 0.015,
		TypoChance:     0.05,
		Duration:       0.025,
	}
}

// DefaultClean is the uniform typewriter pacing.
func DefaultClean() Config {
	return Config{
		Stagger:  0.04,
		Duration: 0.05,
		Ease:     "none",
	}
}

// Validate rejects out-of-domain values.
func (c Config) Validate() error {
	switch {
	case c.Stagger < 0:
		return fmt.Errorf("%w: stagger %f < 0", ErrInvalidConfig, c.Stagger)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration %f < 0", ErrInvalidConfig, c.Duration)
	case c.BaseDelay < 0:
		return fmt.Errorf("%w: base delay %f < 0", ErrInvalidConfig, c.BaseDelay)
	case c.DelayVariation < 0:
		return fmt.Errorf("%w: delay variation %f < 0", ErrInvalidConfig, c.DelayVariation)
	case c.TypoChance < 0 || c.TypoChance > 1:
		return fmt.Errorf("%w: typo chance %f outside [0,1]", ErrInvalidConfig, c.TypoChance)
	case c.BaseDelay < delayBias*c.DelayVariation:
		return fmt.Errorf("%w: base delay %f can go negative with variation %f", ErrInvalidConfig, c.BaseDelay, c.DelayVariation)
	case c.StartTime < 0:
		return fmt.Errorf("%w: start time %f < 0", ErrInvalidConfig, c.StartTime)
	}
	return nil
}

// Result is a generated track plus the bookkeeping of the generation.
type Result struct {
	Track  *track.Track
	Cursor float64 // running clock after the last unit, pauses included
	Typos  int     // typo corrections inserted, never more than 1
	TypoAt int     // index of the corrected unit, -1 without a typo
}

// Generate builds a reveal track for units. An empty input yields an empty
// track. rnd is only consulted in HumanTyping mode; nil means a clock seed.
func Generate(units []track.UnitID, mode Mode, cfg Config, rnd Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return &Result{Track: track.New(), Cursor: cfg.StartTime, TypoAt: -1}, nil
	}

	switch mode {
	case Uniform:
		return uniform(units, cfg), nil
	case HumanTyping:
		if rnd == nil {
			rnd = NewRand(0)
		}
		return humanTyping(units, cfg, rnd), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, mode)
	}
}

func revealEvent(u track.UnitID, at float64, cfg Config) track.Event {
	return track.Event{
		Unit:     u,
		Start:    at,
		Duration: cfg.Duration,
		Kind:     track.KindReveal,
		Ease:     cfg.Ease,
		Changes:  map[track.Property]track.Change{track.Opacity: track.FromTo(0, 1)},
	}
}

func uniform(units []track.UnitID, cfg Config) *Result {
	events := make([]track.Event, len(units))
	for i, u := range units {
		events[i] = revealEvent(u, cfg.StartTime+float64(i)*cfg.Stagger, cfg)
	}
	return &Result{
		Track:  track.New(events...),
		Cursor: cfg.StartTime + float64(len(units)-1)*cfg.Stagger,
		TypoAt: -1,
	}
}
