// Package sequencer chains typed text segments into one timeline: each
// non-final segment is struck through and faded before the next one types.
package sequencer

import (
	"errors"
	"fmt"

	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/track"
)

// Offsets after a segment's reveal end, in seconds.
const (
	StrikeDelay = 0.3
	FadeDelay   = 1.7
	HoldTime    = 2.0 // reveal end to next segment, before the gap
)

var ErrInvalidTransition = errors.New("invalid transition config")

// Segment is one version of the text.
type Segment struct {
	Container track.UnitID   `yaml:"container"`
	Units     []track.UnitID `yaml:"units"`
	Strike    track.UnitID   `yaml:"strike,omitempty"`
	Final     bool           `yaml:"final,omitempty"`
}

// TransitionConfig controls the hand-off between segments.
type TransitionConfig struct {
	Gap             float64       `yaml:"gap"`
	StrikeDuration  float64       `yaml:"strike_duration"`
	FadeOutDuration float64       `yaml:"fade_out_duration"`
	Typing          reveal.Config `yaml:"typing"`
}

// DefaultTransition returns the stock hand-off timings.
func DefaultTransition() TransitionConfig {
	return TransitionConfig{
		Gap:             0.5,
		StrikeDuration:  0.5,
		FadeOutDuration: 0.3,
		Typing:          reveal.DefaultTyping(),
	}
}

// Validate rejects negative timings.
func (c TransitionConfig) Validate() error {
	if c.Gap < 0 || c.StrikeDuration < 0 || c.FadeOutDuration < 0 {
		return fmt.Errorf("%w: gap %f strike %f fade %f", ErrInvalidTransition, c.Gap, c.StrikeDuration, c.FadeOutDuration)
	}
	if err := c.Typing.Validate(); err != nil {
		return fmt.Errorf("typing: %w", err)
	}
	return nil
}

// Span is where one segment landed on the merged timeline.
type Span struct {
	Start     float64 // cursor the segment was anchored at
	RevealEnd float64
	Next      float64 // cursor handed to the following segment
	Typos     int
}

// Plan is a sequenced timeline plus the per-segment bookkeeping.
type Plan struct {
	Track  *track.Track
	Spans  []Span
	Cursor float64
}

// Sequence lays segments out back to back starting at 0.
func Sequence(segments []Segment, cfg TransitionConfig, rnd reveal.Rand) (*Plan, error) {
	return SequenceAt(0, segments, cfg, rnd)
}

// SequenceAt is Sequence anchored at start.
func SequenceAt(start float64, segments []Segment, cfg TransitionConfig, rnd reveal.Rand) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = reveal.NewRand(0)
	}

	plan := &Plan{Cursor: start}
	parts := make([]*track.Track, 0, len(segments))
	for i, seg := range segments {
		part, span, err := segment(plan.Cursor, seg, cfg, rnd)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		parts = append(parts, part)
		plan.Spans = append(plan.Spans, span)
		plan.Cursor = span.Next
	}
	plan.Track = track.Merge(parts...)
	return plan, nil
}

func segment(cursor float64, seg Segment, cfg TransitionConfig, rnd reveal.Rand) (*track.Track, Span, error) {
	typing := cfg.Typing
	typing.StartTime = 0
	res, err := reveal.Generate(seg.Units, reveal.HumanTyping, typing, rnd)
	if err != nil {
		return nil, Span{}, err
	}

	var extra []track.Event
	build := func() *track.Track {
		return track.Merge(res.Track.Shift(cursor), track.New(extra...))
	}
	if seg.Container != "" {
		extra = append(extra, track.Event{
			Unit:    seg.Container,
			Start:   cursor,
			Kind:    track.KindShow,
			Changes: map[track.Property]track.Change{track.Opacity: track.To(1)},
		})
	}

	revealEnd := cursor + res.Track.Duration()
	span := Span{Start: cursor, RevealEnd: revealEnd, Next: revealEnd, Typos: res.Typos}
	if seg.Final {
		return build(), span, nil
	}
	if seg.Strike == "" {
		logging.Logger().Warn("strike target missing, segment ends without transition",
			"container", seg.Container)
		return build(), span, nil
	}

	extra = append(extra, track.Event{
		Unit:     seg.Strike,
		Start:    revealEnd + StrikeDelay,
		Duration: cfg.StrikeDuration,
		Kind:     track.KindStrike,
		Ease:     "power2.inOut",
		Changes:  map[track.Property]track.Change{track.ScaleX: track.FromTo(0, 1)},
	})
	if seg.Container != "" {
		extra = append(extra, track.Event{
			Unit:     seg.Container,
			Start:    revealEnd + FadeDelay,
			Duration: cfg.FadeOutDuration,
			Kind:     track.KindFadeOut,
			Changes:  map[track.Property]track.Change{track.Opacity: track.FromTo(1, 0)},
		})
	}
	span.Next = revealEnd + HoldTime + cfg.Gap
	return build(), span, nil
}
