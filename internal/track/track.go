// Package track defines the timed-event track every composer builds on.
//
// A Track is an ordered collection of Events. Insertion order carries no
// meaning; only Start decides playback order. A Track is built by a
// composer, frozen, and then handed to a player which treats it as
// read-only.
package track

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrFrozen       = errors.New("track is frozen")
)

// UnitID is an opaque handle to a renderable element owned by the
// rendering surface. The core never creates or destroys units.
type UnitID string

// Property names a visual property on a unit.
type Property string

const (
	Opacity  Property = "opacity"
	X        Property = "x"
	Y        Property = "y"
	XPercent Property = "xPercent"
	YPercent Property = "yPercent"
	Scale    Property = "scale"
	ScaleX   Property = "scaleX"
	Bottom   Property = "bottom"
	Frame    Property = "frame"
	Angle    Property = "angle"
)

// Default returns the value a property has before anything writes it.
func Default(p Property) float64 {
	switch p {
	case Opacity, Scale, ScaleX:
		return 1
	default:
		return 0
	}
}

// Kind labels the role an event plays inside a composition.
type Kind string

const (
	KindShow      Kind = "show"
	KindReveal    Kind = "reveal"
	KindBackspace Kind = "backspace"
	KindRetype    Kind = "retype"
	KindStrike    Kind = "strike"
	KindFadeOut   Kind = "fade-out"
	KindRollOut   Kind = "roll-out"
	KindRollIn    Kind = "roll-in"
	KindSlide     Kind = "slide"
	KindBounce    Kind = "bounce"
	KindFloat     Kind = "float"
)

// Change is a property delta. A nil From tweens from the current value.
type Change struct {
	From *float64 `yaml:"from,omitempty"`
	To   float64  `yaml:"to"`
}

// To returns a Change that starts from whatever value the property holds.
func To(v float64) Change {
	return Change{To: v}
}

// FromTo returns a Change with an explicit start value.
func FromTo(from, to float64) Change {
	return Change{From: &from, To: to}
}

// Event is one timed property change on one unit.
type Event struct {
	Unit     UnitID              `yaml:"unit"`
	Start    float64             `yaml:"start"`    // seconds from track start
	Duration float64             `yaml:"duration"` // seconds
	Changes  map[Property]Change `yaml:"changes"`
	Ease     string              `yaml:"ease,omitempty"`
	Kind     Kind                `yaml:"kind,omitempty"`
}

// End returns the absolute end of the event.
func (e Event) End() float64 {
	return e.Start + e.Duration
}

// Validate checks the event is playable.
func (e Event) Validate() error {
	switch {
	case e.Unit == "":
		return fmt.Errorf("%w: no target unit", ErrInvalidEvent)
	case e.Start < 0:
		return fmt.Errorf("%w: %s starts at %f", ErrInvalidEvent, e.Unit, e.Start)
	case e.Duration < 0:
		return fmt.Errorf("%w: %s has duration %f", ErrInvalidEvent, e.Unit, e.Duration)
	case len(e.Changes) == 0:
		return fmt.Errorf("%w: %s changes nothing", ErrInvalidEvent, e.Unit)
	}
	return nil
}

// Track is an ordered collection of events forming one playable animation.
type Track struct {
	events []Event
	frozen bool
}

// New returns an unfrozen track holding events.
func New(events ...Event) *Track {
	t := &Track{}
	t.events = append(t.events, events...)
	return t
}

// Add appends events. It fails once the track has been frozen.
func (t *Track) Add(events ...Event) error {
	if t.frozen {
		return ErrFrozen
	}
	t.events = append(t.events, events...)
	return nil
}

// Len returns the number of events.
func (t *Track) Len() int {
	return len(t.events)
}

// Events returns a copy of the events in insertion order.
func (t *Track) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Sorted returns a copy of the events ordered by Start. Events with equal
// Start keep their insertion order.
func (t *Track) Sorted() []Event {
	out := t.Events()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// Duration is the latest end over all events, 0 for an empty track.
func (t *Track) Duration() float64 {
	d := 0.0
	for _, e := range t.events {
		if end := e.End(); end > d {
			d = end
		}
	}
	return d
}

// Shift returns a new unfrozen track with every event moved by offset.
func (t *Track) Shift(offset float64) *Track {
	out := &Track{events: t.Events()}
	for i := range out.events {
		out.events[i].Start += offset
	}
	return out
}

// Merge concatenates tracks without re-timing them.
func Merge(tracks ...*Track) *Track {
	out := &Track{}
	for _, tr := range tracks {
		if tr == nil {
			continue
		}
		out.events = append(out.events, tr.events...)
	}
	return out
}

// Validate returns the first invalid event, if any.
func (t *Track) Validate() error {
	for i, e := range t.events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Freeze validates the track and makes it read-only.
func (t *Track) Freeze() error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.frozen = true
	return nil
}

// Frozen reports whether Freeze succeeded on this track.
func (t *Track) Frozen() bool {
	return t.frozen
}

// Units returns the distinct units touched by the track in first-seen order.
func (t *Track) Units() []UnitID {
	seen := make(map[UnitID]bool)
	var units []UnitID
	for _, e := range t.events {
		if !seen[e.Unit] {
			seen[e.Unit] = true
			units = append(units, e.Unit)
		}
	}
	return units
}

// Count returns how many events carry the given kind.
func (t *Track) Count(kind Kind) int {
	n := 0
	for _, e := range t.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
