package track

import (
	"github.com/ivlev/sitemotion/internal/easing"
)

// State holds resolved property values per unit.
type State map[UnitID]map[Property]float64

// Get returns the value for unit/property, falling back to Default.
func (s State) Get(u UnitID, p Property) float64 {
	if props, ok := s[u]; ok {
		if v, ok := props[p]; ok {
			return v
		}
	}
	return Default(p)
}

func (s State) set(u UnitID, p Property, v float64) {
	props, ok := s[u]
	if !ok {
		props = make(map[Property]float64)
		s[u] = props
	}
	props[p] = v
}

// Initial returns the values units hold before playback: for every
// unit/property the explicit From of its earliest event.
func (t *Track) Initial() State {
	st := make(State)
	seen := make(map[UnitID]map[Property]bool)
	for _, e := range t.Sorted() {
		for p, c := range e.Changes {
			if seen[e.Unit] == nil {
				seen[e.Unit] = make(map[Property]bool)
			}
			if seen[e.Unit][p] {
				continue
			}
			seen[e.Unit][p] = true
			if c.From != nil {
				st.set(e.Unit, p, *c.From)
			}
		}
	}
	return st
}

// Sample resolves every property the track writes at time at. Events are
// applied in Start order; an event without From continues from the value
// its predecessor left behind.
func (t *Track) Sample(at float64) State {
	st := t.Initial()
	for _, e := range t.Sorted() {
		if e.Start > at {
			break
		}
		progress := 1.0
		if e.Duration > 0 && at < e.End() {
			progress = (at - e.Start) / e.Duration
		}
		ease, err := easing.Parse(e.Ease)
		if err != nil {
			ease = easing.Linear
		}
		k := ease(progress)
		for p, c := range e.Changes {
			from := st.Get(e.Unit, p)
			if c.From != nil {
				from = *c.From
			}
			st.set(e.Unit, p, easing.Lerp(from, c.To, k))
		}
	}
	return st
}

// Conflict is a pair of events writing the same property of the same unit
// during overlapping intervals.
type Conflict struct {
	Unit     UnitID
	Property Property
	First    Event
	Second   Event
}

// Conflicts reports overlapping writes. Zero-length events never overlap.
func (t *Track) Conflicts() []Conflict {
	var out []Conflict
	events := t.Sorted()
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if b.Start >= a.End() {
				// sorted by Start: nothing after b can overlap a either
				break
			}
			if a.Unit != b.Unit || b.Duration == 0 {
				continue
			}
			for p := range a.Changes {
				if _, ok := b.Changes[p]; ok {
					out = append(out, Conflict{Unit: a.Unit, Property: p, First: a, Second: b})
				}
			}
		}
	}
	return out
}
