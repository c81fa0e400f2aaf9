package scroll

import (
	"fmt"

	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/track"
)

// TransitionKind names a boundary crossing.
type TransitionKind int

const (
	Enter     TransitionKind = iota // forward past Start
	Leave                           // forward past End
	EnterBack                       // backward past End
	LeaveBack                       // backward past Start
)

func (k TransitionKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	case EnterBack:
		return "enter-back"
	case LeaveBack:
		return "leave-back"
	}
	return fmt.Sprintf("transition(%d)", int(k))
}

// Transition is delivered to OnToggle.
type Transition struct {
	Kind     TransitionKind
	Active   bool
	Progress float64
}

type zone int

const (
	before zone = iota
	inside
	after
)

// Trigger turns raw scroll positions into progress for the range
// [Start, End]. Both callbacks are optional.
type Trigger struct {
	Name     string
	Start    float64
	End      float64
	OnUpdate func(progress float64)
	OnToggle func(Transition)

	zone     zone
	progress float64
	killed   bool
}

func NewTrigger(name string, start, end float64) (*Trigger, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: trigger %q range %f..%f", ErrInvalidMapper, name, start, end)
	}
	return &Trigger{Name: name, Start: start, End: end}, nil
}

// Progress returns the last clamped progress.
func (t *Trigger) Progress() float64 { return t.progress }

// Active reports whether the last position was inside the range.
func (t *Trigger) Active() bool { return t.zone == inside }

func (t *Trigger) Killed() bool { return t.killed }

func (t *Trigger) zoneOf(pos float64) zone {
	switch {
	case pos < t.Start:
		return before
	case pos > t.End:
		return after
	default:
		return inside
	}
}

// Feed takes the observer's raw position. Crossings fire OnToggle in the
// order they happened; OnUpdate receives the clamped progress while the
// position is inside the range and once more on the sample that leaves it.
func (t *Trigger) Feed(pos float64) {
	if t.killed {
		return
	}
	next := t.zoneOf(pos)
	p := (pos - t.Start) / (t.End - t.Start)
	p = min(max(p, 0), 1)

	crossings := t.crossings(t.zone, next)
	wasInside := t.zone == inside
	t.zone = next
	t.progress = p

	if t.OnUpdate != nil && (next == inside || wasInside || len(crossings) > 0) {
		t.OnUpdate(p)
	}
	for _, k := range crossings {
		logging.Logger().Debug("scroll transition", "trigger", t.Name, "kind", k, "progress", p)
		if t.OnToggle != nil {
			t.OnToggle(Transition{Kind: k, Active: k == Enter || k == EnterBack, Progress: p})
		}
	}
}

func (t *Trigger) crossings(from, to zone) []TransitionKind {
	switch {
	case from == to:
		return nil
	case from == before && to == inside:
		return []TransitionKind{Enter}
	case from == before && to == after:
		return []TransitionKind{Enter, Leave}
	case from == inside && to == after:
		return []TransitionKind{Leave}
	case from == after && to == inside:
		return []TransitionKind{EnterBack}
	case from == after && to == before:
		return []TransitionKind{EnterBack, LeaveBack}
	default: // inside to before
		return []TransitionKind{LeaveBack}
	}
}

// Kill detaches the trigger. It is safe to call more than once.
func (t *Trigger) Kill() {
	if t.killed {
		return
	}
	t.killed = true
	t.OnUpdate = nil
	t.OnToggle = nil
}

// Sink receives mapped property values.
type Sink interface {
	Set(unit track.UnitID, p track.Property, v float64)
}

// PathSink is implemented by sinks that can take shape data.
type PathSink interface {
	SetPath(unit track.UnitID, d string)
}

// Apply writes f to unit on s.
func Apply(s Sink, unit track.UnitID, f Frame) {
	for p, v := range f.Values {
		s.Set(unit, p, v)
	}
	if f.Path != "" {
		if ps, ok := s.(PathSink); ok {
			ps.SetPath(unit, f.Path)
		}
	}
}

// Bind routes the trigger's progress through m onto unit. Callbacks already
// set on t keep running after the bound ones. Mappers implementing Rester
// are reset when the trigger goes inactive.
func Bind(t *Trigger, unit track.UnitID, m Mapper, s Sink) {
	prevUpdate, prevToggle := t.OnUpdate, t.OnToggle
	t.OnUpdate = func(p float64) {
		Apply(s, unit, m.Map(p))
		if prevUpdate != nil {
			prevUpdate(p)
		}
	}

	r, ok := m.(Rester)
	if !ok {
		return
	}
	t.OnToggle = func(tr Transition) {
		if !tr.Active {
			Apply(s, unit, r.Rest())
		}
		if prevToggle != nil {
			prevToggle(tr)
		}
	}
}
