// Package director turns scene files into timelines: the masthead intro
// chain played once on load and the scroll bindings driven by the page.
package director

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ivlev/sitemotion/internal/effects"
	"github.com/ivlev/sitemotion/internal/engine"
	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/sequencer"
	"github.com/ivlev/sitemotion/internal/track"
)

// ErrMissingTarget marks a section whose units are not in the scene.
var ErrMissingTarget = errors.New("target unit not found")

// Director composes scenes. A Director must not be copied after use.
type Director struct {
	Transition sequencer.TransitionConfig
	Rand       reveal.Rand

	// ink bindings are built by the first ScrollBindings call only.
	ink engine.Once[inkSetup]
}

type inkSetup struct {
	bindings []Binding
	skipped  []Skip
}

// NewDirector creates a Director seeded with seed; 0 seeds from the clock.
func NewDirector(seed int64) *Director {
	return &Director{
		Transition: sequencer.DefaultTransition(),
		Rand:       reveal.NewRand(seed),
	}
}

// SectionSpan is where one section landed on the masthead timeline.
type SectionSpan struct {
	Name   string
	Kind   SectionKind
	Start  float64
	End    float64
	Events int
}

// Skip is a section left out because a target was missing.
type Skip struct {
	Name string
	Err  error
}

// Cycle is a loop a masthead section leaves running after its first pass.
type Cycle struct {
	Section string
	Start   float64
	Loop    effects.Loop
}

// Report describes how a scene was composed.
type Report struct {
	Spans   []SectionSpan
	Skipped []Skip
	Cycles  []Cycle
}

func (r *Report) skip(s Section, err error) {
	logging.Logger().Warn("section skipped", "section", s.label(), "err", err)
	r.Skipped = append(r.Skipped, Skip{Name: s.label(), Err: err})
}

// Unroll extends a masthead track with the passes of every cycle that
// start before until, and freezes the result.
func (r *Report) Unroll(tr *track.Track, until float64) (*track.Track, error) {
	parts := []*track.Track{tr}
	for _, c := range r.Cycles {
		part, err := c.Loop.Unroll(c.Start, until)
		if err != nil {
			return nil, fmt.Errorf("cycle %s: %w", c.Section, err)
		}
		parts = append(parts, part)
	}
	out := track.Merge(parts...)
	if err := out.Freeze(); err != nil {
		return nil, err
	}
	return out, nil
}

// mastheadKinds are played in scene order, each starting where the
// previous one ends.
var mastheadKinds = map[SectionKind]bool{
	TextRevisions: true,
	DoOver:        true,
	CleanTyping:   true,
	RollingText:   true,
}

// Masthead chains the scene's intro sections into one frozen track. A
// section with a missing target is reported and contributes nothing; the
// others still run. Any other error aborts.
func (d *Director) Masthead(s *Scene) (*track.Track, *Report, error) {
	idx, err := s.Index()
	if err != nil {
		return nil, nil, err
	}

	rep := &Report{}
	var parts []*track.Track
	cursor := 0.0
	for _, sec := range s.Sections {
		if !mastheadKinds[sec.Kind] {
			continue
		}
		part, end, cycle, err := d.compose(idx, sec, cursor)
		if errors.Is(err, ErrMissingTarget) {
			rep.skip(sec, err)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("section %s: %w", sec.label(), err)
		}
		rep.Spans = append(rep.Spans, SectionSpan{
			Name:   sec.label(),
			Kind:   sec.Kind,
			Start:  cursor,
			End:    end,
			Events: part.Len(),
		})
		if cycle != nil {
			cycle.Section = sec.label()
			rep.Cycles = append(rep.Cycles, *cycle)
		}
		logging.Logger().Debug("section composed", "section", sec.label(), "start", cursor, "end", end, "events", part.Len())
		parts = append(parts, part)
		cursor = end
	}

	out := track.Merge(parts...)
	if err := out.Freeze(); err != nil {
		return nil, nil, err
	}
	return out, rep, nil
}

// compose builds one masthead section at cursor and returns its end, plus
// the loop it keeps running afterwards, if any.
func (d *Director) compose(idx *Index, sec Section, cursor float64) (*track.Track, float64, *Cycle, error) {
	switch sec.Kind {
	case TextRevisions:
		segs := make([]sequencer.Segment, 0, len(sec.Segments))
		for _, spec := range sec.Segments {
			units, err := idx.Letters(spec.Container)
			if err != nil {
				return nil, 0, nil, err
			}
			if spec.Strike != "" && !idx.Has(spec.Strike) {
				return nil, 0, nil, fmt.Errorf("strike: %w: %q", ErrMissingTarget, spec.Strike)
			}
			segs = append(segs, sequencer.Segment{
				Container: spec.Container,
				Units:     units,
				Strike:    spec.Strike,
				Final:     spec.Final,
			})
		}
		cfg := d.Transition
		if sec.Transition != nil {
			cfg = *sec.Transition
		}
		plan, err := sequencer.SequenceAt(cursor, segs, cfg, d.Rand)
		if err != nil {
			return nil, 0, nil, err
		}
		return plan.Track, plan.Cursor, nil, nil

	case DoOver:
		letters, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, 0, nil, err
		}
		intro := effects.DefaultDoOver(letters)
		tr, err := intro.Compose(cursor)
		if err != nil {
			return nil, 0, nil, err
		}
		return tr, intro.End(cursor), nil, nil

	case CleanTyping:
		letters, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, 0, nil, err
		}
		cfg := reveal.DefaultClean()
		if sec.Typing != nil {
			cfg = *sec.Typing
		}
		if sec.Delay < 0 {
			return nil, 0, nil, fmt.Errorf("%w: delay %f", reveal.ErrInvalidConfig, sec.Delay)
		}
		cfg.StartTime = cursor + sec.Delay
		res, err := reveal.Generate(letters, reveal.Uniform, cfg, nil)
		if err != nil {
			return nil, 0, nil, err
		}
		return res.Track, max(cursor, res.Track.Duration()), nil, nil

	case RollingText:
		originals, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, 0, nil, err
		}
		dups, err := idx.Letters(sec.Duplicate)
		if err != nil {
			return nil, 0, nil, err
		}
		if len(dups) != len(originals) {
			return nil, 0, nil, fmt.Errorf("%w: %d letters but %d duplicates", effects.ErrInvalidEffect, len(originals), len(dups))
		}
		for _, u := range []track.UnitID{sec.Arrow, sec.Indicator} {
			if u != "" && !idx.Has(u) {
				return nil, 0, nil, fmt.Errorf("%w: %q", ErrMissingTarget, u)
			}
		}
		r := effects.Rolling{Arrow: sec.Arrow, Indicator: sec.Indicator, Config: effects.DefaultRolling()}
		if sec.Rolling != nil {
			r.Config = *sec.Rolling
		}
		for i := range originals {
			r.Letters = append(r.Letters, effects.Letter{Original: originals[i], Duplicate: dups[i]})
		}
		tr, err := r.Compose(cursor)
		if err != nil {
			return nil, 0, nil, err
		}
		var cycle *Cycle
		if r.Config.Interval > 0 {
			loop, err := r.Cycle()
			if err != nil {
				return nil, 0, nil, err
			}
			cycle = &Cycle{Start: cursor + r.CycleStart(), Loop: loop}
		}
		return tr, max(cursor, tr.Duration()), cycle, nil
	}
	return nil, 0, nil, fmt.Errorf("%s is not a masthead section", sec.Kind)
}

// Binding ties one unit to a scroll trigger range. At most one of Mapper,
// Enter and Slide is the primary behaviour. Loop starts after Enter, or
// right away when there is no Enter.
type Binding struct {
	Section string
	Unit    track.UnitID
	Range   Range
	Scrub   float64

	Mapper scroll.Mapper
	Enter  effects.Effect
	Loop   *effects.Loop
	Slide  *effects.FooterSlide
}

// Playback is a time-based track handed to a PlayFunc.
type Playback struct {
	Track  *track.Track
	Delay  float64 // seconds to wait before the first frame
	Repeat int
	Yoyo   bool
	Period float64
}

func loopPlayback(l *effects.Loop, delay float64) Playback {
	return Playback{Track: l.Track, Delay: delay, Repeat: l.Repeat, Yoyo: l.Yoyo, Period: l.Period}
}

// Stopper halts a started playback. *engine.Player satisfies it.
type Stopper interface {
	Stop()
}

// PlayFunc starts a playback on the surface and returns its handle.
type PlayFunc func(Playback) Stopper

// Attach creates the binding's trigger and wires it to s. Tracks started by
// a transition are handed to play.
//
// An Enter effect plays on the first Enter. If it can be reversed, a
// LeaveBack stops whatever it started, plays it backwards and arms it for
// the next Enter.
func (b Binding) Attach(s scroll.Sink, play PlayFunc) (*scroll.Trigger, error) {
	t, err := scroll.NewTrigger(b.Section+"/"+string(b.Unit), b.Range.Start, b.Range.End)
	if err != nil {
		return nil, err
	}
	switch {
	case b.Slide != nil:
		scroll.Apply(s, b.Unit, b.Slide.Rest())
		t.OnToggle = b.Slide.OnToggle(func(tr *track.Track) { play(Playback{Track: tr}) })
	case b.Enter != nil:
		fired := false
		var started []Stopper
		stop := func() {
			for _, st := range started {
				if st != nil {
					st.Stop()
				}
			}
			started = started[:0]
		}
		t.OnToggle = func(ev scroll.Transition) {
			switch ev.Kind {
			case scroll.Enter:
				if fired {
					return
				}
				fired = true
				intro, err := b.Enter.Compose(0)
				if err != nil {
					logging.Logger().Error("enter effect failed", "unit", b.Unit, "err", err)
					return
				}
				started = append(started, play(Playback{Track: intro}))
				if b.Loop != nil {
					started = append(started, play(loopPlayback(b.Loop, intro.Duration())))
				}
			case scroll.LeaveBack:
				rev, ok := b.Enter.(effects.Reverser)
				if !ok || !fired {
					return
				}
				stop()
				fired = false
				back, err := rev.Reverse(0)
				if err != nil {
					logging.Logger().Error("reverse effect failed", "unit", b.Unit, "err", err)
					return
				}
				started = append(started, play(Playback{Track: back}))
			}
		}
	case b.Loop != nil:
		play(loopPlayback(b.Loop, 0))
	}
	if b.Mapper != nil {
		scroll.Bind(t, b.Unit, b.Mapper, s)
	}
	return t, nil
}

// ScrollBindings builds the scroll-driven behaviour of every non-masthead
// section. Missing targets are reported the same way as in Masthead.
func (d *Director) ScrollBindings(s *Scene) ([]Binding, *Report, error) {
	idx, err := s.Index()
	if err != nil {
		return nil, nil, err
	}

	ink, err := d.ink.Do(func() (inkSetup, error) {
		return bindInk(idx, s.Sections)
	})
	if err != nil {
		return nil, nil, err
	}

	rep := &Report{Skipped: slices.Clone(ink.skipped)}
	var out []Binding
	inkPlaced := false
	for _, sec := range s.Sections {
		if mastheadKinds[sec.Kind] && sec.Kind != DoOver {
			continue
		}
		if sec.Kind == Ink {
			if !inkPlaced {
				out = append(out, ink.bindings...)
				inkPlaced = true
			}
			continue
		}
		bs, err := d.bind(idx, sec)
		if errors.Is(err, ErrMissingTarget) {
			rep.skip(sec, err)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("section %s: %w", sec.label(), err)
		}
		out = append(out, bs...)
	}
	return out, rep, nil
}

func (d *Director) bind(idx *Index, sec Section) ([]Binding, error) {
	rg := defaultRange
	if sec.Trigger != nil {
		rg = *sec.Trigger
	}
	base := Binding{Section: sec.label(), Range: rg, Scrub: sec.Scrub}
	perUnit := func(m map[track.UnitID]scroll.Mapper, order []track.UnitID) []Binding {
		out := make([]Binding, 0, len(order))
		for _, u := range order {
			b := base
			b.Unit, b.Mapper = u, m[u]
			out = append(out, b)
		}
		return out
	}

	switch sec.Kind {
	case DoOver:
		letters, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, err
		}
		intro := effects.DefaultDoOver(letters)
		if len(sec.Speeds) > 0 {
			intro.Speeds = sec.Speeds
		}
		m, err := intro.Mappers()
		if err != nil {
			return nil, err
		}
		return perUnit(m, letters), nil

	case SayHelloText:
		letters, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, err
		}
		m, err := effects.SayHello(letters, sec.Scatter)
		if err != nil {
			return nil, err
		}
		return perUnit(m, letters), nil

	case CircleWipe:
		if !idx.Has(sec.Mask) {
			return nil, fmt.Errorf("mask: %w: %q", ErrMissingTarget, sec.Mask)
		}
		bounds, err := idx.Bounds(sec.Target)
		if err != nil {
			return nil, err
		}
		letters, err := idx.Letters(sec.Target)
		if err != nil {
			return nil, err
		}
		c := effects.DefaultCircleReveal(sec.Mask, bounds)
		c.Letters = letters
		b := base
		b.Unit = sec.Mask
		if sec.Scrub > 0 {
			w, err := c.Mapper()
			if err != nil {
				return nil, err
			}
			b.Mapper = w
		} else {
			b.Enter = c
		}
		return []Binding{b}, nil

	case Footer:
		if !idx.Has(sec.Target) {
			return nil, fmt.Errorf("%w: %q", ErrMissingTarget, sec.Target)
		}
		h := sec.Height
		if h <= 0 {
			bounds, _ := idx.Bounds(sec.Target)
			h = bounds.H
		}
		b := base
		b.Unit = sec.Target
		b.Slide = &effects.FooterSlide{Footer: sec.Target, Height: h}
		return []Binding{b}, nil

	case Float:
		if !idx.Has(sec.Target) {
			return nil, fmt.Errorf("%w: %q", ErrMissingTarget, sec.Target)
		}
		loop := effects.Bob(sec.Target, bobAmplitude, bobPeriod)
		b := base
		b.Unit = sec.Target
		b.Enter = effects.DefaultFloatIn(sec.Target)
		b.Loop = &loop
		return []Binding{b}, nil
	}
	return nil, fmt.Errorf("unknown section kind %q", sec.Kind)
}

// bindInk builds every ink section at once. The result is kept for the
// Director's lifetime so the morph loops are only ever started once.
func bindInk(idx *Index, sections []Section) (inkSetup, error) {
	var setup inkSetup
	for _, sec := range sections {
		if sec.Kind != Ink {
			continue
		}
		b, err := inkBinding(idx, sec)
		if errors.Is(err, ErrMissingTarget) {
			logging.Logger().Warn("section skipped", "section", sec.label(), "err", err)
			setup.skipped = append(setup.skipped, Skip{Name: sec.label(), Err: err})
			continue
		}
		if err != nil {
			return inkSetup{}, fmt.Errorf("section %s: %w", sec.label(), err)
		}
		setup.bindings = append(setup.bindings, b)
	}
	logging.Logger().Debug("ink reveals initialised", "bindings", len(setup.bindings))
	return setup, nil
}

func inkBinding(idx *Index, sec Section) (Binding, error) {
	if !idx.Has(sec.Target) {
		return Binding{}, fmt.Errorf("%w: %q", ErrMissingTarget, sec.Target)
	}
	from, to := -100.0, 100.0
	switch sec.Direction {
	case "", LeftToRight:
	case RightToLeft:
		from, to = to, from
	default:
		return Binding{}, fmt.Errorf("%w: ink direction %q", scroll.ErrInvalidMapper, sec.Direction)
	}

	rg := defaultRange
	if sec.Trigger != nil {
		rg = *sec.Trigger
	}
	b := Binding{Section: sec.label(), Unit: sec.Target, Range: rg, Scrub: sec.Scrub}
	switch sec.Ink {
	case "", "sway":
		sway := scroll.DefaultInkSway()
		sway.FromX, sway.ToX = from, to
		b.Mapper = sway
	case "linear":
		b.Mapper = scroll.InkLinear{FromX: from, ToX: to}
	default:
		return Binding{}, fmt.Errorf("%w: ink style %q", scroll.ErrInvalidMapper, sec.Ink)
	}
	morph := effects.InkMorph(sec.Target)
	b.Loop = &morph
	return b, nil
}

// Idle bob of floated units.
const (
	bobAmplitude = 8
	bobPeriod    = 2.5
)
