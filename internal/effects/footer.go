package effects

import (
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

// Footer slide timings.
const (
	footerEnter = 0.8
	footerBack  = 0.5
)

// FooterSlide raises the footer from below the fold as the page end scrolls
// into view and tucks it away again on the way back.
type FooterSlide struct {
	Footer track.UnitID
	Height float64
}

// Track returns the slide for one transition, starting at at. Leave has
// nothing to animate and yields an empty track.
func (f FooterSlide) Track(k scroll.TransitionKind, at float64) *track.Track {
	bottom := func(c track.Change, dur float64, ease string) *track.Track {
		return track.New(tween(f.Footer, track.KindSlide, at, dur, ease,
			map[track.Property]track.Change{track.Bottom: c}))
	}
	switch k {
	case scroll.Enter:
		return bottom(track.FromTo(-f.Height, 0), footerEnter, "power2.out")
	case scroll.EnterBack:
		return bottom(track.To(0), footerBack, "power2.out")
	case scroll.LeaveBack:
		return bottom(track.To(-f.Height), footerBack, "power2.in")
	}
	return track.New()
}

// Rest is where the footer sits before the page end is reached.
func (f FooterSlide) Rest() scroll.Frame {
	return scroll.Frame{Values: map[track.Property]float64{track.Bottom: -f.Height}}
}

// OnToggle adapts the slide to a trigger callback. play receives each
// non-empty slide track.
func (f FooterSlide) OnToggle(play func(*track.Track)) func(scroll.Transition) {
	return func(tr scroll.Transition) {
		if t := f.Track(tr.Kind, 0); t.Len() > 0 {
			play(t)
		}
	}
}
