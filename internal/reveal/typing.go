package reveal

import (
	"github.com/ivlev/sitemotion/internal/track"
)

// Typing simulation timings, in seconds.
const (
	delayBias         = 0.01 // jitter is drawn from [-bias, 1-bias) * variation
	hesitationMin     = 0.1  // pause before and after a typo correction
	hesitationSpan    = 0.2
	backspaceDuration = 0.03
	backspaceStagger  = 0.05
	backspaceGap      = 0.15
	pauseChance       = 0.1 // chance of a thinking pause after a clean unit
	pauseMin          = 0.15
	pauseSpan         = 0.25
)

// typingState is the accumulator folded over the units. typed is sticky:
// once a typo has been inserted no later unit may start another.
type typingState struct {
	t      float64
	typed  bool
	typoAt int
	events []track.Event
}

func humanTyping(units []track.UnitID, cfg Config, rnd Rand) *Result {
	st := typingState{t: cfg.StartTime, typoAt: -1}
	for i := range units {
		st = st.step(units, i, cfg, rnd)
	}

	res := &Result{
		Track:  track.New(st.events...),
		Cursor: st.t,
		TypoAt: st.typoAt,
	}
	if st.typed {
		res.Typos = 1
	}
	return res
}

// step advances the clock for unit i and emits its events. The random
// draws happen in a fixed order so a seeded source replays exactly:
// delay, typo gate (only while no typo happened), then the pause draws.
func (st typingState) step(units []track.UnitID, i int, cfg Config, rnd Rand) typingState {
	u := units[i]
	st.t += cfg.BaseDelay + (rnd.Float64()-delayBias)*cfg.DelayVariation

	if !st.typed && rnd.Float64() < cfg.TypoChance && i > 2 && i < len(units)-2 {
		prev := units[i-1]
		st.typed = true
		st.typoAt = i

		st.events = append(st.events, revealEvent(u, st.t, cfg))
		st.t += hesitationMin + rnd.Float64()*hesitationSpan

		st.events = append(st.events,
			hideEvent(u, st.t),
			hideEvent(prev, st.t+backspaceStagger),
		)
		st.t += backspaceGap

		st.events = append(st.events, retypeEvent(prev, st.t, cfg))
		st.t += cfg.BaseDelay

		st.events = append(st.events, retypeEvent(u, st.t, cfg))
		st.t += hesitationMin + rnd.Float64()*hesitationSpan
		return st
	}

	st.events = append(st.events, revealEvent(u, st.t, cfg))
	if rnd.Float64() < pauseChance {
		st.t += pauseMin + rnd.Float64()*pauseSpan
	}
	return st
}

func hideEvent(u track.UnitID, at float64) track.Event {
	return track.Event{
		Unit:     u,
		Start:    at,
		Duration: backspaceDuration,
		Kind:     track.KindBackspace,
		Changes:  map[track.Property]track.Change{track.Opacity: track.To(0)},
	}
}

func retypeEvent(u track.UnitID, at float64, cfg Config) track.Event {
	return track.Event{
		Unit:     u,
		Start:    at,
		Duration: cfg.Duration,
		Kind:     track.KindRetype,
		Ease:     cfg.Ease,
		Changes:  map[track.Property]track.Change{track.Opacity: track.To(1)},
	}
}
