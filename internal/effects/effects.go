// Package effects composes the site's section animations from tracks,
// reveals and scroll mappers.
package effects

import (
	"errors"
	"fmt"

	"github.com/ivlev/sitemotion/internal/track"
)

var ErrInvalidEffect = errors.New("invalid effect")

// Effect is a self-contained animation anchored at an absolute time.
type Effect interface {
	Compose(at float64) (*track.Track, error)
}

// Reverser is an Effect that can also be played backwards out of place.
type Reverser interface {
	Effect
	Reverse(at float64) (*track.Track, error)
}

// Loop is a track the player repeats. Repeat < 0 means until stopped; with
// Yoyo every other pass plays backwards. A pass lasts Period when that is
// longer than the track.
type Loop struct {
	Track  *track.Track
	Repeat int
	Yoyo   bool
	Period float64
}

// Pass is the length of one repetition.
func (l Loop) Pass() float64 {
	return max(l.Track.Duration(), l.Period)
}

// Unroll lays the passes of a forward loop out on a finite track starting
// at at. Passes that would begin at or after until are dropped.
func (l Loop) Unroll(at, until float64) (*track.Track, error) {
	if l.Yoyo {
		return nil, fmt.Errorf("%w: yoyo loops cannot be unrolled", ErrInvalidEffect)
	}
	pass := l.Pass()
	if pass <= 0 {
		return nil, fmt.Errorf("%w: empty loop", ErrInvalidEffect)
	}
	var parts []*track.Track
	for i := 0; l.Repeat < 0 || i <= l.Repeat; i++ {
		start := at + float64(i)*pass
		if start >= until {
			break
		}
		parts = append(parts, l.Track.Shift(start))
	}
	return track.Merge(parts...), nil
}

func tween(u track.UnitID, kind track.Kind, at, dur float64, ease string, changes map[track.Property]track.Change) track.Event {
	return track.Event{Unit: u, Start: at, Duration: dur, Kind: kind, Ease: ease, Changes: changes}
}

func checkTimings(name string, vals ...float64) error {
	for _, v := range vals {
		if v < 0 {
			return fmt.Errorf("%w: %s has a negative timing %f", ErrInvalidEffect, name, v)
		}
	}
	return nil
}
