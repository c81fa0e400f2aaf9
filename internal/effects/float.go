package effects

import (
	"github.com/ivlev/sitemotion/internal/track"
)

// FloatIn lifts a unit into place while fading it in.
type FloatIn struct {
	Unit     track.UnitID
	Distance float64
	Duration float64
	Delay    float64
	Ease     string
}

func DefaultFloatIn(u track.UnitID) FloatIn {
	return FloatIn{Unit: u, Distance: 100, Duration: 1.5, Delay: 0.3, Ease: "power2.out"}
}

func (f FloatIn) Compose(at float64) (*track.Track, error) {
	if err := checkTimings("float-in", f.Duration, f.Delay); err != nil {
		return nil, err
	}
	return track.New(tween(f.Unit, track.KindFloat, at+f.Delay, f.Duration, f.Ease,
		map[track.Property]track.Change{
			track.Y:       track.FromTo(f.Distance, 0),
			track.Opacity: track.FromTo(0, 1),
		})), nil
}

// Reverse sinks the unit back out, the way it came in.
func (f FloatIn) Reverse(at float64) (*track.Track, error) {
	if err := checkTimings("float-in", f.Duration); err != nil {
		return nil, err
	}
	return track.New(tween(f.Unit, track.KindFloat, at, f.Duration, f.Ease,
		map[track.Property]track.Change{
			track.Y:       track.FromTo(0, f.Distance),
			track.Opacity: track.FromTo(1, 0),
		})), nil
}

// Bob is the idle float once a unit has landed: down by amplitude and back,
// forever.
func Bob(u track.UnitID, amplitude, period float64) Loop {
	return Loop{
		Track: track.New(tween(u, track.KindFloat, 0, period, "power1.inOut",
			map[track.Property]track.Change{track.Y: track.FromTo(0, amplitude)})),
		Repeat: -1,
		Yoyo:   true,
	}
}
