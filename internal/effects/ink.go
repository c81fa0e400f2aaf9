package effects

import (
	"github.com/ivlev/sitemotion/internal/track"
)

// InkMorph is the slow breathing of an ink blot, independent of scroll.
func InkMorph(u track.UnitID) Loop {
	return Loop{
		Track: track.New(tween(u, track.KindFloat, 0, inkMorphPeriod, "sine.inOut",
			map[track.Property]track.Change{track.Scale: track.FromTo(1, inkMorphScale)})),
		Repeat: -1,
		Yoyo:   true,
	}
}

const (
	inkMorphPeriod = 4
	inkMorphScale  = 1.1
)
