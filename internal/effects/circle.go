package effects

import (
	"fmt"
	"slices"

	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

// CircleReveal sweeps a pie-slice mask over a target and then reveals the
// letters inside it. The mask's Angle property carries the sweep.
type CircleReveal struct {
	Mask       track.UnitID
	Frame      geom.Frame
	StartAngle float64
	EndAngle   float64
	Duration   float64
	Ease       string

	Letters []track.UnitID
	Letter  reveal.Config // StartTime is ignored
	Overlap float64       // letters start this long before the sweep ends
	Reverse bool
}

// DefaultCircleReveal is the full-turn wipe used on section headings.
func DefaultCircleReveal(mask track.UnitID, bounds geom.Rect) CircleReveal {
	return CircleReveal{
		Mask:       mask,
		Frame:      geom.BoundsFrame(bounds, geom.WipePadding),
		StartAngle: -90,
		EndAngle:   270,
		Duration:   3,
		Ease:       "none",
		Letter:     reveal.Config{Stagger: 0.02, Duration: 0.1},
		Reverse:    true,
	}
}

// HandCircle is the quick partial circle drawn around the hand icon.
func HandCircle(mask track.UnitID, bounds geom.Rect) CircleReveal {
	c := DefaultCircleReveal(mask, bounds)
	c.StartAngle, c.EndAngle, c.Duration = -122, 233, 0.25
	return c
}

func (c CircleReveal) Compose(at float64) (*track.Track, error) {
	if err := checkTimings("circle reveal", c.Duration, c.Overlap); err != nil {
		return nil, err
	}
	if c.Frame.Radius <= 0 {
		return nil, fmt.Errorf("%w: circle reveal radius %f", ErrInvalidEffect, c.Frame.Radius)
	}

	out := track.New(tween(c.Mask, track.KindReveal, at, c.Duration, c.Ease,
		map[track.Property]track.Change{track.Angle: track.FromTo(c.StartAngle, c.EndAngle)}))

	letters := c.Letters
	if c.Reverse {
		letters = slices.Clone(letters)
		slices.Reverse(letters)
	}
	cfg := c.Letter
	cfg.StartTime = max(at+c.Duration-c.Overlap, 0)
	res, err := reveal.Generate(letters, reveal.Uniform, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("circle reveal letters: %w", err)
	}
	return track.Merge(out, res.Track), nil
}

// Mapper returns the scroll-scrubbed variant of the sweep.
func (c CircleReveal) Mapper() (*scroll.RadialWipe, error) {
	return scroll.NewRadialWipe(c.Frame, c.StartAngle, c.EndAngle, c.Ease)
}

// SliceAt turns a sampled mask angle back into its geometry.
func (c CircleReveal) SliceAt(angle float64) geom.Slice {
	return geom.PieSlice(c.Frame.Center, c.Frame.Radius, c.StartAngle, angle)
}
