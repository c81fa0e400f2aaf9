package effects

import (
	"fmt"

	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

// DoOverSpeeds are the per-letter parallax speeds of the "do over" heading.
var DoOverSpeeds = []float64{-0.5, -0.8, -1.2, -0.4, -1.2, -0.8, -1.1, -1.5, -0.5, -1.2, -1.0}

// DoOverIntro fades the heading letters in, after which each letter drifts
// with its own parallax speed while the page scrolls.
type DoOverIntro struct {
	Letters  []track.UnitID
	Delay    float64
	Stagger  float64
	Duration float64
	Speeds   []float64
	Parallax scroll.ParallaxConfig // Speed is taken from Speeds
}

func DefaultDoOver(letters []track.UnitID) DoOverIntro {
	return DoOverIntro{
		Letters:  letters,
		Delay:    0.3,
		Stagger:  0.1,
		Duration: 0.5,
		Speeds:   DoOverSpeeds,
		Parallax: scroll.DefaultParallax(0),
	}
}

func (d DoOverIntro) Compose(at float64) (*track.Track, error) {
	res, err := reveal.Generate(d.Letters, reveal.Uniform, reveal.Config{
		Stagger:   d.Stagger,
		Duration:  d.Duration,
		StartTime: at + d.Delay,
		Ease:      "power2.out",
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("do-over intro: %w", err)
	}
	return res.Track, nil
}

// End is when the intro hands over to the next section: one stagger after
// the last letter has landed.
func (d DoOverIntro) End(at float64) float64 {
	return at + d.Delay + d.Duration + float64(len(d.Letters))*d.Stagger
}

// Speed returns the parallax speed of letter i. Speeds repeat when there
// are more letters than speeds.
func (d DoOverIntro) Speed(i int) float64 {
	if len(d.Speeds) == 0 {
		return -1
	}
	return d.Speeds[i%len(d.Speeds)]
}

// Mappers builds one parallax mapper per letter.
func (d DoOverIntro) Mappers() (map[track.UnitID]scroll.Mapper, error) {
	out := make(map[track.UnitID]scroll.Mapper, len(d.Letters))
	for i, u := range d.Letters {
		cfg := d.Parallax
		cfg.Speed = d.Speed(i)
		p, err := scroll.NewParallax(cfg)
		if err != nil {
			return nil, fmt.Errorf("letter %s: %w", u, err)
		}
		out[u] = p
	}
	return out, nil
}
