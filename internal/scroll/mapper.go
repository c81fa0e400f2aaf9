// Package scroll maps scroll progress to visual properties and drives the
// mapping from an external scroll observer.
//
// Mappers are pure: the same progress always yields the same Frame. Input
// outside [0,1] is not clamped; the Trigger clamps before it calls a mapper.
package scroll

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/sitemotion/internal/easing"
	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/track"
)

var ErrInvalidMapper = errors.New("invalid scroll mapper")

// Frame is the output of a mapper for one progress value.
type Frame struct {
	Values map[track.Property]float64
	Path   string // SVG path data, empty when the mapper has no shape
}

// Mapper turns scroll progress into a Frame.
type Mapper interface {
	Map(progress float64) Frame
}

// Rester is implemented by mappers that snap back to a resting frame when
// their trigger goes inactive.
type Rester interface {
	Rest() Frame
}

// ParallaxConfig describes a letter that drifts and dims while scrolling.
type ParallaxConfig struct {
	Speed            float64 `yaml:"speed"`
	Scale            float64 `yaml:"scale"` // y units per unit of speed
	OpacityStart     float64 `yaml:"opacity_start"`
	OpacityThreshold float64 `yaml:"opacity_threshold"` // progress where OpacityMin is reached
	OpacityMin       float64 `yaml:"opacity_min"`
	Ease             string  `yaml:"ease"`
}

// DefaultParallax returns the drift used by the masthead letters.
func DefaultParallax(speed float64) ParallaxConfig {
	return ParallaxConfig{
		Speed:            speed,
		Scale:            100,
		OpacityStart:     1,
		OpacityThreshold: 0.3,
		OpacityMin:       0.5,
		Ease:             "power2.out",
	}
}

type Parallax struct {
	cfg  ParallaxConfig
	ease easing.Func
}

func NewParallax(cfg ParallaxConfig) (*Parallax, error) {
	ease, err := easing.Parse(cfg.Ease)
	if err != nil {
		return nil, fmt.Errorf("parallax: %w", err)
	}
	if cfg.OpacityThreshold < 0 || cfg.OpacityThreshold > 1 {
		return nil, fmt.Errorf("%w: opacity threshold %f outside [0,1]", ErrInvalidMapper, cfg.OpacityThreshold)
	}
	return &Parallax{cfg: cfg, ease: ease}, nil
}

func (p *Parallax) Map(progress float64) Frame {
	opacity := p.cfg.OpacityMin
	if p.cfg.OpacityThreshold > 0 && progress <= p.cfg.OpacityThreshold {
		opacity = easing.Lerp(p.cfg.OpacityStart, p.cfg.OpacityMin, progress/p.cfg.OpacityThreshold)
	}
	return Frame{Values: map[track.Property]float64{
		track.Y:       p.ease(progress) * p.cfg.Speed * p.cfg.Scale,
		track.Opacity: opacity,
	}}
}

// Rest is the frame applied on refresh and when the trigger deactivates.
func (p *Parallax) Rest() Frame {
	return Frame{Values: map[track.Property]float64{
		track.Y:       0,
		track.Opacity: p.cfg.OpacityStart,
	}}
}

// RadialWipe sweeps a pie slice from StartAngle to EndAngle.
type RadialWipe struct {
	frame      geom.Frame
	start, end float64
	ease       easing.Func
}

func NewRadialWipe(frame geom.Frame, startDeg, endDeg float64, ease string) (*RadialWipe, error) {
	f, err := easing.Parse(ease)
	if err != nil {
		return nil, fmt.Errorf("radial wipe: %w", err)
	}
	if frame.Radius <= 0 {
		return nil, fmt.Errorf("%w: radius %f", ErrInvalidMapper, frame.Radius)
	}
	return &RadialWipe{frame: frame, start: startDeg, end: endDeg, ease: f}, nil
}

func (w *RadialWipe) angle(progress float64) float64 {
	return w.start + w.ease(progress)*(w.end-w.start)
}

func (w *RadialWipe) Map(progress float64) Frame {
	angle := w.angle(progress)
	return Frame{
		Values: map[track.Property]float64{track.Angle: angle},
		Path:   geom.PieSlice(w.frame.Center, w.frame.Radius, w.start, angle).String(),
	}
}

// Slice returns the geometry behind Map, for raster previews.
func (w *RadialWipe) Slice(progress float64) geom.Slice {
	return geom.PieSlice(w.frame.Center, w.frame.Radius, w.start, w.angle(progress))
}

// InkSway moves an ink blot across in xPercent while it bobs on a sine.
type InkSway struct {
	FromX     float64 `yaml:"from_x"`
	ToX       float64 `yaml:"to_x"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultInkSway() InkSway {
	return InkSway{FromX: -100, ToX: 100, Amplitude: 20, Frequency: 2}
}

func (s InkSway) Map(progress float64) Frame {
	return Frame{Values: map[track.Property]float64{
		track.XPercent: easing.Lerp(s.FromX, s.ToX, progress),
		track.Y:        math.Sin(progress*math.Pi*s.Frequency) * s.Amplitude,
	}}
}

// InkLinear is the straight variant of InkSway.
type InkLinear struct {
	FromX float64 `yaml:"from_x"`
	ToX   float64 `yaml:"to_x"`
}

func (l InkLinear) Map(progress float64) Frame {
	return Frame{Values: map[track.Property]float64{
		track.XPercent: easing.Lerp(l.FromX, l.ToX, progress),
		track.Y:        0,
	}}
}

// Convergence pulls a scattered letter up to its baseline while it fades in.
type Convergence struct {
	fromY, opacityStart, opacityEnd float64
	ease                            easing.Func
}

func NewConvergence(fromY, opacityStart, opacityEnd float64, ease string) (*Convergence, error) {
	f, err := easing.Parse(ease)
	if err != nil {
		return nil, fmt.Errorf("convergence: %w", err)
	}
	return &Convergence{fromY: fromY, opacityStart: opacityStart, opacityEnd: opacityEnd, ease: f}, nil
}

func (c *Convergence) Map(progress float64) Frame {
	k := c.ease(progress)
	return Frame{Values: map[track.Property]float64{
		track.Y:       easing.Lerp(c.fromY, 0, k),
		track.Opacity: easing.Lerp(c.opacityStart, c.opacityEnd, k),
	}}
}

// FrameScrub maps progress onto a frame index of a pre-rendered clip.
type FrameScrub struct {
	TotalFrames int `yaml:"total_frames"`
}

func (s FrameScrub) Map(progress float64) Frame {
	last := float64(s.TotalFrames - 1)
	if last < 0 {
		last = 0
	}
	return Frame{Values: map[track.Property]float64{
		track.Frame: math.Round(progress * last),
	}}
}
