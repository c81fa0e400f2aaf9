// Package geom builds the pie-slice shapes behind the radial wipe reveal.
//
// Angles are in degrees, measured clockwise from the positive x axis in
// screen coordinates (y grows downwards), so -90 points straight up.
package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// MinSweep is the smallest sweep a slice is drawn with. A zero sweep would
// collapse both arc endpoints onto one point, which renderers drop.
const MinSweep = 0.01

// WipePadding is added to a target's half extent so a wipe clears its
// corners.
const WipePadding = 50

var ErrBadPath = errors.New("malformed slice path")

type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Frame is the state of a wipe at one progress value.
type Frame struct {
	Center       Point
	Radius       float64
	CurrentAngle float64
}

// BoundsFrame returns the wipe frame that covers r with padding to spare.
func BoundsFrame(r Rect, padding float64) Frame {
	return Frame{
		Center: Point{X: r.X + r.W/2, Y: r.Y + r.H/2},
		Radius: math.Max(r.W, r.H)/2 + padding,
	}
}

// Slice is a filled circular sector.
type Slice struct {
	Center     Point
	Radius     float64
	Start      Point
	End        Point
	StartAngle float64
	EndAngle   float64 // after MinSweep adjustment
	LargeArc   bool
	Clockwise  bool
}

func polar(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: c.X + r*math.Cos(rad), Y: c.Y + r*math.Sin(rad)}
}

// PieSlice returns the sector from startDeg to currentDeg. Sweeps are kept
// within (0, 360) in magnitude: an empty sweep becomes MinSweep and a full
// turn stops MinSweep short so the arc stays drawable.
func PieSlice(center Point, radius, startDeg, currentDeg float64) Slice {
	sweep := currentDeg - startDeg
	switch {
	case sweep == 0:
		sweep = MinSweep
	case sweep >= 360:
		sweep = 360 - MinSweep
	case sweep <= -360:
		sweep = -360 + MinSweep
	}

	end := startDeg + sweep
	return Slice{
		Center:     center,
		Radius:     radius,
		Start:      polar(center, radius, startDeg),
		End:        polar(center, radius, end),
		StartAngle: startDeg,
		EndAngle:   end,
		LargeArc:   math.Abs(sweep) > 180,
		Clockwise:  sweep > 0,
	}
}

// Frame reports the slice as a wipe frame.
func (s Slice) Frame() Frame {
	return Frame{Center: s.Center, Radius: s.Radius, CurrentAngle: s.EndAngle}
}

func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// String renders the slice as SVG path data.
func (s Slice) String() string {
	return fmt.Sprintf("M %s,%s L %s,%s A %s,%s 0 %s,%s %s,%s Z",
		num(s.Center.X), num(s.Center.Y),
		num(s.Start.X), num(s.Start.Y),
		num(s.Radius), num(s.Radius),
		flag(s.LargeArc), flag(s.Clockwise),
		num(s.End.X), num(s.End.Y))
}

// ParsePath reads back path data in the form String emits.
func ParsePath(d string) (Slice, error) {
	tok := strings.Fields(strings.ReplaceAll(d, ",", " "))
	if len(tok) != 15 || tok[0] != "M" || tok[3] != "L" || tok[6] != "A" || tok[14] != "Z" {
		return Slice{}, fmt.Errorf("%w: %q", ErrBadPath, d)
	}

	// M cx cy L sx sy A rx ry rot large sweep ex ey Z
	idx := []int{1, 2, 4, 5, 7, 8, 12, 13}
	vals := make([]float64, len(idx))
	for i, j := range idx {
		v, err := strconv.ParseFloat(tok[j], 64)
		if err != nil {
			return Slice{}, fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		vals[i] = v
	}
	if vals[4] != vals[5] {
		return Slice{}, fmt.Errorf("%w: elliptical radius %s,%s", ErrBadPath, tok[7], tok[8])
	}

	s := Slice{
		Center:    Point{vals[0], vals[1]},
		Start:     Point{vals[2], vals[3]},
		Radius:    vals[4],
		End:       Point{vals[6], vals[7]},
		LargeArc:  tok[10] == "1",
		Clockwise: tok[11] == "1",
	}
	s.StartAngle = angleOf(s.Center, s.Start)
	s.EndAngle = angleOf(s.Center, s.End)
	return s, nil
}

func angleOf(c, p Point) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
}

// Trace appends the sector to dc's current path. The caller fills or
// clips with it.
func (s Slice) Trace(dc *gg.Context) {
	from, to := s.StartAngle, s.EndAngle
	first := s.Start
	if !s.Clockwise {
		from, to = to, from
		first = s.End
	}
	dc.MoveTo(s.Center.X, s.Center.Y)
	dc.LineTo(first.X, first.Y)
	dc.DrawArc(s.Center.X, s.Center.Y, s.Radius, from*math.Pi/180, to*math.Pi/180)
	dc.ClosePath()
}
