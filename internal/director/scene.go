package director

import (
	"fmt"

	"github.com/ivlev/sitemotion/internal/effects"
	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/renderer"
	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/sequencer"
	"github.com/ivlev/sitemotion/internal/source"
	"github.com/ivlev/sitemotion/internal/track"
)

// Scene describes a page: the units it is made of and the animated
// sections that drive them.
type Scene struct {
	Version  string    `yaml:"version"`
	Units    []Unit    `yaml:"units"`
	Sections []Section `yaml:"sections"`
}

// KindText units are split into one glyph child per character.
const KindText = "text"

// Unit is a scene element. Kind is "text" or one of the renderer kinds.
type Unit struct {
	ID         track.UnitID `yaml:"id"`
	Kind       string       `yaml:"kind"`
	Text       string       `yaml:"text,omitempty"`
	Bounds     Rectangle    `yaml:"bounds"`
	Parent     track.UnitID `yaml:"parent,omitempty"`
	Color      string       `yaml:"color,omitempty"`
	QR         string       `yaml:"qr,omitempty"`
	StartAngle float64      `yaml:"start_angle,omitempty"`
}

// Rectangle represents a bounding box
type Rectangle struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rectangle) rect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

type SectionKind string

const (
	TextRevisions SectionKind = "text-revisions"
	DoOver        SectionKind = "do-over"
	CleanTyping   SectionKind = "clean-typing"
	RollingText   SectionKind = "rolling"
	CircleWipe    SectionKind = "circle-reveal"
	Ink           SectionKind = "ink"
	SayHelloText  SectionKind = "say-hello"
	Footer        SectionKind = "footer"
	Float         SectionKind = "float"
)

// InkDirection is the way an ink blot travels across its section.
type InkDirection string

const (
	LeftToRight InkDirection = "left-to-right"
	RightToLeft InkDirection = "right-to-left"
)

// Range is a scroll trigger range in raw scroll units.
type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// SegmentSpec is one text revision. Its units are the glyphs of Container.
type SegmentSpec struct {
	Container track.UnitID `yaml:"container"`
	Strike    track.UnitID `yaml:"strike,omitempty"`
	Final     bool         `yaml:"final,omitempty"`
}

// Section is one animated part of the page. Which fields matter depends
// on Kind; unset optional blocks fall back to the stock values.
type Section struct {
	Name string      `yaml:"name,omitempty"`
	Kind SectionKind `yaml:"kind"`

	Segments   []SegmentSpec               `yaml:"segments,omitempty"`
	Transition *sequencer.TransitionConfig `yaml:"transition,omitempty"`
	Typing     *reveal.Config              `yaml:"typing,omitempty"`
	Delay      float64                     `yaml:"delay,omitempty"` // clean typing

	Target    track.UnitID           `yaml:"target,omitempty"`
	Duplicate track.UnitID           `yaml:"duplicate,omitempty"` // rolling
	Arrow     track.UnitID           `yaml:"arrow,omitempty"`
	Indicator track.UnitID           `yaml:"indicator,omitempty"`
	Rolling   *effects.RollingConfig `yaml:"rolling,omitempty"`
	Mask      track.UnitID           `yaml:"mask,omitempty"`
	Height    float64                `yaml:"height,omitempty"` // footer

	Trigger   *Range       `yaml:"trigger,omitempty"`
	Scrub     float64      `yaml:"scrub,omitempty"`
	Speeds    []float64    `yaml:"speeds,omitempty"`
	Scatter   []float64    `yaml:"scatter,omitempty"`
	Ink       string       `yaml:"ink,omitempty"` // sway or linear
	Direction InkDirection `yaml:"direction,omitempty"`
}

func (s Section) label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Kind)
}

// Index resolves unit IDs, including the generated glyphs of text units.
type Index struct {
	units  map[track.UnitID]renderer.Unit
	glyphs map[track.UnitID][]track.UnitID
	order  []track.UnitID
}

// Index expands text units and checks that every parent exists.
func (s *Scene) Index() (*Index, error) {
	idx := &Index{
		units:  make(map[track.UnitID]renderer.Unit),
		glyphs: make(map[track.UnitID][]track.UnitID),
	}
	add := func(u renderer.Unit) error {
		if _, dup := idx.units[u.ID]; dup {
			return fmt.Errorf("duplicate unit %q", u.ID)
		}
		idx.units[u.ID] = u
		idx.order = append(idx.order, u.ID)
		return nil
	}

	for _, u := range s.Units {
		if u.ID == "" {
			return nil, fmt.Errorf("unit without id")
		}
		if u.Kind != KindText {
			if err := add(renderer.Unit{
				ID:         u.ID,
				Kind:       renderer.Kind(u.Kind),
				Bounds:     u.Bounds.rect(),
				Parent:     u.Parent,
				Color:      u.Color,
				QR:         u.QR,
				StartAngle: u.StartAngle,
			}); err != nil {
				return nil, err
			}
			continue
		}

		if err := add(renderer.Unit{ID: u.ID, Kind: renderer.KindContainer, Bounds: u.Bounds.rect(), Parent: u.Parent}); err != nil {
			return nil, err
		}
		glyphs := source.Split(string(u.ID), u.Text, true)
		if len(glyphs) == 0 {
			continue
		}
		w := u.Bounds.W / float64(len(glyphs))
		for i, g := range glyphs {
			kind := renderer.KindGlyph
			if g.Space {
				kind = renderer.KindContainer
			} else {
				idx.glyphs[u.ID] = append(idx.glyphs[u.ID], g.ID)
			}
			if err := add(renderer.Unit{
				ID:     g.ID,
				Kind:   kind,
				Bounds: geom.Rect{X: u.Bounds.X + float64(i)*w, Y: u.Bounds.Y, W: w * 0.85, H: u.Bounds.H},
				Parent: u.ID,
				Color:  u.Color,
			}); err != nil {
				return nil, err
			}
		}
	}

	for _, id := range idx.order {
		if p := idx.units[id].Parent; p != "" {
			if _, ok := idx.units[p]; !ok {
				return nil, fmt.Errorf("unit %q: %w %q", id, renderer.ErrUnknownParent, p)
			}
		}
	}
	return idx, nil
}

// Has reports whether id names a unit or glyph.
func (x *Index) Has(id track.UnitID) bool {
	_, ok := x.units[id]
	return ok
}

// Bounds returns the bounding box of id.
func (x *Index) Bounds(id track.UnitID) (geom.Rect, error) {
	u, ok := x.units[id]
	if !ok {
		return geom.Rect{}, fmt.Errorf("%w: %q", ErrMissingTarget, id)
	}
	return u.Bounds, nil
}

// Letters returns the glyphs of a text unit, or the unit itself for any
// other kind.
func (x *Index) Letters(id track.UnitID) ([]track.UnitID, error) {
	if id == "" || !x.Has(id) {
		return nil, fmt.Errorf("%w: %q", ErrMissingTarget, id)
	}
	if g, ok := x.glyphs[id]; ok {
		return g, nil
	}
	if x.units[id].Kind == renderer.KindContainer {
		return nil, nil
	}
	return []track.UnitID{id}, nil
}

// RenderUnits lists every unit in declaration order, parents first.
func (x *Index) RenderUnits() []renderer.Unit {
	out := make([]renderer.Unit, len(x.order))
	for i, id := range x.order {
		out[i] = x.units[id]
	}
	return out
}

// Len is the number of units after text expansion.
func (x *Index) Len() int { return len(x.order) }

var defaultRange = Range{Start: 0, End: 1000}
