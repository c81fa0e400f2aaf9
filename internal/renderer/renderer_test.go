package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/track"
)

func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func isBackground(c color.NRGBA) bool {
	bg := color.NRGBAModel.Convert(background.Color()).(color.NRGBA)
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c.R, bg.R) < 4 && d(c.G, bg.G) < 4 && d(c.B, bg.B) < 4
}

func sample(events ...track.Event) track.State {
	tr := track.New(events...)
	return tr.Sample(tr.Duration())
}

func fade(u track.UnitID, to float64) track.Event {
	return track.Event{Unit: u, Duration: 0, Changes: map[track.Property]track.Change{track.Opacity: track.To(to)}}
}

func TestGlyphOpacity(t *testing.T) {
	units := []Unit{
		{ID: "box", Kind: KindContainer, Bounds: geom.Rect{W: 64, H: 64}},
		{ID: "a", Kind: KindGlyph, Parent: "box", Bounds: geom.Rect{X: 8, Y: 8, W: 16, H: 16}},
	}
	r, err := New(64, 64, units, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	visible, err := r.Frame(track.State{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if isBackground(rgbaAt(visible, 16, 16)) {
		t.Error("glyph not painted")
	}

	hidden, err := r.Frame(sample(fade("box", 0)))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !isBackground(rgbaAt(hidden, 16, 16)) {
		t.Error("container fade should hide the glyph")
	}
}

func TestGlyphOffsets(t *testing.T) {
	r, _ := New(64, 64, []Unit{{ID: "a", Kind: KindGlyph, Bounds: geom.Rect{X: 0, Y: 0, W: 16, H: 16}}}, nil)
	st := sample(track.Event{Unit: "a", Changes: map[track.Property]track.Change{track.YPercent: track.To(200)}})

	img, err := r.Frame(st)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !isBackground(rgbaAt(img, 8, 8)) {
		t.Error("glyph still at its origin")
	}
	if isBackground(rgbaAt(img, 8, 40)) {
		t.Error("glyph not moved down by two heights")
	}
}

func TestMaskClipsToSlice(t *testing.T) {
	units := []Unit{{ID: "m", Kind: KindMask, Bounds: geom.Rect{W: 64, H: 64}, StartAngle: -90}}
	r, _ := New(64, 64, units, nil)

	idle, _ := r.Frame(track.State{})
	if !isBackground(rgbaAt(idle, 40, 20)) {
		t.Error("unswept mask painted")
	}

	// a quarter sweep covers the upper right quadrant only
	st := sample(track.Event{Unit: "m", Changes: map[track.Property]track.Change{track.Angle: track.FromTo(-90, 0)}})
	img, _ := r.Frame(st)
	if isBackground(rgbaAt(img, 48, 16)) {
		t.Error("upper right should be inside the slice")
	}
	if !isBackground(rgbaAt(img, 16, 48)) {
		t.Error("lower left should be outside the slice")
	}
}

func TestQRUnit(t *testing.T) {
	units := []Unit{{ID: "email", Kind: KindQR, QR: "mailto:hello@example.com", Bounds: geom.Rect{X: 0, Y: 0, W: 42, H: 42}}}
	r, err := New(64, 64, units, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img, _ := r.Frame(track.State{})
	// top-left module belongs to a finder pattern and is always dark
	if c := rgbaAt(img, 1, 1); c.R > 100 {
		t.Errorf("finder module is %v", c)
	}
}

func TestUnknownParent(t *testing.T) {
	_, err := New(8, 8, []Unit{{ID: "a", Parent: "ghost"}}, nil)
	if !errors.Is(err, ErrUnknownParent) {
		t.Errorf("expected ErrUnknownParent, got %v", err)
	}
}

func TestLetterbox(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for i := range src.Pix {
		src.Pix[i] = 0
		if i%4 == 3 {
			src.Pix[i] = 255
		}
	}
	dst := Letterbox(src, 64, 64)
	if !isBackground(rgbaAt(dst, 32, 4)) {
		t.Error("top band should be background")
	}
	if c := rgbaAt(dst, 32, 32); c.R > 10 {
		t.Errorf("centre should be the black source, got %v", c)
	}
}
