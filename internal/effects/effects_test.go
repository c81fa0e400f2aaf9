package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/sitemotion/internal/geom"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

func TestRolling(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		outTo     float64
		inFrom    float64
	}{
		{"down", Down, 100, -100},
		{"up", Up, -100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRolling()
			cfg.Direction = tt.direction
			r := Rolling{
				Letters: []Letter{{"w", "w2"}, {"o", "o2"}, {"r", "r2"}},
				Arrow:   "arrow",
				Config:  cfg,
			}
			tr, err := r.Compose(1)
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if got := tr.Count(track.KindRollOut); got != 3 {
				t.Errorf("expected 3 roll-outs, got %d", got)
			}
			if got := tr.Count(track.KindBounce); got != 2 {
				t.Errorf("expected 2 arrow legs, got %d", got)
			}

			end := tr.Sample(tr.Duration())
			if v := end.Get("r", track.YPercent); v != tt.outTo {
				t.Errorf("original ends at %f, want %f", v, tt.outTo)
			}
			if v := end.Get("r2", track.YPercent); v != 0 {
				t.Errorf("duplicate ends at %f", v)
			}
			if v := tr.Initial().Get("o2", track.YPercent); v != tt.inFrom {
				t.Errorf("duplicate starts at %f, want %f", v, tt.inFrom)
			}
			// last letter starts 2 staggers in
			if want := 1 + 2*0.2 + 0.8; math.Abs(tr.Duration()-want) > 1e-9 {
				t.Errorf("Duration() = %f, want %f", tr.Duration(), want)
			}
		})
	}
}

func TestRollingArrowEases(t *testing.T) {
	r := Rolling{Letters: []Letter{{"a", "a2"}}, Arrow: "arrow", Config: DefaultRolling()}
	tr, err := r.Compose(0)
	if err != nil {
		t.Fatal(err)
	}
	var eases []string
	for _, e := range tr.Sorted() {
		if e.Kind == track.KindBounce {
			eases = append(eases, e.Ease)
		}
	}
	if len(eases) != 2 || eases[0] != "power2.out" || eases[1] != "power2.inOut" {
		t.Errorf("arrow legs eased %v", eases)
	}
}

func TestRollingIndicator(t *testing.T) {
	r := Rolling{Letters: []Letter{{"a", "a2"}}, Indicator: "hint", Config: DefaultRolling()}
	tr, err := r.Compose(2)
	if err != nil {
		t.Fatal(err)
	}
	if v := tr.Initial().Get("hint", track.Opacity); v != 0 {
		t.Errorf("indicator starts at opacity %f", v)
	}
	st := tr.Sample(2.5)
	if st.Get("hint", track.Opacity) != 1 || st.Get("hint", track.X) != 0 {
		t.Errorf("indicator after its reveal: %v", st["hint"])
	}
}

func TestRollingCycle(t *testing.T) {
	r := Rolling{
		Letters: []Letter{{"w", "w2"}, {"o", "o2"}},
		Arrow:   "arrow",
		Config:  DefaultRolling(),
	}
	loop, err := r.Cycle()
	if err != nil {
		t.Fatalf("Cycle: %v", err)
	}
	if loop.Repeat >= 0 || loop.Yoyo || loop.Pass() != 6 {
		t.Errorf("cycle: repeat %d yoyo %v pass %f", loop.Repeat, loop.Yoyo, loop.Pass())
	}
	if r.CycleStart() != 4 {
		t.Errorf("cycle starts at %f", r.CycleStart())
	}

	// second roll: the duplicates go back out and the originals return
	mid := loop.Track.Sample(2.9)
	if v := mid.Get("w2", track.YPercent); v != 100 {
		t.Errorf("duplicate after the second roll: %f", v)
	}
	if v := mid.Get("o", track.YPercent); v != 0 {
		t.Errorf("original after the second roll: %f", v)
	}
	if loop.Track.Count(track.KindBounce) != 4 {
		t.Errorf("arrow should bounce on both passes")
	}

	// third roll matches the first one
	end := loop.Track.Sample(loop.Pass())
	if end.Get("w", track.YPercent) != 100 || end.Get("o2", track.YPercent) != 0 {
		t.Errorf("third roll: %v %v", end["w"], end["o2"])
	}

	cfg := DefaultRolling()
	cfg.Interval = 0
	if _, err := (Rolling{Config: cfg}).Cycle(); !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("zero interval accepted: %v", err)
	}
}

func TestLoopUnroll(t *testing.T) {
	r := Rolling{Letters: []Letter{{"a", "a2"}}, Config: DefaultRolling()}
	loop, err := r.Cycle()
	if err != nil {
		t.Fatal(err)
	}
	tr, err := loop.Unroll(4, 17)
	if err != nil {
		t.Fatalf("Unroll: %v", err)
	}
	// passes at 4, 10 and 16
	if n := tr.Count(track.KindRollOut); n != 6 {
		t.Errorf("expected 6 roll-outs, got %d", n)
	}
	if _, err := Bob("email", 8, 2.5).Unroll(0, 10); !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("yoyo loop unrolled: %v", err)
	}
}

func TestInkMorph(t *testing.T) {
	loop := InkMorph("ink")
	if !loop.Yoyo || loop.Repeat >= 0 || loop.Pass() != 4 {
		t.Errorf("morph: %+v", loop)
	}
	e := loop.Track.Events()[0]
	if e.Ease != "sine.inOut" {
		t.Errorf("morph eased %q", e.Ease)
	}
	if v := loop.Track.Sample(4).Get("ink", track.Scale); math.Abs(v-1.1) > 1e-9 {
		t.Errorf("morph peak = %f", v)
	}
}

func TestRollingRejectsDirection(t *testing.T) {
	cfg := DefaultRolling()
	cfg.Direction = "sideways"
	if _, err := (Rolling{Config: cfg}).Compose(0); !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("expected ErrInvalidEffect, got %v", err)
	}
}

func TestFooterSlide(t *testing.T) {
	f := FooterSlide{Footer: "footer", Height: 320}

	enter := f.Track(scroll.Enter, 0)
	if enter.Duration() != 0.8 {
		t.Errorf("enter lasts %f", enter.Duration())
	}
	if v := enter.Initial().Get("footer", track.Bottom); v != -320 {
		t.Errorf("enter starts at %f", v)
	}

	back := f.Track(scroll.LeaveBack, 0)
	if v := back.Sample(1).Get("footer", track.Bottom); v != -320 {
		t.Errorf("leave-back ends at %f", v)
	}
	if f.Track(scroll.Leave, 0).Len() != 0 {
		t.Error("leave should not animate")
	}

	var played []*track.Track
	toggle := f.OnToggle(func(tr *track.Track) { played = append(played, tr) })
	toggle(scroll.Transition{Kind: scroll.Enter, Active: true})
	toggle(scroll.Transition{Kind: scroll.Leave})
	toggle(scroll.Transition{Kind: scroll.EnterBack, Active: true})
	if len(played) != 2 {
		t.Errorf("expected 2 slides, got %d", len(played))
	}
}

func TestFloatInAndBob(t *testing.T) {
	tr, err := DefaultFloatIn("email").Compose(2)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	e := tr.Events()[0]
	if math.Abs(e.Start-2.3) > 1e-9 || e.Duration != 1.5 {
		t.Errorf("float-in at %f for %f", e.Start, e.Duration)
	}
	st := tr.Sample(tr.Duration())
	if st.Get("email", track.Y) != 0 || st.Get("email", track.Opacity) != 1 {
		t.Errorf("float-in lands at %v", st["email"])
	}

	loop := Bob("email", 8, 2.5)
	if !loop.Yoyo || loop.Repeat >= 0 {
		t.Errorf("bob should yoyo forever: %+v", loop)
	}
	if v := loop.Track.Sample(2.5).Get("email", track.Y); v != 8 {
		t.Errorf("bob peak = %f", v)
	}

	back, err := DefaultFloatIn("email").Reverse(0)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	st = back.Sample(back.Duration())
	if st.Get("email", track.Y) != 100 || st.Get("email", track.Opacity) != 0 {
		t.Errorf("reverse lands at %v", st["email"])
	}
}

func TestCircleReveal(t *testing.T) {
	c := DefaultCircleReveal("mask", geom.Rect{W: 300, H: 100})
	c.Letters = []track.UnitID{"a", "b", "c"}
	c.Overlap = 0.5

	tr, err := c.Compose(0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if c.Frame.Radius != 200 {
		t.Errorf("radius = %f", c.Frame.Radius)
	}

	var first track.Event
	for _, e := range tr.Sorted() {
		if e.Unit != "mask" {
			first = e
			break
		}
	}
	// reversed: the last letter goes first, half a second before the sweep ends
	if first.Unit != "c" || first.Start != 2.5 {
		t.Errorf("first letter %s at %f", first.Unit, first.Start)
	}

	angle := tr.Sample(1.5).Get("mask", track.Angle)
	if angle != 90 {
		t.Errorf("angle at half time = %f", angle)
	}
	if _, err := geom.ParsePath(c.SliceAt(angle).String()); err != nil {
		t.Errorf("slice path: %v", err)
	}
}

func TestHandCircle(t *testing.T) {
	c := HandCircle("hand", geom.Rect{W: 40, H: 40})
	tr, err := c.Compose(0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if tr.Duration() != 0.25 {
		t.Errorf("hand circle lasts %f", tr.Duration())
	}
	if _, err := c.Mapper(); err != nil {
		t.Errorf("Mapper: %v", err)
	}
}

func TestDoOverIntro(t *testing.T) {
	letters := []track.UnitID{"d", "o", "o2", "v", "e", "r"}
	d := DefaultDoOver(letters)

	tr, err := d.Compose(0)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if want := 0.3 + 5*0.1 + 0.5; math.Abs(tr.Duration()-want) > 1e-9 {
		t.Errorf("Duration() = %f, want %f", tr.Duration(), want)
	}
	if want := 1 + 0.3 + 0.5 + 6*0.1; math.Abs(d.End(1)-want) > 1e-9 {
		t.Errorf("End(1) = %f, want %f", d.End(1), want)
	}

	mappers, err := d.Mappers()
	if err != nil {
		t.Fatalf("Mappers: %v", err)
	}
	if len(mappers) != len(letters) {
		t.Fatalf("expected %d mappers", len(letters))
	}
	// the third letter has speed -1.2: y at full progress is -120
	if y := mappers["o2"].Map(1).Values[track.Y]; math.Abs(y+120) > 1e-9 {
		t.Errorf("o2 drift = %f", y)
	}
	if d.Speed(11) != DoOverSpeeds[0] {
		t.Error("speeds should wrap around")
	}
}

func TestSayHello(t *testing.T) {
	letters := []track.UnitID{"s", "a", "y"}
	mappers, err := SayHello(letters, nil)
	if err != nil {
		t.Fatalf("SayHello: %v", err)
	}
	start := mappers["a"].Map(0)
	if start.Values[track.Y] != 1600 || start.Values[track.Opacity] != 0 {
		t.Errorf("a starts at %v", start.Values)
	}
	end := mappers["a"].Map(1)
	if end.Values[track.Y] != 0 || math.Abs(end.Values[track.Opacity]-0.6) > 1e-9 {
		t.Errorf("a ends at %v", end.Values)
	}
}
