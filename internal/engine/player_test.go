package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ivlev/sitemotion/internal/track"
)

func fadeTrack(t *testing.T) *track.Track {
	t.Helper()
	tr := track.New(track.Event{
		Unit:     "hero",
		Start:    0,
		Duration: 1,
		Ease:     "none",
		Changes:  map[track.Property]track.Change{track.Opacity: track.FromTo(0, 1)},
	})
	if err := tr.Freeze(); err != nil {
		t.Fatal(err)
	}
	return tr
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPlayerRequiresFrozenTrack(t *testing.T) {
	_, err := NewPlayer(track.New(), NewMemorySurface())
	if !errors.Is(err, ErrNotFrozen) {
		t.Fatalf("expected ErrNotFrozen, got %v", err)
	}
}

func TestPlayerTicks(t *testing.T) {
	s := NewMemorySurface()
	p, err := NewPlayer(fadeTrack(t), s)
	if err != nil {
		t.Fatal(err)
	}

	completed := 0
	p.OnComplete(func() { completed++ })

	p.Tick(0.25)
	if v := s.Get("hero", track.Opacity); !near(v, 0.25) {
		t.Errorf("opacity at 0.25s: got %f", v)
	}
	p.Tick(0.5)
	if v := s.Get("hero", track.Opacity); !near(v, 0.75) {
		t.Errorf("opacity at 0.75s: got %f", v)
	}
	p.Tick(1)
	if !p.Done() || completed != 1 {
		t.Fatalf("expected completion once, done=%v completed=%d", p.Done(), completed)
	}
	if v := s.Get("hero", track.Opacity); v != 1 {
		t.Errorf("final opacity: got %f", v)
	}

	p.Tick(1)
	if completed != 1 {
		t.Errorf("OnComplete fired %d times", completed)
	}
}

func TestPlayerWritesOnlyChanges(t *testing.T) {
	s := NewMemorySurface()
	p, _ := NewPlayer(fadeTrack(t), s)

	p.Seek(0.5)
	before := s.Writes()
	p.Seek(0.5)
	if s.Writes() != before {
		t.Errorf("re-seeking the same time wrote %d values", s.Writes()-before)
	}
}

func TestPlayerStop(t *testing.T) {
	s := NewMemorySurface()
	p, _ := NewPlayer(fadeTrack(t), s)
	fired := false
	p.OnComplete(func() { fired = true })

	p.Seek(0.5)
	p.Stop()
	p.Stop()
	p.Seek(2)

	if !p.Stopped() || p.Done() || fired {
		t.Fatalf("stopped=%v done=%v fired=%v", p.Stopped(), p.Done(), fired)
	}
	if v := s.Get("hero", track.Opacity); !near(v, 0.5) {
		t.Errorf("stopped player kept writing: %f", v)
	}
}

func TestPlayerStopAfterCompletion(t *testing.T) {
	p, _ := NewPlayer(fadeTrack(t), NewMemorySurface())
	p.Seek(5)
	p.Stop()
	if p.Stopped() {
		t.Error("Stop after completion should be a no-op")
	}
}

func TestPlayerYoyo(t *testing.T) {
	s := NewMemorySurface()
	p, _ := NewPlayer(fadeTrack(t), s, WithRepeat(-1, true))

	cases := []struct {
		at, want float64
	}{
		{0.5, 0.5},
		{1.25, 0.75},
		{1.75, 0.25},
		{2.5, 0.5},
		{10.25, 0.25},
	}
	for _, c := range cases {
		p.Seek(c.at)
		if v := s.Get("hero", track.Opacity); !near(v, c.want) {
			t.Errorf("t=%.2f: got %f, want %f", c.at, v, c.want)
		}
	}
	if p.Done() {
		t.Error("infinite repeat completed")
	}
}

func TestPlayerFiniteRepeat(t *testing.T) {
	s := NewMemorySurface()
	p, _ := NewPlayer(fadeTrack(t), s, WithRepeat(1, true))
	p.Seek(2.5)
	if !p.Done() {
		t.Fatal("expected completion after two passes")
	}
	if v := s.Get("hero", track.Opacity); v != 0 {
		t.Errorf("yoyo with an odd repeat should rest at the start, got %f", v)
	}
}

func TestPlayerPeriod(t *testing.T) {
	s := NewMemorySurface()
	p, _ := NewPlayer(fadeTrack(t), s, WithRepeat(-1, false), WithPeriod(3))

	p.Seek(2)
	if v := s.Get("hero", track.Opacity); v != 1 {
		t.Errorf("pass should hold its end state, got %f", v)
	}
	p.Seek(3.5)
	if v := s.Get("hero", track.Opacity); !near(v, 0.5) {
		t.Errorf("second pass should start at 3s, got %f", v)
	}

	// a period shorter than the track changes nothing
	q, _ := NewPlayer(fadeTrack(t), NewMemorySurface(), WithPeriod(0.5))
	q.Seek(1)
	if !q.Done() {
		t.Error("short period should not cut the track")
	}
}

func TestGate(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}

	g.Open()
	g.Open()
	if !g.IsOpen() {
		t.Fatal("gate not open")
	}
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait on open gate: %v", err)
	}
}

func TestOnce(t *testing.T) {
	var o Once[int]
	calls := 0
	for i := 0; i < 3; i++ {
		v, err := o.Do(func() (int, error) {
			calls++
			return 42, nil
		})
		if v != 42 || err != nil {
			t.Fatalf("got %d, %v", v, err)
		}
	}
	if calls != 1 || !o.Done() {
		t.Errorf("calls=%d done=%v", calls, o.Done())
	}
}
