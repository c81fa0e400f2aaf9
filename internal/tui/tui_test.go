package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/track"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	bs, _, err := director.NewDirector(1).ScrollBindings(director.ExampleScene())
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(bs, 30, 0.5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestKeysMoveScroll(t *testing.T) {
	m := newModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.raw != 2*lineStep {
		t.Errorf("raw = %f, want %d", m.raw, 2*lineStep)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.raw != 0 {
		t.Errorf("scroll should clamp at the top, got %f", m.raw)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if m.raw != m.max || m.max != 2000+overscroll {
		t.Errorf("end: raw %f max %f", m.raw, m.max)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestFooterSlidesIn(t *testing.T) {
	m := newModel(t)
	if v := m.Surface().Get("footer", track.Bottom); v != -80 {
		t.Fatalf("footer should start hidden, bottom=%f", v)
	}

	m.ScrollTo(1900)
	m.Step()
	found := false
	for _, line := range m.log {
		if strings.HasPrefix(line, "footer/footer") && strings.HasSuffix(line, "enter") {
			found = true
		}
	}
	if !found {
		t.Errorf("footer enter missing from the transition log: %v", m.log)
	}

	for i := 0; i < 40; i++ {
		m.Step()
	}
	if v := m.Surface().Get("footer", track.Bottom); v != 0 {
		t.Errorf("footer should be up after the slide, bottom=%f", v)
	}
}

func TestRawBindingsIgnoreSmoothing(t *testing.T) {
	m := newModel(t)
	m.ScrollTo(1000)
	m.Step()

	// ink is not scrubbed and sees the raw position immediately.
	if v := m.Surface().Get("ink", track.XPercent); v != 0 {
		t.Errorf("ink xPercent at the midpoint: %f", v)
	}
	// the scrubbed wipe lags behind.
	if m.scrub.Position() >= 1000 {
		t.Errorf("smoothed position should lag, got %f", m.scrub.Position())
	}
}

func TestFloatStopsOnLeaveBack(t *testing.T) {
	m := newModel(t)
	steps := func(seconds float64) {
		for i := 0; i < int(seconds*30); i++ {
			m.Step()
		}
	}

	m.ScrollTo(1300)
	steps(3)
	if v := m.Surface().Get("email", track.Y); v <= 0 || v > 8 {
		t.Fatalf("email should be bobbing after 3s, y=%f", v)
	}

	m.ScrollTo(0)
	steps(2)
	sunk := m.Surface().Get("email", track.Y)
	if sunk != 100 || m.Surface().Get("email", track.Opacity) != 0 {
		t.Errorf("email should sink back out, y=%f", sunk)
	}
	steps(1)
	if v := m.Surface().Get("email", track.Y); v != sunk {
		t.Errorf("bob kept running after leave-back: y %f -> %f", sunk, v)
	}

	m.ScrollTo(1300)
	steps(3)
	if v := m.Surface().Get("email", track.Opacity); v != 1 {
		t.Errorf("email should float in again, opacity=%f", v)
	}
	if v := m.Surface().Get("email", track.Y); v < 0 || v > 8 {
		t.Errorf("bob should restart, y=%f", v)
	}
}

func TestInkMorphRunsWithoutScroll(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 60; i++ {
		m.Step()
	}
	if v := m.Surface().Get("ink", track.Scale); v <= 1 || v >= 1.1 {
		t.Errorf("ink should be mid-morph after 2s, scale=%f", v)
	}
}

func TestView(t *testing.T) {
	m := newModel(t)
	m.ScrollTo(500)
	m.Step()
	out := m.View()
	for _, want := range []string{"sitemotion scroll", "footer", "ink"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNewRejectsBadFPS(t *testing.T) {
	if _, err := New(nil, 0, 1); err == nil {
		t.Error("fps 0 accepted")
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"SECTION", "UNIT"}, [][]string{{"ink", "ink"}, {"footer", "footer"}})
	for _, want := range []string{"SECTION", "UNIT", "footer"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("table should use the rounded border:\n%s", out)
	}
	if strings.Index(out, "ink") > strings.Index(out, "footer") {
		t.Errorf("rows out of order:\n%s", out)
	}
}
