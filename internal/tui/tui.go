// Package tui is an interactive scroll simulator: it plays the page's scroll
// observer, feeding a raw and a smoothed position to every bound trigger and
// showing what the bound units receive.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/engine"
	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/track"
)

const (
	lineStep   = 20
	pageStep   = 200
	logLength  = 8
	overscroll = 200
)

type keyMap struct {
	Up, Down, PageUp, PageDown, Top, Bottom, Quit key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f")),
	Top:      key.NewBinding(key.WithKeys("home", "g")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

type tickMsg struct{}

// running is a time-based track started by a transition.
type running struct {
	player  *engine.Player
	delay   float64
	elapsed float64
}

type bound struct {
	binding director.Binding
	trigger *scroll.Trigger
}

// Model is the bubbletea model of the simulator.
type Model struct {
	bound   []bound
	surface *engine.MemorySurface
	scrub   *scroll.Scrub
	running []*running
	fps     int

	raw, max float64
	log      []string
	bar      progress.Model
	width    int
	err      error
}

// New attaches every binding to a fresh surface. lag is the scrub smoothing
// in seconds, used by bindings that ask for scrubbing.
func New(bindings []director.Binding, fps int, lag float64) (*Model, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps %d", fps)
	}
	m := &Model{
		surface: engine.NewMemorySurface(),
		scrub:   scroll.NewScrub(fps, lag),
		fps:     fps,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:   80,
	}
	for _, b := range bindings {
		t, err := b.Attach(m.surface, m.play)
		if err != nil {
			return nil, fmt.Errorf("binding %s/%s: %w", b.Section, b.Unit, err)
		}
		prev := t.OnToggle
		name := t.Name
		t.OnToggle = func(ev scroll.Transition) {
			m.note(fmt.Sprintf("%-24s %s", name, ev.Kind))
			if prev != nil {
				prev(ev)
			}
		}
		m.bound = append(m.bound, bound{binding: b, trigger: t})
		m.max = max(m.max, b.Range.End+overscroll)
	}
	return m, nil
}

func (m *Model) play(pb director.Playback) director.Stopper {
	if err := pb.Track.Freeze(); err != nil {
		m.err = err
		return nil
	}
	p, err := engine.NewPlayer(pb.Track, m.surface,
		engine.WithRepeat(pb.Repeat, pb.Yoyo), engine.WithPeriod(pb.Period))
	if err != nil {
		m.err = err
		return nil
	}
	m.running = append(m.running, &running{player: p, delay: pb.Delay})
	return p
}

func (m *Model) note(s string) {
	m.log = append(m.log, s)
	if len(m.log) > logLength {
		m.log = m.log[len(m.log)-logLength:]
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Step advances the simulation by one frame.
func (m *Model) Step() {
	m.scrub.SetTarget(m.raw)
	smooth := m.scrub.Step()
	for _, b := range m.bound {
		pos := m.raw
		if b.binding.Scrub > 0 {
			pos = smooth
		}
		b.trigger.Feed(pos)
	}

	dt := 1 / float64(m.fps)
	m.running = slices.DeleteFunc(m.running, func(r *running) bool {
		if r.player.Stopped() {
			return true
		}
		r.elapsed += dt
		if r.elapsed >= r.delay {
			r.player.Seek(r.elapsed - r.delay)
		}
		return r.player.Done()
	})
}

// ScrollTo sets the raw position, clamped to the page.
func (m *Model) ScrollTo(pos float64) {
	m.raw = min(max(pos, 0), m.max)
}

func (m *Model) Surface() *engine.MemorySurface { return m.surface }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(msg.Width-24, 10)
	case tickMsg:
		m.Step()
		return m, m.tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			for _, b := range m.bound {
				b.trigger.Kill()
			}
			logging.Logger().Debug("scroll simulator closed", "position", m.raw)
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.ScrollTo(m.raw - lineStep)
		case key.Matches(msg, keys.Down):
			m.ScrollTo(m.raw + lineStep)
		case key.Matches(msg, keys.PageUp):
			m.ScrollTo(m.raw - pageStep)
		case key.Matches(msg, keys.PageDown):
			m.ScrollTo(m.raw + pageStep)
		case key.Matches(msg, keys.Top):
			m.ScrollTo(0)
		case key.Matches(msg, keys.Bottom):
			m.ScrollTo(m.max)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sitemotion scroll"))
	b.WriteString("\n\n")

	frac := 0.0
	if m.max > 0 {
		frac = m.scrub.Position() / m.max
	}
	b.WriteString(labelStyle.Render("scroll"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%7.1f  smoothed %7.1f  ", m.raw, m.scrub.Position())))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(""))
	b.WriteString(m.bar.ViewAs(min(max(frac, 0), 1)))
	b.WriteString("\n\n")

	var rows []string
	for _, bd := range m.bound {
		t := bd.trigger
		state := idleStyle.Render("idle  ")
		if t.Active() {
			state = activeStyle.Render("active")
		}
		rows = append(rows, fmt.Sprintf("%s %s %5.2f  %s",
			labelStyle.Render(string(bd.binding.Unit)), state, t.Progress(), m.values(bd.binding.Unit)))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if len(m.log) > 0 {
		b.WriteString(eventStyle.Render(strings.Join(m.log, "\n")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ scroll • pgup/pgdn page • home/end • q quit"))
	return b.String()
}

func (m *Model) values(u track.UnitID) string {
	st := m.surface.State()[u]
	props := make([]string, 0, len(st))
	for p := range st {
		props = append(props, string(p))
	}
	slices.Sort(props)
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = fmt.Sprintf("%s=%.2f", p, st[track.Property(p)])
	}
	if d := m.surface.Path(u); d != "" {
		parts = append(parts, "path")
	}
	return strings.Join(parts, " ")
}
