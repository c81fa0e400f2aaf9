// Package engine plays frozen tracks onto a rendering surface and runs the
// offline preview pipeline.
package engine

import (
	"errors"
	"math"
	"sync"

	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/track"
)

var ErrNotFrozen = errors.New("track must be frozen before playback")

// Surface is the rendering surface units live on.
type Surface interface {
	Set(unit track.UnitID, p track.Property, v float64)
}

// MemorySurface records property writes. Safe for concurrent use.
type MemorySurface struct {
	mu     sync.Mutex
	values map[track.UnitID]map[track.Property]float64
	paths  map[track.UnitID]string
	writes int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{
		values: make(map[track.UnitID]map[track.Property]float64),
		paths:  make(map[track.UnitID]string),
	}
}

func (m *MemorySurface) Set(u track.UnitID, p track.Property, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[u] == nil {
		m.values[u] = make(map[track.Property]float64)
	}
	m.values[u][p] = v
	m.writes++
}

func (m *MemorySurface) SetPath(u track.UnitID, d string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths[u] = d
	m.writes++
}

// Get returns the last written value, or the property default.
func (m *MemorySurface) Get(u track.UnitID, p track.Property) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[u][p]; ok {
		return v
	}
	return track.Default(p)
}

func (m *MemorySurface) Path(u track.UnitID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paths[u]
}

// Writes counts every Set and SetPath call.
func (m *MemorySurface) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// State snapshots the written values.
func (m *MemorySurface) State() track.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := make(track.State, len(m.values))
	for u, props := range m.values {
		cp := make(map[track.Property]float64, len(props))
		for p, v := range props {
			cp[p] = v
		}
		st[u] = cp
	}
	return st
}

type Option func(*Player)

// WithRepeat plays the track n more times after the first pass; n < 0
// repeats until Stop. With yoyo every other pass runs backwards.
func WithRepeat(n int, yoyo bool) Option {
	return func(p *Player) {
		p.repeat = n
		p.yoyo = yoyo
	}
}

// WithPeriod stretches each pass to at least period seconds; the track
// holds its end state for the remainder.
func WithPeriod(period float64) Option {
	return func(p *Player) {
		p.duration = max(p.duration, period)
	}
}

// Player drives a frozen track on externally supplied ticks. It owns no
// clock and no goroutine.
type Player struct {
	track      *track.Track
	surface    Surface
	duration   float64
	repeat     int
	yoyo       bool
	t          float64
	last       track.State
	done       bool
	stopped    bool
	onComplete func()
}

func NewPlayer(tr *track.Track, s Surface, opts ...Option) (*Player, error) {
	if !tr.Frozen() {
		return nil, ErrNotFrozen
	}
	p := &Player{
		track:    tr,
		surface:  s,
		duration: tr.Duration(),
		last:     make(track.State),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// OnComplete registers fn to run once when playback reaches the end.
// Stopped players never complete.
func (p *Player) OnComplete(fn func()) { p.onComplete = fn }

func (p *Player) Time() float64 { return p.t }
func (p *Player) Done() bool    { return p.done }
func (p *Player) Stopped() bool { return p.stopped }

// Tick advances playback by dt seconds.
func (p *Player) Tick(dt float64) {
	p.Seek(p.t + dt)
}

// Seek jumps to absolute time t and applies the resulting state.
func (p *Player) Seek(t float64) {
	if p.stopped || p.done {
		return
	}
	p.t = max(t, 0)
	local, finished := p.local(p.t)
	p.apply(local)
	if finished {
		p.done = true
		logging.Logger().Debug("playback complete", "t", p.t, "events", p.track.Len())
		if p.onComplete != nil {
			p.onComplete()
		}
	}
}

// Stop halts playback where it is. Calling it again, or after completion,
// does nothing.
func (p *Player) Stop() {
	if p.stopped || p.done {
		return
	}
	p.stopped = true
	logging.Logger().Debug("playback stopped", "t", p.t)
}

// local maps absolute time onto the track, accounting for repeats.
func (p *Player) local(t float64) (float64, bool) {
	d := p.duration
	if d <= 0 {
		return 0, p.repeat >= 0
	}
	passes := float64(p.repeat + 1)
	if p.repeat >= 0 && t >= d*passes {
		if p.yoyo && p.repeat%2 == 1 {
			return 0, true
		}
		return d, true
	}
	pass := math.Floor(t / d)
	local := t - pass*d
	if p.yoyo && int(pass)%2 == 1 {
		local = d - local
	}
	return local, false
}

// apply writes only the values that changed since the last frame.
func (p *Player) apply(at float64) {
	st := p.track.Sample(at)
	for u, props := range st {
		for prop, v := range props {
			if old, ok := p.last[u][prop]; ok && old == v {
				continue
			}
			if p.last[u] == nil {
				p.last[u] = make(map[track.Property]float64)
			}
			p.last[u][prop] = v
			p.surface.Set(u, prop, v)
		}
	}
}
