package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// scrubFrequency is the spring's angular frequency for a one second lag.
const scrubFrequency = 6.0

// Scrub follows a target progress with a critically damped spring, the
// smoothed scrubbing a page gets when progress lags the scrollbar.
type Scrub struct {
	spring   harmonica.Spring
	pos, vel float64
	target   float64
	direct   bool
}

// NewScrub returns a follower stepped fps times a second that settles in
// roughly lag seconds. A lag of 0 follows the target exactly.
func NewScrub(fps int, lag float64) *Scrub {
	if lag <= 0 {
		return &Scrub{direct: true}
	}
	return &Scrub{spring: harmonica.NewSpring(harmonica.FPS(fps), scrubFrequency/lag, 1.0)}
}

func (s *Scrub) SetTarget(p float64) { s.target = p }

// Step advances one frame and returns the smoothed progress.
func (s *Scrub) Step() float64 {
	if s.direct {
		s.pos = s.target
		return s.pos
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	return s.pos
}

func (s *Scrub) Position() float64 { return s.pos }

// Settled reports whether the follower is within eps of the target and
// nearly at rest.
func (s *Scrub) Settled(eps float64) bool {
	return math.Abs(s.pos-s.target) < eps && math.Abs(s.vel) < eps
}
