package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultFPS is the simulation rate of the return spring
	DefaultFPS = 60

	springFrequency = 8.0
	springDamping   = 1.0 // critically damped, no overshoot past zero
	settleEpsilon   = 0.05
	maxStepsPerTick = 600
)

// Spring animates the store's offset toward a target with a critically
// damped spring. It is stepped at a fixed rate; Advance runs as many
// steps as fit into the time elapsed since the previous call.
type Spring struct {
	store  *Store
	spring harmonica.Spring
	step   time.Duration

	active   bool
	velocity float64
	target   float64
	last     time.Time
}

// NewSpring creates an idle spring driving store at fps steps per second
func NewSpring(store *Store, fps int) *Spring {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Spring{
		store:  store,
		spring: harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		step:   time.Second / time.Duration(fps),
	}
}

// Start begins animating toward target from the current offset
func (s *Spring) Start(target float64, now time.Time) {
	s.active = true
	s.velocity = 0
	s.target = target
	s.last = now
}

// Stop halts the animation where it is
func (s *Spring) Stop() {
	s.active = false
	s.velocity = 0
}

// Active reports whether the spring is still moving
func (s *Spring) Active() bool {
	return s.active
}

// Advance steps the spring up to now. It returns true on the call that
// settles the offset exactly on the target.
func (s *Spring) Advance(now time.Time) bool {
	if !s.active {
		return false
	}

	elapsed := now.Sub(s.last)
	steps := int(elapsed / s.step)
	if steps > maxStepsPerTick {
		steps = maxStepsPerTick
	}
	s.last = s.last.Add(time.Duration(steps) * s.step)

	pos := s.store.Offset()
	for i := 0; i < steps; i++ {
		pos, s.velocity = s.spring.Update(pos, s.velocity, s.target)
		if math.Abs(pos-s.target) < settleEpsilon && math.Abs(s.velocity) < settleEpsilon {
			s.store.SetOffset(s.target)
			s.Stop()
			return true
		}
	}
	s.store.SetOffset(pos)
	return false
}
