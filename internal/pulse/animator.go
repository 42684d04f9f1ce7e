// Package pulse drives the repeating opacity oscillation shown while a
// completed control waits to be reset.
package pulse

import "time"

const (
	// MaxOpacity is the opacity at rest and at the end of every even repeat
	MaxOpacity = 1.0
	// MinOpacity is the low point of the oscillation
	MinOpacity = 0.4
	// Forever makes the pulse repeat until cancelled
	Forever = -1
	// DefaultRepeats is the fixed repeat budget of a non-dynamic pulse
	DefaultRepeats = 6
)

// Animator oscillates an opacity value between MaxOpacity and MinOpacity.
// Each repeat is one half-cycle of the given duration and reverses the
// direction of the previous one.
//
// The done hook fires exactly once per Start: with finished=true when a
// finite repeat budget runs out, with finished=false on Cancel.
type Animator struct {
	duration time.Duration
	repeats  int
	onDone   func(finished bool)

	running bool
	started time.Time
	opacity float64
	done    int
}

// New creates a stopped animator. Negative durations are treated as zero.
func New(duration time.Duration, repeats int, onDone func(finished bool)) *Animator {
	if duration < 0 {
		duration = 0
	}
	if repeats < Forever {
		repeats = Forever
	}
	return &Animator{
		duration: duration,
		repeats:  repeats,
		onDone:   onDone,
		opacity:  MaxOpacity,
	}
}

// Start begins the oscillation at full opacity
func (a *Animator) Start(now time.Time) {
	a.running = true
	a.started = now
	a.opacity = MaxOpacity
	a.done = 0
}

// Running reports whether the animator is still oscillating
func (a *Animator) Running() bool {
	return a.running
}

// Opacity returns the current value. A cancelled pulse keeps the value it
// had when it was stopped.
func (a *Animator) Opacity() float64 {
	return a.opacity
}

// Repeats returns the number of completed half-cycles
func (a *Animator) Repeats() int {
	return a.done
}

// Tick advances the oscillation to now
func (a *Animator) Tick(now time.Time) {
	if !a.running {
		return
	}

	elapsed := now.Sub(a.started)
	if elapsed < 0 {
		elapsed = 0
	}

	if a.duration == 0 {
		if a.repeats == Forever {
			return
		}
		a.done = a.repeats
		a.opacity = a.restingOpacity()
		a.finish(true)
		return
	}

	if a.repeats != Forever && elapsed >= time.Duration(a.repeats)*a.duration {
		a.done = a.repeats
		a.opacity = a.restingOpacity()
		a.finish(true)
		return
	}

	half := int(elapsed / a.duration)
	frac := float64(elapsed-time.Duration(half)*a.duration) / float64(a.duration)
	a.done = half

	eased := easeInOut(frac)
	if half%2 == 0 {
		a.opacity = MaxOpacity + (MinOpacity-MaxOpacity)*eased
	} else {
		a.opacity = MinOpacity + (MaxOpacity-MinOpacity)*eased
	}
}

// Cancel stops the oscillation immediately. Cancelling a stopped animator
// does nothing.
func (a *Animator) Cancel() {
	if !a.running {
		return
	}
	a.finish(false)
}

// restingOpacity is where a finite pulse lands after its last repeat
func (a *Animator) restingOpacity() float64 {
	if a.repeats%2 == 0 {
		return MaxOpacity
	}
	return MinOpacity
}

func (a *Animator) finish(finished bool) {
	a.running = false
	if a.onDone != nil {
		a.onDone(finished)
	}
}
