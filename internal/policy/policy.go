// Package policy owns what happens after the thumb reaches the end of the
// track: the completion callback, the pulse, and the return to rest.
package policy

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slideconfirm/internal/motion"
	"slideconfirm/internal/pulse"
)

// State is the completion lifecycle of the control
type State int

const (
	NotReached State = iota
	Reached
	AnimatingPulse
	ResetPending
	Idle
)

func (s State) String() string {
	switch s {
	case NotReached:
		return "not-reached"
	case Reached:
		return "reached"
	case AnimatingPulse:
		return "animating-pulse"
	case ResetPending:
		return "reset-pending"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// Trigger selects what returns a completed control to rest
type Trigger int

const (
	// TriggerNone leaves the thumb locked until Reset, unless a finite
	// pulse is configured, in which case the end of the pulse returns it.
	TriggerNone Trigger = iota
	// TriggerTimer returns the thumb once ResetDelay has passed
	TriggerTimer
	// TriggerSignal pulses until the hold signal is released
	TriggerSignal
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimer:
		return "timer"
	case TriggerSignal:
		return "signal"
	default:
		return "none"
	}
}

// Config parameterises the policy
type Config struct {
	Animation         bool
	AnimationDuration time.Duration
	Trigger           Trigger
	ResetDelay        time.Duration
}

// Hooks are optional callbacks invoked at state transitions
type Hooks struct {
	OnComplete    func(offset float64)
	AnimStarted   func()
	AnimEnded     func()
	OnStateChange func(from, to State)
}

// Option configures a Policy
type Option func(*Policy)

// WithLogger sets the logger used for transition tracing
func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Policy is the completion/reset state machine. It is not safe for
// concurrent use; all calls are expected from one goroutine.
type Policy struct {
	cfg    Config
	hooks  Hooks
	store  *motion.Store
	ret    *motion.Spring
	logger *zap.Logger

	state          State
	pulse          *pulse.Animator
	episode        string
	reachedAt      time.Time
	resetRequested bool
	animStarted    bool
	holding        bool
	resetting      bool
}

// New creates a policy in the NotReached state
func New(store *motion.Store, cfg Config, hooks Hooks, opts ...Option) *Policy {
	if cfg.AnimationDuration < 0 {
		cfg.AnimationDuration = 0
	}
	if cfg.ResetDelay < 0 {
		cfg.ResetDelay = 0
	}

	p := &Policy{
		cfg:    cfg,
		hooks:  hooks,
		store:  store,
		ret:    motion.NewSpring(store, motion.DefaultFPS),
		logger: zap.NewNop(),
		state:  NotReached,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current completion state
func (p *Policy) State() State {
	return p.state
}

// Armed reports whether a new drag may start
func (p *Policy) Armed() bool {
	return p.state == NotReached || p.state == Idle
}

// Returning reports whether the thumb is springing back to rest
func (p *Policy) Returning() bool {
	return p.ret.Active()
}

// PulseRunning reports whether the pulse is oscillating
func (p *Policy) PulseRunning() bool {
	return p.pulse != nil && p.pulse.Running()
}

// Animating reports whether Tick still has work to do
func (p *Policy) Animating() bool {
	if p.PulseRunning() || p.ret.Active() {
		return true
	}
	return p.cfg.Trigger == TriggerTimer && p.inEpisode() && !p.resetRequested
}

// Episode returns the id of the current completion episode, if any
func (p *Policy) Episode() string {
	return p.episode
}

// ThumbOpacity is the pulse opacity while completed and 1 otherwise
func (p *Policy) ThumbOpacity() float64 {
	if p.pulse != nil && p.inEpisode() {
		return p.pulse.Opacity()
	}
	return pulse.MaxOpacity
}

// Reach marks the control completed. It returns false when the control
// is not armed or the track has no length, so a completion fires only
// once per episode.
func (p *Policy) Reach(now time.Time) bool {
	if !p.Armed() || p.store.ScrollDistance() == 0 {
		return false
	}

	offset := p.store.SetOffset(p.store.ScrollDistance())
	episode := uuid.NewString()
	p.episode = episode
	p.reachedAt = now
	p.resetRequested = false
	p.animStarted = false
	p.setState(Reached)

	if p.hooks.OnComplete != nil {
		p.hooks.OnComplete(offset)
	}
	// the completion hook may have reset the control
	if p.state != Reached || p.episode != episode {
		return true
	}

	if p.cfg.Animation {
		repeats := pulse.DefaultRepeats
		if p.cfg.Trigger == TriggerSignal {
			repeats = pulse.Forever
		}
		p.animStarted = true
		if p.hooks.AnimStarted != nil {
			p.hooks.AnimStarted()
		}
		p.pulse = pulse.New(p.cfg.AnimationDuration, repeats, p.pulseDone)
		p.setState(AnimatingPulse)
		p.pulse.Start(now)
	}
	return true
}

// SetHolding feeds the live hold signal. With TriggerSignal a release
// (true to false) cancels the pulse and returns the thumb.
func (p *Policy) SetHolding(holding bool, now time.Time) {
	was := p.holding
	p.holding = holding
	if p.cfg.Trigger != TriggerSignal || !was || holding {
		return
	}
	p.logger.Debug("hold released", zap.String("episode", p.episode), zap.Stringer("state", p.state))
	p.requestReset(now)
}

// Tick advances the pulse, the reset timer and the return spring
func (p *Policy) Tick(now time.Time) {
	if p.pulse != nil {
		p.pulse.Tick(now)
	}

	if p.cfg.Trigger == TriggerTimer && p.inEpisode() && !p.resetRequested &&
		now.Sub(p.reachedAt) >= p.cfg.ResetDelay {
		p.requestReset(now)
	}

	p.startReturn(now)
	if p.ret.Active() && p.ret.Advance(now) {
		p.finish()
	}
}

// Reset forces the control back to rest from any state, cancelling the
// pulse and snapping the offset to zero.
func (p *Policy) Reset() {
	p.resetting = true
	defer func() { p.resetting = false }()

	if p.pulse != nil {
		p.pulse.Cancel()
	}
	p.ret.Stop()
	p.store.SetOffset(0)
	p.finish()
}

func (p *Policy) requestReset(now time.Time) {
	switch p.state {
	case Reached:
		p.resetRequested = true
		p.setState(ResetPending)
	case AnimatingPulse:
		p.resetRequested = true
		if p.cfg.Trigger == TriggerSignal {
			p.pulse.Cancel()
		}
	case ResetPending:
		p.resetRequested = true
	default:
		return
	}
	p.startReturn(now)
}

// startReturn launches the spring once a reset is due and no pulse runs
func (p *Policy) startReturn(now time.Time) {
	if p.state != ResetPending || !p.resetRequested || p.PulseRunning() || p.ret.Active() {
		return
	}
	if p.store.AtRest() {
		p.finish()
		return
	}
	p.ret.Start(0, now)
}

func (p *Policy) pulseDone(finished bool) {
	if p.resetting || p.state != AnimatingPulse {
		return
	}
	if finished && p.cfg.Trigger == TriggerNone {
		p.resetRequested = true
	}
	p.setState(ResetPending)
}

func (p *Policy) finish() {
	if p.pulse != nil {
		p.pulse.Cancel()
		p.pulse = nil
	}
	owed := p.animStarted
	p.animStarted = false
	p.resetRequested = false
	p.setState(Idle)
	p.episode = ""

	if owed && p.hooks.AnimEnded != nil {
		p.hooks.AnimEnded()
	}
}

func (p *Policy) inEpisode() bool {
	switch p.state {
	case Reached, AnimatingPulse, ResetPending:
		return true
	default:
		return false
	}
}

func (p *Policy) setState(to State) {
	from := p.state
	if from == to {
		return
	}
	p.state = to
	p.logger.Debug("completion state changed",
		zap.String("episode", p.episode),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	if p.hooks.OnStateChange != nil {
		p.hooks.OnStateChange(from, to)
	}
}
