// Package slider provides a slide-to-confirm control as a Bubble Tea
// component. The thumb has to be dragged across the track, with the mouse
// or the keyboard, before the confirmation fires.
package slider

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"slideconfirm/internal/config"
	"slideconfirm/internal/gesture"
	"slideconfirm/internal/motion"
	"slideconfirm/internal/policy"
)

const (
	// FrameInterval is the delay between animation frames
	FrameInterval = time.Second / motion.DefaultFPS

	// keySteps is how many slide key presses cover the whole track
	keySteps = 8
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg advances the animations of the control with the matching ID
type FrameMsg struct {
	ID   int
	Time time.Time
}

// Hooks are the optional callbacks of the control
type Hooks struct {
	OnComplete  func(offset float64)
	AnimStarted func()
	AnimEnded   func()
	OnGesture   func(gesture.Event)
}

// Option configures a Model
type Option func(*Model)

// WithHooks sets the callbacks
func WithHooks(h Hooks) Option {
	return func(m *Model) {
		m.hooks = h
	}
}

// WithClock sets the clock used to timestamp input and frames.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock(clock clockz.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithColumns sets how many terminal columns the track occupies
func WithColumns(cols int) Option {
	return func(m *Model) {
		if cols > 0 {
			m.columns = cols
		}
	}
}

// WithKeyMap overrides the key bindings
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keys = k
	}
}

// WithStyles overrides the colours
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// Model is the slide-to-confirm control
type Model struct {
	id      int
	title   string
	rtl     bool
	columns int

	store  *motion.Store
	interp *gesture.Interpreter
	policy *policy.Policy
	back   *motion.Spring // spring-back after a drag released short

	hooks  Hooks
	clock  clockz.Clock
	logger *zap.Logger
	keys   KeyMap
	styles Styles

	mouseDrag    bool
	pressX       int
	keyDrag      bool
	keyStep      int
	framePending bool
}

// New creates a control from settings. It fails with
// config.ErrConflictingReset when both reset triggers are enabled.
func New(s config.SliderSettings, opts ...Option) (*Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	store := motion.NewStore(motion.Layout{
		TrackWidth:   s.Width,
		Height:       s.Height,
		Padding:      s.Padding,
		BorderRadius: s.Radius(),
	})

	m := &Model{
		id:      nextID(),
		title:   s.Title,
		rtl:     s.IsRTL,
		columns: config.DefaultColumns,
		store:   store,
		interp:  gesture.NewInterpreter(store, s.IsRTL),
		back:    motion.NewSpring(store, motion.DefaultFPS),
		clock:   clockz.RealClock,
		logger:  zap.NewNop(),
		keys:    DefaultKeyMap(s.IsRTL),
		styles:  DefaultStyles(),
	}
	for _, opt := range opts {
		opt(m)
	}

	trigger := policy.TriggerNone
	switch {
	case s.AutoReset:
		trigger = policy.TriggerTimer
	case s.DynamicResetEnabled:
		trigger = policy.TriggerSignal
	}

	m.interp.SetPassthrough(m.hooks.OnGesture)
	m.policy = policy.New(store, policy.Config{
		Animation:         s.Animation,
		AnimationDuration: s.AnimationDurationValue(),
		Trigger:           trigger,
		ResetDelay:        s.AutoResetDelayValue(),
	}, policy.Hooks{
		OnComplete:  m.hooks.OnComplete,
		AnimStarted: m.hooks.AnimStarted,
		AnimEnded:   m.hooks.AnimEnded,
	}, policy.WithLogger(m.logger))

	m.logger.Debug("slider created",
		zap.Int("id", m.id),
		zap.Float64("scroll_distance", store.ScrollDistance()),
		zap.Stringer("trigger", trigger),
		zap.Bool("rtl", s.IsRTL),
	)
	return m, nil
}

// ID returns the identifier carried by this control's frame messages
func (m *Model) ID() int {
	return m.id
}

// Keys returns the key bindings, for help rendering
func (m *Model) Keys() KeyMap {
	return m.keys
}

// Offset returns the thumb offset in layout units
func (m *Model) Offset() float64 {
	return m.store.Offset()
}

// ScrollDistance returns the maximum offset
func (m *Model) ScrollDistance() float64 {
	return m.store.ScrollDistance()
}

// Progress returns the thumb position normalised to [0,1]
func (m *Model) Progress() float64 {
	return m.store.Progress()
}

// LabelOpacity returns the label opacity, 0.99 at rest and 0 at the end
func (m *Model) LabelOpacity() float64 {
	return m.store.LabelOpacity()
}

// ThumbOpacity returns the thumb opacity, pulsing while completed
func (m *Model) ThumbOpacity() float64 {
	return m.policy.ThumbOpacity()
}

// IconMirrored reports whether the thumb icon is drawn mirrored
func (m *Model) IconMirrored() bool {
	return m.rtl
}

// State returns the completion state
func (m *Model) State() policy.State {
	return m.policy.State()
}

// GestureState returns the drag state
func (m *Model) GestureState() gesture.State {
	return m.interp.State()
}

// Animating reports whether the control needs frames
func (m *Model) Animating() bool {
	return m.back.Active() || m.policy.Animating()
}

// DragStart begins a drag. It is refused while the control is completed
// or returning to rest.
func (m *Model) DragStart() bool {
	if !m.policy.Armed() {
		return false
	}
	m.back.Stop()
	m.interp.Start()
	return true
}

// DragMove applies a translation measured from the start of the drag
func (m *Model) DragMove(translation float64) {
	if m.interp.Move(translation) == gesture.OutcomeCompleted {
		m.complete()
	}
}

// DragEnd releases the drag, springing the thumb back if it fell short
func (m *Model) DragEnd() {
	switch m.interp.End() {
	case gesture.OutcomeCompleted:
		m.complete()
	case gesture.OutcomeCancelled:
		m.logger.Debug("slide released short", zap.Float64("offset", m.store.Offset()))
		if !m.store.AtRest() {
			m.back.Start(0, m.clock.Now())
		}
	}
}

// Complete drives the control to completion without a gesture
func (m *Model) Complete() {
	if !m.policy.Armed() {
		return
	}
	m.interp.Abort()
	m.complete()
}

// SetDynamicResetDelaying feeds the hold signal of the dynamic reset
func (m *Model) SetDynamicResetDelaying(delaying bool) {
	m.policy.SetHolding(delaying, m.clock.Now())
}

// Reset returns the control to rest immediately, whatever it is doing
func (m *Model) Reset() {
	m.interp.Abort()
	m.mouseDrag = false
	m.keyDrag = false
	m.keyStep = 0
	m.back.Stop()
	m.policy.Reset()
	m.logger.Debug("slider reset", zap.Int("id", m.id))
}

// Tick advances all running animations to the clock's current time
func (m *Model) Tick() {
	now := m.clock.Now()
	if m.back.Active() {
		m.back.Advance(now)
	}
	m.policy.Tick(now)
}

// Frame returns a command delivering the next frame if anything animates
// and no frame is already on its way
func (m *Model) Frame() tea.Cmd {
	if m.framePending || !m.Animating() {
		return nil
	}
	m.framePending = true
	id := m.id
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t}
	})
}

// Init returns the initial command of the control
func (m *Model) Init() tea.Cmd {
	return m.Frame()
}

// Update handles mouse, keyboard and frame messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ID != m.id {
			return m, nil
		}
		m.framePending = false
		m.Tick()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		m.handleKey(msg)
	}

	return m, m.Frame()
}

// handleMouse expects coordinates relative to the control's top-left corner
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.onThumb(msg.X, msg.Y) {
			return
		}
		if m.DragStart() {
			m.mouseDrag = true
			m.pressX = msg.X
		}
	case tea.MouseActionMotion:
		if m.mouseDrag {
			m.DragMove(m.columnsToUnits(msg.X - m.pressX))
		}
	case tea.MouseActionRelease:
		if m.mouseDrag {
			m.mouseDrag = false
			m.DragEnd()
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Slide):
		if !m.keyDrag {
			if !m.DragStart() {
				return
			}
			m.keyDrag = true
			m.keyStep = 0
		}
		m.keyStep++
		translation := float64(m.keyStep) * m.store.ScrollDistance() / keySteps
		if m.rtl {
			translation = -translation
		}
		m.DragMove(translation)
		if m.interp.State() != gesture.Dragging {
			m.keyDrag = false
		}

	case key.Matches(msg, m.keys.Release):
		if m.keyDrag {
			m.keyDrag = false
			m.DragEnd()
		}

	case key.Matches(msg, m.keys.Reset):
		m.Reset()
	}
}

func (m *Model) complete() {
	m.back.Stop()
	m.keyDrag = false
	if m.policy.Reach(m.clock.Now()) {
		m.logger.Info("slide completed",
			zap.Int("id", m.id),
			zap.String("episode", m.policy.Episode()),
			zap.Float64("offset", m.store.Offset()),
		)
	}
}
