package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"slideconfirm/internal/config"
	"slideconfirm/internal/gesture"
	"slideconfirm/internal/slider"
	"slideconfirm/internal/ui/views"
)

const (
	// eventLogLimit is how many events stay visible
	eventLogLimit = 8

	// sliderTop is the row of the slider's top border: padding, title and
	// the title's bottom margin
	sliderTop = views.MainPaddingTop + 2

	// readyMarker is printed for the e2e harness once the UI has rendered
	readyMarker = "__READY__"
)

// keyMap holds the application level bindings
type keyMap struct {
	slider   slider.KeyMap
	Complete key.Binding
	Hold     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap(s slider.KeyMap) keyMap {
	return keyMap{
		slider: s,
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Hold: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "hold"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.slider.ShortHelp(), k.Complete, k.Hold, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model represents the UI state
type Model struct {
	config *config.Config
	slider *slider.Model
	styles *views.Styles
	help   help.Model
	keys   keyMap
	logger *zap.Logger
	clock  clockz.Clock

	events  []views.Event
	holding bool
	width   int
	height  int
	e2e     bool

	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model hosting one slide-to-confirm control
func NewModel(cfg *config.Config, logger *zap.Logger, clock clockz.Clock) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = clockz.RealClock
	}

	m := &Model{
		config:       cfg,
		styles:       views.NewStyles(),
		help:         help.New(),
		logger:       logger,
		clock:        clock,
		e2e:          os.Getenv("SLIDECONFIRM_E2E_TEST") == "1",
		helpRenderer: NewHelpRenderer(cfg.Slider),
	}

	s, err := slider.New(cfg.Slider,
		slider.WithClock(clock),
		slider.WithLogger(logger.Named("slider")),
		slider.WithColumns(cfg.UISettings.Columns),
		slider.WithHooks(slider.Hooks{
			OnComplete:  m.onComplete,
			AnimStarted: m.onAnimStarted,
			AnimEnded:   m.onAnimEnded,
			OnGesture:   m.onGesture,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slider: %w", err)
	}
	m.slider = s
	m.keys = newKeyMap(s.Keys())

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Slider returns the hosted control
func (m *Model) Slider() *slider.Model {
	return m.slider
}

// Events returns the recorded event log
func (m *Model) Events() []views.Event {
	return m.events
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.slider.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.showHelpPager()
		case key.Matches(msg, m.keys.Complete):
			m.slider.Complete()
			return m, m.slider.Frame()
		case key.Matches(msg, m.keys.Hold):
			m.holding = !m.holding
			m.addEvent(views.EventGesture, fmt.Sprintf("hold %s", onOff(m.holding)))
			m.slider.SetDynamicResetDelaying(m.holding)
			return m, m.slider.Frame()
		case key.Matches(msg, m.keys.slider.Reset):
			m.addEvent(views.EventReset, "reset requested")
		}
		_, cmd := m.slider.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		msg.X -= views.MainPaddingLeft
		msg.Y -= sliderTop
		_, cmd := m.slider.Update(msg)
		return m, cmd

	case slider.FrameMsg:
		_, cmd := m.slider.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
		}
		return m, nil
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("slideconfirm"))
	b.WriteString("\n")
	b.WriteString(m.slider.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.styles.RenderEventLog(m.events, eventLogLimit))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	if m.e2e {
		b.WriteString("\n")
		b.WriteString(readyMarker)
	}

	return m.styles.Main.Render(b.String())
}

// showHelpPager returns a command that shows help using ov pager
func (m *Model) showHelpPager() tea.Cmd {
	if m.helpOps == nil {
		return nil
	}
	ops := m.helpOps
	content := m.helpRenderer.RenderHelpContent()
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

func (m *Model) statusLine() string {
	status := fmt.Sprintf("state: %s · progress: %3.0f%%", m.slider.State(), m.slider.Progress()*100)
	if m.config.Slider.DynamicResetEnabled {
		hold := "released"
		if m.holding {
			hold = m.styles.Holding.Render("holding")
		}
		status += " · " + hold
	}
	return status
}

func (m *Model) onComplete(offset float64) {
	m.addEvent(views.EventComplete, "Confirmed at offset "+views.FormatOffset(offset))
}

func (m *Model) onAnimStarted() {
	m.addEvent(views.EventAnim, "pulse started")
}

func (m *Model) onAnimEnded() {
	m.addEvent(views.EventAnim, "pulse ended")
}

func (m *Model) onGesture(ev gesture.Event) {
	switch ev.Phase {
	case gesture.PhaseStart:
		m.addEvent(views.EventGesture, "drag started")
	case gesture.PhaseEnd:
		m.addEvent(views.EventGesture, "drag released at "+views.FormatOffset(m.slider.Offset()))
	}
}

func (m *Model) addEvent(kind views.EventKind, text string) {
	m.events = append(m.events, views.Event{At: m.clock.Now(), Kind: kind, Text: text})
	m.logger.Info(text)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
