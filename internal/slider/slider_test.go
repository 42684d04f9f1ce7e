package slider

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"slideconfirm/internal/config"
	"slideconfirm/internal/gesture"
	"slideconfirm/internal/policy"
)

// testSettings give a scroll distance of 310 - 56 - 2*7 = 240
func testSettings() config.SliderSettings {
	s := config.DefaultSliderSettings()
	s.Width = 310
	s.Height = 56
	s.Padding = 7
	return s
}

type hookCounter struct {
	completions []float64
	started     int
	ended       int
	gestures    []gesture.Event
}

func (c *hookCounter) hooks() Hooks {
	return Hooks{
		OnComplete:  func(offset float64) { c.completions = append(c.completions, offset) },
		AnimStarted: func() { c.started++ },
		AnimEnded:   func() { c.ended++ },
		OnGesture:   func(ev gesture.Event) { c.gestures = append(c.gestures, ev) },
	}
}

func newTestModel(t *testing.T, s config.SliderSettings) (*Model, *clockz.FakeClock, *hookCounter) {
	t.Helper()
	clock := clockz.NewFakeClock()
	counter := &hookCounter{}
	m, err := New(s, WithClock(clock), WithHooks(counter.hooks()))
	require.NoError(t, err)
	return m, clock, counter
}

// runFrames advances the fake clock frame by frame for d
func runFrames(m *Model, clock *clockz.FakeClock, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameInterval {
		clock.Advance(FrameInterval)
		m.Tick()
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRejectsConflictingReset(t *testing.T) {
	s := testSettings()
	s.AutoReset = true
	s.DynamicResetEnabled = true

	m, err := New(s)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, config.ErrConflictingReset))
}

func TestNewDefaults(t *testing.T) {
	m, err := New(config.DefaultSliderSettings())
	require.NoError(t, err)

	assert.Equal(t, 234.0, m.ScrollDistance())
	assert.Equal(t, 0.0, m.Offset())
	assert.Equal(t, policy.NotReached, m.State())
	assert.Equal(t, gesture.Idle, m.GestureState())
	assert.Equal(t, 0.99, m.LabelOpacity())
	assert.Equal(t, 1.0, m.ThumbOpacity())
	assert.False(t, m.Animating())
	assert.Nil(t, m.Init(), "nothing to animate at rest")
}

func TestIDsAreUnique(t *testing.T) {
	a, err := New(testSettings())
	require.NoError(t, err)
	b, err := New(testSettings())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestDragToEndCompletes(t *testing.T) {
	m, _, counter := newTestModel(t, testSettings())

	require.True(t, m.DragStart())
	m.DragMove(120)
	assert.Empty(t, counter.completions)
	m.DragMove(240)

	assert.Equal(t, []float64{240}, counter.completions)
	assert.Equal(t, 240.0, m.Offset())
	assert.Equal(t, 0.0, m.LabelOpacity())
	assert.Equal(t, policy.Reached, m.State())

	// releasing after completion changes nothing
	m.DragEnd()
	assert.Len(t, counter.completions, 1)
	assert.Equal(t, 240.0, m.Offset())
	assert.False(t, m.DragStart(), "completed control refuses new drags")
}

func TestShortDragSpringsBack(t *testing.T) {
	m, clock, counter := newTestModel(t, testSettings())

	require.True(t, m.DragStart())
	m.DragMove(180)
	m.DragEnd()
	assert.True(t, m.Animating())

	prev := m.Offset()
	for i := 0; i < 200 && m.Animating(); i++ {
		clock.Advance(FrameInterval)
		m.Tick()
		require.LessOrEqual(t, m.Offset(), prev)
		prev = m.Offset()
	}

	assert.Equal(t, 0.0, m.Offset())
	assert.False(t, m.Animating())
	assert.Empty(t, counter.completions)
	assert.Equal(t, policy.NotReached, m.State())
}

func TestDragDuringSpringBackRestartsFromCurrentOffset(t *testing.T) {
	m, clock, _ := newTestModel(t, testSettings())

	m.DragStart()
	m.DragMove(200)
	m.DragEnd()
	runFrames(m, clock, 100*time.Millisecond)
	mid := m.Offset()
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 200.0)

	require.True(t, m.DragStart())
	assert.False(t, m.Animating(), "grabbing the thumb stops the spring")
	m.DragMove(10)
	assert.InDelta(t, mid+10, m.Offset(), 1e-9)
}

func TestGestureHookSeesRawEvents(t *testing.T) {
	m, _, counter := newTestModel(t, testSettings())

	m.DragStart()
	m.DragMove(40)
	m.DragEnd()

	require.Len(t, counter.gestures, 3)
	assert.Equal(t, gesture.PhaseMove, counter.gestures[1].Phase)
	assert.Equal(t, 40.0, counter.gestures[1].Translation)
}

func TestKeyboardSlide(t *testing.T) {
	m, _, counter := newTestModel(t, testSettings())

	for i := 1; i < keySteps; i++ {
		m.Update(keyRunes("l"))
		assert.InDelta(t, float64(i)*30, m.Offset(), 1e-9)
	}
	assert.Empty(t, counter.completions)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, []float64{240}, counter.completions)
	assert.Equal(t, policy.Reached, m.State())
}

func TestKeyboardReleaseShort(t *testing.T) {
	m, clock, counter := newTestModel(t, testSettings())

	m.Update(keyRunes("l"))
	m.Update(keyRunes("l"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.NotNil(t, cmd, "spring-back needs frames")

	runFrames(m, clock, 3*time.Second)
	assert.Equal(t, 0.0, m.Offset())
	assert.Empty(t, counter.completions)
}

func TestResetKey(t *testing.T) {
	m, _, counter := newTestModel(t, testSettings())

	m.Complete()
	require.Len(t, counter.completions, 1)

	m.Update(keyRunes("r"))
	assert.Equal(t, policy.Idle, m.State())
	assert.Equal(t, 0.0, m.Offset())

	// armed again
	m.Complete()
	assert.Len(t, counter.completions, 2)
}

func TestMouseDrag(t *testing.T) {
	m, _, counter := newTestModel(t, testSettings())
	thumbCols, padCols, travel := m.geometry()
	require.Positive(t, travel)

	x := 1 + padCols + thumbCols/2 // border, padding, middle of the thumb
	m.Update(tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, gesture.Dragging, m.GestureState())

	m.Update(tea.MouseMsg{X: x + travel/2, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Greater(t, m.Offset(), 0.0)
	assert.Less(t, m.Offset(), 240.0)

	m.Update(tea.MouseMsg{X: x + travel, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, []float64{240}, counter.completions)

	m.Update(tea.MouseMsg{X: x + travel, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Len(t, counter.completions, 1)
}

func TestMousePressOffThumbIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, testSettings())

	m.Update(tea.MouseMsg{X: 30, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, gesture.Idle, m.GestureState())

	m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.Equal(t, gesture.Idle, m.GestureState())

	m.Update(tea.MouseMsg{X: 38, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 0.0, m.Offset())
}

func TestRightToLeft(t *testing.T) {
	s := testSettings()
	s.IsRTL = true
	m, _, counter := newTestModel(t, s)

	assert.True(t, m.IconMirrored())
	assert.Contains(t, m.View(), iconMirrored)

	// the forward key of a left-to-right control does nothing
	m.Update(keyRunes("l"))
	assert.Equal(t, 0.0, m.Offset())

	thumbCols, padCols, travel := m.geometry()
	assert.Equal(t, m.columns-padCols-thumbCols, m.thumbStart(), "thumb rests at the right edge")

	x := 1 + m.thumbStart() + thumbCols/2
	m.Update(tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, gesture.Dragging, m.GestureState())
	m.Update(tea.MouseMsg{X: x - travel, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	assert.Equal(t, []float64{240}, counter.completions)
	assert.Equal(t, padCols, m.thumbStart(), "thumb travelled to the left edge")
}

func TestRightToLeftKeyboard(t *testing.T) {
	s := testSettings()
	s.IsRTL = true
	m, _, counter := newTestModel(t, s)

	for i := 0; i < keySteps; i++ {
		m.Update(keyRunes("h"))
	}
	assert.Equal(t, []float64{240}, counter.completions)
}

func TestViewRendersLabelAndThumb(t *testing.T) {
	m, _, _ := newTestModel(t, testSettings())
	view := m.View()
	assert.Contains(t, view, "Slide to confirm")
	assert.Contains(t, view, iconForward)
}

func TestAutoReset(t *testing.T) {
	s := testSettings()
	s.AutoReset = true
	s.AutoResetDelay = 500
	m, clock, counter := newTestModel(t, s)

	m.Complete()
	runFrames(m, clock, 400*time.Millisecond)
	assert.Equal(t, 240.0, m.Offset())

	runFrames(m, clock, 3*time.Second)
	assert.Equal(t, 0.0, m.Offset())
	assert.Equal(t, policy.Idle, m.State())
	assert.Len(t, counter.completions, 1)
	assert.False(t, m.Animating())
}

func TestPulseHooks(t *testing.T) {
	s := testSettings()
	s.Animation = true
	s.AnimationDuration = 100
	m, clock, counter := newTestModel(t, s)

	m.Complete()
	assert.Equal(t, 1, counter.started)
	runFrames(m, clock, 50*time.Millisecond)
	assert.Less(t, m.ThumbOpacity(), 1.0)

	runFrames(m, clock, 3*time.Second)
	assert.Equal(t, 1, counter.ended)
	assert.Equal(t, policy.Idle, m.State())
	assert.Equal(t, 0.0, m.Offset())
}

func TestDynamicReset(t *testing.T) {
	s := testSettings()
	s.Animation = true
	s.DynamicResetEnabled = true
	m, clock, counter := newTestModel(t, s)

	m.SetDynamicResetDelaying(true)
	m.Complete()
	runFrames(m, clock, 5*time.Second)
	assert.Equal(t, policy.AnimatingPulse, m.State(), "pulses while held")
	assert.Zero(t, counter.ended)

	m.SetDynamicResetDelaying(false)
	runFrames(m, clock, 3*time.Second)
	assert.Equal(t, policy.Idle, m.State())
	assert.Equal(t, 1, counter.ended)
}

func TestFrameScheduling(t *testing.T) {
	m, _, _ := newTestModel(t, testSettings())
	assert.Nil(t, m.Frame())

	m.DragStart()
	m.DragMove(100)
	m.DragEnd()

	first := m.Frame()
	require.NotNil(t, first)
	assert.Nil(t, m.Frame(), "only one frame in flight")

	_, cmd := m.Update(FrameMsg{ID: m.ID() + 1000})
	assert.Nil(t, cmd, "frames of other controls are ignored")

	_, cmd = m.Update(FrameMsg{ID: m.ID()})
	assert.NotNil(t, cmd, "next frame scheduled while springing back")
}

func TestZeroLengthTrackIgnoresComplete(t *testing.T) {
	s := testSettings()
	s.Width = 40
	m, _, counter := newTestModel(t, s)
	require.Zero(t, m.ScrollDistance())

	m.Complete()
	assert.Empty(t, counter.completions)
	assert.Equal(t, policy.NotReached, m.State())

	m.DragStart()
	m.DragMove(500)
	m.DragEnd()
	assert.Empty(t, counter.completions)
}
