package slider

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles holds the colours of the control. Colours are hex strings so
// that opacity can be projected by blending toward the track colour.
type Styles struct {
	Track string
	Label string
	Thumb string
	Icon  string
}

// DefaultStyles returns the default colour scheme
func DefaultStyles() Styles {
	return Styles{
		Track: "#5A4FCF",
		Label: "#FAFAFA",
		Thumb: "#FFFFFF",
		Icon:  "#5A4FCF",
	}
}

const (
	iconForward  = "▶"
	iconMirrored = "◀"
)

// blend fades fg toward bg; opacity 1 keeps fg, 0 yields bg
func blend(fg, bg string, opacity float64) string {
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	opacity = math.Max(0, math.Min(1, opacity))
	return f.BlendRgb(b, 1-opacity).Hex()
}

// geometry projects the layout onto terminal columns
func (m *Model) geometry() (thumbCols, padCols, travel int) {
	cols := m.columns
	l := m.store.Layout()
	if l.TrackWidth <= 0 {
		thumbCols = min(3, cols)
		return thumbCols, 0, cols - thumbCols
	}

	scale := float64(cols) / l.TrackWidth
	thumbCols = int(math.Round(l.ThumbWidth() * scale))
	thumbCols = max(1, min(thumbCols, cols))
	padCols = int(math.Round(l.Padding * scale))
	if thumbCols+2*padCols > cols {
		padCols = 0
	}
	travel = cols - thumbCols - 2*padCols
	return thumbCols, padCols, travel
}

// thumbStart returns the first content column of the thumb, mirrored for
// right-to-left controls
func (m *Model) thumbStart() int {
	thumbCols, padCols, travel := m.geometry()
	start := padCols + int(math.Round(m.Progress()*float64(travel)))
	if m.rtl {
		start = m.columns - start - thumbCols
	}
	return start
}

// columnsToUnits converts a horizontal mouse delta into layout units
func (m *Model) columnsToUnits(dx int) float64 {
	_, _, travel := m.geometry()
	sd := m.store.ScrollDistance()
	switch {
	case travel <= 0:
		return 0
	case dx >= travel:
		return sd
	case dx <= -travel:
		return -sd
	default:
		return float64(dx) * sd / float64(travel)
	}
}

// onThumb hit-tests a point given in the control's local coordinates,
// where row 0 and column 0 are the border
func (m *Model) onThumb(x, y int) bool {
	if y < 0 || y > 2 {
		return false
	}
	thumbCols, _, _ := m.geometry()
	col := x - 1
	start := m.thumbStart()
	return col >= start && col < start+thumbCols
}

// View renders the track with the label and the thumb
func (m *Model) View() string {
	cols := m.columns
	thumbCols, _, _ := m.geometry()
	start := m.thumbStart()

	row := []rune(strings.Repeat(" ", cols))
	label := []rune(m.title)
	if len(label) > cols {
		label = label[:cols]
	}
	copy(row[(cols-len(label))/2:], label)

	icon := iconForward
	if m.IconMirrored() {
		icon = iconMirrored
	}
	thumb := []rune(strings.Repeat(" ", thumbCols))
	thumb[thumbCols/2] = []rune(icon)[0]

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(blend(m.styles.Label, m.styles.Track, m.LabelOpacity()))).
		Background(lipgloss.Color(m.styles.Track))
	thumbStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.Icon)).
		Background(lipgloss.Color(blend(m.styles.Thumb, m.styles.Track, m.ThumbOpacity())))

	content := labelStyle.Render(string(row[:start])) +
		thumbStyle.Render(string(thumb)) +
		labelStyle.Render(string(row[start+thumbCols:]))

	border := lipgloss.NormalBorder()
	if m.store.Layout().BorderRadius > 0 {
		border = lipgloss.RoundedBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(m.styles.Track)).
		Render(content)
}
