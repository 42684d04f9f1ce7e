package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// EventKind classifies an entry of the event log
type EventKind int

const (
	EventComplete EventKind = iota
	EventAnim
	EventReset
	EventGesture
)

// Event is one line of the event log
type Event struct {
	At   time.Time
	Kind EventKind
	Text string
}

// RenderEventLog renders the newest events, at most limit lines, oldest first
func (s *Styles) RenderEventLog(events []Event, limit int) string {
	if len(events) == 0 {
		return s.Dim.Render("No events yet")
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.EventTime.Render(ev.At.Format("15:04:05.000")))
		b.WriteString(" ")
		b.WriteString(s.eventStyle(ev.Kind).Render(ev.Text))
	}
	return b.String()
}

// FormatOffset renders an offset for the event log
func FormatOffset(offset float64) string {
	return fmt.Sprintf("%.1f", offset)
}

func (s *Styles) eventStyle(kind EventKind) lipgloss.Style {
	switch kind {
	case EventComplete:
		return s.EventComplete
	case EventAnim:
		return s.EventAnim
	case EventReset:
		return s.EventReset
	default:
		return s.EventGesture
	}
}
