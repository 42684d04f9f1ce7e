package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	EventTime     lipgloss.Style
	EventComplete lipgloss.Style
	EventAnim     lipgloss.Style
	EventReset    lipgloss.Style
	EventGesture  lipgloss.Style
	Holding       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1).
			MarginBottom(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		EventTime:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		EventComplete: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		EventAnim:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		EventReset:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		EventGesture:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Holding:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
	}
}

// MainPaddingTop and MainPaddingLeft mirror the Main style padding so
// callers can translate mouse coordinates into content coordinates
const (
	MainPaddingTop  = 1
	MainPaddingLeft = 2
)
