package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"slideconfirm/internal/config"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	settings config.SliderSettings
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(settings config.SliderSettings) *HelpRenderer {
	return &HelpRenderer{settings: settings}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	slideKeys := "→/l"
	if r.settings.IsRTL {
		slideKeys = "←/h"
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Slide to Confirm Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Slider"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("mouse"), descStyle.Render("Drag the thumb across the track")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render(slideKeys), descStyle.Render("Slide the thumb one step")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("space"), descStyle.Render("Release a keyboard slide")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("r"), descStyle.Render("Reset to rest")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("c"), descStyle.Render("Complete without sliding")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("d"), descStyle.Render("Toggle hold (dynamic reset)")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Current settings"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  animation=%t duration=%dms\n", r.settings.Animation, r.settings.AnimationDuration))
	help.WriteString(fmt.Sprintf("  auto_reset=%t delay=%dms\n", r.settings.AutoReset, r.settings.AutoResetDelay))
	help.WriteString(fmt.Sprintf("  dynamic_reset_enabled=%t is_rtl=%t\n", r.settings.DynamicResetEnabled, r.settings.IsRTL))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("Show this help")))
	help.WriteString(fmt.Sprintf("  %s            %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
