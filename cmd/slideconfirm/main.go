package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"slideconfirm/internal/config"
	"slideconfirm/internal/ui"
)

type options struct {
	configPath        string
	title             string
	rtl               bool
	animation         bool
	animationDuration int
	dynamicReset      bool
	autoReset         bool
	autoResetDelay    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "slideconfirm",
		Short:         "A slide-to-confirm control in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultFileName, "Path to the TOML config file")
	f.StringVar(&opts.title, "title", config.DefaultTitle, "Label shown on the track")
	f.BoolVar(&opts.rtl, "rtl", false, "Right-to-left track")
	f.BoolVar(&opts.animation, "animation", false, "Pulse the thumb after completion")
	f.IntVar(&opts.animationDuration, "animation-duration", config.DefaultAnimationDuration, "Pulse half-cycle in milliseconds")
	f.BoolVar(&opts.dynamicReset, "dynamic-reset", false, "Pulse until the hold is released, then reset")
	f.BoolVar(&opts.autoReset, "auto-reset", false, "Reset automatically after completion")
	f.IntVar(&opts.autoResetDelay, "auto-reset-delay", config.DefaultAutoResetDelay, "Auto-reset delay in milliseconds")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	configSvc := config.NewConfigService()
	cfg, err := configSvc.LoadOrCreate(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)

	logger, err := newLogger(cfg.UISettings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("config", opts.configPath),
		zap.Bool("animation", cfg.Slider.Animation),
		zap.Bool("auto_reset", cfg.Slider.AutoReset),
		zap.Bool("dynamic_reset", cfg.Slider.DynamicResetEnabled),
	)

	model, err := ui.NewModel(cfg, logger, clockz.RealClock)
	if err != nil {
		if errors.Is(err, config.ErrConflictingReset) {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		logger.Error("error running program", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// applyFlags overrides file settings with flags given on the command line
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("title") {
		cfg.Slider.Title = opts.title
	}
	if f.Changed("rtl") {
		cfg.Slider.IsRTL = opts.rtl
	}
	if f.Changed("animation") {
		cfg.Slider.Animation = opts.animation
	}
	if f.Changed("animation-duration") {
		cfg.Slider.AnimationDuration = opts.animationDuration
	}
	if f.Changed("dynamic-reset") {
		cfg.Slider.DynamicResetEnabled = opts.dynamicReset
	}
	if f.Changed("auto-reset") {
		cfg.Slider.AutoReset = opts.autoReset
	}
	if f.Changed("auto-reset-delay") {
		cfg.Slider.AutoResetDelay = opts.autoResetDelay
	}
}

// newLogger writes development-format logs to path; the terminal is owned
// by the UI
func newLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
