package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrConflictingReset is returned when timer and hold based resets are
// both enabled. The two are alternative triggers for the same transition.
var ErrConflictingReset = errors.New("auto_reset and dynamic_reset_enabled are mutually exclusive")

// Default values for slider settings
const (
	DefaultTitle             = "Slide to confirm"
	DefaultWidth             = 300
	DefaultHeight            = 56
	DefaultPadding           = 5
	DefaultAnimationDuration = 180  // ms
	DefaultAutoResetDelay    = 1000 // ms
	DefaultColumns           = 40
	DefaultLogFile           = "slideconfirm.log"
	DefaultFileName          = "slideconfirm.toml"
)

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	Slider     SliderSettings `toml:"slider"`
	UISettings UISettings     `toml:"ui"`
}

// SliderSettings are the options of one slide-to-confirm control.
// Durations are in milliseconds.
type SliderSettings struct {
	Title               string   `toml:"title"`
	Width               float64  `toml:"width"`
	Height              float64  `toml:"height"`
	BorderRadius        *float64 `toml:"border_radius,omitempty"`
	Padding             float64  `toml:"padding"`
	IsRTL               bool     `toml:"is_rtl"`
	Animation           bool     `toml:"animation"`
	AnimationDuration   int      `toml:"animation_duration"`
	DynamicResetEnabled bool     `toml:"dynamic_reset_enabled"`
	AutoReset           bool     `toml:"auto_reset"`
	AutoResetDelay      int      `toml:"auto_reset_delay"`
}

// UISettings represents terminal-related configuration
type UISettings struct {
	Columns int    `toml:"columns"`
	LogFile string `toml:"log_file"`
}

// Radius returns the border radius, defaulting to half the height
func (s SliderSettings) Radius() float64 {
	if s.BorderRadius != nil {
		return *s.BorderRadius
	}
	return s.Height / 2
}

// AnimationDurationValue returns the pulse half-cycle duration, never negative
func (s SliderSettings) AnimationDurationValue() time.Duration {
	return millis(s.AnimationDuration)
}

// AutoResetDelayValue returns the auto-reset delay, never negative
func (s SliderSettings) AutoResetDelayValue() time.Duration {
	return millis(s.AutoResetDelay)
}

// Validate rejects combinations that have no defined precedence
func (s SliderSettings) Validate() error {
	if s.AutoReset && s.DynamicResetEnabled {
		return ErrConflictingReset
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	LoadOrCreate(path string) (*Config, error)
}

// configService is the concrete implementation
type configService struct{}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so missing keys keep their default values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrCreate loads the config at path, writing a default one first if
// the file does not exist yet
func (cs *configService) LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cs.LoadFromPath(path)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Slider:  DefaultSliderSettings(),
		UISettings: UISettings{
			Columns: DefaultColumns,
			LogFile: DefaultLogFile,
		},
	}
}

// DefaultSliderSettings returns the settings of an unconfigured control
func DefaultSliderSettings() SliderSettings {
	return SliderSettings{
		Title:             DefaultTitle,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Padding:           DefaultPadding,
		AnimationDuration: DefaultAnimationDuration,
		AutoResetDelay:    DefaultAutoResetDelay,
	}
}

// normalize clamps values that cannot be meaningfully negative
func (c *Config) normalize() {
	if c.Slider.Height < 0 {
		c.Slider.Height = 0
	}
	if c.Slider.Padding < 0 {
		c.Slider.Padding = 0
	}
	if c.Slider.Width < 0 {
		c.Slider.Width = 0
	}
	if c.UISettings.Columns <= 0 {
		c.UISettings.Columns = DefaultColumns
	}
	if c.UISettings.LogFile == "" {
		c.UISettings.LogFile = DefaultLogFile
	}
}

func millis(ms int) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
