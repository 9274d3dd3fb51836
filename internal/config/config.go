// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultTitle           = "anya"
	DefaultWidth           = 148
	DefaultHeight          = 89
	DefaultTPS             = 30
	DefaultBackgroundMode  = BackgroundAnimation
	DefaultBackgroundColor = "#0a0a19"
	DefaultFrameSpeedMS    = 40
	DefaultClockFormat     = "03:04PM"
	DefaultDateFormat      = "Mon Jan 2"
	DefaultClockSize       = 28
	DefaultLabelSize       = 10
	DefaultVolume          = 1.0
	DefaultLogLevel        = "warn"
	DefaultGitHubURL       = "https://github.com"
	DefaultScreenshotDir   = "screenshots"
)

// Background modes.
const (
	BackgroundAnimation = "animation"
	BackgroundImage     = "image"
	BackgroundColor     = "color"
)

// Config represents the anya configuration.
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Background BackgroundConfig `toml:"background"`
	Clock      ClockConfig      `toml:"clock"`
	UI         UIConfig         `toml:"ui"`
	Themes     ThemesConfig     `toml:"themes"`
	Sound      SoundConfig      `toml:"sound"`
	Debug      DebugConfig      `toml:"debug"`
	Log        LogConfig        `toml:"log"`
	Links      LinksConfig      `toml:"links"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	TPS       int    `toml:"tps"`      // fixed update rate; also the frame limiter
	Floating  bool   `toml:"floating"` // keep above other windows
	Decorated bool   `toml:"decorated"`
}

// BackgroundConfig selects what is drawn behind the clock.
type BackgroundConfig struct {
	Mode         string  `toml:"mode"`       // animation, image, color
	FramesDir    string  `toml:"frames_dir"` // directory of equally sized frames
	GIF          string  `toml:"gif"`        // animated GIF, used when frames_dir is empty
	AtlasPNG     string  `toml:"atlas_png"`  // pre-packed atlas page
	AtlasJSON    string  `toml:"atlas_json"` // manifest for atlas_png
	Image        string  `toml:"image"`      // static image for mode=image
	Color        string  `toml:"color"`      // hex, for mode=color and behind everything
	FrameSpeedMS float64 `toml:"frame_speed_ms"`
	Scale        float64 `toml:"scale"` // 0 = native size
}

// ClockConfig holds clock text settings.
type ClockConfig struct {
	Format     string  `toml:"format"` // Go time layout
	DateFormat string  `toml:"date_format"`
	ShowDate   bool    `toml:"show_date"`
	Font       string  `toml:"font"` // TTF path; empty = built-in
	Size       float64 `toml:"size"`
}

// UIConfig holds button label settings.
type UIConfig struct {
	Font      string  `toml:"font"`
	LabelSize float64 `toml:"label_size"`
}

// ThemesConfig points at the theme file.
type ThemesConfig struct {
	File   string `toml:"file"`   // YAML theme file; empty = built-in themes
	Active string `toml:"active"` // theme used by every button
	Watch  bool   `toml:"watch"`  // reload the file on change
}

// SoundConfig holds click sound settings.
type SoundConfig struct {
	Click  string  `toml:"click"` // wav, mp3 or ogg; empty = silent
	Volume float64 `toml:"volume"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	Overlay       bool   `toml:"overlay"`
	ScreenshotDir string `toml:"screenshot_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// LinksConfig holds external links opened from the settings layer.
type LinksConfig struct {
	GitHub string `toml:"github"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:    DefaultTitle,
			Width:    DefaultWidth,
			Height:   DefaultHeight,
			TPS:      DefaultTPS,
			Floating: true,
		},
		Background: BackgroundConfig{
			Mode:         DefaultBackgroundMode,
			FramesDir:    filepath.Join("assets", "gif-extract"),
			Color:        DefaultBackgroundColor,
			FrameSpeedMS: DefaultFrameSpeedMS,
		},
		Clock: ClockConfig{
			Format:     DefaultClockFormat,
			DateFormat: DefaultDateFormat,
			Size:       DefaultClockSize,
		},
		UI: UIConfig{
			LabelSize: DefaultLabelSize,
		},
		Themes: ThemesConfig{
			Active: "default",
			Watch:  true,
		},
		Sound: SoundConfig{
			Volume: DefaultVolume,
		},
		Debug: DebugConfig{
			ScreenshotDir: DefaultScreenshotDir,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Links: LinksConfig{
			GitHub: DefaultGitHubURL,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "anya", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	}
	switch c.Background.Mode {
	case BackgroundAnimation, BackgroundImage, BackgroundColor:
	default:
		return fmt.Errorf("unknown background mode %q", c.Background.Mode)
	}
	if _, err := colorful.Hex(c.Background.Color); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	if c.Background.FrameSpeedMS <= 0 {
		return fmt.Errorf("frame_speed_ms %g must be positive", c.Background.FrameSpeedMS)
	}
	if c.Clock.Size <= 0 || c.UI.LabelSize <= 0 {
		return errors.New("font sizes must be positive")
	}
	if c.Sound.Volume < 0 {
		return fmt.Errorf("sound volume %g must not be negative", c.Sound.Volume)
	}
	return nil
}

// DeltaMS returns the fixed per-tick time step in milliseconds.
func (c *Config) DeltaMS() float64 {
	return 1000 / float64(c.Window.TPS)
}
