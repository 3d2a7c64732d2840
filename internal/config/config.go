package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/trackball/internal/trackball"
)

const (
	DefaultFrontend    = "tui"
	DefaultScene       = "globe"
	DefaultDataDir     = ".trackball"
	DefaultLogLevel    = "info"
	DefaultWidth       = 960
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultGraphHeight = 6
	DefaultHistory     = 120
)

var (
	ErrInvalidFrontend = errors.New("config: frontend must be tui, gui or window")
	ErrInvalidWindow   = errors.New("config: window size and fps must be positive")
)

type Config struct {
	Sensitivity float64      `yaml:"sensitivity"`
	Frontend    string       `yaml:"frontend"`
	Scene       string       `yaml:"scene"`
	DataDir     string       `yaml:"data_dir"`
	Record      bool         `yaml:"record"`
	Log         LogConfig    `yaml:"log"`
	Window      WindowConfig `yaml:"window"`
	TUI         TUIConfig    `yaml:"tui"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	File     string `yaml:"file,omitempty"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type TUIConfig struct {
	GraphHeight int `yaml:"graph_height"`
	History     int `yaml:"history"`
}

func DefaultConfig() *Config {
	return &Config{
		Sensitivity: trackball.DefaultSensitivity,
		Frontend:    DefaultFrontend,
		Scene:       DefaultScene,
		DataDir:     DefaultDataDir,
		Log: LogConfig{
			Level:    DefaultLogLevel,
			Encoding: "console",
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  "trackball",
		},
		TUI: TUIConfig{
			GraphHeight: DefaultGraphHeight,
			History:     DefaultHistory,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Trackball().Validate(); err != nil {
		return fmt.Errorf("config: sensitivity %v: %w", c.Sensitivity, err)
	}
	switch c.Frontend {
	case "tui", "gui", "window":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFrontend, c.Frontend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 || c.Window.FPS <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Trackball returns the controller configuration.
func (c *Config) Trackball() trackball.Config {
	return trackball.Config{Sensitivity: c.Sensitivity}
}

// Apply copies the preset's tuning onto c, leaving paths and logging alone.
func (c *Config) Apply(p *Config) {
	c.Sensitivity = p.Sensitivity
	if p.Frontend != "" {
		c.Frontend = p.Frontend
	}
	if p.Scene != "" {
		c.Scene = p.Scene
	}
	if p.TUI.History > 0 {
		c.TUI = p.TUI
	}
}
