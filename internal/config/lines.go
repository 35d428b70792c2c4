// Package config provides YAML configuration for Lines: board theme,
// publishing, storage, SSH and viewer settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

// Config is the complete application configuration.
type Config struct {
	Theme   ThemeConfig   `yaml:"theme"`
	Publish PublishConfig `yaml:"publish"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Log     LogConfig     `yaml:"log"`
}

// ThemeConfig controls how the board is drawn.
type ThemeConfig struct {
	Ball   string   `yaml:"ball"`   // Glyph for a ball
	Empty  string   `yaml:"empty"`  // Glyph for an empty cell
	Colors []string `yaml:"colors"` // Color names for balls 1..6
}

// PublishConfig controls forwarding of the serialized board.
type PublishConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"` // Periodic publish; 0 publishes only after moves
	URL      string        `yaml:"url"`      // Remote viewer base URL; empty means local store
}

// StorageConfig locates the board database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ViewerConfig configures the HTTP viewer.
type ViewerConfig struct {
	Address      string        `yaml:"address"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file for TUI sessions; empty discards
}

// BallColors resolves the theme color names.
func (t ThemeConfig) BallColors() ([]core.Color, error) {
	colors := make([]core.Color, len(t.Colors))
	for i, name := range t.Colors {
		c, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("config: theme color %d: %w", i+1, err)
		}
		colors[i] = c
	}
	return colors, nil
}

// Validate checks values the adapters rely on.
func (c Config) Validate() error {
	var errs []error

	if len(c.Theme.Colors) != lines.Colors-1 {
		errs = append(errs, fmt.Errorf("config: theme needs %d colors, got %d", lines.Colors-1, len(c.Theme.Colors)))
	} else if _, err := c.Theme.BallColors(); err != nil {
		errs = append(errs, err)
	}
	if c.Theme.Ball == "" || c.Theme.Empty == "" {
		errs = append(errs, errors.New("config: theme glyphs must not be empty"))
	}
	if c.Publish.Interval < 0 {
		errs = append(errs, errors.New("config: publish interval must not be negative"))
	}
	if c.Viewer.PollInterval <= 0 {
		errs = append(errs, errors.New("config: viewer poll interval must be positive"))
	}

	return errors.Join(errs...)
}
