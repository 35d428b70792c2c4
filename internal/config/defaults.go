package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/lines.yaml
var defaultLinesYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme: ThemeConfig{
			Ball:   "●",
			Empty:  "·",
			Colors: []string{"red", "green", "yellow", "blue", "magenta", "cyan"},
		},
		Publish: PublishConfig{
			Enabled:  true,
			Interval: time.Second,
		},
		Storage: StorageConfig{
			Path: "~/.lines/boards.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Viewer: ViewerConfig{
			Address:      ":8080",
			PollInterval: time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultLinesYAML
}
