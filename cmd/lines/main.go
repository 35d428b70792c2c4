// lines is a terminal Lines puzzle: move balls on a 9x9 board to build
// lines of four or more of one color.
//
// Usage:
//
//	lines play               - Play in the terminal
//	lines serve              - Start SSH server for remote play
//	lines view               - Start the HTTP board viewer
//	lines boards             - Browse published boards and resume one
//	lines board [session]    - Print a published board
//	lines history <session>  - List the boards a session published
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: from config)
//	--config <path>    - Use a custom config file
//	--log-level <lvl>  - Override the configured log level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	// Cobra prints the error; commands return errors so their defers run.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lines",
	Short: "Lines - line up colored balls in your terminal",
	Long: `Lines is a puzzle played on a 9x9 board. Select a ball and move it
to a free cell it can reach. Four or more balls of one color in a row,
column or diagonal disappear. Otherwise three new balls drop in. The
game ends when the board fills up.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  view     - Serve published boards over HTTP
  boards   - Browse published boards and resume one
  board    - Print a published board
  history  - List the boards a session published

Examples:
  lines play
  lines play --resume latest
  lines serve --ssh :2222
  lines view --addr :8080
  lines board`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to boards database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// openStore opens the configured boards database.
func openStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening boards database: %w", err)
	}
	return store, nil
}

// newLogger returns a logger writing to w at the configured level.
func newLogger(cfg config.Config, w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// themeFrom converts the configured theme for the board view.
func themeFrom(cfg config.Config) (tui.Theme, error) {
	colors, err := cfg.Theme.BallColors()
	if err != nil {
		return tui.Theme{}, err
	}
	return tui.Theme{
		Ball:   []rune(cfg.Theme.Ball)[0],
		Empty:  []rune(cfg.Theme.Empty)[0],
		Colors: colors,
	}, nil
}
