package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Browse published boards and resume one",
	Long: `Browse the sessions in the boards database and the boards each one
published. Press enter on a board to continue playing from it.

Examples:
  lines boards
  lines boards --db ./boards.db`,
	RunE: runBoards,
}

func runBoards(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme, err := themeFrom(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runCfg := core.DefaultConfig()
	runCfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runCfg.ScreenW = w
		runCfg.ScreenH = h
	}

	sessionID, board, ok, err := tui.RunBoards(store, theme, runCfg.ScreenW, runCfg.ScreenH)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	g, err := lines.Decode(board)
	if err != nil {
		return fmt.Errorf("stored board for %s: %w", sessionID, err)
	}

	logger, closeLog := sessionLogger(cfg)
	defer closeLog()

	runCfg.SessionID = sessionID
	opts := tui.Options{
		Theme:  theme,
		Logger: logger,
		Bell:   os.Stdout,
		Resume: &g,
	}
	if cfg.Publish.Enabled {
		opts.Publisher = publisherFor(cfg, store)
		opts.PublishInterval = cfg.Publish.Interval
	}

	if err := tui.Run(runCfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
