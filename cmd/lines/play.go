package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lines/internal/config"
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/platform/tui"
	"github.com/vovakirdan/tui-lines/internal/storage"
	"github.com/vovakirdan/tui-lines/internal/viewer"
)

var (
	flagResume     string
	flagPublishURL string
	flagNoPublish  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lines in the terminal",
	Long: `Start a game of Lines.

Controls:
  Arrows/hjkl    - Move the cursor
  Enter/Space    - Select a ball, or move the selected ball here
  Mouse click    - Same as Enter on the clicked cell
  N              - New game
  ?              - More keys
  Q/Ctrl+C       - Quit

The board is published after every move, to the local database or to a
remote viewer when --publish-url (or publish.url) is set.

Examples:
  lines play
  lines play --seed 42
  lines play --resume latest
  lines play --resume 3f1c2a9e-...
  lines play --publish-url http://localhost:8080`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagResume, "resume", "", `Resume a published board: session id or "latest"`)
	playCmd.Flags().StringVar(&flagPublishURL, "publish-url", "", "Publish to a remote viewer at this base URL")
	playCmd.Flags().BoolVar(&flagNoPublish, "no-publish", false, "Do not publish the board")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme, err := themeFrom(cfg)
	if err != nil {
		return err
	}
	if flagPublishURL != "" {
		cfg.Publish.URL = flagPublishURL
	}
	if flagNoPublish {
		cfg.Publish.Enabled = false
	}

	logger, closeLog := sessionLogger(cfg)
	defer closeLog()

	// The local store is optional unless we resume from it.
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open boards database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	runCfg := core.DefaultConfig()
	runCfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runCfg.ScreenW = w
		runCfg.ScreenH = h
	}

	opts := tui.Options{
		Theme:  theme,
		Logger: logger,
		Bell:   os.Stdout,
	}
	if cfg.Publish.Enabled {
		opts.Publisher = publisherFor(cfg, store)
		opts.PublishInterval = cfg.Publish.Interval
	}

	if flagResume != "" {
		rec, resumeErr := resumeRecord(store, flagResume)
		if resumeErr != nil {
			return resumeErr
		}
		g, decodeErr := lines.Decode(rec.Map)
		if decodeErr != nil {
			return fmt.Errorf("stored board for %s: %w", rec.SessionID, decodeErr)
		}
		opts.Resume = &g
		runCfg.SessionID = rec.SessionID
	}

	if err := tui.Run(runCfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// publisherFor picks the remote viewer or the local store.
func publisherFor(cfg config.Config, store *storage.Store) tui.Publisher {
	if cfg.Publish.URL != "" {
		return viewer.NewClient(cfg.Publish.URL)
	}
	if store == nil {
		return nil
	}
	return store
}

// resumeRecord finds the board to resume.
func resumeRecord(store *storage.Store, which string) (*storage.BoardRecord, error) {
	if store == nil {
		return nil, errors.New("cannot resume without the boards database")
	}
	var (
		rec *storage.BoardRecord
		err error
	)
	if which == "latest" {
		rec, err = store.LatestBoard()
	} else {
		rec, err = store.Board(which)
	}
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no published board for %q", which)
	}
	return rec, nil
}

// sessionLogger logs to the configured file; the terminal belongs to the game.
func sessionLogger(cfg config.Config) (*log.Logger, func()) {
	if cfg.Log.File == "" {
		return newLogger(cfg, io.Discard, "lines"), func() {}
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(cfg, io.Discard, "lines"), func() {}
	}
	return newLogger(cfg, f, "lines"), func() { f.Close() }
}
