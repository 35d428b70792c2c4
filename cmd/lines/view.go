package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/viewer"
)

var flagViewAddr string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Serve published boards over HTTP",
	Long: `Start the board viewer.

Routes:
  GET  /                      - Page that follows the latest board
  GET  /load-map              - Latest board as JSON, indexed [x][y]
  GET  /map.txt               - Latest board as 81 digits
  GET|POST /save-map?map=...  - Publish a board (optional &session=)
  GET  /boards                - Recently published sessions
  GET  /boards/{session}      - One session's board
  POST /boards/{session}      - Publish a board as the request body
  GET  /boards/{session}/map  - One session's board, indexed [x][y]

Examples:
  lines view
  lines view --addr :9090
  lines play --publish-url http://localhost:8080`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&flagViewAddr, "addr", "", "HTTP listen address (default from config)")
}

func runView(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	colors, err := cfg.Theme.BallColors()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr, "lines-view")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	addr := cfg.Viewer.Address
	if flagViewAddr != "" {
		addr = flagViewAddr
	}

	srv := &http.Server{
		Addr: addr,
		Handler: viewer.NewServer(store, viewer.Options{
			PollInterval: cfg.Viewer.PollInterval,
			Colors:       colors,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting viewer", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down viewer: %w", err)
	}
	return nil
}
