package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lines SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own board and session id. Every board is
published into the server's database, so "lines view" and "lines boards"
can follow all sessions.

Host key handling:
  - If --host-key (or ssh.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.lines/host_key

Examples:
  lines serve                           # Listen on :23235 with auto-generated key
  lines serve --ssh :2222               # Listen on port 2222
  lines serve --host-key ./my_host_key  # Use specific host key
  lines serve --db ./boards.db          # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme, err := themeFrom(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr, "lines-ssh")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = cfg.SSH.Address
	srvCfg.HostKeyPath = cfg.SSH.HostKey
	srvCfg.IdleTimeout = cfg.SSH.IdleTimeout
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = flagIdleTimeout
	}
	srvCfg.Board = tui.Options{
		Theme:           theme,
		Publisher:       store,
		PublishInterval: cfg.Publish.Interval,
	}
	if !cfg.Publish.Enabled {
		srvCfg.Board.Publisher = nil
	}

	server, err := tui.NewSSHServer(srvCfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Lines SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
