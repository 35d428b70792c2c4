package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/lines"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <session>",
	Short: "List the boards a session published",
	Long: `Display the most recent distinct boards the session published,
newest first.

Examples:
  lines history 3f1c2a9e-...
  lines history default --limit 50`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of boards to show")
}

func runHistory(_ *cobra.Command, args []string) error {
	sessionID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.History(sessionID, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}

	fmt.Printf("History - %s\n", sessionID)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No boards published for this session.")
		return nil
	}

	fmt.Printf("  %-6s  %-5s  %-19s  %s\n", "ID", "Balls", "Date", "Map")
	fmt.Printf("  %-6s  %-5s  %-19s  %s\n", "--", "-----", "----", "---")

	for _, e := range entries {
		balls := "?"
		if g, decodeErr := lines.Decode(e.Map); decodeErr == nil {
			balls = fmt.Sprintf("%d", g.Count())
		}
		fmt.Printf("  %-6d  %-5s  %-19s  %s\n", e.ID, balls, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Map)
	}
	return nil
}
