package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var flagRaw bool

var boardCmd = &cobra.Command{
	Use:   "board [session]",
	Short: "Print a published board",
	Long: `Print the most recently published board, or the board of the given
session, as a 9x9 grid of color digits (0 = empty).

Examples:
  lines board
  lines board 3f1c2a9e-...
  lines board --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print the 81-digit serialized form")
}

func runBoard(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var rec *storage.BoardRecord
	if len(args) == 1 {
		rec, err = store.Board(args[0])
	} else {
		rec, err = store.LatestBoard()
	}
	if err != nil {
		return fmt.Errorf("retrieving board: %w", err)
	}
	if rec == nil {
		fmt.Println("No boards published yet.")
		fmt.Println()
		fmt.Println("Play 'lines play' to publish one!")
		return nil
	}

	if flagRaw {
		fmt.Println(rec.Map)
		return nil
	}

	g, err := lines.Decode(rec.Map)
	if err != nil {
		return fmt.Errorf("stored board is corrupt: %w", err)
	}

	fmt.Printf("Session %s - %s\n", rec.SessionID, rec.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()
	fmt.Print(formatGrid(&g))
	fmt.Println()
	fmt.Printf("Balls: %d/%d\n", g.Count(), lines.Size*lines.Size)
	return nil
}

// formatGrid renders a board as rows of digits with dots for empty cells.
func formatGrid(g *lines.Grid) string {
	var sb strings.Builder
	for y := range lines.Size {
		sb.WriteString("  ")
		for x := range lines.Size {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if v := g.At(x, y); v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
