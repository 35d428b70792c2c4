package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Publisher receives the serialized board. storage.Store and viewer.Client
// both satisfy it.
type Publisher interface {
	Publish(ctx context.Context, sessionID, board string) error
}

// publishedMsg reports the outcome of one publish.
type publishedMsg struct {
	board string
	err   error
}

const publishTimeout = 3 * time.Second

// publishCmd forwards board off the update loop.
func publishCmd(p Publisher, sessionID, board string) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		return publishedMsg{board: board, err: p.Publish(ctx, sessionID, board)}
	}
}
