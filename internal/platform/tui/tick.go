// Package tui hosts a Lines board in a Bubble Tea program: it draws the
// board, turns keys and clicks into engine activations and forwards the
// serialized board to a publisher. Local play and SSH sessions share it.
package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PublishTickMsg triggers a periodic publish of the board.
type PublishTickMsg time.Time

// flashDoneMsg clears the status flash started by a line cut.
type flashDoneMsg struct{ gen int }

// publishTickCmd returns a command that sends a PublishTickMsg after interval.
func publishTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PublishTickMsg(t)
	})
}

func flashCmd(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashDoneMsg{gen: gen}
	})
}

// bellCmd rings the terminal bell on w outside of Update. Nil w is silent.
func bellCmd(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = w.Write([]byte{'\a'})
		return nil
	}
}
