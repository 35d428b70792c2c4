package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

type fakeBoardStore struct {
	boards  []storage.BoardRecord
	history map[string][]storage.HistoryEntry
	deleted []string
}

func (s *fakeBoardStore) RecentBoards(limit int) ([]storage.BoardRecord, error) {
	if len(s.boards) > limit {
		return s.boards[:limit], nil
	}
	return s.boards, nil
}

func (s *fakeBoardStore) History(sessionID string, limit int) ([]storage.HistoryEntry, error) {
	return s.history[sessionID], nil
}

func (s *fakeBoardStore) DeleteBoard(sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	kept := s.boards[:0]
	for _, b := range s.boards {
		if b.SessionID != sessionID {
			kept = append(kept, b)
		}
	}
	s.boards = kept
	delete(s.history, sessionID)
	return nil
}

func boardOf(balls int) string {
	var g lines.Grid
	for i := range balls {
		g[i/lines.Size][i%lines.Size] = 1 + i%6
	}
	return g.Encode()
}

func newFakeBoardStore() *fakeBoardStore {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeBoardStore{
		boards: []storage.BoardRecord{
			{SessionID: "aaaaaaaa-1111", Map: boardOf(5), Balls: 5, UpdatedAt: now},
			{SessionID: "bbbbbbbb-2222", Map: boardOf(3), Balls: 3, UpdatedAt: now.Add(-time.Hour)},
		},
		history: map[string][]storage.HistoryEntry{
			"aaaaaaaa-1111": {
				{ID: 3, SessionID: "aaaaaaaa-1111", Map: boardOf(5), CreatedAt: now},
				{ID: 1, SessionID: "aaaaaaaa-1111", Map: boardOf(3), CreatedAt: now.Add(-time.Minute)},
			},
			"bbbbbbbb-2222": {
				{ID: 2, SessionID: "bbbbbbbb-2222", Map: boardOf(3), CreatedAt: now.Add(-time.Hour)},
			},
		},
	}
}

func boardsStep(t *testing.T, m BoardsModel, msg tea.Msg) BoardsModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(BoardsModel)
	if !ok {
		t.Fatalf("Update returned %T, want BoardsModel", next)
	}
	return bm
}

func TestBoardsModelLoadsHistory(t *testing.T) {
	m := NewBoardsModel(newFakeBoardStore(), DefaultTheme(), 100, 30)

	if len(m.table.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.table.Rows()))
	}
	if got := m.table.Rows()[0][1]; got != "5" {
		t.Errorf("first row balls = %q, want 5", got)
	}

	view := m.View()
	for _, want := range []string{"PUBLISHED BOARDS - aaaaaaaa", "Sessions", "bbbbbbbb", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBoardsModelSwitchSession(t *testing.T) {
	m := NewBoardsModel(newFakeBoardStore(), DefaultTheme(), 100, 30)

	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 || len(m.table.Rows()) != 1 {
		t.Errorf("after tab cursor=%d rows=%d, want 1 and 1", m.cursor, len(m.table.Rows()))
	}
	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 0 {
		t.Errorf("tab should wrap, cursor = %d", m.cursor)
	}
	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.cursor != 1 {
		t.Errorf("shift+tab should wrap back, cursor = %d", m.cursor)
	}
}

func TestBoardsModelResume(t *testing.T) {
	m := NewBoardsModel(newFakeBoardStore(), DefaultTheme(), 100, 30)

	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	session, board, ok := m.Chosen()
	if !ok {
		t.Fatal("enter did not pick a board")
	}
	if session != "aaaaaaaa-1111" || board != boardOf(3) {
		t.Errorf("Chosen() = %q %q, want older board of first session", session, board)
	}
}

func TestBoardsModelDelete(t *testing.T) {
	store := newFakeBoardStore()
	m := NewBoardsModel(store, DefaultTheme(), 100, 30)

	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(store.deleted) != 1 || store.deleted[0] != "aaaaaaaa-1111" {
		t.Fatalf("deleted = %v", store.deleted)
	}
	if len(m.sessions) != 1 || m.sessions[0].SessionID != "bbbbbbbb-2222" {
		t.Errorf("sessions after delete = %+v", m.sessions)
	}
}

func TestBoardsModelEmpty(t *testing.T) {
	m := NewBoardsModel(&fakeBoardStore{}, DefaultTheme(), 60, 24)

	if !strings.Contains(m.View(), "No boards published yet") {
		t.Error("empty store should show a placeholder")
	}
	m = boardsStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, _, ok := m.Chosen(); ok {
		t.Error("enter on an empty store picked a board")
	}
}
