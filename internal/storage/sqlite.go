// Package storage provides SQLite-based persistence for published boards.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-lines/internal/lines"
)

// Store manages the SQLite database connection for board persistence.
type Store struct {
	db *sql.DB
}

// BoardRecord is the last published board of one session.
type BoardRecord struct {
	SessionID string
	Map       string // Serialized board, lines.Size*lines.Size digits
	Balls     int    // Occupied cells
	UpdatedAt time.Time
}

// HistoryEntry is one distinct board a session has published.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Map       string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions publish concurrently; one connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS boards (
			session_id TEXT PRIMARY KEY,
			map TEXT NOT NULL,
			balls INTEGER NOT NULL DEFAULT 0,
			seq INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_boards_seq ON boards(seq DESC);

		CREATE TABLE IF NOT EXISTS board_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			map TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_board_history_session ON board_history(session_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBoard stores the serialized board for a session.
// Republishing an unchanged board is a no-op.
func (s *Store) SaveBoard(sessionID, board string) error {
	return s.Publish(context.Background(), sessionID, board)
}

// Publish stores the board in canonical form and appends it to the
// session history.
func (s *Store) Publish(ctx context.Context, sessionID, board string) error {
	if sessionID == "" {
		return errors.New("storage: empty session id")
	}
	g, err := lines.Decode(board)
	if err != nil {
		return fmt.Errorf("storage: invalid board: %w", err)
	}
	board = g.Encode()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	var current string
	err = tx.QueryRowContext(ctx, "SELECT map FROM boards WHERE session_id = ?", sessionID).Scan(&current)
	switch {
	case err == nil && current == board:
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("storage: cannot query board: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO boards (session_id, map, balls, seq, updated_at)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM boards), CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id) DO UPDATE SET
		   map = excluded.map,
		   balls = excluded.balls,
		   seq = excluded.seq,
		   updated_at = excluded.updated_at`,
		sessionID, board, g.Count(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO board_history (session_id, map) VALUES (?, ?)",
		sessionID, board,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit board: %w", err)
	}
	return nil
}

// Board returns the board of a session, or nil if none was published.
func (s *Store) Board(sessionID string) (*BoardRecord, error) {
	row := s.db.QueryRow(
		`SELECT session_id, map, balls, updated_at
		 FROM boards
		 WHERE session_id = ?`,
		sessionID,
	)
	return scanBoard(row)
}

// LatestBoard returns the most recently changed board of any session,
// or nil if the store is empty.
func (s *Store) LatestBoard() (*BoardRecord, error) {
	row := s.db.QueryRow(
		`SELECT session_id, map, balls, updated_at
		 FROM boards
		 ORDER BY seq DESC
		 LIMIT 1`,
	)
	return scanBoard(row)
}

// RecentBoards returns up to limit boards, most recently changed first.
func (s *Store) RecentBoards(limit int) ([]BoardRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT session_id, map, balls, updated_at
		 FROM boards
		 ORDER BY seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var records []BoardRecord
	for rows.Next() {
		var r BoardRecord
		var updatedAt any
		if err := rows.Scan(&r.SessionID, &r.Map, &r.Balls, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.UpdatedAt = parseTime(updatedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// History returns up to limit boards a session published, newest first.
func (s *Store) History(sessionID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, map, created_at
		 FROM board_history
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Map, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteBoard removes a session's board and its history.
func (s *Store) DeleteBoard(sessionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM boards WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("storage: cannot delete board: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM board_history WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("storage: cannot delete history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func scanBoard(row *sql.Row) (*BoardRecord, error) {
	var r BoardRecord
	var updatedAt any

	err := row.Scan(&r.SessionID, &r.Map, &r.Balls, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query board: %w", err)
	}

	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
