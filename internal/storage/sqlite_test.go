package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lines/internal/lines"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// boardWith returns an empty serialized board with the given cells set.
func boardWith(cells map[int]byte) string {
	b := []byte(strings.Repeat("0", lines.Size*lines.Size))
	for i, v := range cells {
		b[i] = v
	}
	return string(b)
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	board := boardWith(map[int]byte{0: '1', 40: '6', 80: '3'})

	if err := store.SaveBoard("alice", board); err != nil {
		t.Fatalf("SaveBoard() failed: %v", err)
	}

	rec, err := store.Board("alice")
	if err != nil {
		t.Fatalf("Board() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Board() returned nil for a saved session")
	}
	if rec.Map != board {
		t.Errorf("Map = %q, want %q", rec.Map, board)
	}
	if rec.Balls != 3 {
		t.Errorf("Balls = %d, want 3", rec.Balls)
	}

	missing, err := store.Board("bob")
	if err != nil {
		t.Fatalf("Board() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Board(bob) = %+v, want nil", missing)
	}
}

func TestStoreRejectsInvalidBoard(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveBoard("alice", "123")
	if !errors.Is(err, lines.ErrBadLength) {
		t.Errorf("SaveBoard() error = %v, want ErrBadLength", err)
	}

	err = store.SaveBoard("alice", boardWith(map[int]byte{5: '9'}))
	if !errors.Is(err, lines.ErrBadCell) {
		t.Errorf("SaveBoard() error = %v, want ErrBadCell", err)
	}

	if err := store.SaveBoard("", boardWith(nil)); err == nil {
		t.Error("SaveBoard() with empty session should fail")
	}
}

func TestStoreLatestBoard(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestBoard()
	if err != nil {
		t.Fatalf("LatestBoard() failed: %v", err)
	}
	if latest != nil {
		t.Fatalf("LatestBoard() on empty store = %+v, want nil", latest)
	}

	store.SaveBoard("alice", boardWith(map[int]byte{0: '1'}))
	store.SaveBoard("bob", boardWith(map[int]byte{1: '2'}))
	store.SaveBoard("alice", boardWith(map[int]byte{2: '3'}))

	latest, err = store.LatestBoard()
	if err != nil {
		t.Fatalf("LatestBoard() failed: %v", err)
	}
	if latest.SessionID != "alice" {
		t.Errorf("LatestBoard() session = %q, want alice", latest.SessionID)
	}

	recent, err := store.RecentBoards(10)
	if err != nil {
		t.Fatalf("RecentBoards() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentBoards() = %d records, want 2", len(recent))
	}
	if recent[0].SessionID != "alice" || recent[1].SessionID != "bob" {
		t.Errorf("RecentBoards() order = %s, %s; want alice, bob", recent[0].SessionID, recent[1].SessionID)
	}
}

func TestStoreUnchangedBoardSkipsHistory(t *testing.T) {
	store := openTestStore(t)
	first := boardWith(map[int]byte{0: '1'})
	second := boardWith(map[int]byte{0: '1', 9: '2'})

	for _, b := range []string{first, first, first, second, second} {
		if err := store.SaveBoard("alice", b); err != nil {
			t.Fatalf("SaveBoard() failed: %v", err)
		}
	}

	history, err := store.History("alice", 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History() = %d entries, want 2", len(history))
	}
	if history[0].Map != second || history[1].Map != first {
		t.Error("History() should list newest first")
	}
}

func TestStoreHistoryLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveBoard("alice", boardWith(map[int]byte{i: '1'}))
	}

	history, err := store.History("alice", 3)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 3 {
		t.Errorf("Expected 3 entries with limit, got %d", len(history))
	}
}

func TestStorePublishHonorsContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Publish(ctx, "alice", boardWith(nil)); err == nil {
		t.Error("Publish() with a cancelled context should fail")
	}
}

func TestStoreDeleteBoard(t *testing.T) {
	store := openTestStore(t)
	store.SaveBoard("alice", boardWith(map[int]byte{0: '1'}))

	if err := store.DeleteBoard("alice"); err != nil {
		t.Fatalf("DeleteBoard() failed: %v", err)
	}

	rec, _ := store.Board("alice")
	if rec != nil {
		t.Error("board should be gone after DeleteBoard")
	}
	history, _ := store.History("alice", 10)
	if len(history) != 0 {
		t.Errorf("history = %d entries, want 0", len(history))
	}
}

func TestStoreDeleteBoardIsAtomic(t *testing.T) {
	store := openTestStore(t)
	board := boardWith(map[int]byte{0: '1'})
	store.SaveBoard("alice", board)

	// Without the history table the second delete fails.
	if _, err := store.db.Exec("DROP TABLE board_history"); err != nil {
		t.Fatalf("drop history: %v", err)
	}
	if err := store.DeleteBoard("alice"); err == nil {
		t.Fatal("DeleteBoard() should fail without a history table")
	}

	rec, err := store.Board("alice")
	if err != nil {
		t.Fatalf("Board() failed: %v", err)
	}
	if rec == nil || rec.Map != board {
		t.Errorf("board = %+v, want it kept after a failed delete", rec)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	board := boardWith(map[int]byte{10: '4'})

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store1.SaveBoard("alice", board)
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	rec, err := store2.Board("alice")
	if err != nil || rec == nil {
		t.Fatalf("Board() after reopen = %+v, %v", rec, err)
	}
	if rec.Map != board {
		t.Errorf("Map = %q, want %q", rec.Map, board)
	}
}

func TestPublishStoresCanonicalForm(t *testing.T) {
	store := openTestStore(t)
	board := boardWith(map[int]byte{0: '4', 80: '2'})

	var rows []string
	for i := 0; i < len(board); i += lines.Size {
		rows = append(rows, board[i:i+lines.Size])
	}
	if err := store.Publish(context.Background(), "s", strings.Join(rows, "\r\n")); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	rec, err := store.Board("s")
	if err != nil || rec == nil {
		t.Fatalf("Board() = %v, %v", rec, err)
	}
	if rec.Map != board {
		t.Errorf("Map = %q, want %q", rec.Map, board)
	}
	if rec.Balls != 2 {
		t.Errorf("Balls = %d, want 2", rec.Balls)
	}
}
