// Package viewer serves published boards over HTTP: an endpoint the game
// publishes to, JSON and text read-back, and a read-only page that polls
// the latest board.
package viewer

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

// DefaultSession is used when a publisher does not name its session.
const DefaultSession = "default"

// Store is the persistence the viewer reads and writes.
type Store interface {
	Publish(ctx context.Context, sessionID, board string) error
	Board(sessionID string) (*storage.BoardRecord, error)
	LatestBoard() (*storage.BoardRecord, error)
	RecentBoards(limit int) ([]storage.BoardRecord, error)
}

// Options tune the viewer page.
type Options struct {
	PollInterval time.Duration
	Colors       []core.Color // Ball colors 1..6
	Logger       *log.Logger
}

// NewServer wires routes and returns an http.Handler.
func NewServer(store Store, opts Options) http.Handler {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := &handlers{store: store, opts: opts, tpl: loadTemplates()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/", h.index)
	r.Get("/load-map", h.loadLatest)
	r.Get("/map.txt", h.latestText)
	r.Get("/save-map", h.saveQuery)
	r.Post("/save-map", h.saveQuery)
	r.Get("/boards", h.list)
	r.Route("/boards/{session}", func(r chi.Router) {
		r.Get("/", h.board)
		r.Post("/", h.saveBody)
		r.Get("/map", h.loadSession)
	})
	return r
}
