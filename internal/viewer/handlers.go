package viewer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-lines/internal/lines"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

type handlers struct {
	store Store
	opts  Options
	tpl   *templates
}

// boardJSON is the wire form of a stored board.
type boardJSON struct {
	Session   string                      `json:"session"`
	Map       string                      `json:"map"`
	Balls     int                         `json:"balls"`
	UpdatedAt time.Time                   `json:"updated_at"`
	Cells     [lines.Size][lines.Size]int `json:"cells"`
}

// columns converts a board to the [x][y] layout the page script indexes.
func columns(s string) ([lines.Size][lines.Size]int, error) {
	var out [lines.Size][lines.Size]int
	g, err := lines.Decode(s)
	if err != nil {
		return out, err
	}
	for y := range lines.Size {
		for x := range lines.Size {
			out[x][y] = g[y][x]
		}
	}
	return out, nil
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.tpl.renderIndex(h.opts))
}

func (h *handlers) loadLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.LatestBoard()
	h.writeColumns(w, rec, err)
}

func (h *handlers) loadSession(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Board(chi.URLParam(r, "session"))
	h.writeColumns(w, rec, err)
}

func (h *handlers) writeColumns(w http.ResponseWriter, rec *storage.BoardRecord, err error) {
	if err != nil {
		h.opts.Logger.Error("cannot load board", "error", err)
		http.Error(w, "failed to load board", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "no board published", http.StatusNotFound)
		return
	}
	cells, err := columns(rec.Map)
	if err != nil {
		http.Error(w, "stored board is corrupt", http.StatusInternalServerError)
		return
	}
	writeJSON(w, cells)
}

func (h *handlers) latestText(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.LatestBoard()
	if err != nil {
		http.Error(w, "failed to load board", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "no board published", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, rec.Map)
}

func (h *handlers) board(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Board(chi.URLParam(r, "session"))
	if err != nil {
		http.Error(w, "failed to load board", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.NotFound(w, r)
		return
	}
	out, err := toJSON(*rec)
	if err != nil {
		http.Error(w, "stored board is corrupt", http.StatusInternalServerError)
		return
	}
	writeJSON(w, out)
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.RecentBoards(20)
	if err != nil {
		http.Error(w, "failed to list boards", http.StatusInternalServerError)
		return
	}
	out := make([]boardJSON, 0, len(recs))
	for _, rec := range recs {
		b, err := toJSON(rec)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	writeJSON(w, out)
}

// saveQuery accepts ?map=<digits>&session=<id>, the form the game publishes.
func (h *handlers) saveQuery(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" {
		session = DefaultSession
	}
	h.save(w, r, session, r.URL.Query().Get("map"))
}

func (h *handlers) saveBody(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}
	h.save(w, r, chi.URLParam(r, "session"), strings.TrimSpace(string(body)))
}

func (h *handlers) save(w http.ResponseWriter, r *http.Request, session, board string) {
	g, err := lines.Decode(board)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Publish(r.Context(), session, g.Encode()); err != nil {
		h.opts.Logger.Error("cannot save board", "session", session, "error", err)
		http.Error(w, "failed to save board", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.opts.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func toJSON(rec storage.BoardRecord) (boardJSON, error) {
	cells, err := columns(rec.Map)
	if err != nil {
		return boardJSON{}, errors.Join(errors.New("viewer: corrupt board"), err)
	}
	return boardJSON{
		Session:   rec.SessionID,
		Map:       rec.Map,
		Balls:     rec.Balls,
		UpdatedAt: rec.UpdatedAt,
		Cells:     cells,
	}, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
