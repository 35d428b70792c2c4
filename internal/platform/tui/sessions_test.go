package tui

import (
	"sync"
	"testing"
	"time"
)

func TestSessionRegistry(t *testing.T) {
	r := newSessionRegistry()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if n := r.register(ActiveSession{ID: "b", User: "bob", Started: start.Add(time.Minute)}); n != 1 {
		t.Errorf("register() = %d, want 1", n)
	}
	if n := r.register(ActiveSession{ID: "a", User: "ann", Started: start}); n != 2 {
		t.Errorf("register() = %d, want 2", n)
	}

	list := r.list()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("list() = %+v, want a then b", list)
	}

	if n := r.unregister("a"); n != 1 {
		t.Errorf("unregister() = %d, want 1", n)
	}
	if n := r.unregister("missing"); n != 1 {
		t.Errorf("unregister(missing) = %d, want 1", n)
	}
}

func TestSessionRegistryConcurrent(t *testing.T) {
	r := newSessionRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('A' + i))
			r.register(ActiveSession{ID: id, Started: time.Now()})
			r.list()
			r.unregister(id)
		}(i)
	}
	wg.Wait()

	if n := len(r.list()); n != 0 {
		t.Errorf("sessions left = %d, want 0", n)
	}
}
