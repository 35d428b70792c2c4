package lines

import "testing"

// scriptedRand replays a fixed list of values, wrapping around at the end.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v % n
}

// failRand fails the test if the engine draws a random number.
type failRand struct{ t *testing.T }

func (r failRand) Intn(int) int {
	r.t.Helper()
	r.t.Fatal("unexpected random draw")
	return 0
}

type cellWrite struct{ X, Y, Value int }

// recorder captures sink notifications.
type recorder struct {
	writes []cellWrite
	cuts   int
	cutAt  int // len(writes) when the last cut fired
}

func (r *recorder) CellChanged(x, y, value int) {
	r.writes = append(r.writes, cellWrite{x, y, value})
}

func (r *recorder) LinesCut() {
	r.cuts++
	r.cutAt = len(r.writes)
}

func (r *recorder) reset() {
	r.writes = nil
	r.cuts = 0
	r.cutAt = 0
}

// newTestEngine loads g into a fresh engine and clears the recorder.
func newTestEngine(g Grid, rng Rand) (*Engine, *recorder) {
	rec := &recorder{}
	e := New(rec, rec, rng)
	e.Load(g)
	rec.reset()
	return e, rec
}

// noLineGrid returns a full board with no two equal neighbors in any direction.
func noLineGrid() Grid {
	var g Grid
	for y := range Size {
		for x := range Size {
			g[y][x] = 1 + (x+2*y)%(Colors-1)
		}
	}
	return g
}
