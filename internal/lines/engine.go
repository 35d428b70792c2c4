package lines

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine owns the board and the pending selection.
// It is not safe for concurrent use, and sinks must not call back into it.
type Engine struct {
	grid  Grid
	cells CellSink
	cuts  CutSink
	rng   Rand

	fromX, fromY int
	selected     bool
}

// New creates an engine with an empty board.
// Nil sinks are replaced with no-ops; a nil rng is seeded from the clock.
// Call Start to seed the first balls.
func New(cells CellSink, cuts CutSink, rng Rand) *Engine {
	if cells == nil {
		cells = nopSink{}
	}
	if cuts == nil {
		cuts = nopSink{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cells: cells,
		cuts:  cuts,
		rng:   rng,
	}
}

// Start clears the board, seeds new balls and drops any selection.
func (e *Engine) Start() {
	e.clear()
	e.addRandomBalls()
	e.selected = false
}

// Load replaces the board with g and drops any selection.
// Every cell is written through the mutation primitive.
func (e *Engine) Load(g Grid) {
	for y := range Size {
		for x := range Size {
			e.set(x, y, g[y][x])
		}
	}
	e.selected = false
}

// Get returns the value at (x, y); off-board reads are empty.
func (e *Engine) Get(x, y int) int {
	return e.grid.At(x, y)
}

// Cells returns a copy of the board.
func (e *Engine) Cells() Grid {
	return e.grid
}

// IsFull reports whether every cell holds a ball.
func (e *Engine) IsFull() bool {
	return e.grid.IsFull()
}

// Selection returns the pending origin, if a ball is selected.
func (e *Engine) Selection() (x, y int, ok bool) {
	return e.fromX, e.fromY, e.selected
}

// Serialize returns the board in its flat row-major form.
func (e *Engine) Serialize() string {
	return e.grid.Encode()
}

// Activate handles the player interacting with cell (x, y).
//
// A full board restarts the game whatever the coordinates. Otherwise an
// occupied cell becomes the selection, and an empty cell is the destination
// for the selected ball if a free path leads there. Anything else is a no-op.
func (e *Engine) Activate(x, y int) {
	if e.IsFull() {
		e.Start()
		return
	}
	if !InBounds(x, y) {
		return
	}

	if e.grid[y][x] > 0 {
		e.takeBall(x, y)
	} else {
		e.moveBall(x, y)
	}
}

func (e *Engine) takeBall(x, y int) {
	e.fromX = x
	e.fromY = y
	e.selected = true
}

// moveBall moves the selected ball to (x, y).
// An unreachable destination keeps the selection so the player can retry.
func (e *Engine) moveBall(x, y int) {
	if !e.selected {
		return
	}
	if !e.canMove(x, y) {
		return
	}

	e.set(x, y, e.grid[e.fromY][e.fromX])
	e.set(e.fromX, e.fromY, 0)
	e.selected = false

	if !e.cutLines() {
		e.addRandomBalls()
		e.cutLines()
	}
}

// set is the only write path to the board.
func (e *Engine) set(x, y, value int) {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("lines: write outside the board at (%d,%d)", x, y))
	}
	if value < 0 || value >= Colors {
		panic(fmt.Sprintf("lines: invalid cell value %d at (%d,%d)", value, x, y))
	}
	e.grid[y][x] = value
	e.cells.CellChanged(x, y, value)
}

func (e *Engine) clear() {
	for y := range Size {
		for x := range Size {
			e.set(x, y, 0)
		}
	}
}
