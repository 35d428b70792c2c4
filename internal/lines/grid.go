// Package lines implements the board engine of the Lines puzzle: a 9x9 grid
// of colored balls where the player moves a ball along a free path and
// clears runs of four or more of the same color.
//
// The engine is pure and synchronous. It has no knowledge of terminals,
// sockets or storage; every cell write is reported through a CellSink and
// every cut through a CutSink so adapters can render and react.
package lines

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Size     = 9 // Board dimension (N)
	Colors   = 7 // Number of cell values (K): 0 is empty, 1..Colors-1 are balls
	AddBalls = 3 // Balls seeded after a move that cut nothing
	MinBalls = 4 // Shortest run that gets cut
)

// Decoding errors.
var (
	ErrBadLength = errors.New("lines: serialized board has wrong length")
	ErrBadCell   = errors.New("lines: serialized board has invalid cell")
)

// Grid holds cell values indexed as grid[y][x].
type Grid [Size][Size]int

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At returns the value at (x, y), or 0 for coordinates off the board.
func (g Grid) At(x, y int) int {
	if !InBounds(x, y) {
		return 0
	}
	return g[y][x]
}

// IsFull returns true if no cell is empty.
func (g Grid) IsFull() bool {
	for y := range Size {
		for x := range Size {
			if g[y][x] == 0 {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for y := range Size {
		for x := range Size {
			if g[y][x] != 0 {
				n++
			}
		}
	}
	return n
}

// Encode flattens the grid into Size*Size digits, row by row.
// Position i holds cell (i % Size, i / Size).
func (g Grid) Encode() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for y := range Size {
		for x := range Size {
			sb.WriteByte(byte('0' + g[y][x]))
		}
	}
	return sb.String()
}

// Decode parses the flat form produced by Encode.
// Carriage returns and newlines are ignored so hand-edited files load too.
func Decode(s string) (Grid, error) {
	var g Grid

	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	if len(s) != Size*Size {
		return g, fmt.Errorf("%w: got %d, want %d", ErrBadLength, len(s), Size*Size)
	}

	for i := 0; i < len(s); i++ {
		v := int(s[i]) - '0'
		if v < 0 || v >= Colors {
			return g, fmt.Errorf("%w: %q at position %d", ErrBadCell, s[i], i)
		}
		g[i/Size][i%Size] = v
	}
	return g, nil
}
