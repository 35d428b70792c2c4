package tui

import (
	"github.com/vovakirdan/tui-lines/internal/core"
	"github.com/vovakirdan/tui-lines/internal/lines"
)

// Board layout constants
const (
	cellW      = 3 // Columns per board cell
	boardTop   = 2 // Rows above the board frame
	boardOuter = lines.Size*cellW + 2
)

// boardRect returns the framed board rectangle centered in a w-column screen.
func boardRect(w int) core.Rect {
	x := (w - boardOuter) / 2
	if x < 0 {
		x = 0
	}
	return core.NewRect(x, boardTop, boardOuter, lines.Size+2)
}

// cellOrigin returns the screen column and row of the left edge of cell (x, y).
func cellOrigin(frame core.Rect, x, y int) (int, int) {
	inner := frame.Inset(1)
	return inner.X + x*cellW, inner.Y + y
}

// hitTest maps a screen position to a board cell.
// Positions on the frame or outside it are rejected.
func hitTest(frame core.Rect, sx, sy int) (x, y int, ok bool) {
	inner := frame.Inset(1)
	if !inner.Contains(sx, sy) {
		return 0, 0, false
	}
	x = (sx - inner.X) / cellW
	y = sy - inner.Y
	if !lines.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}
