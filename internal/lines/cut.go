package lines

// directions scanned for runs: horizontal, vertical and both diagonals.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}

// cutLines clears every run of MinBalls or more same-colored balls.
// The cut sink fires once for the whole pass, before the cells are cleared.
// Returns true if anything was cut.
func (e *Engine) cutLines() bool {
	var marks [Size][Size]bool
	found := false

	for y := range Size {
		for x := range Size {
			for _, d := range directions {
				if e.markLine(&marks, x, y, d[0], d[1]) {
					found = true
				}
			}
		}
	}

	if !found {
		return false
	}

	e.cuts.LinesCut()

	for y := range Size {
		for x := range Size {
			if marks[y][x] {
				e.set(x, y, 0)
			}
		}
	}
	return true
}

// markLine counts the run starting at (x0, y0) along (vx, vy) and marks it
// when it is long enough. Runs are marked again from every start cell they
// contain; marking is idempotent so only the scan cost grows.
func (e *Engine) markLine(marks *[Size][Size]bool, x0, y0, vx, vy int) bool {
	ball := e.grid[y0][x0]
	if ball == 0 {
		return false
	}

	count := 0
	for x, y := x0, y0; e.grid.At(x, y) == ball; x, y = x+vx, y+vy {
		count++
	}
	if count < MinBalls {
		return false
	}

	for x, y := x0, y0; e.grid.At(x, y) == ball; x, y = x+vx, y+vy {
		marks[y][x] = true
	}
	return true
}
