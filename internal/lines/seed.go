package lines

// addRandomBalls drops AddBalls new balls on empty cells.
func (e *Engine) addRandomBalls() {
	for range AddBalls {
		e.addRandomBall()
	}
}

// addRandomBall probes random cells until it hits an empty one and puts a
// ball of random color there. It gives up silently after Size*Size misses,
// so a nearly full board gets fewer balls instead of hanging.
func (e *Engine) addRandomBall() {
	for probes := Size * Size; probes > 0; probes-- {
		x := e.rng.Intn(Size)
		y := e.rng.Intn(Size)
		if e.grid[y][x] != 0 {
			continue
		}
		e.set(x, y, 1+e.rng.Intn(Colors-1))
		return
	}
}
