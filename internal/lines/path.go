package lines

// neighbors are the four axis-aligned steps a ball can take.
var neighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// canMove reports whether (toX, toY) is reachable from the selected ball
// through empty cells. The origin is occupied but still seeds the search.
func (e *Engine) canMove(toX, toY int) bool {
	var visited [Size][Size]bool

	stack := make([][2]int, 0, Size*Size)
	stack = append(stack, [2]int{e.fromX, e.fromY})
	visited[e.fromY][e.fromX] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighbors {
			x, y := cur[0]+d[0], cur[1]+d[1]
			if !InBounds(x, y) || e.grid[y][x] > 0 || visited[y][x] {
				continue
			}
			visited[y][x] = true
			stack = append(stack, [2]int{x, y})
		}
	}

	return InBounds(toX, toY) && visited[toY][toX]
}
