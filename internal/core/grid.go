package core

// gridOffset is a single (dx, dy) neighbor direction on an integer grid.
type gridOffset struct{ dx, dy int }

// offsetsForConnectedness returns the neighbor directions for a given
// connectedness level, matching the benchmark convention used by the
// continuous-time CBS literature this module is based on: each level adds
// a further ring of directions around the 4-connected base.
//
//   - 2: orthogonal moves only (N, E, S, W)
//   - 3: adds the four diagonals (8-connected)
//   - 4: adds the eight "long diagonal" knight-like offsets (16-connected)
//   - 5: adds the four double-diagonal offsets (20 directions in all)
func offsetsForConnectedness(k int) ([]gridOffset, error) {
	base := []gridOffset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	if k < 2 || k > 5 {
		return nil, ErrInvalidConnectedness
	}
	if k >= 3 {
		base = append(base, gridOffset{1, 1}, gridOffset{1, -1}, gridOffset{-1, 1}, gridOffset{-1, -1})
	}
	if k >= 4 {
		base = append(base,
			gridOffset{2, 1}, gridOffset{2, -1}, gridOffset{-2, 1}, gridOffset{-2, -1},
			gridOffset{1, 2}, gridOffset{1, -2}, gridOffset{-1, 2}, gridOffset{-1, -2})
	}
	if k >= 5 {
		base = append(base, gridOffset{2, 2}, gridOffset{2, -2}, gridOffset{-2, 2}, gridOffset{-2, -2})
	}
	return base, nil
}

// NewGridMap builds a Map over a width x height grid, skipping cells marked
// blocked, and connecting each free cell to the free cells reachable via the
// neighbor directions for the given connectedness. A candidate neighbor is
// only linked if the straight line between the two cells does not pass
// through a blocked cell (line-of-sight), so long diagonal/knight offsets
// never "cut a corner" through an obstacle.
func NewGridMap(width, height int, blocked map[[2]int]bool, connectedness int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidMap
	}
	offsets, err := offsetsForConnectedness(connectedness)
	if err != nil {
		return nil, err
	}

	b := NewMapBuilder()
	idOf := func(x, y int) NodeID { return NodeID(y*width + x) }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if blocked[[2]int{x, y}] {
				continue
			}
			if err := b.AddNode(idOf(x, y), float64(x), float64(y)); err != nil {
				return nil, err
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if blocked[[2]int{x, y}] {
				continue
			}
			for _, off := range offsets {
				nx, ny := x+off.dx, y+off.dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if blocked[[2]int{nx, ny}] {
					continue
				}
				if !lineOfSight(x, y, nx, ny, width, height, blocked) {
					continue
				}
				if err := b.AddEdge(idOf(x, y), idOf(nx, ny)); err != nil {
					return nil, err
				}
			}
		}
	}

	return b.Build()
}

// lineOfSight reports whether every grid cell the integer segment from
// (x0,y0) to (x1,y1) passes near is unblocked, using a symmetric
// Bresenham walk so long offsets cannot skip over an obstacle corner.
func lineOfSight(x0, y0, x1, y1, width, height int, blocked map[[2]int]bool) bool {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := sign(x1 - x0)
	sy := sign(y1 - y0)
	x, y := x0, y0
	err := dx - dy

	for {
		if (x != x0 || y != y0) && (x != x1 || y != y1) {
			if blocked[[2]int{x, y}] {
				return false
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
