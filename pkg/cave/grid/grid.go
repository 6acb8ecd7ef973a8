package grid

import "strings"

// Grid is a column-major occupancy grid. Cells[x][y] is true for a wall.
type Grid struct {
	Cells [][]bool
}

// New allocates an all-open grid of the given size.
func New(width, height int) *Grid {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
	}
	return &Grid{Cells: cells}
}

// FromRows builds a grid from text rows, top row first.
// '#' marks a wall, any other byte an open cell. Rows shorter than the
// longest row are padded with walls.
func FromRows(rows ...string) *Grid {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	g := New(width, len(rows))
	for i, r := range rows {
		y := len(rows) - 1 - i
		for x := 0; x < width; x++ {
			g.Cells[x][y] = x >= len(r) || r[x] == '#'
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return len(g.Cells) }

// Height returns the number of rows.
func (g *Grid) Height() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width() && y >= 0 && y < g.Height()
}

// IsWall reports whether (x, y) is a wall. Cells outside the grid are walls.
func (g *Grid) IsWall(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.Cells[x][y]
}

// Set marks (x, y) as wall or open.
func (g *Grid) Set(x, y int, wall bool) {
	g.Cells[x][y] = wall
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := New(g.Width(), g.Height())
	for x := range g.Cells {
		copy(c.Cells[x], g.Cells[x])
	}
	return c
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width() != o.Width() || g.Height() != o.Height() {
		return false
	}
	for x := range g.Cells {
		for y := range g.Cells[x] {
			if g.Cells[x][y] != o.Cells[x][y] {
				return false
			}
		}
	}
	return true
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	n := 0
	for x := range g.Cells {
		for _, wall := range g.Cells[x] {
			if wall {
				n++
			}
		}
	}
	return n
}

// OpenRatio returns the fraction of open cells, 0 for an empty grid.
func (g *Grid) OpenRatio() float64 {
	total := g.Width() * g.Height()
	if total == 0 {
		return 0
	}
	return float64(total-g.WallCount()) / float64(total)
}

// String renders the grid with '#' for walls and '.' for open cells,
// top row first.
func (g *Grid) String() string {
	var b strings.Builder
	for y := g.Height() - 1; y >= 0; y-- {
		for x := 0; x < g.Width(); x++ {
			if g.Cells[x][y] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
