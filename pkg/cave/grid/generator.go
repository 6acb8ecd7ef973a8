package grid

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrInvalidDimensions  = errors.New("width and height must be positive")
	ErrInvalidFillPercent = errors.New("fill percent must be within [0,100]")
	ErrInvalidBorder      = errors.New("border size must not be negative")
)

// SmoothingPasses is the number of cellular automaton iterations applied to
// the random fill.
const SmoothingPasses = 5

// pcgStream is the fixed PCG increment; only the seed varies per generation.
const pcgStream = 0x9e3779b97f4a7c15

// Params describes one grid generation.
type Params struct {
	Width       int
	Height      int
	FillPercent int // chance in percent that an interior cell starts open
	Seed        Seed
	BorderSize  int
}

// Validate checks p without generating anything.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.FillPercent < 0 || p.FillPercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidFillPercent, p.FillPercent)
	}
	if p.BorderSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBorder, p.BorderSize)
	}
	return nil
}

// Result holds the smoothed grid, its bordered embedding and the seed that
// produced them.
type Result struct {
	Raw      *Grid
	Bordered *Grid
	Seed     int64
}

// Generate runs the cellular automaton described by p.
func Generate(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	seed := p.Seed.Resolve()
	rng := rand.New(rand.NewPCG(uint64(seed), pcgStream))

	raw := randomFill(p.Width, p.Height, p.FillPercent, rng)
	for range SmoothingPasses {
		raw = Smooth(raw)
	}

	return &Result{
		Raw:      raw,
		Bordered: AddBorder(raw, p.BorderSize),
		Seed:     seed,
	}, nil
}

// randomFill forces the outer ring to wall and opens each interior cell
// with fillPercent chance.
func randomFill(width, height, fillPercent int, rng *rand.Rand) *Grid {
	g := New(width, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				g.Cells[x][y] = true
				continue
			}
			chance := rng.IntN(100) + 1
			g.Cells[x][y] = chance > fillPercent
		}
	}
	return g
}

// Smooth applies one automaton pass and returns a new grid; g is not
// modified. A cell with more than four wall neighbours becomes a wall,
// fewer than four becomes open, exactly four keeps its state.
func Smooth(g *Grid) *Grid {
	next := New(g.Width(), g.Height())
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			switch n := g.WallNeighbours(x, y); {
			case n > 4:
				next.Cells[x][y] = true
			case n < 4:
				next.Cells[x][y] = false
			default:
				next.Cells[x][y] = g.Cells[x][y]
			}
		}
	}
	return next
}

// WallNeighbours counts walls in the 8-neighbourhood of (x, y), treating
// cells outside the grid as walls.
func (g *Grid) WallNeighbours(x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			if g.IsWall(nx, ny) {
				count++
			}
		}
	}
	return count
}

// AddBorder embeds g in a larger grid whose outer size rings are walls.
func AddBorder(g *Grid, size int) *Grid {
	b := New(g.Width()+2*size, g.Height()+2*size)
	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			ix, iy := x-size, y-size
			if g.InBounds(ix, iy) {
				b.Cells[x][y] = g.Cells[ix][iy]
			} else {
				b.Cells[x][y] = true
			}
		}
	}
	return b
}
