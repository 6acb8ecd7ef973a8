package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave/grid"
)

// Square is one marching-squares cell spanned by four control nodes.
type Square struct {
	TopLeft, TopRight, BottomRight, BottomLeft       *ControlNode
	CentreTop, CentreRight, CentreBottom, CentreLeft *Node
	Configuration                                    int
}

// NewSquare builds a square from its corners, taking the edge midpoints
// from the corners that own them.
func NewSquare(topLeft, topRight, bottomRight, bottomLeft *ControlNode) *Square {
	s := &Square{
		TopLeft:      topLeft,
		TopRight:     topRight,
		BottomRight:  bottomRight,
		BottomLeft:   bottomLeft,
		CentreTop:    topLeft.Right,
		CentreRight:  bottomRight.Above,
		CentreBottom: bottomLeft.Right,
		CentreLeft:   bottomLeft.Above,
	}
	s.Configuration = Configuration(topLeft.Active, topRight.Active, bottomRight.Active, bottomLeft.Active)
	return s
}

// Configuration packs the corner states as TL·8 + TR·4 + BR·2 + BL·1.
func Configuration(topLeft, topRight, bottomRight, bottomLeft bool) int {
	c := 0
	if topLeft {
		c += 8
	}
	if topRight {
		c += 4
	}
	if bottomRight {
		c += 2
	}
	if bottomLeft {
		c += 1
	}
	return c
}

// Node resolves a symbolic point to the square's node.
func (s *Square) Node(p Point) *Node {
	switch p {
	case TopLeft:
		return &s.TopLeft.Node
	case TopRight:
		return &s.TopRight.Node
	case BottomRight:
		return &s.BottomRight.Node
	case BottomLeft:
		return &s.BottomLeft.Node
	case CentreTop:
		return s.CentreTop
	case CentreRight:
		return s.CentreRight
	case CentreBottom:
		return s.CentreBottom
	case CentreLeft:
		return s.CentreLeft
	}
	return nil
}

// nodes returns all eight nodes of the square.
func (s *Square) nodes() [8]*Node {
	var out [8]*Node
	for p := TopLeft; p <= CentreLeft; p++ {
		out[p] = s.Node(p)
	}
	return out
}

// Options tune how a grid is turned into squares.
type Options struct {
	// IsolatedSquares gives every square its own copy of its corner and
	// midpoint nodes, so neighbouring squares never share floor vertices.
	// By default lattice nodes are shared and welded into single vertices.
	IsolatedSquares bool
}

// SquareGrid holds the squares of a grid, indexed [x][y].
type SquareGrid struct {
	Squares [][]*Square
}

// NewSquareGrid places one control node per cell, centred on the origin in
// the XZ plane, and one square per 2×2 block of control nodes.
func NewSquareGrid(g *grid.Grid, squareSize float64, opts Options) *SquareGrid {
	nodeCountX, nodeCountY := g.Width(), g.Height()
	if nodeCountX < 2 || nodeCountY < 2 {
		return &SquareGrid{}
	}

	mapWidth := float64(nodeCountX) * squareSize
	mapHeight := float64(nodeCountY) * squareSize

	controlNodes := make([][]*ControlNode, nodeCountX)
	for x := range controlNodes {
		controlNodes[x] = make([]*ControlNode, nodeCountY)
		for y := range controlNodes[x] {
			pos := r3.Vec{
				X: -mapWidth/2 + float64(x)*squareSize + squareSize/2,
				Z: -mapHeight/2 + float64(y)*squareSize + squareSize/2,
			}
			controlNodes[x][y] = NewControlNode(pos, g.IsWall(x, y), squareSize)
		}
	}

	corner := func(x, y int) *ControlNode {
		if opts.IsolatedSquares {
			return controlNodes[x][y].clone()
		}
		return controlNodes[x][y]
	}

	squares := make([][]*Square, nodeCountX-1)
	for x := range squares {
		squares[x] = make([]*Square, nodeCountY-1)
		for y := range squares[x] {
			squares[x][y] = NewSquare(corner(x, y+1), corner(x+1, y+1), corner(x+1, y), corner(x, y))
		}
	}
	return &SquareGrid{Squares: squares}
}

// Cols returns the number of square columns.
func (sg *SquareGrid) Cols() int { return len(sg.Squares) }

// Rows returns the number of square rows.
func (sg *SquareGrid) Rows() int {
	if len(sg.Squares) == 0 {
		return 0
	}
	return len(sg.Squares[0])
}

// resetIndices clears every vertex index so the grid can be triangulated
// again from scratch.
func (sg *SquareGrid) resetIndices() {
	for _, col := range sg.Squares {
		for _, s := range col {
			for _, n := range s.nodes() {
				n.reset()
			}
		}
	}
}
