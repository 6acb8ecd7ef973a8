package mesh

import "gonum.org/v1/gonum/spatial/r3"

// VertexIndex is a vertex list position that may not be assigned yet.
// The zero value is unassigned.
type VertexIndex struct {
	idx int
	ok  bool
}

// Get returns the index and whether it has been assigned.
func (v VertexIndex) Get() (int, bool) { return v.idx, v.ok }

// Node is a point a square may emit as a floor vertex.
type Node struct {
	Pos   r3.Vec
	Index VertexIndex
}

// Assigned reports whether the node already has a vertex in the floor.
func (n *Node) Assigned() bool { return n.Index.ok }

func (n *Node) assign(idx int) { n.Index = VertexIndex{idx: idx, ok: true} }

func (n *Node) reset() { n.Index = VertexIndex{} }

// ControlNode sits on a grid cell and carries its occupancy. Above and Right
// are the midpoints towards the next cell in +Z and +X.
type ControlNode struct {
	Node
	Active bool
	Above  *Node
	Right  *Node
}

// NewControlNode creates a control node and its two edge midpoints.
func NewControlNode(pos r3.Vec, active bool, squareSize float64) *ControlNode {
	half := squareSize / 2
	return &ControlNode{
		Node:   Node{Pos: pos},
		Active: active,
		Above:  &Node{Pos: r3.Add(pos, r3.Vec{Z: half})},
		Right:  &Node{Pos: r3.Add(pos, r3.Vec{X: half})},
	}
}

// clone copies the control node together with its midpoints.
func (c *ControlNode) clone() *ControlNode {
	above, right := *c.Above, *c.Right
	return &ControlNode{
		Node:   c.Node,
		Active: c.Active,
		Above:  &above,
		Right:  &right,
	}
}
