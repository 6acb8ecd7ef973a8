package mesh

import (
	"github.com/zyedidia/generic/mapset"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle references three floor vertices.
type Triangle struct {
	A, B, C int
}

// Contains reports whether v is one of the triangle's vertices.
func (t Triangle) Contains(v int) bool {
	return v == t.A || v == t.B || v == t.C
}

// Vertices returns the corners in winding order.
func (t Triangle) Vertices() [3]int {
	return [3]int{t.A, t.B, t.C}
}

// Floor is the triangulated floor of a square grid.
type Floor struct {
	Vertices  []r3.Vec
	Triangles []Triangle

	// Adjacency lists, for every vertex, the triangles that use it in the
	// order they were created.
	Adjacency [][]Triangle

	// Checked holds vertices known not to lie on an outline: the corners of
	// fully solid squares.
	Checked mapset.Set[int]
}

// Triangulate emits the floor of every square, column by column. Vertex
// indices are assigned on first use and reused afterwards. Any indices left
// on sg by an earlier call are discarded first.
func Triangulate(sg *SquareGrid) *Floor {
	sg.resetIndices()

	f := &Floor{Checked: mapset.New[int]()}
	for _, col := range sg.Squares {
		for _, s := range col {
			f.triangulateSquare(s)
		}
	}
	return f
}

func (f *Floor) triangulateSquare(s *Square) {
	points := Table[s.Configuration]
	if len(points) == 0 {
		return
	}

	nodes := make([]*Node, len(points))
	for i, p := range points {
		nodes[i] = s.Node(p)
	}
	f.meshFromPoints(nodes)

	if s.Configuration == 15 {
		// A solid square has no outline edge through its corners.
		for _, n := range nodes {
			idx, _ := n.Index.Get()
			f.Checked.Put(idx)
		}
	}
}

// meshFromPoints assigns vertices to the nodes and fans triangles from the
// first one.
func (f *Floor) meshFromPoints(nodes []*Node) {
	f.assignVertices(nodes)

	for i := 1; i+1 < len(nodes); i++ {
		f.addTriangle(nodes[0], nodes[i], nodes[i+1])
	}
}

func (f *Floor) assignVertices(nodes []*Node) {
	for _, n := range nodes {
		if n.Assigned() {
			continue
		}
		n.assign(len(f.Vertices))
		f.Vertices = append(f.Vertices, n.Pos)
		f.Adjacency = append(f.Adjacency, nil)
	}
}

func (f *Floor) addTriangle(a, b, c *Node) {
	ia, _ := a.Index.Get()
	ib, _ := b.Index.Get()
	ic, _ := c.Index.Get()

	t := Triangle{A: ia, B: ib, C: ic}
	f.Triangles = append(f.Triangles, t)
	f.Adjacency[ia] = append(f.Adjacency[ia], t)
	f.Adjacency[ib] = append(f.Adjacency[ib], t)
	f.Adjacency[ic] = append(f.Adjacency[ic], t)
}

// TrianglesOf returns the triangles that use vertex v.
func (f *Floor) TrianglesOf(v int) []Triangle {
	if v < 0 || v >= len(f.Adjacency) {
		return nil
	}
	return f.Adjacency[v]
}
