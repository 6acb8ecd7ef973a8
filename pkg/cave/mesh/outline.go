package mesh

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Outline is a closed loop of floor vertex indices; the first index is
// repeated at the end.
type Outline []int

// Closed reports whether the outline returns to its first vertex.
func (o Outline) Closed() bool {
	return len(o) >= 2 && o[0] == o[len(o)-1]
}

// Segments returns the number of edges along the outline.
func (o Outline) Segments() int {
	if len(o) < 2 {
		return 0
	}
	return len(o) - 1
}

// IsOutlineEdge reports whether the edge u-v belongs to exactly one
// triangle.
func (f *Floor) IsOutlineEdge(u, v int) bool {
	shared := 0
	for _, t := range f.TrianglesOf(u) {
		if t.Contains(v) {
			shared++
			if shared > 1 {
				break
			}
		}
	}
	return shared == 1
}

// Trace walks the outline edges of f into closed loops. Vertices are
// scanned in creation order; the first unvisited vertex with an unvisited
// outline neighbour seeds a loop, which is followed until no unvisited
// neighbour is left. f is not modified, so tracing the same floor twice
// yields the same loops.
func Trace(f *Floor) []Outline {
	t := newTracer(f)

	var outlines []Outline
	for v := range f.Vertices {
		if t.visited.Has(v) {
			continue
		}
		next, ok := t.connectedOutlineVertex(v)
		if !ok {
			continue
		}
		t.visited.Put(v)
		outline := t.follow(Outline{v}, next)
		outlines = append(outlines, append(outline, v))
	}
	return outlines
}

type tracer struct {
	floor   *Floor
	visited mapset.Set[int]
}

func newTracer(f *Floor) *tracer {
	visited := mapset.New[int]()
	f.Checked.Each(func(v int) {
		visited.Put(v)
	})
	return &tracer{floor: f, visited: visited}
}

// follow extends outline from start along unvisited outline edges.
func (t *tracer) follow(outline Outline, start int) Outline {
	frontier := stack.New[int]()
	frontier.Push(start)

	for frontier.Size() > 0 {
		v := frontier.Pop()
		outline = append(outline, v)
		t.visited.Put(v)

		if next, ok := t.connectedOutlineVertex(v); ok {
			frontier.Push(next)
		}
	}
	return outline
}

// connectedOutlineVertex finds the first unvisited vertex sharing an outline
// edge with v, scanning v's triangles in order and then each triangle's
// corners in order.
func (t *tracer) connectedOutlineVertex(v int) (int, bool) {
	for _, tri := range t.floor.TrianglesOf(v) {
		for _, w := range tri.Vertices() {
			if w == v || t.visited.Has(w) {
				continue
			}
			if t.floor.IsOutlineEdge(v, w) {
				return w, true
			}
		}
	}
	return 0, false
}
