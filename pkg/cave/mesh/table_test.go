package mesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave/grid"
)

// gridForConfiguration returns a 2×2 grid whose single square has the
// given configuration.
func gridForConfiguration(c int) *grid.Grid {
	g := grid.New(2, 2)
	g.Set(0, 1, c&8 != 0)
	g.Set(1, 1, c&4 != 0)
	g.Set(1, 0, c&2 != 0)
	g.Set(0, 0, c&1 != 0)
	return g
}

func TestConfiguration(t *testing.T) {
	for c := 0; c < 16; c++ {
		got := Configuration(c&8 != 0, c&4 != 0, c&2 != 0, c&1 != 0)
		if got != c {
			t.Errorf("Configuration(%04b) = %d, want %d", c, got, c)
		}

		sg := NewSquareGrid(gridForConfiguration(c), 1, Options{})
		if sg.Cols() != 1 || sg.Rows() != 1 {
			t.Fatalf("square grid = %dx%d, want 1x1", sg.Cols(), sg.Rows())
		}
		if got := sg.Squares[0][0].Configuration; got != c {
			t.Errorf("square configuration = %d, want %d", got, c)
		}
	}
}

func TestTableTriangleCounts(t *testing.T) {
	want := map[int]int{
		0: 0,
		1: 1, 2: 1, 4: 1, 8: 1,
		3: 2, 6: 2, 9: 2, 12: 2,
		5: 4, 10: 4,
		7: 3, 11: 3, 13: 3, 14: 3,
		15: 2,
	}
	for c, n := range want {
		if got := len(FanTriangles(c)); got != n {
			t.Errorf("configuration %d: %d triangles, want %d", c, got, n)
		}
	}
}

func TestTableUsesActiveCorners(t *testing.T) {
	corners := map[Point]int{TopLeft: 8, TopRight: 4, BottomRight: 2, BottomLeft: 1}
	for c := 1; c < 16; c++ {
		seen := 0
		for _, p := range Table[c] {
			bit, ok := corners[p]
			if !ok {
				continue
			}
			if c&bit == 0 {
				t.Errorf("configuration %d uses inactive corner %v", c, p)
			}
			seen |= bit
		}
		if seen != c {
			t.Errorf("configuration %d covers corners %04b", c, seen)
		}
	}
}

func TestTriangulateSingleSquare(t *testing.T) {
	for c := 0; c < 16; c++ {
		sg := NewSquareGrid(gridForConfiguration(c), 1, Options{})
		f := Triangulate(sg)
		s := sg.Squares[0][0]
		points := Table[c]

		if c == 0 {
			if len(f.Triangles) != 0 || len(f.Vertices) != 0 {
				t.Errorf("configuration 0 emitted %d vertices, %d triangles", len(f.Vertices), len(f.Triangles))
			}
			continue
		}
		if len(f.Triangles) == 0 {
			t.Errorf("configuration %d emitted no triangles", c)
			continue
		}

		if len(f.Vertices) != len(points) {
			t.Fatalf("configuration %d: %d vertices, want %d", c, len(f.Vertices), len(points))
		}
		for i, p := range points {
			if f.Vertices[i] != s.Node(p).Pos {
				t.Errorf("configuration %d vertex %d = %v, want %v (%v)", c, i, f.Vertices[i], s.Node(p).Pos, p)
			}
		}

		fan := FanTriangles(c)
		if len(f.Triangles) != len(fan) {
			t.Fatalf("configuration %d: %d triangles, want %d", c, len(f.Triangles), len(fan))
		}
		for i, tri := range fan {
			want := Triangle{A: tri[0], B: tri[1], C: tri[2]}
			if f.Triangles[i] != want {
				t.Errorf("configuration %d triangle %d = %v, want %v", c, i, f.Triangles[i], want)
			}
		}
	}
}

func TestSquareNodePositions(t *testing.T) {
	sg := NewSquareGrid(gridForConfiguration(15), 2, Options{})
	s := sg.Squares[0][0]

	want := map[Point]r3.Vec{
		TopLeft:      {X: -1, Z: 1},
		TopRight:     {X: 1, Z: 1},
		BottomRight:  {X: 1, Z: -1},
		BottomLeft:   {X: -1, Z: -1},
		CentreTop:    {X: 0, Z: 1},
		CentreRight:  {X: 1, Z: 0},
		CentreBottom: {X: 0, Z: -1},
		CentreLeft:   {X: -1, Z: 0},
	}
	for p, pos := range want {
		if got := s.Node(p).Pos; got != pos {
			t.Errorf("%v at %v, want %v", p, got, pos)
		}
	}
}

func TestPointString(t *testing.T) {
	if got := CentreBottom.String(); got != "bottom" {
		t.Errorf("CentreBottom.String() = %q", got)
	}
	if got := Point(42).String(); got != "invalid" {
		t.Errorf("Point(42).String() = %q", got)
	}
}
