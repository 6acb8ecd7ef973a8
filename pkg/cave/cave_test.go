package cave

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave/grid"
)

func request(width, height, fill int, seed grid.Seed, border int) Request {
	r := DefaultRequest()
	r.Width, r.Height, r.FillPercent, r.Seed, r.BorderSize = width, height, fill, seed, border
	return r
}

func TestGenerateSolidCave(t *testing.T) {
	m, err := Generate(context.Background(), request(4, 4, 100, grid.Fixed(1), 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := len(m.FloorTriangles); got != 18 {
		t.Errorf("floor triangles = %d, want 18", got)
	}
	if got := len(m.WallTriangles); got != 0 {
		t.Errorf("wall triangles = %d, want 0", got)
	}
	if got := len(m.Outlines); got != 0 {
		t.Errorf("outlines = %d, want 0", got)
	}
	if m.Seed != 1 {
		t.Errorf("seed = %d, want 1", m.Seed)
	}
}

func TestGenerateEmptyFillStillSolid(t *testing.T) {
	// The 2×2 interior of a 4×4 grid is closed by the first smoothing pass.
	m, err := Generate(context.Background(), request(4, 4, 0, grid.Fixed(1), 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := m.Grid.WallCount(); got != 16 {
		t.Errorf("wall cells = %d, want 16", got)
	}
	if got := len(m.WallTriangles); got != 0 {
		t.Errorf("wall triangles = %d, want 0", got)
	}
}

func TestFromGridPocket(t *testing.T) {
	g := grid.FromRows(
		"######",
		"######",
		"##..##",
		"##..##",
		"######",
		"######",
	)
	m, err := NewGenerator(nil).FromGrid(context.Background(), g, DefaultRequest())
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}

	if len(m.Outlines) != 1 {
		t.Fatalf("outlines = %d, want 1", len(m.Outlines))
	}
	segments := m.Outlines[0].Segments()
	if segments != 8 {
		t.Errorf("outline segments = %d, want 8", segments)
	}
	if got := len(m.WallTriangles); got != 2*segments {
		t.Errorf("wall triangles = %d, want %d", got, 2*segments)
	}
	if got := len(m.WallVertices); got != 4*segments {
		t.Errorf("wall vertices = %d, want %d", got, 4*segments)
	}
	if m.Grid == g {
		t.Error("mesh should not alias the caller's grid")
	}
}

func TestFromGridRing(t *testing.T) {
	g := grid.FromRows(
		"####",
		"#..#",
		"#..#",
		"####",
	)
	m, err := NewGenerator(nil).FromGrid(context.Background(), g, DefaultRequest())
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	if got := len(m.FloorTriangles); got != 20 {
		t.Errorf("floor triangles = %d, want 20", got)
	}
	// Inner cut plus the unbordered outer edge.
	if got := len(m.WallTriangles); got != 2*(8+12) {
		t.Errorf("wall triangles = %d, want %d", got, 2*(8+12))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	req := request(60, 40, 48, grid.Fixed(2024), DefaultBorderSize)

	m1, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	m2, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !slices.Equal(m1.FloorVertices, m2.FloorVertices) {
		t.Error("floor vertices differ")
	}
	if !slices.Equal(m1.FloorTriangles, m2.FloorTriangles) {
		t.Error("floor triangles differ")
	}
	if !slices.Equal(m1.WallVertices, m2.WallVertices) {
		t.Error("wall vertices differ")
	}
	if !slices.Equal(m1.WallTriangles, m2.WallTriangles) {
		t.Error("wall triangles differ")
	}
	if m1.Fingerprint() != m2.Fingerprint() {
		t.Errorf("fingerprints differ: %x vs %x", m1.Fingerprint(), m2.Fingerprint())
	}
	if len(m1.WallTriangles) == 0 {
		t.Error("expected walls for a 48% cave")
	}
}

func TestGenerateRandomSeed(t *testing.T) {
	req := request(60, 40, 48, grid.Random(), DefaultBorderSize)

	m1, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	m2, err := Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if m1.Seed == m2.Seed {
		t.Fatalf("random requests resolved to the same seed %d", m1.Seed)
	}
	if m1.Fingerprint() == m2.Fingerprint() {
		t.Error("different seeds should produce different meshes")
	}

	replay := req
	replay.Seed = grid.Fixed(m1.Seed)
	m3, err := Generate(context.Background(), replay)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m3.Fingerprint() != m1.Fingerprint() {
		t.Error("replaying the resolved seed should reproduce the mesh")
	}
}

func TestGenerateOutlinesClosedAndWalled(t *testing.T) {
	for _, isolated := range []bool{false, true} {
		req := request(50, 30, 50, grid.Fixed(9), 3)
		req.IsolatedSquares = isolated

		m, err := Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}

		segments := 0
		for i, o := range m.Outlines {
			if !o.Closed() {
				t.Errorf("isolated=%v: outline %d is open", isolated, i)
			}
			segments += o.Segments()
		}
		if got := len(m.WallTriangles); got != 2*segments {
			t.Errorf("isolated=%v: wall triangles = %d, want %d", isolated, got, 2*segments)
		}
		for _, tri := range m.WallTriangles {
			for _, v := range tri.Vertices() {
				if v < 0 || v >= len(m.WallVertices) {
					t.Fatalf("isolated=%v: wall triangle %v out of range", isolated, tri)
				}
			}
		}
		for _, tri := range m.FloorTriangles {
			for _, v := range tri.Vertices() {
				if v < 0 || v >= len(m.FloorVertices) {
					t.Fatalf("isolated=%v: floor triangle %v out of range", isolated, tri)
				}
			}
		}
	}
}

func TestGenerateIsolatedSquaresDuplicateVertices(t *testing.T) {
	welded := request(40, 30, 50, grid.Fixed(5), 2)
	isolated := welded
	isolated.IsolatedSquares = true

	mw, err := Generate(context.Background(), welded)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	mi, err := Generate(context.Background(), isolated)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(mw.FloorTriangles) != len(mi.FloorTriangles) {
		t.Errorf("floor triangles differ: %d welded, %d isolated", len(mw.FloorTriangles), len(mi.FloorTriangles))
	}
	if len(mi.FloorVertices) <= len(mw.FloorVertices) {
		t.Errorf("isolated squares should duplicate vertices: %d welded, %d isolated",
			len(mw.FloorVertices), len(mi.FloorVertices))
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Request)
		want   error
	}{
		{"zero width", func(r *Request) { r.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(r *Request) { r.Height = -3 }, ErrInvalidDimensions},
		{"fill above range", func(r *Request) { r.FillPercent = 150 }, ErrInvalidFillPercent},
		{"fill below range", func(r *Request) { r.FillPercent = -1 }, ErrInvalidFillPercent},
		{"negative border", func(r *Request) { r.BorderSize = -1 }, ErrInvalidBorder},
		{"zero square size", func(r *Request) { r.SquareSize = 0 }, ErrInvalidSquareSize},
		{"negative wall height", func(r *Request) { r.WallHeight = -1 }, ErrInvalidWallHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DefaultRequest()
			tt.modify(&req)
			m, err := Generate(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("no mesh should be returned for an invalid request")
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, request(30, 30, 50, grid.Fixed(1), 2))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestGeneratorLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m, err := NewGenerator(log).Generate(context.Background(), request(20, 20, 50, grid.Fixed(77), 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"grid generated", "floor triangulated", "cave generated", "seed=77"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	log.Info("stats", "mesh", m.Stats())
	if !strings.Contains(buf.String(), "mesh.floorTriangles=") {
		t.Errorf("stats not logged as a group: %s", buf.String())
	}
}

func TestStats(t *testing.T) {
	m, err := Generate(context.Background(), request(4, 4, 100, grid.Fixed(1), 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := Stats{FloorVertices: 16, FloorTriangles: 18}
	if got := m.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
