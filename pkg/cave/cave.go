package cave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave/grid"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave/mesh"
)

var (
	ErrInvalidDimensions  = grid.ErrInvalidDimensions
	ErrInvalidFillPercent = grid.ErrInvalidFillPercent
	ErrInvalidBorder      = grid.ErrInvalidBorder
	ErrInvalidSquareSize  = errors.New("square size must be positive")
	ErrInvalidWallHeight  = errors.New("wall height must not be negative")
)

const (
	DefaultBorderSize = 5
	DefaultSquareSize = 1.0
)

// Request describes one cave.
type Request struct {
	Width       int
	Height      int
	FillPercent int
	Seed        grid.Seed
	BorderSize  int
	SquareSize  float64
	WallHeight  float64

	// IsolatedSquares stops neighbouring squares from sharing floor
	// vertices; see mesh.Options.
	IsolatedSquares bool
}

// DefaultRequest returns a request for a random 64×48 cave with the
// default border, square size and wall height.
func DefaultRequest() Request {
	return Request{
		Width:       64,
		Height:      48,
		FillPercent: 50,
		Seed:        grid.Random(),
		BorderSize:  DefaultBorderSize,
		SquareSize:  DefaultSquareSize,
		WallHeight:  mesh.DefaultWallHeight,
	}
}

// Validate checks the request without generating anything.
func (r Request) Validate() error {
	err := grid.Params{
		Width:       r.Width,
		Height:      r.Height,
		FillPercent: r.FillPercent,
		BorderSize:  r.BorderSize,
	}.Validate()
	if err != nil {
		return err
	}
	if r.SquareSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSquareSize, r.SquareSize)
	}
	if r.WallHeight < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWallHeight, r.WallHeight)
	}
	return nil
}

// CaveMesh is the result of a generation. Floor and wall buffers are
// independent: wall triangles index WallVertices only.
type CaveMesh struct {
	FloorVertices  []r3.Vec
	FloorTriangles []mesh.Triangle
	WallVertices   []r3.Vec
	WallTriangles  []mesh.Triangle

	// Outlines index FloorVertices.
	Outlines []mesh.Outline

	// Grid is the bordered occupancy grid the mesh was built from.
	Grid *grid.Grid
	Seed int64
}

// Generator runs the cave pipeline and logs its progress.
type Generator struct {
	log *slog.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{log: log}
}

// Generate builds a cave with a Generator that does not log.
func Generate(ctx context.Context, req Request) (*CaveMesh, error) {
	return NewGenerator(nil).Generate(ctx, req)
}

// Generate validates req and runs grid generation, triangulation, outline
// tracing and wall extrusion. ctx is only checked between stages.
func (g *Generator) Generate(ctx context.Context, req Request) (*CaveMesh, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	res, err := grid.Generate(grid.Params{
		Width:       req.Width,
		Height:      req.Height,
		FillPercent: req.FillPercent,
		Seed:        req.Seed,
		BorderSize:  req.BorderSize,
	})
	if err != nil {
		return nil, fmt.Errorf("generate grid: %w", err)
	}
	g.log.Debug("grid generated",
		"seed", res.Seed,
		"width", res.Bordered.Width(),
		"height", res.Bordered.Height(),
		"openRatio", res.Raw.OpenRatio(),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := g.build(ctx, res.Bordered, req)
	if err != nil {
		return nil, err
	}
	m.Seed = res.Seed

	g.log.Debug("cave generated",
		"seed", m.Seed,
		"floorTriangles", len(m.FloorTriangles),
		"wallTriangles", len(m.WallTriangles),
		"outlines", len(m.Outlines),
		"elapsed", time.Since(start),
	)
	return m, nil
}

// FromGrid meshes an existing occupancy grid. The grid is used as is: no
// border is added and req's grid fields other than SquareSize, WallHeight
// and IsolatedSquares are ignored.
func (g *Generator) FromGrid(ctx context.Context, gr *grid.Grid, req Request) (*CaveMesh, error) {
	if req.SquareSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSquareSize, req.SquareSize)
	}
	if req.WallHeight < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWallHeight, req.WallHeight)
	}
	return g.build(ctx, gr.Clone(), req)
}

func (g *Generator) build(ctx context.Context, gr *grid.Grid, req Request) (*CaveMesh, error) {
	sg := mesh.NewSquareGrid(gr, req.SquareSize, mesh.Options{IsolatedSquares: req.IsolatedSquares})
	floor := mesh.Triangulate(sg)
	g.log.Debug("floor triangulated",
		"squares", sg.Cols()*sg.Rows(),
		"vertices", len(floor.Vertices),
		"triangles", len(floor.Triangles),
		"solidCorners", floor.Checked.Size(),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outlines := mesh.Trace(floor)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	walls := mesh.Extrude(floor, outlines, req.WallHeight)

	return &CaveMesh{
		FloorVertices:  floor.Vertices,
		FloorTriangles: floor.Triangles,
		WallVertices:   walls.Vertices,
		WallTriangles:  walls.Triangles,
		Outlines:       outlines,
		Grid:           gr,
	}, nil
}
