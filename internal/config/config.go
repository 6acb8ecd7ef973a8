package config

import (
	"fmt"

	"github.com/OCharnyshevich/cave-mesh/pkg/cave"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave/grid"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave/mesh"
)

// Config holds the generator configuration.
type Config struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	FillPercent     int     `json:"fill_percent"`
	Seed            string  `json:"seed"` // decimal integer or "random"
	BorderSize      int     `json:"border_size"`
	SquareSize      float64 `json:"square_size"`
	WallHeight      float64 `json:"wall_height"`
	IsolatedSquares bool    `json:"isolated_squares"`

	Count    int    `json:"count"`     // caves per run
	Workers  int    `json:"workers"`   // concurrent generations (0 = one per CPU)
	Output   string `json:"output"`    // .obj or .json path, empty for none
	LogLevel string `json:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:       64,
		Height:      48,
		FillPercent: 50,
		Seed:        "random",
		BorderSize:  cave.DefaultBorderSize,
		SquareSize:  cave.DefaultSquareSize,
		WallHeight:  mesh.DefaultWallHeight,
		Count:       1,
		LogLevel:    "info",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["fill"] {
		cfg.FillPercent = fromFile.FillPercent
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["border"] {
		cfg.BorderSize = fromFile.BorderSize
	}
	if !explicitFlags["square-size"] {
		cfg.SquareSize = fromFile.SquareSize
	}
	if !explicitFlags["wall-height"] {
		cfg.WallHeight = fromFile.WallHeight
	}
	if !explicitFlags["isolated"] {
		cfg.IsolatedSquares = fromFile.IsolatedSquares
	}
	if !explicitFlags["count"] {
		cfg.Count = fromFile.Count
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["o"] {
		cfg.Output = fromFile.Output
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Request converts the config into a generation request for the index-th
// cave of a run. Fixed seeds advance by index so every cave differs.
func (c *Config) Request(index int) (cave.Request, error) {
	seed, err := grid.ParseSeed(c.Seed)
	if err != nil {
		return cave.Request{}, fmt.Errorf("parse seed %q: %w", c.Seed, err)
	}
	if !seed.IsRandom() && index > 0 {
		seed = grid.Fixed(seed.Resolve() + int64(index))
	}

	req := cave.Request{
		Width:           c.Width,
		Height:          c.Height,
		FillPercent:     c.FillPercent,
		Seed:            seed,
		BorderSize:      c.BorderSize,
		SquareSize:      c.SquareSize,
		WallHeight:      c.WallHeight,
		IsolatedSquares: c.IsolatedSquares,
	}
	if err := req.Validate(); err != nil {
		return cave.Request{}, err
	}
	return req, nil
}
