package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/cave-mesh/internal/config"
	"github.com/OCharnyshevich/cave-mesh/internal/export"
	"github.com/OCharnyshevich/cave-mesh/pkg/cave"
)

func main() {
	cfg := config.DefaultConfig()

	configSrc := flag.String("config", "", "JSON config file path or go-getter URL")
	printGrid := flag.Bool("print", false, "print the bordered grid of each cave")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "cave width in cells")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "cave height in cells")
	flag.IntVar(&cfg.FillPercent, "fill", cfg.FillPercent, "chance in percent that a cell starts open")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, `seed, or "random" for a clock-derived one`)
	flag.IntVar(&cfg.BorderSize, "border", cfg.BorderSize, "solid rings added around the cave")
	flag.Float64Var(&cfg.SquareSize, "square-size", cfg.SquareSize, "distance between grid nodes")
	flag.Float64Var(&cfg.WallHeight, "wall-height", cfg.WallHeight, "wall depth below the floor")
	flag.BoolVar(&cfg.IsolatedSquares, "isolated", cfg.IsolatedSquares, "do not share vertices between squares")
	flag.IntVar(&cfg.Count, "count", cfg.Count, "number of caves to generate")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent generations (0 = one per CPU)")
	flag.StringVar(&cfg.Output, "o", cfg.Output, "output file (.obj or .json)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		fromFile, err := config.Load(ctx, *configSrc, log)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	}

	if err := run(ctx, cfg, *printGrid, log); err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, printGrid bool, log *slog.Logger) error {
	count := max(cfg.Count, 1)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Validate every request before starting any work.
	reqs := make([]cave.Request, count)
	for i := range reqs {
		req, err := cfg.Request(i)
		if err != nil {
			return err
		}
		reqs[i] = req
	}

	gen := cave.NewGenerator(log)
	meshes := make([]*cave.CaveMesh, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		g.Go(func() error {
			m, err := gen.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("cave %d: %w", i, err)
			}
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, m := range meshes {
		log.Info("cave generated",
			"index", i,
			"seed", m.Seed,
			"fingerprint", fmt.Sprintf("%016x", m.Fingerprint()),
			"mesh", m.Stats(),
		)
		if printGrid {
			fmt.Print(m.Grid)
		}
		if cfg.Output == "" {
			continue
		}
		path := cfg.Output
		if count > 1 {
			path = export.IndexedPath(path, i)
		}
		if err := export.WriteFile(path, m); err != nil {
			return fmt.Errorf("export cave %d: %w", i, err)
		}
		log.Info("mesh written", "path", path)
	}
	return nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
