package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvdistrict/builder"
	"github.com/katalvlaran/lvdistrict/config"
	"github.com/katalvlaran/lvdistrict/core"
	"github.com/katalvlaran/lvdistrict/geo"
	"github.com/katalvlaran/lvdistrict/gridgraph"
	"github.com/katalvlaran/lvdistrict/redistrict"
	"github.com/katalvlaran/lvdistrict/runstore"
	"github.com/katalvlaran/lvdistrict/telemetry"
)

// Synthetic grid cells draw populations from this range.
const (
	gridPopMin = 50
	gridPopMax = 150
)

// run is the whole command: configuration, input, chain, output.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(&cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("region", cfg.Region))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := telemetry.NewChainMetrics(reg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	srvCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()
	if cfg.MetricsAddr != "" {
		g.Go(func() error { return telemetry.Serve(srvCtx, cfg.MetricsAddr, reg, logger) })
	}
	g.Go(func() error {
		defer stopServer()
		return simulate(gctx, cfg, logger, metrics, stdout)
	})

	return g.Wait()
}

// simulate loads the region, runs the engine and writes the outputs.
func simulate(ctx context.Context, cfg config.Config, logger *zap.Logger, metrics *telemetry.ChainMetrics, stdout io.Writer) error {
	var (
		graph  *core.Graph
		region *geo.Region
		err    error
	)
	if cfg.Input != "" {
		adj, err := geo.ParseAdjacency(cfg.Adjacency)
		if err != nil {
			return err
		}
		region, err = geo.LoadFile(cfg.Input,
			geo.WithPopulationColumn(cfg.PopulationColumn),
			geo.WithProjection(cfg.Project),
			geo.WithAdjacency(adj),
			geo.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		graph = region.Graph
		logger.Info("region loaded",
			zap.String("input", cfg.Input),
			zap.String("population_column", region.Population.Column),
			zap.Int("units", graph.UnitCount()),
			zap.Int("adjacencies", graph.EdgeCount()),
		)
	} else if cfg.Raster != "" {
		if graph, err = loadRaster(cfg, logger); err != nil {
			return err
		}
	} else {
		graph, err = builder.BuildGraph(nil, []builder.BuilderOption{
			builder.WithSeed(cfg.Seed),
			builder.WithRandomPopulation(gridPopMin, gridPopMax),
		}, builder.Grid(cfg.GridRows, cfg.GridCols))
		if err != nil {
			return err
		}
		logger.Info("synthetic grid built", zap.Int("rows", cfg.GridRows), zap.Int("cols", cfg.GridCols))
	}

	params := cfg.Params()
	if params.NumDistricts == 1 {
		logger.Info("single district, skipping simulation")
	}
	start := time.Now()
	res, err := redistrict.Run(ctx, graph, params,
		redistrict.WithLogger(logger),
		redistrict.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	assignment := res.Best.Assignment()
	var out string
	if region != nil {
		out = filepath.Join(cfg.OutputDir, cfg.Region+"_best_map.geojson")
		err = geo.WriteAssignmentFile(out, region, assignment)
	} else {
		out = filepath.Join(cfg.OutputDir, cfg.Region+"_best_assignment.json")
		err = writeAssignmentJSON(out, cfg.Region, res)
	}
	if err != nil {
		return err
	}
	logger.Info("best plan written", zap.String("path", out))

	runID := ""
	if cfg.DBPath != "" {
		store, err := runstore.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if runID, err = store.SaveRun(ctx, cfg.Region, params, res); err != nil {
			return err
		}
		logger.Info("run stored", zap.String("db", cfg.DBPath), zap.String("run_id", runID))
	}

	fmt.Fprintf(stdout, "%s: %d districts, %d steps, best state %d (score %.4f, deviation %.4f, compactness %.4f) in %s\n",
		cfg.Region, params.NumDistricts, res.Ensemble.Len(), res.Selection.Index,
		res.Selection.Score, res.Selection.Deviation, res.Selection.Compactness,
		time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(stdout, "wrote %s\n", out)
	if runID != "" {
		fmt.Fprintf(stdout, "run id %s\n", runID)
	}

	return nil
}

// loadRaster reads the CSV raster and keeps its largest inhabited island.
func loadRaster(cfg config.Config, logger *zap.Logger) (*core.Graph, error) {
	opts := gridgraph.DefaultGridOptions()
	opts.LandThreshold = cfg.LandThreshold
	opts.CellSize = cfg.CellSize
	if cfg.Adjacency == string(geo.Queen) {
		opts.Conn = gridgraph.Conn8
	}
	gg, err := gridgraph.LoadCSV(cfg.Raster, opts)
	if err != nil {
		return nil, err
	}
	graph, dropped, err := gg.LargestIslandGraph()
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		logger.Warn("raster is not connected, keeping the largest island", zap.Int("dropped_cells", len(dropped)))
	}
	logger.Info("raster loaded",
		zap.String("raster", cfg.Raster),
		zap.Int("width", gg.Width),
		zap.Int("height", gg.Height),
		zap.Int("units", graph.UnitCount()),
		zap.Int("adjacencies", graph.EdgeCount()),
	)

	return graph, nil
}

type unitDistrict struct {
	Unit     int `json:"unit"`
	District int `json:"best_cd"`
}

type assignmentFile struct {
	Region      string         `json:"region"`
	Districts   int            `json:"districts"`
	Populations []float64      `json:"populations"`
	Units       []unitDistrict `json:"units"`
}

// writeAssignmentJSON writes the best plan of a grid or raster run with
// 1-indexed districts, matching the GeoJSON output property. Raster units
// are row-major cell indices.
func writeAssignmentJSON(path, region string, res *redistrict.Result) error {
	doc := assignmentFile{
		Region:      region,
		Districts:   res.Best.NumDistricts(),
		Populations: res.Best.Tally().Populations(),
	}
	res.Best.EachAssignment(func(unit, d int) {
		doc.Units = append(doc.Units, unitDistrict{Unit: unit, District: d + 1})
	})
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding assignment: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing assignment: %w", err)
	}

	return nil
}
