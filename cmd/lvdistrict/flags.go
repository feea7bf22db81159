package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/lvdistrict/config"
)

// options are the parsed command line: the config file path plus a Config
// holding only the flags the user set.
type options struct {
	configPath string
	set        map[string]bool
	flags      config.Config
}

// parseFlags parses args. Flag defaults mirror config.Default so -h shows
// them, but only explicitly set flags are applied over the loaded config.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{flags: config.Default(), set: make(map[string]bool)}
	c := &o.flags

	fs := flag.NewFlagSet("lvdistrict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: lvdistrict [flags]")
		fmt.Fprintln(stderr, "Runs a ReCom redistricting chain over GeoJSON precincts, a CSV population raster or a synthetic grid.")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.Region, "region", c.Region, "region name, used in output file names")
	fs.StringVar(&c.Input, "input", c.Input, "GeoJSON FeatureCollection of precinct polygons")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "directory for output files")
	fs.StringVar(&c.PopulationColumn, "population-column", c.PopulationColumn, "population property (default: detect)")
	fs.BoolVar(&c.Project, "project", c.Project, "measure geometry in Web Mercator (input is lon/lat)")
	fs.StringVar(&c.Adjacency, "adjacency", c.Adjacency, "adjacency rule: rook or queen")
	fs.IntVar(&c.Districts, "districts", c.Districts, "number of districts")
	fs.IntVar(&c.Steps, "steps", c.Steps, "number of chain steps")
	fs.Float64Var(&c.Epsilon, "epsilon", c.Epsilon, "allowed population deviation from ideal")
	fs.Float64Var(&c.InitialTolerance, "initial-tolerance", c.InitialTolerance, "initial plan deviation (capped at epsilon)")
	fs.IntVar(&c.NodeRepeats, "node-repeats", c.NodeRepeats, "spanning trees per proposal")
	fs.IntVar(&c.Parallelism, "parallelism", c.Parallelism, "spanning trees sampled concurrently per proposal")
	fs.IntVar(&c.MaxAttempts, "max-attempts", c.MaxAttempts, "spanning trees per initial-plan district")
	fs.StringVar(&c.TreeMethod, "tree-method", c.TreeMethod, "spanning tree sampler: kruskal, prim or wilson")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.BoolVar(&c.CheckContiguity, "check-contiguity", c.CheckContiguity, "also require contiguous districts")
	fs.StringVar(&c.Raster, "raster", c.Raster, "CSV population raster (instead of -input)")
	fs.Float64Var(&c.LandThreshold, "land-threshold", c.LandThreshold, "minimum raster cell population to count as a unit")
	fs.Float64Var(&c.CellSize, "cell-size", c.CellSize, "raster cell side length")
	fs.IntVar(&c.GridRows, "grid-rows", c.GridRows, "synthetic grid rows (instead of -input)")
	fs.IntVar(&c.GridCols, "grid-cols", c.GridCols, "synthetic grid columns (instead of -input)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite file to store the run in")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on this address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.Development, "dev", c.Development, "human-readable console logs")
	fs.IntVar(&c.ProgressEvery, "progress-every", c.ProgressEvery, "log chain progress every N steps (0 disables)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, nil
}

// apply copies the explicitly set flags onto cfg.
func (o *options) apply(cfg *config.Config) {
	f := o.flags
	copies := map[string]func(){
		"region":            func() { cfg.Region = f.Region },
		"input":             func() { cfg.Input = f.Input },
		"output-dir":        func() { cfg.OutputDir = f.OutputDir },
		"population-column": func() { cfg.PopulationColumn = f.PopulationColumn },
		"project":           func() { cfg.Project = f.Project },
		"adjacency":         func() { cfg.Adjacency = f.Adjacency },
		"districts":         func() { cfg.Districts = f.Districts },
		"steps":             func() { cfg.Steps = f.Steps },
		"epsilon":           func() { cfg.Epsilon = f.Epsilon },
		"initial-tolerance": func() { cfg.InitialTolerance = f.InitialTolerance },
		"node-repeats":      func() { cfg.NodeRepeats = f.NodeRepeats },
		"parallelism":       func() { cfg.Parallelism = f.Parallelism },
		"max-attempts":      func() { cfg.MaxAttempts = f.MaxAttempts },
		"tree-method":       func() { cfg.TreeMethod = f.TreeMethod },
		"seed":              func() { cfg.Seed = f.Seed },
		"check-contiguity":  func() { cfg.CheckContiguity = f.CheckContiguity },
		"raster":            func() { cfg.Raster = f.Raster },
		"land-threshold":    func() { cfg.LandThreshold = f.LandThreshold },
		"cell-size":         func() { cfg.CellSize = f.CellSize },
		"grid-rows":         func() { cfg.GridRows = f.GridRows },
		"grid-cols":         func() { cfg.GridCols = f.GridCols },
		"db":                func() { cfg.DBPath = f.DBPath },
		"metrics-addr":      func() { cfg.MetricsAddr = f.MetricsAddr },
		"log-level":         func() { cfg.LogLevel = f.LogLevel },
		"dev":               func() { cfg.Development = f.Development },
		"progress-every":    func() { cfg.ProgressEvery = f.ProgressEvery },
	}
	for name := range o.set {
		if cp, ok := copies[name]; ok {
			cp()
		}
	}
}
