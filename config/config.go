// Package config loads lvdistrict run settings. Values are layered, lowest
// priority first: Default, a YAML file, LVDISTRICT_* environment variables,
// then whatever the caller applies on top (the CLI applies explicitly set
// flags) before calling Validate.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvdistrict/redistrict"
	"github.com/katalvlaran/lvdistrict/spanning"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "LVDISTRICT_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full set of run settings.
type Config struct {
	Region           string `yaml:"region" env:"REGION" validate:"required"`
	Input            string `yaml:"input" env:"INPUT"`
	OutputDir        string `yaml:"output_dir" env:"OUTPUT_DIR" validate:"required"`
	PopulationColumn string `yaml:"population_column" env:"POPULATION_COLUMN"`
	Project          bool   `yaml:"project" env:"PROJECT"`
	Adjacency        string `yaml:"adjacency" env:"ADJACENCY" validate:"oneof=rook queen"`

	Districts        int     `yaml:"districts" env:"DISTRICTS" validate:"min=1"`
	Steps            int     `yaml:"steps" env:"STEPS" validate:"min=0"`
	Epsilon          float64 `yaml:"epsilon" env:"EPSILON" validate:"gte=0,lt=1"`
	InitialTolerance float64 `yaml:"initial_tolerance" env:"INITIAL_TOLERANCE" validate:"gte=0,lt=1"`
	NodeRepeats      int     `yaml:"node_repeats" env:"NODE_REPEATS" validate:"min=1"`
	Parallelism      int     `yaml:"parallelism" env:"PARALLELISM" validate:"min=1,max=256"`
	MaxAttempts      int     `yaml:"max_attempts" env:"MAX_ATTEMPTS" validate:"min=1"`
	TreeMethod       string  `yaml:"tree_method" env:"TREE_METHOD" validate:"oneof=kruskal prim wilson"`
	Seed             int64   `yaml:"seed" env:"SEED"`
	CheckContiguity  bool    `yaml:"check_contiguity" env:"CHECK_CONTIGUITY"`

	Raster        string  `yaml:"raster" env:"RASTER"`
	LandThreshold float64 `yaml:"land_threshold" env:"LAND_THRESHOLD" validate:"gte=0"`
	CellSize      float64 `yaml:"cell_size" env:"CELL_SIZE" validate:"gt=0"`

	GridRows int `yaml:"grid_rows" env:"GRID_ROWS" validate:"min=0"`
	GridCols int `yaml:"grid_cols" env:"GRID_COLS" validate:"min=0"`

	DBPath        string `yaml:"db_path" env:"DB_PATH"`
	MetricsAddr   string `yaml:"metrics_addr" env:"METRICS_ADDR" validate:"omitempty,hostname_port"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Development   bool   `yaml:"development" env:"DEVELOPMENT"`
	ProgressEvery int    `yaml:"progress_every" env:"PROGRESS_EVERY" validate:"min=0"`
}

// Default returns the built-in settings.
func Default() Config {
	p := redistrict.DefaultParams()

	return Config{
		Region:           "REGION",
		OutputDir:        ".",
		Adjacency:        "rook",
		LandThreshold:    1,
		CellSize:         1,
		Districts:        p.NumDistricts,
		Steps:            p.TotalSteps,
		Epsilon:          p.Epsilon,
		InitialTolerance: p.PopulationTolerance,
		NodeRepeats:      p.NodeRepeats,
		Parallelism:      p.Parallelism,
		MaxAttempts:      p.MaxAttempts,
		TreeMethod:       string(p.TreeMethod),
		Seed:             p.Seed,
		LogLevel:         "info",
		ProgressEvery:    p.ProgressEvery,
	}
}

// Load returns Default overlaid with the YAML file at path (skipped when
// path is empty) and then the environment. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("config: parsing environment: %w", err)
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that exactly one input source is
// configured: a GeoJSON file, a CSV raster or a grid of GridRows x GridCols.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	grid := c.GridRows > 0 || c.GridCols > 0
	sources := 0
	for _, set := range []bool{c.Input != "", c.Raster != "", grid} {
		if set {
			sources++
		}
	}
	switch {
	case sources > 1:
		return fmt.Errorf("%w: input, raster and grid are mutually exclusive", ErrInvalid)
	case sources == 0:
		return fmt.Errorf("%w: one of input, raster or grid_rows/grid_cols is required", ErrInvalid)
	case grid && (c.GridRows < 1 || c.GridCols < 1):
		return fmt.Errorf("%w: grid needs both grid_rows and grid_cols", ErrInvalid)
	}

	return nil
}

// Params maps the engine settings onto redistrict.Params.
func (c Config) Params() redistrict.Params {
	return redistrict.Params{
		NumDistricts:        c.Districts,
		TotalSteps:          c.Steps,
		Epsilon:             c.Epsilon,
		PopulationTolerance: c.InitialTolerance,
		NodeRepeats:         c.NodeRepeats,
		Parallelism:         c.Parallelism,
		MaxAttempts:         c.MaxAttempts,
		TreeMethod:          spanning.Method(c.TreeMethod),
		Seed:                c.Seed,
		CheckContiguity:     c.CheckContiguity,
		ProgressEvery:       c.ProgressEvery,
	}
}
