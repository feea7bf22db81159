package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvdistrict/config"
	"github.com/katalvlaran/lvdistrict/spanning"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lvdistrict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 0.02, cfg.InitialTolerance)
	assert.Equal(t, "kruskal", cfg.TreeMethod)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeYAML(t, `
region: PA
districts: 17
steps: 500
epsilon: 0.03
tree_method: wilson
grid_rows: 4
grid_cols: 5
`)
	t.Setenv("LVDISTRICT_STEPS", "42")
	t.Setenv("LVDISTRICT_SEED", "7")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "PA", cfg.Region)
	assert.Equal(t, 17, cfg.Districts)
	assert.Equal(t, 42, cfg.Steps, "environment overrides file")
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 0.03, cfg.Epsilon)
	assert.Equal(t, 1, cfg.NodeRepeats, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())

	p := cfg.Params()
	assert.Equal(t, 17, p.NumDistricts)
	assert.Equal(t, 42, p.TotalSteps)
	assert.Equal(t, spanning.MethodWilson, p.TreeMethod)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeYAML(t, "districs: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	t.Setenv("LVDISTRICT_DISTRICTS", "many")
	_, err = config.Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		c := config.Default()
		c.Input = "precincts.geojson"
		return c
	}
	require.NoError(t, valid().Validate())

	raster := config.Default()
	raster.Raster = "pop.csv"
	require.NoError(t, raster.Validate())

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"districts", func(c *config.Config) { c.Districts = 0 }},
		{"epsilon", func(c *config.Config) { c.Epsilon = 1 }},
		{"method", func(c *config.Config) { c.TreeMethod = "dfs" }},
		{"adjacency", func(c *config.Config) { c.Adjacency = "hex" }},
		{"log level", func(c *config.Config) { c.LogLevel = "trace" }},
		{"region", func(c *config.Config) { c.Region = "" }},
		{"metrics addr", func(c *config.Config) { c.MetricsAddr = "not an address" }},
		{"no input", func(c *config.Config) { c.Input = "" }},
		{"input and grid", func(c *config.Config) { c.GridRows, c.GridCols = 2, 2 }},
		{"half grid", func(c *config.Config) { c.Input, c.GridRows = "", 3 }},
		{"input and raster", func(c *config.Config) { c.Raster = "pop.csv" }},
		{"cell size", func(c *config.Config) { c.CellSize = 0 }},
		{"land threshold", func(c *config.Config) { c.LandThreshold = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}
}
