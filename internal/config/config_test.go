// SPDX-License-Identifier: MIT

package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/linkern/internal/config"
	"github.com/katalvlaran/linkern/lk"
	"github.com/katalvlaran/linkern/tsp"
	"github.com/stretchr/testify/require"
)

func lookupOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultMatchesLK(t *testing.T) {
	c := config.Default()
	d := lk.DefaultOptions()
	require.Equal(t, "lk", c.Algo)
	require.Equal(t, d.K, c.K)
	require.Equal(t, d.Breadth, c.Breadth)
	require.Equal(t, "random", c.Init)
	require.Equal(t, "cycle", c.TourType)

	// Only the input file is missing.
	c.File = "in.tsp"
	require.NoError(t, c.Validate())
}

func TestApplyEnv(t *testing.T) {
	c := config.Default()
	err := c.ApplyEnv(lookupOf(map[string]string{
		"LINKERN_FILE":       "a.tsp",
		"LINKERN_ALGO":       "exact",
		"LINKERN_RUNS":       " 12 ",
		"LINKERN_BREADTH":    "8, 4,2",
		"LINKERN_SEED":       "18446744073709551615",
		"LINKERN_SHUFFLE":    "false",
		"LINKERN_TIME_LIMIT": "1m30s",
		"LINKERN_PROGRESS":   "1",
	}))
	require.NoError(t, err)
	require.Equal(t, "a.tsp", c.File)
	require.Equal(t, "exact", c.Algo)
	require.Equal(t, 12, c.Runs)
	require.Equal(t, []int{8, 4, 2}, c.Breadth)
	require.Equal(t, uint64(18446744073709551615), c.Seed)
	require.False(t, c.Shuffle)
	require.Equal(t, 90*time.Second, c.TimeLimit)
	require.True(t, c.Progress)
	require.Equal(t, 5, c.K)
}

func TestApplyEnvInvalid(t *testing.T) {
	for _, kv := range [][2]string{
		{"LINKERN_RUNS", "many"},
		{"LINKERN_BREADTH", "5,x"},
		{"LINKERN_SEED", "-1"},
		{"LINKERN_TIME_LIMIT", "soon"},
		{"LINKERN_PROGRESS", "maybe"},
	} {
		c := config.Default()
		err := c.ApplyEnv(lookupOf(map[string]string{kv[0]: kv[1]}))
		require.ErrorIs(t, err, config.ErrInvalid, kv[0])
		require.Contains(t, err.Error(), kv[0])
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("LINKERN_FILE=from-file.tsp\nLINKERN_RUNS=7\nLINKERN_K=9\n"), 0o600))
	t.Setenv("LINKERN_RUNS", "3")

	c, err := config.Load(filepath.Join(dir, "missing.env"), env)
	require.NoError(t, err)
	require.Equal(t, "from-file.tsp", c.File)
	require.Equal(t, 3, c.Runs)
	require.Equal(t, 9, c.K)
}

func TestBindFlagsOverride(t *testing.T) {
	c := config.Default()
	c.Runs = 4

	set := flag.NewFlagSet("linkern", flag.ContinueOnError)
	c.BindFlags(set)
	require.NoError(t, set.Parse([]string{"-f", "x.tsp", "-breadth", "3,3,1", "-algo", "nn", "-time-limit", "2s"}))

	require.Equal(t, "x.tsp", c.File)
	require.Equal(t, 4, c.Runs)
	require.Equal(t, []int{3, 3, 1}, c.Breadth)
	require.Equal(t, "nn", c.Algo)
	require.Equal(t, 2*time.Second, c.TimeLimit)
}

func TestValidate(t *testing.T) {
	base := config.Default()
	base.File = "in.tsp"

	tests := []struct {
		name  string
		mut   func(*config.Config)
		field string
	}{
		{"no file", func(c *config.Config) { c.File = "" }, "File"},
		{"algo", func(c *config.Config) { c.Algo = "ga" }, "Algo"},
		{"runs", func(c *config.Config) { c.Runs = 0 }, "Runs"},
		{"breadth", func(c *config.Config) { c.Breadth = []int{5, 0} }, "Breadth[1]"},
		{"init", func(c *config.Config) { c.Init = "greedy" }, "Init"},
		{"tour type", func(c *config.Config) { c.TourType = "loop" }, "TourType"},
		{"time limit", func(c *config.Config) { c.TimeLimit = -time.Second }, "TimeLimit"},
		{"bound", func(c *config.Config) { c.Bound = -1 }, "Bound"},
		{"metrics addr", func(c *config.Config) { c.MetricsAddr = "nowhere" }, "MetricsAddr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			c.Breadth = append([]int(nil), base.Breadth...)
			tc.mut(&c)

			err := c.Validate()
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			require.Equal(t, tc.field, verrs[0].Field())
		})
	}

	ok := base
	ok.MetricsAddr = "localhost:9090"
	require.NoError(t, ok.Validate())
}

func TestSolveOptions(t *testing.T) {
	c := config.Default()
	c.Algo = "exact"
	c.Init = "nearest"
	c.Runs = 6
	c.Breadth = []int{2}
	c.Kicks = 3
	c.Bound = 20

	calls := 0
	opts, err := c.SolveOptions(nil, func(lk.RunReport) { calls++ })
	require.NoError(t, err)
	require.Equal(t, tsp.ExactHeldKarp, opts.Algo)
	require.Equal(t, lk.InitNearestNeighbor, opts.LK.Init)
	require.Equal(t, 6, opts.LK.Runs)
	require.Equal(t, []int{2}, opts.LK.Breadth)
	require.Equal(t, 3, opts.LK.KickTrials)
	require.Equal(t, 20, opts.BoundIters)
	require.NoError(t, opts.LK.Validate())
	opts.LK.OnRunDone(lk.RunReport{})
	require.Equal(t, 1, calls)

	c.Algo = "lk2"
	require.NoError(t, c.Validate())
	opts, err = c.SolveOptions(nil, nil)
	require.NoError(t, err)
	require.Equal(t, tsp.SimplifiedLK, opts.Algo)

	c.Algo = "ga"
	_, err = c.SolveOptions(nil, nil)
	require.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)
}
