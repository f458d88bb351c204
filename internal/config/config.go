// SPDX-License-Identifier: MIT

// Package config assembles the linkern binary's settings.
//
// Precedence, lowest first: built-in defaults, .env files, process
// environment (LINKERN_* variables), command-line flags. Validate runs after
// all sources have been applied.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/katalvlaran/linkern/lk"
	"github.com/katalvlaran/linkern/tsp"
)

// ErrInvalid wraps malformed environment values.
var ErrInvalid = errors.New("config: invalid value")

// Prefix is prepended to every environment variable name.
const Prefix = "LINKERN_"

// Config holds every setting of the binary.
type Config struct {
	File        string `validate:"required"`
	Algo        string `validate:"oneof=lk lk2 nn exact"`
	Runs        int    `validate:"gte=1"`
	K           int    `validate:"gte=1"`
	MaxDepth    int    `validate:"gte=1"`
	Breadth     []int  `validate:"dive,gte=1"`
	MaxPasses   int    `validate:"gte=0"`
	Seed        uint64
	Init        string `validate:"oneof=random identity nearest"`
	Shuffle     bool
	Kicks       int           `validate:"gte=0"`
	Workers     int           `validate:"gte=1"`
	TimeLimit   time.Duration `validate:"gte=0"`
	Bound       int           `validate:"gte=0"`
	OutDir      string
	TourType    string `validate:"oneof=cycle path"`
	MetricsAddr string `validate:"omitempty,hostname_port"`
	Progress    bool
}

// Default mirrors lk.DefaultOptions.
func Default() Config {
	d := lk.DefaultOptions()
	return Config{
		Algo:      tsp.LinKernighan.String(),
		Runs:      d.Runs,
		K:         d.K,
		MaxDepth:  d.MaxDepth,
		Breadth:   append([]int(nil), d.Breadth...),
		MaxPasses: d.MaxPasses,
		Seed:      d.Seed,
		Init:      d.Init.String(),
		Shuffle:   d.ShuffleVisits,
		Kicks:     d.KickTrials,
		Workers:   d.Workers,
		TimeLimit: d.TimeLimit,
		OutDir:    ".",
		TourType:  "cycle",
	}
}

// Load returns Default overlaid with the given .env files (missing files are
// skipped) and then with the process environment.
func Load(envFiles ...string) (Config, error) {
	fileVals := map[string]string{}
	for _, name := range envFiles {
		vals, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", name, err)
		}
		for k, v := range vals {
			if _, seen := fileVals[k]; !seen {
				fileVals[k] = v
			}
		}
	}

	c := Default()
	err := c.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	})

	return c, err
}

// ApplyEnv overrides fields whose LINKERN_* variable is reported by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var firstErr error
	get := func(name string, set func(string) error) {
		v, ok := lookup(Prefix + name)
		if !ok || firstErr != nil {
			return
		}
		if err := set(strings.TrimSpace(v)); err != nil {
			firstErr = fmt.Errorf("%s%s=%q: %w", Prefix, name, v, ErrInvalid)
		}
	}

	get("FILE", setString(&c.File))
	get("ALGO", setString(&c.Algo))
	get("RUNS", setInt(&c.Runs))
	get("K", setInt(&c.K))
	get("MAX_DEPTH", setInt(&c.MaxDepth))
	get("BREADTH", (*intList)(&c.Breadth).Set)
	get("MAX_PASSES", setInt(&c.MaxPasses))
	get("SEED", func(s string) (err error) {
		c.Seed, err = strconv.ParseUint(s, 10, 64)
		return err
	})
	get("INIT", setString(&c.Init))
	get("SHUFFLE", setBool(&c.Shuffle))
	get("KICKS", setInt(&c.Kicks))
	get("WORKERS", setInt(&c.Workers))
	get("TIME_LIMIT", func(s string) (err error) {
		c.TimeLimit, err = time.ParseDuration(s)
		return err
	})
	get("BOUND", setInt(&c.Bound))
	get("OUT_DIR", setString(&c.OutDir))
	get("TOUR_TYPE", setString(&c.TourType))
	get("METRICS_ADDR", setString(&c.MetricsAddr))
	get("PROGRESS", setBool(&c.Progress))

	return firstErr
}

// BindFlags registers one flag per field, using the current values as
// defaults so that flags override the environment.
func (c *Config) BindFlags(set *flag.FlagSet) {
	set.StringVar(&c.File, "f", c.File, "input TSPLIB file (EUC_2D or EUC_3D)")
	set.StringVar(&c.Algo, "algo", c.Algo, "solver: lk, lk2 (first improvement), nn or exact")
	set.IntVar(&c.Runs, "runs", c.Runs, "independent LK runs")
	set.IntVar(&c.K, "k", c.K, "candidate neighbors per node")
	set.IntVar(&c.MaxDepth, "depth", c.MaxDepth, "maximum added edges per move")
	set.Var((*intList)(&c.Breadth), "breadth", "alternatives per level, comma separated")
	set.IntVar(&c.MaxPasses, "passes", c.MaxPasses, "passes per run (0 = until convergence)")
	set.Uint64Var(&c.Seed, "seed", c.Seed, "base seed (0 = default)")
	set.StringVar(&c.Init, "init", c.Init, "initial tour: random, identity or nearest")
	set.BoolVar(&c.Shuffle, "shuffle", c.Shuffle, "shuffle the visiting order of each pass")
	set.IntVar(&c.Kicks, "kicks", c.Kicks, "double-bridge trials after convergence")
	set.IntVar(&c.Workers, "workers", c.Workers, "goroutines sharing the runs")
	set.DurationVar(&c.TimeLimit, "time-limit", c.TimeLimit, "wall time per run (0 = none)")
	set.IntVar(&c.Bound, "bound", c.Bound, "subgradient iterations of the 1-tree lower bound (0 = skip)")
	set.StringVar(&c.OutDir, "out", c.OutDir, "directory of the solution file (empty = do not write)")
	set.StringVar(&c.TourType, "tour-type", c.TourType, "solution layout: cycle or path")
	set.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on host:port")
	set.BoolVar(&c.Progress, "progress", c.Progress, "show a progress bar over runs")
}

// Validate checks every field against its tag.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// SolveOptions converts c into solver options; logger and onRunDone may be nil.
func (c Config) SolveOptions(logger *slog.Logger, onRunDone func(lk.RunReport)) (tsp.Options, error) {
	algo, err := tsp.ParseAlgorithm(c.Algo)
	if err != nil {
		return tsp.Options{}, err
	}
	strategy, err := lk.ParseInitStrategy(c.Init)
	if err != nil {
		return tsp.Options{}, err
	}

	o := lk.DefaultOptions()
	o.K = c.K
	o.MaxDepth = c.MaxDepth
	o.Breadth = append([]int(nil), c.Breadth...)
	o.MaxPasses = c.MaxPasses
	o.Runs = c.Runs
	o.Seed = c.Seed
	o.Init = strategy
	o.ShuffleVisits = c.Shuffle
	o.KickTrials = c.Kicks
	o.Workers = c.Workers
	o.TimeLimit = c.TimeLimit
	o.Logger = logger
	o.OnRunDone = onRunDone

	return tsp.Options{Algo: algo, LK: o, BoundIters: c.Bound}, nil
}

func setString(dst *string) func(string) error {
	return func(s string) error { *dst = s; return nil }
}

func setInt(dst *int) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.Atoi(s)
		return err
	}
}

func setBool(dst *bool) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.ParseBool(s)
		return err
	}
}

// intList is a comma-separated list of integers, usable as a flag.Value.
type intList []int

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*l = out

	return nil
}
