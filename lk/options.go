// SPDX-License-Identifier: MIT

package lk

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/linkern/core"
)

// InitStrategy selects how the initial tour of a run is built.
type InitStrategy int

const (
	// InitRandom shuffles the nodes with the run's RNG stream.
	InitRandom InitStrategy = iota

	// InitIdentity visits nodes in instance order.
	InitIdentity

	// InitNearestNeighbor grows a greedy nearest-neighbor path from a start
	// node drawn from the run's RNG stream.
	InitNearestNeighbor
)

// String implements fmt.Stringer.
func (s InitStrategy) String() string {
	switch s {
	case InitRandom:
		return "random"
	case InitIdentity:
		return "identity"
	case InitNearestNeighbor:
		return "nearest"
	default:
		return fmt.Sprintf("InitStrategy(%d)", int(s))
	}
}

// ParseInitStrategy maps "random", "identity" or "nearest" to a strategy.
func ParseInitStrategy(s string) (InitStrategy, error) {
	switch s {
	case "random", "":
		return InitRandom, nil
	case "identity":
		return InitIdentity, nil
	case "nearest", "nn":
		return InitNearestNeighbor, nil
	}

	return 0, fmt.Errorf("init strategy %q: %w", s, ErrConfiguration)
}

// SearchMode selects how a start node is searched.
type SearchMode int

const (
	// SearchBest explores Breadth alternatives per level and commits the best
	// closing of the whole chain tree.
	SearchBest SearchMode = iota

	// SearchFirst tries every level-1 alternative, extends each along its
	// top-ranked continuation only, and commits the first positive closing.
	SearchFirst
)

// String implements fmt.Stringer.
func (m SearchMode) String() string {
	switch m {
	case SearchBest:
		return "best"
	case SearchFirst:
		return "first"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// Options configures the search and the run loop.
type Options struct {
	// K is the number of nearest-neighbor candidates per node (clamped to n-1).
	K int

	// MaxDepth bounds the number of added edges in one chain; a closing at
	// depth d is a (d+1)-opt move.
	MaxDepth int

	// Breadth[i] is the number of alternatives extended at level i+1.
	// Levels beyond the slice extend only the best alternative.
	// SearchFirst ignores it.
	Breadth []int

	// Search selects the search mode.
	Search SearchMode

	// MaxPasses bounds the passes of one run; 0 means until convergence.
	MaxPasses int

	// Runs is the number of independent runs performed by Improve.
	Runs int

	// Seed is the base seed; 0 selects a fixed default.
	Seed uint64

	// Init selects the initial tour construction of each run.
	Init InitStrategy

	// ShuffleVisits randomizes the order in which a pass visits start nodes.
	ShuffleVisits bool

	// KickTrials is the number of random double-bridge exchanges tried after
	// each convergence; an improving one is applied and the passes resume.
	KickTrials int

	// Eps is the minimum gain regarded as an improvement.
	Eps float64

	// TimeLimit bounds the wall time of each run; 0 means no limit.
	TimeLimit time.Duration

	// Workers is the number of goroutines Improve spreads runs over.
	Workers int

	// CostCacheLimit is the largest instance precomputing a distance matrix.
	CostCacheLimit int

	// Logger receives diagnostics; nil discards them.
	Logger *slog.Logger

	// OnRunDone, when set, is called once per finished run from the worker
	// goroutine that performed it.
	OnRunDone func(RunReport)
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		K:              5,
		MaxDepth:       10,
		Breadth:        []int{5, 5},
		Search:         SearchBest,
		MaxPasses:      0,
		Runs:           1,
		Seed:           0,
		Init:           InitRandom,
		ShuffleVisits:  true,
		KickTrials:     0,
		Eps:            1e-9,
		TimeLimit:      0,
		Workers:        1,
		CostCacheLimit: core.DefaultCacheLimit,
	}
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConfiguration)
}

// Validate checks option ranges. It does not know n; K is clamped later.
// Complexity: O(len(Breadth)).
func (o Options) Validate() error {
	if o.K <= 0 {
		return configErrorf("K=%d must be > 0", o.K)
	}
	if o.MaxDepth <= 0 {
		return configErrorf("MaxDepth=%d must be > 0", o.MaxDepth)
	}
	for i, b := range o.Breadth {
		if b <= 0 {
			return configErrorf("Breadth[%d]=%d must be > 0", i, b)
		}
	}
	if o.Search < SearchBest || o.Search > SearchFirst {
		return configErrorf("unknown %v", o.Search)
	}
	if o.MaxPasses < 0 {
		return configErrorf("MaxPasses=%d must be >= 0", o.MaxPasses)
	}
	if o.Runs <= 0 {
		return configErrorf("Runs=%d must be > 0", o.Runs)
	}
	if o.Init < InitRandom || o.Init > InitNearestNeighbor {
		return configErrorf("unknown %v", o.Init)
	}
	if o.KickTrials < 0 {
		return configErrorf("KickTrials=%d must be >= 0", o.KickTrials)
	}
	if o.Eps < 0 || math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0) {
		return configErrorf("Eps=%v must be finite and >= 0", o.Eps)
	}
	if o.TimeLimit < 0 {
		return configErrorf("TimeLimit=%v must be >= 0", o.TimeLimit)
	}
	if o.Workers <= 0 {
		return configErrorf("Workers=%d must be > 0", o.Workers)
	}
	if o.CostCacheLimit < 0 {
		return configErrorf("CostCacheLimit=%d must be >= 0", o.CostCacheLimit)
	}

	return nil
}

// breadth returns the number of alternatives extended at a 1-based level.
func (o *Options) breadth(level int) int {
	if level-1 < len(o.Breadth) {
		return o.Breadth[level-1]
	}

	return 1
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.DiscardHandler)
}
