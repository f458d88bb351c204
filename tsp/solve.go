// SPDX-License-Identifier: MIT
// Package tsp - unified dispatcher.
//
// Design principles:
//   - Validation happens once, before any algorithm runs.
//   - Every algorithm returns a closed index tour starting at 0; the dispatcher
//     attaches IDs and a rounded cost.
//   - Deterministic: randomness only through Options.LK.Seed.

package tsp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/linkern/core"
	"github.com/katalvlaran/linkern/lk"
	"github.com/katalvlaran/linkern/tour"
)

// Solve validates inst and opts and runs the selected algorithm.
//
// Errors: ErrTooFewNodes (n < 3), ErrUnsupportedAlgorithm, ErrTooLargeForExact,
// and lk.ErrConfiguration for invalid LK options or a negative BoundIters.
func Solve(ctx context.Context, inst *core.Instance, opts Options) (TSResult, error) {
	if inst == nil || inst.Len() < 3 {
		return TSResult{}, ErrTooFewNodes
	}
	if err := opts.LK.Validate(); err != nil {
		return TSResult{}, err
	}
	if opts.BoundIters < 0 {
		return TSResult{}, fmt.Errorf("Solve: BoundIters=%d: %w", opts.BoundIters, lk.ErrConfiguration)
	}

	var (
		order  []int
		closed []int
		report *lk.Result
		n      = inst.Len()
	)
	switch opts.Algo {
	case LinKernighan, SimplifiedLK:
		lkOpts := opts.LK
		if opts.Algo == SimplifiedLK {
			lkOpts.Search = lk.SearchFirst
		}
		res, err := lk.Improve(ctx, inst, lkOpts)
		if err != nil {
			return TSResult{}, err
		}
		order, report = res.Tour.Sequence(), res

	case NearestNeighbor:
		cost := core.NewCostFunc(inst, opts.LK.CostCacheLimit)
		order = tour.NearestNeighbor(n, cost, 0)

	case ExactHeldKarp:
		if n > MaxExactNodes {
			return TSResult{}, fmt.Errorf("Solve: n=%d: %w", n, ErrTooLargeForExact)
		}
		dist, err := core.DistanceMatrix(inst)
		if err != nil {
			return TSResult{}, err
		}
		closed, _, err = heldKarp(dist)
		if err != nil {
			return TSResult{}, err
		}

	default:
		return TSResult{}, fmt.Errorf("Solve: %v: %w", opts.Algo, ErrUnsupportedAlgorithm)
	}

	if closed == nil {
		closed = closeAtZero(order)
	}
	cost, err := TourCost(inst, closed)
	if err != nil {
		return TSResult{}, err
	}

	res := TSResult{
		Tour:   closed,
		IDs:    inst.IDs(closed),
		Cost:   cost,
		Report: report,
	}
	if opts.BoundIters > 0 {
		cfg := DefaultBoundConfig()
		cfg.MaxIter = opts.BoundIters
		cfg.UB = cost
		if res.LowerBound, err = OneTreeBound(ctx, inst, cfg); err != nil {
			return TSResult{}, err
		}
	}

	return res, nil
}
