// SPDX-License-Identifier: MIT
// Package tsp - algorithms, options, results and sentinel errors.
//
// Errors:
//
//	ErrUnsupportedAlgorithm - Options.Algo is not one of the known algorithms.
//	ErrTooLargeForExact     - ExactHeldKarp requested for n > MaxExactNodes.
//	ErrDimensionMismatch    - a tour slice does not fit the instance.
//	ErrTooFewNodes          - fewer than 3 nodes (no Hamiltonian cycle to optimize).

package tsp

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/linkern/lk"
)

var (
	// ErrUnsupportedAlgorithm indicates an unknown Algorithm value.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrTooLargeForExact indicates an instance too large for Held–Karp.
	ErrTooLargeForExact = errors.New("tsp: instance too large for exact solver")

	// ErrDimensionMismatch indicates a tour whose length or entries do not
	// match the instance.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrTooFewNodes indicates an instance with fewer than 3 nodes.
	ErrTooFewNodes = errors.New("tsp: at least 3 nodes required")
)

// MaxExactNodes bounds ExactHeldKarp (2^16 · 16 float64 ≈ 8 MiB of DP state).
const MaxExactNodes = 16

// Algorithm selects a solver.
type Algorithm int

const (
	// LinKernighan runs the multi-run Lin-Kernighan heuristic.
	LinKernighan Algorithm = iota

	// NearestNeighbor builds a greedy tour from node 0.
	NearestNeighbor

	// ExactHeldKarp computes an optimal tour by dynamic programming.
	ExactHeldKarp

	// SimplifiedLK runs Lin-Kernighan with lk.SearchFirst: the first
	// improving closing is committed instead of the best one.
	SimplifiedLK
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case LinKernighan:
		return "lk"
	case NearestNeighbor:
		return "nn"
	case ExactHeldKarp:
		return "exact"
	case SimplifiedLK:
		return "lk2"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps "lk", "lk2", "nn" or "exact" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "lk", "":
		return LinKernighan, nil
	case "nn":
		return NearestNeighbor, nil
	case "exact":
		return ExactHeldKarp, nil
	case "lk2":
		return SimplifiedLK, nil
	}

	return 0, fmt.Errorf("algorithm %q: %w", s, ErrUnsupportedAlgorithm)
}

// Options configures Solve.
type Options struct {
	// Algo selects the solver.
	Algo Algorithm

	// LK configures the Lin-Kernighan runs of LinKernighan and SimplifiedLK.
	// Its CostCacheLimit also governs the cost function of the baselines.
	LK lk.Options

	// BoundIters > 0 computes a 1-tree lower bound with that many
	// subgradient iterations, using the found cost as upper bound.
	BoundIters int
}

// DefaultOptions returns LinKernighan with lk.DefaultOptions.
func DefaultOptions() Options {
	return Options{Algo: LinKernighan, LK: lk.DefaultOptions()}
}

// TSResult holds the outcome of Solve.
type TSResult struct {
	// Tour is the closed sequence of node indices, starting and ending at 0.
	// For n nodes, len(Tour) == n+1.
	Tour []int

	// IDs are the node IDs along Tour (same length).
	IDs []int

	// Cost is the total length of the cycle, rounded to 1e-9.
	Cost float64

	// Report holds the per-run statistics of LinKernighan and SimplifiedLK;
	// nil otherwise.
	Report *lk.Result

	// LowerBound is the 1-tree bound when Options.BoundIters > 0, else 0.
	LowerBound float64
}

// Gap returns (Cost − LowerBound) / LowerBound, or NaN without a bound.
func (r TSResult) Gap() float64 {
	if r.LowerBound <= 0 {
		return math.NaN()
	}

	return (r.Cost - r.LowerBound) / r.LowerBound
}
