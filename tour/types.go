// SPDX-License-Identifier: MIT
// Package tour - core types and sentinel errors.
//
// Errors:
//
//	ErrTooFewNodes      - a cycle needs at least three nodes.
//	ErrNotPermutation   - the initial order is not a permutation of 0..n-1.
//	ErrInfeasibleMove   - an exchange would not yield a single Hamiltonian cycle.
//	ErrCorrupt          - an internal invariant does not hold (Validate).

package tour

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linkern/core"
)

var (
	// ErrTooFewNodes indicates an order of fewer than three nodes.
	ErrTooFewNodes = errors.New("tour: at least 3 nodes required")

	// ErrNotPermutation indicates that the initial order repeats or skips a node.
	ErrNotPermutation = errors.New("tour: order is not a permutation of 0..n-1")

	// ErrInfeasibleMove indicates a rejected exchange; the tour is unchanged.
	ErrInfeasibleMove = errors.New("tour: infeasible move")

	// ErrCorrupt indicates a broken structural or cost invariant.
	ErrCorrupt = errors.New("tour: corrupt state")
)

// Edge is an undirected edge between two node indices.
type Edge struct {
	A, B int
}

// E is shorthand for Edge{A: a, B: b}.
func E(a, b int) Edge { return Edge{A: a, B: b} }

// String renders the edge as "(a,b)".
func (e Edge) String() string { return fmt.Sprintf("(%d,%d)", e.A, e.B) }

// Tour is a doubly-linked cycle over node indices 0..n-1.
type Tour struct {
	n     int
	link  [][2]int // link[v][0] = predecessor, link[v][1] = successor
	pos   []int    // pos[link[v][1]] == (pos[v]+1) % n
	cost  core.CostFunc
	total float64

	ws workspace // exchange scratch, reused across calls
}

// workspace holds reusable buffers for exchange planning and relinking.
type workspace struct {
	cuts    []cut
	partner []int
	order   []int
	forward []bool
	buf     []int
}

// cut is a removed tour edge oriented along the tour: v == next(u).
type cut struct {
	u, v int
}
