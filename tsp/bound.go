// SPDX-License-Identifier: MIT
// Package tsp - Held–Karp 1-tree lower bound.
//
// For multipliers π the reduced cost of edge (i,j) is c_ij + π_i + π_j.
// A minimum 1-tree T(π) is an MST over V\{0} plus the two cheapest edges at
// node 0, and
//
//	L(π) = c'(T(π)) − 2·Σ π_i
//
// never exceeds the optimal tour length. Subgradient steps move π along
// s_i = deg_T(i) − 2; when every degree is 2 the 1-tree is a tour and L(π)
// is optimal.
//
// Complexity: O(MaxIter · n²) time, O(n) memory beyond the cost cache.

package tsp

import (
	"context"
	"math"

	"github.com/katalvlaran/linkern/core"
)

// BoundConfig controls the subgradient loop of OneTreeBound.
type BoundConfig struct {
	// MaxIter is the number of 1-trees built (≥ 1).
	MaxIter int

	// Alpha in (0, 2) scales each step.
	Alpha float64

	// UB is a known tour cost. When finite and positive, steps follow
	// α·(UB − L)/‖s‖²; otherwise α/(1+iter).
	UB float64
}

// DefaultBoundConfig returns 50 iterations, α = 0.9 and no upper bound.
func DefaultBoundConfig() BoundConfig {
	return BoundConfig{MaxIter: 50, Alpha: 0.9, UB: math.Inf(1)}
}

// OneTreeBound returns the best L(π) seen over cfg.MaxIter iterations,
// rounded to 1e-9. It stops early with the current best on ctx cancellation.
//
// Errors: ErrTooFewNodes for n < 3.
func OneTreeBound(ctx context.Context, inst *core.Instance, cfg BoundConfig) (float64, error) {
	if inst == nil || inst.Len() < 3 {
		return 0, ErrTooFewNodes
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 1
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 2 {
		cfg.Alpha = 0.9
	}
	withUB := cfg.UB > 0 && !math.IsInf(cfg.UB, 0) && !math.IsNaN(cfg.UB)

	var (
		n    = inst.Len()
		ot   = newOneTree(n, core.NewCostFunc(inst, core.DefaultCacheLimit))
		best = math.Inf(-1)
		iter int
	)
	for iter = 0; iter < cfg.MaxIter; iter++ {
		if ctx.Err() != nil && iter > 0 {
			break
		}

		var sumPi, norm2 float64
		reduced := ot.build()
		for i := 0; i < n; i++ {
			sumPi += ot.pi[i]
			d := float64(ot.deg[i] - 2)
			norm2 += d * d
		}
		bound := reduced - 2*sumPi
		if bound > best {
			best = bound
		}
		if norm2 == 0 {
			break
		}

		step := cfg.Alpha / (1 + float64(iter))
		if withUB {
			step = cfg.Alpha * math.Max(cfg.UB-bound, 0) / norm2
		}
		if step == 0 {
			break
		}
		for i := 0; i < n; i++ {
			ot.pi[i] += step * float64(ot.deg[i]-2)
		}
	}

	return round1e9(best), nil
}

// oneTree builds minimum 1-trees rooted at node 0 on reduced costs.
// Work arrays are reused across iterations.
type oneTree struct {
	n      int
	cost   core.CostFunc
	pi     []float64
	deg    []int
	key    []float64
	parent []int
	done   []bool
}

func newOneTree(n int, cost core.CostFunc) *oneTree {
	return &oneTree{
		n:      n,
		cost:   cost,
		pi:     make([]float64, n),
		deg:    make([]int, n),
		key:    make([]float64, n),
		parent: make([]int, n),
		done:   make([]bool, n),
	}
}

func (o *oneTree) reduced(u, v int) float64 { return o.cost(u, v) + o.pi[u] + o.pi[v] }

// build fills deg and returns the reduced cost of the 1-tree.
// Prim over 1..n-1 in O(n²); ties go to the lower index.
func (o *oneTree) build() float64 {
	for v := 0; v < o.n; v++ {
		o.deg[v] = 0
		o.key[v] = math.Inf(1)
		o.parent[v] = -1
		o.done[v] = false
	}
	o.key[1] = 0

	var total float64
	for k := 1; k < o.n; k++ {
		u := -1
		for v := 1; v < o.n; v++ {
			if !o.done[v] && (u < 0 || o.key[v] < o.key[u]) {
				u = v
			}
		}
		o.done[u] = true
		if p := o.parent[u]; p >= 0 {
			total += o.key[u]
			o.deg[u]++
			o.deg[p]++
		}
		for v := 1; v < o.n; v++ {
			if o.done[v] {
				continue
			}
			if c := o.reduced(u, v); c < o.key[v] {
				o.key[v] = c
				o.parent[v] = u
			}
		}
	}

	// Two cheapest edges at the root.
	m1, m2 := math.Inf(1), math.Inf(1)
	a, b := -1, -1
	for v := 1; v < o.n; v++ {
		c := o.reduced(0, v)
		switch {
		case c < m1:
			m2, b = m1, a
			m1, a = c, v
		case c < m2:
			m2, b = c, v
		}
	}
	o.deg[0] = 2
	o.deg[a]++
	o.deg[b]++

	return total + m1 + m2
}
