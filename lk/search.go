// SPDX-License-Identifier: MIT
// Package lk - sequential move search from one start node.
//
// Notation: the chain removes x_i = (t_{2i-1}, t_{2i}) and adds
// y_i = (t_{2i}, t_{2i+1}); the open gain after x_i is G_i = Σc(x) - Σc(y).
// Closing at level i adds (t_{2i+2}, t1) and yields
//
//	G_i - c(y_i) + c(x_{i+1}) - c(t_{2i+2}, t1).
//
// Complexity per start node: O(2 · Π breadth(level) · K · 2 · depth²) feasibility
// work in the worst case; with the default breadth {5, 5} the product stays small.
// SearchFirst follows one path per level-1 alternative, O(K · depth²) each.

package lk

import (
	"math"
	"slices"

	"github.com/katalvlaran/linkern/candidates"
	"github.com/katalvlaran/linkern/tour"
)

// alt is one (t3, t4) continuation at a level, with a feasible closing.
type alt struct {
	t3, t4 int
	cy, cx float64 // c(y) and c(x)
}

// frame is one level of the explicit search stack.
type frame struct {
	level int     // number of added edges once an alt of this frame is taken
	gain  float64 // open gain G before y of this level
	alts  []alt
	next  int // cursor into alts
}

// move is a recorded best closing.
type move struct {
	ok      bool
	gain    float64
	level   int
	removed []tour.Edge
	added   []tour.Edge
}

// searchStats counts closing tests and dropped moves.
type searchStats struct {
	feasible     int
	infeasible   int
	inconsistent int
}

// engine holds the reusable buffers of the move search for one run.
type engine struct {
	t     *tour.Tour
	cand  *candidates.Lists
	opts  *Options
	eps   float64
	stats searchStats

	ts      []int       // t1, t2, ..., t_{2i}
	removed []tour.Edge // x_1..x_i
	added   []tour.Edge // y_1..y_{i-1}
	stack   []frame
	pool    [][]alt // alternatives buffer per level
	best    move

	scratchR []tour.Edge
	scratchA []tour.Edge
}

func newEngine(t *tour.Tour, cand *candidates.Lists, opts *Options) *engine {
	d := opts.MaxDepth
	return &engine{
		t:        t,
		cand:     cand,
		opts:     opts,
		eps:      opts.Eps,
		ts:       make([]int, 0, 2*d+2),
		removed:  make([]tour.Edge, 0, d+1),
		added:    make([]tour.Edge, 0, d+1),
		stack:    make([]frame, 0, d),
		pool:     make([][]alt, d+1),
		scratchR: make([]tour.Edge, 0, d+1),
		scratchA: make([]tour.Edge, 0, d+1),
		best: move{
			removed: make([]tour.Edge, 0, d+1),
			added:   make([]tour.Edge, 0, d+1),
		},
	}
}

// search runs the configured search mode from t1.
func (e *engine) search(t1 int) *move {
	if e.opts.Search == SearchFirst {
		return e.improveFirst(t1)
	}

	return e.improve(t1)
}

// improve searches from t1 and commits the best move found for the first
// successful choice of t2. It returns the committed move (valid until the next
// call) or nil.
func (e *engine) improve(t1 int) *move {
	for _, t2 := range [2]int{e.t.Next(t1), e.t.Prev(t1)} {
		e.searchFrom(t1, t2)
		if !e.best.ok {
			continue
		}
		if e.commit() {
			return &e.best
		}
	}

	return nil
}

// improveFirst is the simplified search: every level-1 alternative opens a
// chain that is extended greedily along its top-ranked continuation, and the
// first closing with a positive gain is committed at once.
func (e *engine) improveFirst(t1 int) *move {
	var g float64
	for _, t2 := range [2]int{e.t.Next(t1), e.t.Prev(t1)} {
		e.reset(t1, t2)
		g = e.t.EdgeCost(t1, t2)
		for _, a := range e.expand(1, g, false) {
			if e.descend(a, g) {
				return &e.best
			}
		}
	}

	return nil
}

// descend follows a single path from the level-1 alternative a. The chain is
// restored to its first removed edge unless a move was committed.
func (e *engine) descend(a alt, gain float64) bool {
	var (
		t1    = e.ts[0]
		level = 1
		open  float64
		gc    float64
		t2i   int
		next  []alt
	)
	for {
		t2i = e.ts[len(e.ts)-1]
		e.ts = append(e.ts, a.t3, a.t4)
		e.added = append(e.added, tour.E(t2i, a.t3))
		e.removed = append(e.removed, tour.E(a.t3, a.t4))

		open = gain - a.cy + a.cx
		gc = open - e.t.EdgeCost(a.t4, t1)
		if gc > e.eps {
			e.best.ok = true
			e.best.gain = gc
			e.best.level = level
			e.best.removed = append(e.best.removed[:0], e.removed...)
			e.best.added = append(append(e.best.added[:0], e.added...), tour.E(a.t4, t1))
			if e.commit() {
				return true
			}
			e.best.ok = false
			break
		}
		if open <= e.eps || level >= e.opts.MaxDepth {
			break
		}
		if next = e.expand(level+1, open, false); len(next) == 0 {
			break
		}
		a, gain, level = next[0], open, level+1
	}

	e.ts = e.ts[:2]
	e.added = e.added[:0]
	e.removed = e.removed[:1]

	return false
}

// reset starts a new chain at (t1, t2) and clears the best move.
func (e *engine) reset(t1, t2 int) {
	e.best.ok = false
	e.best.gain = 0
	e.best.level = 0
	e.ts = append(e.ts[:0], t1, t2)
	e.removed = append(e.removed[:0], tour.E(t1, t2))
	e.added = e.added[:0]
	e.stack = e.stack[:0]
}

// searchFrom runs the bounded depth-first chain search for a fixed (t1, t2).
func (e *engine) searchFrom(t1, t2 int) {
	e.reset(t1, t2)

	g := e.t.EdgeCost(t1, t2)
	e.push(1, g)

	var f *frame
	for len(e.stack) > 0 {
		f = &e.stack[len(e.stack)-1]
		if f.next == len(f.alts) {
			e.stack = e.stack[:len(e.stack)-1]
			if len(e.stack) > 0 {
				e.pop()
			}
			continue
		}
		a := f.alts[f.next]
		f.next++

		level, open := f.level, f.gain-a.cy+a.cx
		t2i := e.ts[len(e.ts)-1]
		e.ts = append(e.ts, a.t3, a.t4)
		e.added = append(e.added, tour.E(t2i, a.t3))
		e.removed = append(e.removed, tour.E(a.t3, a.t4))

		if open > e.eps && level < e.opts.MaxDepth && e.push(level+1, open) {
			continue
		}
		e.pop()
	}
}

// pop undoes the last (y, x) step of the chain.
func (e *engine) pop() {
	e.ts = e.ts[:len(e.ts)-2]
	e.added = e.added[:len(e.added)-1]
	e.removed = e.removed[:len(e.removed)-1]
}

// push generates the alternatives of a level and pushes a frame when there are
// any. Every feasible closing met on the way is offered to the best move.
func (e *engine) push(level int, gain float64) bool {
	out := e.expand(level, gain, true)
	if len(out) == 0 {
		return false
	}
	if w := e.opts.breadth(level); len(out) > w {
		out = out[:w]
	}
	e.stack = append(e.stack, frame{level: level, gain: gain, alts: out})

	return true
}

// expand lists the (t3, t4) continuations of the chain at level whose closing
// is feasible, ranked by lookahead. With offer set, each closing is offered to
// the best move. The result aliases the level's pool buffer.
func (e *engine) expand(level int, gain float64, offer bool) []alt {
	var (
		t1  = e.ts[0]
		t2i = e.ts[len(e.ts)-1]
		out = e.pool[level-1][:0]
		cy  float64
		cx  float64
	)
	for _, t3 := range e.cand.Of(t2i) {
		cy = e.t.EdgeCost(t2i, t3)
		if gain-cy <= e.eps {
			break // candidates ascend by distance
		}
		if t3 == t1 || e.t.HasEdge(t2i, t3) || contains(e.added, t2i, t3) {
			continue
		}
		for _, t4 := range [2]int{e.t.Next(t3), e.t.Prev(t3)} {
			if t4 == t1 || contains(e.removed, t3, t4) {
				continue
			}
			e.scratchR = append(append(e.scratchR[:0], e.removed...), tour.E(t3, t4))
			e.scratchA = append(append(e.scratchA[:0], e.added...), tour.E(t2i, t3), tour.E(t4, t1))
			if !e.t.Feasible(e.scratchR, e.scratchA) {
				e.stats.infeasible++
				continue
			}
			e.stats.feasible++

			cx = e.t.EdgeCost(t3, t4)
			if offer {
				e.offer(gain-cy+cx-e.t.EdgeCost(t4, t1), level)
			}
			out = append(out, alt{t3: t3, t4: t4, cy: cy, cx: cx})
		}
	}
	e.pool[level-1] = out

	// Lookahead ranking: prefer a long removed edge behind a short added one.
	slices.SortStableFunc(out, func(a, b alt) int {
		ra, rb := a.cx-a.cy, b.cx-b.cy
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		}
		return 0
	})

	return out
}

// offer records the closing whose edges are in scratchR/scratchA when it beats
// the best so far; an equal gain wins only at a deeper level.
func (e *engine) offer(g float64, level int) {
	if g <= e.eps {
		return
	}
	if e.best.ok {
		switch {
		case g > e.best.gain+e.eps:
		case math.Abs(g-e.best.gain) <= e.eps && level > e.best.level:
		default:
			return
		}
	}
	e.best.ok = true
	e.best.gain = g
	e.best.level = level
	e.best.removed = append(e.best.removed[:0], e.scratchR...)
	e.best.added = append(e.best.added[:0], e.scratchA...)
}

// commit re-verifies the best move's gain and applies it to the tour.
func (e *engine) commit() bool {
	var (
		sum   float64
		scale float64
		c     float64
	)
	for _, x := range e.best.removed {
		c = e.t.EdgeCost(x.A, x.B)
		sum += c
		scale += c
	}
	for _, y := range e.best.added {
		c = e.t.EdgeCost(y.A, y.B)
		sum -= c
		scale += c
	}
	if math.Abs(sum-e.best.gain) > gainTolerance*math.Max(1, scale) {
		e.stats.inconsistent++
		e.opts.logger().Debug("lk: dropping move",
			"err", ErrGainInconsistency,
			"tracked", e.best.gain,
			"recomputed", sum,
			"k", len(e.best.removed),
		)
		return false
	}

	if err := e.t.ApplyExchange(e.best.removed, e.best.added); err != nil {
		e.stats.infeasible++
		e.opts.logger().Debug("lk: exchange rejected at commit", "err", err)
		return false
	}

	return true
}

// gainTolerance bounds |tracked - recomputed| relative to the edge cost mass.
const gainTolerance = 1e-9

// contains reports whether the undirected edge (a, b) is in edges.
func contains(edges []tour.Edge, a, b int) bool {
	for _, x := range edges {
		if (x.A == a && x.B == b) || (x.A == b && x.B == a) {
			return true
		}
	}

	return false
}
