// SPDX-License-Identifier: MIT
// Package tour - k-opt exchange planning and application.
//
// Design:
//   - Removed edges are oriented along the tour as (u, next(u)) and sorted by
//     pos[u]. Cutting them leaves k segments; segment i runs forward from v_i to
//     u_{i+1} (indices modulo k).
//   - Each segment has two endpoint slots (head 2i, tail 2i+1). Every added edge
//     must join two free slots; after all k edges each slot is used exactly once.
//   - Walking segment → slot partner → segment must visit all k segments before
//     returning to segment 0; otherwise the result is several subtours.
//   - Two-edge exchanges are realized by Reverse on the shorter arc, larger ones
//     by writing the new sequence into a scratch buffer and relinking.
//
// Complexity:
//   - Feasibility: O(k²) with k = len(removed).
//   - Application: O(min arc) for k == 2, O(n) otherwise.

package tour

import (
	"fmt"
	"slices"
)

// Feasible reports whether replacing removed by added yields a single
// Hamiltonian cycle. It has no observable side effects.
func (t *Tour) Feasible(removed, added []Edge) bool {
	return t.plan(removed, added) == nil
}

// ApplyExchange replaces the removed tour edges by the added edges.
//
// removed must be distinct current tour edges and added must contain the same
// number of non-loop edges whose insertion reconnects the segments into one
// cycle. On any violation ErrInfeasibleMove is returned (wrapped with detail)
// and the tour is not modified. On success the cached cost changes by
// sum(c(added)) - sum(c(removed)).
func (t *Tour) ApplyExchange(removed, added []Edge) error {
	if err := t.plan(removed, added); err != nil {
		return err
	}

	var (
		delta float64
		e     Edge
	)
	for _, e = range added {
		delta += t.cost(e.A, e.B)
	}
	for _, e = range removed {
		delta -= t.cost(e.A, e.B)
	}

	t.realize()
	t.total += delta

	return nil
}

func infeasible(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInfeasibleMove)
}

// plan validates the exchange and leaves the segment visiting order in t.ws.
func (t *Tour) plan(removed, added []Edge) error {
	k := len(removed)
	if k < 2 || len(added) != k {
		return infeasible("need k>=2 removed and as many added edges, got %d/%d", k, len(added))
	}

	ws := &t.ws
	ws.cuts = ws.cuts[:0]

	var (
		e    Edge
		c    cut
		i, s int
	)
	for _, e = range removed {
		if e.A < 0 || e.A >= t.n || e.B < 0 || e.B >= t.n {
			return infeasible("removed edge %v out of range", e)
		}
		switch {
		case t.link[e.A][1] == e.B:
			c = cut{u: e.A, v: e.B}
		case t.link[e.B][1] == e.A:
			c = cut{u: e.B, v: e.A}
		default:
			return infeasible("removed edge %v is not a tour edge", e)
		}
		for i = range ws.cuts {
			if ws.cuts[i].u == c.u {
				return infeasible("removed edge %v listed twice", e)
			}
		}
		ws.cuts = append(ws.cuts, c)
	}
	slices.SortFunc(ws.cuts, func(x, y cut) int { return t.pos[x.u] - t.pos[y.u] })

	ws.partner = resize(ws.partner, 2*k)
	for s = range ws.partner {
		ws.partner[s] = -1
	}

	var sa, sb int
	for _, e = range added {
		if e.A == e.B {
			return infeasible("added edge %v is a loop", e)
		}
		if sa = t.freeSlot(e.A, -1); sa < 0 {
			return infeasible("added edge %v: node %d has no free endpoint", e, e.A)
		}
		if sb = t.freeSlot(e.B, sa); sb < 0 {
			return infeasible("added edge %v: node %d has no free endpoint", e, e.B)
		}
		ws.partner[sa] = sb
		ws.partner[sb] = sa
	}

	// Walk the segments; each step enters a segment at one slot and leaves at
	// the other.
	ws.order = ws.order[:0]
	ws.forward = ws.forward[:0]
	var (
		seg, in = 0, 0
		step    int
	)
	for step = 0; step < k; step++ {
		ws.order = append(ws.order, seg)
		ws.forward = append(ws.forward, in == 2*seg)
		in = ws.partner[in^1]
		seg = in / 2
		if seg == 0 {
			break
		}
	}
	if step != k-1 || in != 0 {
		return infeasible("reconnection splits into subtours (%d of %d segments reached)", len(ws.order), k)
	}

	return nil
}

// slotNode returns the node sitting at endpoint slot s.
func (t *Tour) slotNode(s int) int {
	cuts := t.ws.cuts
	if s%2 == 0 {
		return cuts[s/2].v
	}

	return cuts[(s/2+1)%len(cuts)].u
}

// freeSlot finds an unused slot held by node v, skipping slot skip.
func (t *Tour) freeSlot(v, skip int) int {
	for s := range t.ws.partner {
		if s != skip && t.ws.partner[s] < 0 && t.slotNode(s) == v {
			return s
		}
	}

	return -1
}

// realize applies the plan left in t.ws by a successful plan call.
func (t *Tour) realize() {
	ws := &t.ws
	k := len(ws.cuts)

	if k == 2 {
		// Segment 0 runs v0..u1. If segment 1 is entered backwards relative to
		// segment 0, reversing segment 0 reproduces the new cycle.
		if ws.forward[1] {
			return
		}
		t.Reverse(ws.cuts[0].v, ws.cuts[1].u)
		return
	}

	seq := ws.buf[:0]
	var (
		step, seg, head, tail, v int
	)
	for step, seg = range ws.order {
		head = ws.cuts[seg].v
		tail = ws.cuts[(seg+1)%k].u
		if ws.forward[step] {
			for v = head; ; v = t.link[v][1] {
				seq = append(seq, v)
				if v == tail {
					break
				}
			}
		} else {
			for v = tail; ; v = t.link[v][0] {
				seq = append(seq, v)
				if v == head {
					break
				}
			}
		}
	}
	ws.buf = seq
	t.relink(seq)
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}

	return s[:n]
}
