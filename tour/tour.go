// SPDX-License-Identifier: MIT

package tour

import (
	"fmt"

	"github.com/katalvlaran/linkern/core"
)

// New builds a tour visiting order[0], order[1], ..., order[n-1] and back.
//
// order must be a permutation of 0..n-1 with n >= 3. cost is used for the cached
// total and for exchange deltas; it must be symmetric.
// Complexity: O(n).
func New(order []int, cost core.CostFunc) (*Tour, error) {
	n := len(order)
	if n < 3 {
		return nil, fmt.Errorf("New: n=%d: %w", n, ErrTooFewNodes)
	}

	var (
		seen = make([]bool, n)
		v    int
	)
	for _, v = range order {
		if v < 0 || v >= n || seen[v] {
			return nil, fmt.Errorf("New: node %d: %w", v, ErrNotPermutation)
		}
		seen[v] = true
	}

	t := &Tour{
		n:    n,
		link: make([][2]int, n),
		pos:  make([]int, n),
		cost: cost,
	}
	t.relink(order)
	t.total = t.sum()

	return t, nil
}

// relink rebuilds links and positions from a visiting sequence of length n.
func (t *Tour) relink(seq []int) {
	n := t.n
	for i, v := range seq {
		t.pos[v] = i
		t.link[v][0] = seq[(i+n-1)%n]
		t.link[v][1] = seq[(i+1)%n]
	}
}

func (t *Tour) sum() float64 {
	var (
		s float64
		v int
	)
	for v = 0; v < t.n; v++ {
		s += t.cost(v, t.link[v][1])
	}

	return s
}

// Len returns the number of nodes.
func (t *Tour) Len() int { return t.n }

// Next returns the successor of v.
func (t *Tour) Next(v int) int { return t.link[v][1] }

// Prev returns the predecessor of v.
func (t *Tour) Prev(v int) int { return t.link[v][0] }

// Neighbors returns (Prev(v), Next(v)).
func (t *Tour) Neighbors(v int) (int, int) { return t.link[v][0], t.link[v][1] }

// Cost returns the cached total cost.
func (t *Tour) Cost() float64 { return t.total }

// EdgeCost evaluates the tour's cost function on (a, b).
func (t *Tour) EdgeCost(a, b int) float64 { return t.cost(a, b) }

// Recompute sums all edge costs from scratch, stores and returns the result.
func (t *Tour) Recompute() float64 {
	t.total = t.sum()
	return t.total
}

// HasEdge reports whether a and b are adjacent in the tour.
func (t *Tour) HasEdge(a, b int) bool {
	return t.link[a][1] == b || t.link[a][0] == b
}

// Between reports whether, walking forward from a, b is reached no later
// than c. The interval is inclusive at both ends.
// Complexity: O(1).
func (t *Tour) Between(a, b, c int) bool {
	pa, pb, pc := t.pos[a], t.pos[b], t.pos[c]
	if pa <= pc {
		return pa <= pb && pb <= pc
	}

	return pb >= pa || pb <= pc
}

// Sequence returns the visiting order starting at node 0 and following
// successors.
func (t *Tour) Sequence() []int {
	seq := make([]int, t.n)
	v := 0
	for i := range seq {
		seq[i] = v
		v = t.link[v][1]
	}

	return seq
}

// Edges returns the n tour edges as (v, Next(v)) in visiting order from node 0.
func (t *Tour) Edges() []Edge {
	out := make([]Edge, t.n)
	v := 0
	for i := range out {
		out[i] = Edge{A: v, B: t.link[v][1]}
		v = t.link[v][1]
	}

	return out
}

// Clone returns an independent copy sharing only the cost function.
func (t *Tour) Clone() *Tour {
	c := &Tour{
		n:     t.n,
		link:  make([][2]int, t.n),
		pos:   make([]int, t.n),
		cost:  t.cost,
		total: t.total,
	}
	copy(c.link, t.link)
	copy(c.pos, t.pos)

	return c
}

// Reverse reverses the forward path a..b (inclusive). When the complementary
// arc next(b)..prev(a) is shorter it is reversed instead, which yields the same
// cycle. The cached cost is not updated; see Recompute.
// Complexity: O(min(len(path), n-len(path))).
func (t *Tour) Reverse(a, b int) {
	n := t.n
	length := (t.pos[b]-t.pos[a]+n)%n + 1
	if length == n {
		return
	}
	if 2*length > n {
		a, b = t.link[b][1], t.link[a][0]
		length = n - length
	}
	t.reversePath(a, b, length)
}

// reversePath flips a path of the given length starting at a and ending at b.
func (t *Tour) reversePath(a, b, length int) {
	var (
		n    = t.n
		p    = t.link[a][0]
		q    = t.link[b][1]
		base = t.pos[a]
		path = t.ws.buf[:0]
		v    int
		i    int
	)
	for v, i = a, 0; i < length; i++ {
		path = append(path, v)
		v = t.link[v][1]
	}
	t.ws.buf = path

	for i, v = range path {
		t.link[v][0], t.link[v][1] = t.link[v][1], t.link[v][0]
		t.pos[v] = (base + length - 1 - i) % n
	}
	t.link[b][0] = p
	t.link[a][1] = q
	t.link[p][1] = b
	t.link[q][0] = a
}
