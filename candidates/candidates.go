// SPDX-License-Identifier: MIT

package candidates

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/linkern/core"
)

// ErrBadK indicates a non-positive candidate count.
var ErrBadK = errors.New("candidates: k must be > 0")

const (
	// R-tree node fan-out.
	minChildren = 25
	maxChildren = 50

	// overfetch is the number of neighbors requested beyond k.
	overfetch = 8

	// pointTol is the half side of the box each point is indexed as.
	pointTol = 1e-9
)

// Lists holds k candidates per node in a flat row-major slice.
type Lists struct {
	n, k int
	nbr  []int
}

// K returns the effective candidate count (after clamping to n-1).
func (l *Lists) K() int { return l.k }

// Len returns the number of nodes.
func (l *Lists) Len() int { return l.n }

// Of returns the candidates of v, nearest first. The slice must not be modified.
func (l *Lists) Of(v int) []int {
	return l.nbr[v*l.k : (v+1)*l.k : (v+1)*l.k]
}

// point is the R-tree item for one node.
type point struct {
	idx int
	loc rtreego.Point
}

func (p *point) Bounds() rtreego.Rect { return p.loc.ToRect(pointTol) }

type ranked struct {
	idx int
	d   float64
}

func byDistThenIndex(a, b ranked) int {
	if c := cmp.Compare(a.d, b.d); c != 0 {
		return c
	}

	return a.idx - b.idx
}

// Build computes the candidate lists of inst. k is clamped to inst.Len()-1.
// Complexity: O(n log n) expected; O(n²) worst case with massive ties.
func Build(inst *core.Instance, k int) (*Lists, error) {
	if k <= 0 {
		return nil, fmt.Errorf("Build: k=%d: %w", k, ErrBadK)
	}
	n := inst.Len()
	if k > n-1 {
		k = n - 1
	}
	l := &Lists{n: n, k: k, nbr: make([]int, n*k)}
	if k == 0 {
		return l, nil
	}

	var (
		items = make([]rtreego.Spatial, n)
		pts   = make([]*point, n)
		dim   = inst.Dim
		i     int
	)
	for i = range inst.Nodes {
		pts[i] = &point{idx: i, loc: coords(inst.Nodes[i], dim)}
		items[i] = pts[i]
	}
	tree := rtreego.NewTree(dim, minChildren, maxChildren, items...)

	var (
		fetch = min(k+overfetch, n-1)
		slack = 2 * pointTol * math.Sqrt(float64(dim))
		buf   = make([]ranked, 0, n)
		self  int
		got   []rtreego.Spatial
		s     rtreego.Spatial
		q     *point
	)
	skipSelf := func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
		return obj.(*point).idx == self, false
	}

	for self = 0; self < n; self++ {
		buf = buf[:0]
		got = tree.NearestNeighbors(fetch, pts[self].loc, skipSelf)
		for _, s = range got {
			if s == nil {
				continue
			}
			q = s.(*point)
			buf = append(buf, ranked{idx: q.idx, d: inst.Dist(self, q.idx)})
		}
		slices.SortFunc(buf, byDistThenIndex)

		// Anything not fetched is at least buf[last].d - slack away; a k-th
		// distance that close to the boundary cannot be trusted.
		if len(buf) < k || (len(buf) < n-1 && buf[k-1].d >= buf[len(buf)-1].d-slack) {
			buf = scan(inst, self, buf[:0])
		}
		for i = 0; i < k; i++ {
			l.nbr[self*k+i] = buf[i].idx
		}
	}

	return l, nil
}

// scan ranks every other node by exact distance.
func scan(inst *core.Instance, self int, buf []ranked) []ranked {
	for j := 0; j < inst.Len(); j++ {
		if j != self {
			buf = append(buf, ranked{idx: j, d: inst.Dist(self, j)})
		}
	}
	slices.SortFunc(buf, byDistThenIndex)

	return buf
}

func coords(nd core.Node, dim int) rtreego.Point {
	if dim == 3 {
		return rtreego.Point{nd.X, nd.Y, nd.Z}
	}

	return rtreego.Point{nd.X, nd.Y}
}
