// SPDX-License-Identifier: MIT

package tour_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linkern/core"
	"github.com/katalvlaran/linkern/tour"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadOrders(t *testing.T) {
	cost := unitSquare(t).Dist

	_, err := tour.New([]int{0, 1}, cost)
	require.ErrorIs(t, err, tour.ErrTooFewNodes)

	_, err = tour.New([]int{0, 1, 1, 3}, cost)
	require.ErrorIs(t, err, tour.ErrNotPermutation)

	_, err = tour.New([]int{0, 1, 2, 4}, cost)
	require.ErrorIs(t, err, tour.ErrNotPermutation)
}

func TestNewLinksAndCost(t *testing.T) {
	inst := unitSquare(t)
	tr, err := tour.New([]int{0, 2, 1, 3}, inst.Dist)
	require.NoError(t, err)
	require.NoError(t, tr.Validate())

	require.Equal(t, 4, tr.Len())
	require.Equal(t, 2, tr.Next(0))
	require.Equal(t, 3, tr.Prev(0))
	p, n := tr.Neighbors(1)
	require.Equal(t, 2, p)
	require.Equal(t, 3, n)
	require.True(t, tr.HasEdge(1, 2))
	require.False(t, tr.HasEdge(0, 1))
	require.InDelta(t, 2+2*math.Sqrt2, tr.Cost(), epsCost)
	require.Equal(t, []int{0, 2, 1, 3}, tr.Sequence())
	require.Equal(t, []tour.Edge{tour.E(0, 2), tour.E(2, 1), tour.E(1, 3), tour.E(3, 0)}, tr.Edges())
}

// TestRecompute: raw reversals leave the cached cost stale; Recompute brings
// it back to the sum over the edge list.
func TestRecompute(t *testing.T) {
	inst := randomInstance(t, 50, 3)
	tr, err := tour.New(tour.Identity(50), inst.Dist)
	require.NoError(t, err)
	initial := tr.Cost()
	for i := 0; i < 40; i++ {
		a := (7 * i) % 50
		tr.Reverse(a, (a+13+i)%50)
	}
	require.Equal(t, initial, tr.Cost())

	var want float64
	for _, e := range tr.Edges() {
		want += inst.Dist(e.A, e.B)
	}
	require.InDelta(t, want, tr.Recompute(), 1e-9)
	require.InDelta(t, want, tr.Cost(), 1e-9)
	require.NotEqual(t, initial, tr.Cost())
	require.NoError(t, tr.Validate())
}

func TestBetween(t *testing.T) {
	inst := circleInstance(t, 6)
	tr, err := tour.New([]int{3, 4, 5, 0, 1, 2}, inst.Dist)
	require.NoError(t, err)

	tests := []struct {
		a, b, c int
		want    bool
	}{
		{3, 4, 5, true},
		{3, 3, 5, true},
		{3, 5, 5, true},
		{5, 1, 2, true},
		{1, 3, 5, true}, // wraps past the end of the position range
		{5, 3, 2, false},
		{0, 4, 2, false},
		{1, 0, 0, true},
		{2, 2, 2, true},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tr.Between(tc.a, tc.b, tc.c), "between(%d,%d,%d)", tc.a, tc.b, tc.c)
	}
}

func TestReverseShortAndLongArcs(t *testing.T) {
	inst := circleInstance(t, 8)
	tr, err := tour.New(tour.Identity(8), inst.Dist)
	require.NoError(t, err)

	tr.Reverse(2, 4) // short arc
	require.NoError(t, tr.Validate())
	require.Equal(t, []int{0, 1, 4, 3, 2, 5, 6, 7}, tr.Sequence())

	tr.Reverse(5, 1) // 5,6,7,0,1: the shorter complement 4,3,2 is flipped instead
	require.NoError(t, tr.Validate())
	require.Equal(t, tour.Identity(8), tr.Sequence())
}

func TestReverseWholeCycleIsNoop(t *testing.T) {
	inst := circleInstance(t, 5)
	tr, err := tour.New(tour.Identity(5), inst.Dist)
	require.NoError(t, err)
	tr.Reverse(0, 4)
	require.Equal(t, tour.Identity(5), tr.Sequence())
	tr.Reverse(3, 3)
	require.Equal(t, tour.Identity(5), tr.Sequence())
	require.NoError(t, tr.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	inst := unitSquare(t)
	tr, err := tour.New([]int{0, 2, 1, 3}, inst.Dist)
	require.NoError(t, err)

	c := tr.Clone()
	require.NoError(t, tr.ApplyExchange(
		[]tour.Edge{tour.E(0, 2), tour.E(1, 3)},
		[]tour.Edge{tour.E(0, 1), tour.E(2, 3)},
	))
	require.Equal(t, []int{0, 2, 1, 3}, c.Sequence())
	require.NoError(t, c.Validate())
}

func TestConstructions(t *testing.T) {
	inst, err := core.NewInstance("line", 2, []core.Node{
		{ID: 0, X: 0}, {ID: 1, X: 10}, {ID: 2, X: 1}, {ID: 3, X: 5},
	})
	require.NoError(t, err)

	require.Equal(t, []int{0, 2, 3, 1}, tour.NearestNeighbor(4, inst.Dist, 0))
	require.Equal(t, []int{1, 3, 2, 0}, tour.NearestNeighbor(4, inst.Dist, 1))
	require.Equal(t, []int{0, 2, 3, 1}, tour.NearestNeighbor(4, inst.Dist, 99))
	require.Nil(t, tour.NearestNeighbor(0, inst.Dist, 0))
}
