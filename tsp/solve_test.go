// SPDX-License-Identifier: MIT

package tsp_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/linkern/core"
	"github.com/katalvlaran/linkern/lk"
	"github.com/katalvlaran/linkern/tsp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const epsCost = 1e-9

func instance(t *testing.T, pts ...[2]float64) *core.Instance {
	t.Helper()
	nodes := make([]core.Node, len(pts))
	for i, p := range pts {
		nodes[i] = core.Node{ID: 100 + i, X: p[0], Y: p[1]}
	}
	inst, err := core.NewInstance(t.Name(), 2, nodes)
	require.NoError(t, err)

	return inst
}

func randomInstance(t *testing.T, n int, seed uint64) *core.Instance {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{r.Float64() * 100, r.Float64() * 100}
	}

	return instance(t, pts...)
}

// requireClosedTour checks len n+1, endpoints 0 and a permutation in between.
func requireClosedTour(t *testing.T, tour []int, n int) {
	t.Helper()
	require.Len(t, tour, n+1)
	require.Equal(t, 0, tour[0])
	require.Equal(t, 0, tour[n])
	seen := make([]bool, n)
	for _, v := range tour[:n] {
		require.False(t, seen[v], "node %d repeated", v)
		seen[v] = true
	}
}

func TestSolveUnitSquareAllAlgorithms(t *testing.T) {
	inst := instance(t, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{1, 0}, [2]float64{0, 1})
	for _, algo := range []tsp.Algorithm{tsp.LinKernighan, tsp.SimplifiedLK, tsp.NearestNeighbor, tsp.ExactHeldKarp} {
		t.Run(algo.String(), func(t *testing.T) {
			opts := tsp.DefaultOptions()
			opts.Algo = algo
			res, err := tsp.Solve(context.Background(), inst, opts)
			require.NoError(t, err)
			requireClosedTour(t, res.Tour, 4)
			require.InDelta(t, 4.0, res.Cost, epsCost)
			require.Equal(t, 100+res.Tour[1], res.IDs[1])
			require.Equal(t, algo == tsp.LinKernighan || algo == tsp.SimplifiedLK, res.Report != nil)
		})
	}
}

// TestSolveHeuristicsBoundedByExact: no heuristic beats the optimum, and LK
// with several runs reaches it on small random instances.
func TestSolveHeuristicsBoundedByExact(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		inst := randomInstance(t, 10, seed)

		opts := tsp.DefaultOptions()
		opts.Algo = tsp.ExactHeldKarp
		exact, err := tsp.Solve(context.Background(), inst, opts)
		require.NoError(t, err)
		requireClosedTour(t, exact.Tour, 10)

		opts.Algo = tsp.NearestNeighbor
		nn, err := tsp.Solve(context.Background(), inst, opts)
		require.NoError(t, err)
		require.GreaterOrEqual(t, nn.Cost, exact.Cost-epsCost)

		opts.Algo = tsp.LinKernighan
		opts.LK.Runs = 5
		opts.LK.Seed = seed
		heur, err := tsp.Solve(context.Background(), inst, opts)
		require.NoError(t, err)
		require.GreaterOrEqual(t, heur.Cost, exact.Cost-epsCost)
		require.LessOrEqual(t, heur.Cost, nn.Cost+epsCost)
	}
}

// TestSolveSimplifiedLKNoWorseThanNN: the first-improvement search converges
// to a closed tour that beats the greedy baseline.
func TestSolveSimplifiedLKNoWorseThanNN(t *testing.T) {
	const n = 60
	inst := randomInstance(t, n, 7)

	opts := tsp.DefaultOptions()
	opts.Algo = tsp.NearestNeighbor
	nn, err := tsp.Solve(context.Background(), inst, opts)
	require.NoError(t, err)

	opts.Algo = tsp.SimplifiedLK
	opts.LK.Runs = 5
	opts.LK.Seed = 7
	res, err := tsp.Solve(context.Background(), inst, opts)
	require.NoError(t, err)
	requireClosedTour(t, res.Tour, n)
	require.LessOrEqual(t, res.Cost, nn.Cost+epsCost)
	require.NotNil(t, res.Report)
	for _, r := range res.Report.Runs {
		require.True(t, r.Converged)
		require.LessOrEqual(t, r.Cost, r.InitialCost+epsCost)
	}

	// the option on LK is overridden, not required
	require.Equal(t, lk.SearchBest, opts.LK.Search)
}

func TestSolveExactCollinear(t *testing.T) {
	inst := instance(t, [2]float64{3, 0}, [2]float64{0, 0}, [2]float64{5, 0},
		[2]float64{1, 0}, [2]float64{4, 0}, [2]float64{2, 0})
	opts := tsp.DefaultOptions()
	opts.Algo = tsp.ExactHeldKarp
	res, err := tsp.Solve(context.Background(), inst, opts)
	require.NoError(t, err)
	require.InDelta(t, 10.0, res.Cost, epsCost)
}

func TestSolveErrors(t *testing.T) {
	ctx := context.Background()

	_, err := tsp.Solve(ctx, instance(t, [2]float64{0, 0}, [2]float64{1, 0}), tsp.DefaultOptions())
	require.ErrorIs(t, err, tsp.ErrTooFewNodes)

	opts := tsp.DefaultOptions()
	opts.Algo = tsp.Algorithm(42)
	_, err = tsp.Solve(ctx, randomInstance(t, 5, 1), opts)
	require.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)

	opts.Algo = tsp.ExactHeldKarp
	_, err = tsp.Solve(ctx, randomInstance(t, tsp.MaxExactNodes+1, 1), opts)
	require.ErrorIs(t, err, tsp.ErrTooLargeForExact)

	opts = tsp.DefaultOptions()
	opts.LK.MaxDepth = 0
	_, err = tsp.Solve(ctx, randomInstance(t, 5, 1), opts)
	require.ErrorIs(t, err, lk.ErrConfiguration)
}

func TestTourCost(t *testing.T) {
	inst := instance(t, [2]float64{0, 0}, [2]float64{3, 0}, [2]float64{3, 4})
	c, err := tsp.TourCost(inst, []int{0, 1, 2, 0})
	require.NoError(t, err)
	require.Equal(t, 12.0, c)

	// rounding to 1e-9
	sq := instance(t, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 1})
	c, err = tsp.TourCost(sq, []int{0, 1, 2, 0})
	require.NoError(t, err)
	require.Equal(t, math.Round((2+math.Sqrt2)*1e9)/1e9, c)

	_, err = tsp.TourCost(inst, []int{0})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.TourCost(inst, []int{0, 5, 0})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.TourCost(nil, []int{0, 1})
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []tsp.Algorithm{tsp.LinKernighan, tsp.SimplifiedLK, tsp.NearestNeighbor, tsp.ExactHeldKarp} {
		got, err := tsp.ParseAlgorithm(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	_, err := tsp.ParseAlgorithm("christofides")
	require.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)
}
