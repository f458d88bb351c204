// SPDX-License-Identifier: MIT

package tour_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linkern/core"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const epsCost = 1e-9

// unitSquare returns the corners (0,0),(1,0),(1,1),(0,1) as indices 0..3.
func unitSquare(t *testing.T) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance("square", 2, []core.Node{
		{ID: 0, X: 0, Y: 0}, {ID: 1, X: 1, Y: 0}, {ID: 2, X: 1, Y: 1}, {ID: 3, X: 0, Y: 1},
	})
	require.NoError(t, err)

	return inst
}

// randomInstance places n points uniformly in [0,100)² from a fixed seed.
func randomInstance(t testing.TB, n int, seed uint64) *core.Instance {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	nodes := make([]core.Node, n)
	for i := range nodes {
		nodes[i] = core.Node{ID: i, X: r.Float64() * 100, Y: r.Float64() * 100}
	}
	inst, err := core.NewInstance("random", 2, nodes)
	require.NoError(t, err)

	return inst
}

func circleInstance(t *testing.T, n int) *core.Instance {
	t.Helper()
	nodes := make([]core.Node, n)
	for i := range nodes {
		a := 2 * math.Pi * float64(i) / float64(n)
		nodes[i] = core.Node{ID: i, X: math.Cos(a), Y: math.Sin(a)}
	}
	inst, err := core.NewInstance("circle", 2, nodes)
	require.NoError(t, err)

	return inst
}
