// SPDX-License-Identifier: MIT

package lk_test

import (
	"testing"

	"github.com/katalvlaran/linkern/core"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const epsCost = 1e-9

func mustInstance(t testing.TB, nodes []core.Node) *core.Instance {
	t.Helper()
	inst, err := core.NewInstance(t.Name(), 2, nodes)
	require.NoError(t, err)

	return inst
}

func unitSquare(t *testing.T) *core.Instance {
	return mustInstance(t, []core.Node{
		{ID: 0, X: 0, Y: 0}, {ID: 1, X: 1, Y: 0}, {ID: 2, X: 1, Y: 1}, {ID: 3, X: 0, Y: 1},
	})
}

// collinear returns points at x = xs[i] on the x axis.
func collinear(t *testing.T, xs ...float64) *core.Instance {
	nodes := make([]core.Node, len(xs))
	for i, x := range xs {
		nodes[i] = core.Node{ID: i, X: x}
	}

	return mustInstance(t, nodes)
}

func randomInstance(t testing.TB, n int, seed uint64) *core.Instance {
	r := rand.New(rand.NewSource(seed))
	nodes := make([]core.Node, n)
	for i := range nodes {
		nodes[i] = core.Node{ID: i, X: r.Float64() * 1000, Y: r.Float64() * 1000}
	}

	return mustInstance(t, nodes)
}
