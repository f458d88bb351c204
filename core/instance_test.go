// SPDX-License-Identifier: MIT

package core_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linkern/core"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceValidation(t *testing.T) {
	ok := []core.Node{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1, Y: 0}}

	tests := []struct {
		name  string
		dim   int
		nodes []core.Node
		want  error
	}{
		{"bad dim", 4, ok, core.ErrBadDimension},
		{"empty", 2, nil, core.ErrEmptyInstance},
		{"dup id", 2, []core.Node{{ID: 7}, {ID: 7, X: 1}}, core.ErrDuplicateNodeID},
		{"nan", 2, []core.Node{{ID: 1, X: math.NaN()}}, core.ErrNonFiniteCoord},
		{"inf z in 3d", 3, []core.Node{{ID: 1, Z: math.Inf(1)}}, core.ErrNonFiniteCoord},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.NewInstance("x", tc.dim, tc.nodes)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewInstanceForcesZIn2D(t *testing.T) {
	inst, err := core.NewInstance("flat", 2, []core.Node{{ID: 3, X: 0, Y: 0, Z: 5}, {ID: 9, X: 3, Y: 4, Z: -2}})
	require.NoError(t, err)
	require.Equal(t, 2, inst.Len())
	require.InDelta(t, 5.0, inst.Dist(0, 1), 1e-12)

	i, ok := inst.IndexOf(9)
	require.True(t, ok)
	require.Equal(t, 1, i)
	_, ok = inst.IndexOf(4)
	require.False(t, ok)
	require.Equal(t, []int{9, 3}, inst.IDs([]int{1, 0}))
}

func TestNewInstanceCopiesInput(t *testing.T) {
	nodes := []core.Node{{ID: 0}, {ID: 1, X: 1}}
	inst, err := core.NewInstance("c", 2, nodes)
	require.NoError(t, err)
	nodes[1].X = 100
	require.Equal(t, 1.0, inst.Nodes[1].X)
}

func TestDistance3D(t *testing.T) {
	a := core.Node{X: 1, Y: 2, Z: 3}
	b := core.Node{X: 4, Y: 6, Z: 15}
	require.InDelta(t, 13.0, core.Distance(a, b), 1e-12)
	require.Equal(t, core.Distance(a, b), core.Distance(b, a))
	require.Zero(t, core.Distance(a, a))
}
