// SPDX-License-Identifier: MIT
// Package core - Euclidean cost model.
//
// Design:
//   - Distance is the single metric used everywhere; it is symmetric and
//     satisfies d(a,a) == 0.
//   - DistanceMatrix fills the upper triangle once and mirrors it.
//   - NewCostFunc hides the choice between cached and on-demand evaluation.
//
// Complexity:
//   - DistanceMatrix: O(n²) time and memory.
//   - CostFunc from cache: O(1) per call.

package core

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linkern/matrix"
)

// CostFunc returns the cost of the edge between node indices i and j.
// Implementations are symmetric and safe for concurrent use.
type CostFunc func(i, j int) float64

// DefaultCacheLimit is the largest instance size for which NewCostFunc
// materializes a full distance matrix (2048² float64 ≈ 32 MiB).
const DefaultCacheLimit = 2048

// Distance returns the Euclidean distance between a and b over X, Y and Z.
func Distance(a, b Node) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceMatrix builds the symmetric n×n distance matrix of inst.
// The diagonal is zero.
func DistanceMatrix(inst *Instance) (*matrix.Dense, error) {
	n := inst.Len()
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("DistanceMatrix: %w", err)
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = Distance(inst.Nodes[i], inst.Nodes[j])
			if err = m.Set(i, j, d); err != nil {
				return nil, fmt.Errorf("DistanceMatrix: %w", err)
			}
			if err = m.Set(j, i, d); err != nil {
				return nil, fmt.Errorf("DistanceMatrix: %w", err)
			}
		}
	}

	return m, nil
}

// NewCostFunc returns a CostFunc over inst. When inst.Len() <= cacheLimit the
// distances are precomputed into a dense matrix; otherwise they are computed
// on demand from coordinates. A cacheLimit <= 0 disables caching.
func NewCostFunc(inst *Instance, cacheLimit int) CostFunc {
	n := inst.Len()
	if cacheLimit <= 0 || n > cacheLimit {
		return inst.Dist
	}

	m, err := DistanceMatrix(inst)
	if err != nil {
		// unreachable for a validated instance (n >= 1, finite coordinates)
		return inst.Dist
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i], _ = m.Row(i)
	}

	return func(i, j int) float64 { return rows[i][j] }
}
