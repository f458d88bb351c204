// SPDX-License-Identifier: MIT
// Package tsp - cost utilities.
//
// Design:
//   - TourCost sums Euclidean edge lengths along a closed index tour.
//   - Results are rounded to 1e-9 so that costs compare stably across
//     platforms and summation orders.
//
// Complexity: O(n).

package tsp

import (
	"math"

	"github.com/katalvlaran/linkern/core"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourCost returns the length of the closed tour (len(tour) == n+1,
// tour[0] == tour[n]) over inst, rounded to 1e-9.
// Returns ErrDimensionMismatch when the tour does not fit the instance.
func TourCost(inst *core.Instance, tour []int) (float64, error) {
	if inst == nil || len(tour) < 2 {
		return 0, ErrDimensionMismatch
	}

	var (
		n   = inst.Len()
		sum float64
		u   int
		v   int
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		u, v = tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, ErrDimensionMismatch
		}
		sum += inst.Dist(u, v)
	}

	return round1e9(sum), nil
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// closeAtZero rotates a visiting order so it starts at node 0 and appends the
// closing 0.
func closeAtZero(order []int) []int {
	n := len(order)
	pivot := 0
	for i, v := range order {
		if v == 0 {
			pivot = i
			break
		}
	}
	out := make([]int, n+1)
	for i := 0; i < n; i++ {
		out[i] = order[(pivot+i)%n]
	}
	out[n] = out[0]

	return out
}
