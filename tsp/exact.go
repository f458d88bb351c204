// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linkern/matrix"
)

// heldKarp computes an optimal closed tour over the symmetric distance matrix
// dist using the Held–Karp dynamic program.
//
// dp[mask*n+j] is the minimum cost of a path that starts at 0, visits exactly
// the nodes in mask (bit 0 always set) and ends at j. The tour is closed by
// returning from the best last node to 0 and reconstructed from parent links.
//
// Time complexity:  O(n² · 2ⁿ)
// Memory complexity: O(n · 2ⁿ)
func heldKarp(dist *matrix.Dense) ([]int, float64, error) {
	if !dist.IsSquare() {
		return nil, 0, fmt.Errorf("heldKarp: %dx%d: %w", dist.Rows(), dist.Cols(), ErrDimensionMismatch)
	}
	n := dist.Rows()
	if n > MaxExactNodes {
		return nil, 0, fmt.Errorf("heldKarp: n=%d > %d: %w", n, MaxExactNodes, ErrTooLargeForExact)
	}
	if n < 3 {
		return nil, 0, fmt.Errorf("heldKarp: n=%d: %w", n, ErrTooFewNodes)
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i], _ = dist.Row(i)
	}

	var (
		full   = 1<<n - 1
		dp     = make([]float64, (full+1)*n)
		parent = make([]int, (full+1)*n)
		mask   int
		prev   int
		j, k   int
		cand   float64
	)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	dp[1*n+0] = 0

	for mask = 1; mask <= full; mask += 2 { // odd masks contain node 0
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prev&(1<<k) == 0 || math.IsInf(dp[prev*n+k], 1) {
					continue
				}
				cand = dp[prev*n+k] + rows[k][j]
				if cand < dp[mask*n+j] {
					dp[mask*n+j] = cand
					parent[mask*n+j] = k
				}
			}
		}
	}

	var (
		best = math.Inf(1)
		last = -1
	)
	for j = 1; j < n; j++ {
		cand = dp[full*n+j] + rows[j][0]
		if cand < best {
			best, last = cand, j
		}
	}

	tour := make([]int, n+1)
	mask, j = full, last
	for i := n - 1; i >= 1; i-- {
		tour[i] = j
		k = parent[mask*n+j]
		mask ^= 1 << j
		j = k
	}

	return tour, best, nil
}
