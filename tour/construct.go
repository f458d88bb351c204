// SPDX-License-Identifier: MIT
// Package tour - initial tour constructions.
//
// Each function returns a visiting order (a permutation of 0..n-1) to pass
// to New. None of them validates n; New rejects n < 3.

package tour

import (
	"github.com/katalvlaran/linkern/core"
	"golang.org/x/exp/rand"
)

// Identity returns the order 0, 1, ..., n-1.
func Identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return order
}

// Random returns a uniformly shuffled order drawn from r.
func Random(n int, r *rand.Rand) []int {
	order := Identity(n)
	r.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	return order
}

// NearestNeighbor greedily extends a path from start to the closest unvisited
// node. Ties resolve to the lowest index. start outside 0..n-1 is treated as 0.
// Complexity: O(n²).
func NearestNeighbor(n int, cost core.CostFunc, start int) []int {
	if n <= 0 {
		return nil
	}
	if start < 0 || start >= n {
		start = 0
	}

	var (
		order   = make([]int, 0, n)
		visited = make([]bool, n)
		cur     = start
		best    int
		bestD   float64
		d       float64
		v       int
	)
	order = append(order, cur)
	visited[cur] = true
	for len(order) < n {
		best = -1
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			d = cost(cur, v)
			if best < 0 || d < bestD {
				best, bestD = v, d
			}
		}
		visited[best] = true
		order = append(order, best)
		cur = best
	}

	return order
}
