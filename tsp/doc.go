// SPDX-License-Identifier: MIT

// Package tsp is the unified entry point for solving symmetric Euclidean TSP
// instances.
//
// Solve routes an instance to one of four algorithms:
//
//   - LinKernighan (default): multi-run Lin-Kernighan local search (package lk).
//     Complexity per pass roughly O(n · K · breadth), memory O(n·K).
//
//   - SimplifiedLK: the same runs with lk.SearchFirst; each start node commits
//     its first improving closing along a single greedy chain.
//
//   - NearestNeighbor: greedy nearest-neighbor tour from node 0; a baseline.
//     Complexity O(n²).
//
//   - ExactHeldKarp: Held–Karp dynamic programming over subsets; optimal.
//     Complexity O(n²·2ⁿ) time, O(n·2ⁿ) memory; limited to n ≤ MaxExactNodes.
//
// OneTreeBound computes a Held–Karp 1-tree lower bound by subgradient ascent;
// Solve fills TSResult.LowerBound with it when Options.BoundIters > 0, so that
// Gap reports how far a heuristic tour can be from optimal.
//
// Every result carries a closed tour of node indices (first == last == 0), the
// matching node IDs, and a cost rounded to 1e-9 for stable comparisons.
//
// The package never logs; diagnostics of the LK runs go to Options.LK.Logger.
package tsp
