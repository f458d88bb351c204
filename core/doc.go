// SPDX-License-Identifier: MIT

// Package core defines the point set a tour is built over: Node, Instance,
// and the Euclidean cost model shared by every solver in linkern.
//
// An Instance is an ordered, validated slice of nodes. Solvers address nodes
// by their index in that slice (0..n-1); the stable Node.ID is kept only for
// input/output. Distances are symmetric Euclidean over three coordinates
// (Z is forced to 0 for two-dimensional instances).
//
// Cost model:
//
//   - Distance(a, b) computes the metric directly from two nodes.
//   - (*Instance).Dist(i, j) addresses the same metric by index.
//   - DistanceMatrix materializes the full symmetric n×n cache as *matrix.Dense.
//   - NewCostFunc picks between the cache and on-demand evaluation by size.
//
// Coincident points are valid and yield zero-length edges.
//
// The package never logs and never panics on user input; constructors return
// the sentinel errors declared in types.go.
package core
