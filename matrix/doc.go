// SPDX-License-Identifier: MIT

// Package matrix provides the small dense-storage layer used by linkern.
//
// The package exposes:
//
//   - Matrix, a bounds-checked two-dimensional float64 surface (Rows/Cols/At/Set/Clone).
//   - Dense, a row-major implementation backed by one flat slice.
//
// Dense is used as the precomputed distance cache of small instances and as the
// input of the exact (Held–Karp) baseline solver. Public accessors never panic on
// user input; they return the sentinels from errors.go wrapped with call context.
package matrix
