// SPDX-License-Identifier: MIT

// Package candidates builds the per-node neighbor candidate lists that bound
// the Lin-Kernighan search: for every node, the k nearest other nodes in
// ascending Euclidean distance, ties broken by lower index.
//
// Lists are computed once per instance with an R-tree k-nearest query
// (github.com/dhconnelly/rtreego) over-fetching a few extra entries, then
// re-ranked with exact distances. When ties straddle the fetched boundary the
// node falls back to a linear scan, so the result is identical to a brute-force
// ranking. Built lists are immutable and safe for concurrent readers.
package candidates
