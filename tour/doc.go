// SPDX-License-Identifier: MIT

// Package tour implements the mutable Hamiltonian cycle that local search
// operates on.
//
// A Tour stores, for every node index v in 0..n-1, two neighbor links
// (link[v][0] is the predecessor, link[v][1] the successor) kept in one
// consistent orientation, plus a position index pos[v] that increases by one
// along successor links (modulo n). Positions make Between an O(1) query and
// let exchange feasibility be decided from the removed edges alone.
//
// Mutation happens only through two operations:
//
//   - Reverse(a, b) flips the forward path a..b (or, equivalently, its shorter
//     complement) by swapping link slots and renumbering positions.
//   - ApplyExchange(removed, added) replaces k tour edges by k new edges if and
//     only if the result is again a single cycle over all nodes. On rejection it
//     returns ErrInfeasibleMove and leaves the tour untouched.
//
// The cached total cost is updated by the exact delta of every exchange and can
// be checked against a full recomputation with Validate.
//
// A Tour is not safe for concurrent mutation; give each goroutine its own Clone.
package tour
