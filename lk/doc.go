// SPDX-License-Identifier: MIT

// Package lk implements the Lin-Kernighan local search for symmetric Euclidean
// TSP instances.
//
// What:
//
//   - A move search that grows a sequential exchange chain t1, t2, ..., t2k from
//     a start node, keeping the best feasible closing found within the depth and
//     breadth limits, and commits it through tour.ApplyExchange.
//   - An improvement loop that repeats passes over all nodes until a pass commits
//     nothing (a local optimum), optionally followed by improving double-bridge
//     kicks.
//   - Improve, which performs several independent runs from different initial
//     tours and keeps the best, with per-run statistics.
//
// How:
//
//   - Candidate edges y_i = (t2i, t2i+1) come from candidates.Lists (k nearest).
//   - The open gain G = Σc(x) - Σc(y) must stay above Options.Eps for the chain
//     to be extended (the gain criterion).
//   - Every closing (t2i+2, t1) is tested with tour.Feasible before it counts.
//   - Alternatives at a level are ranked by c(x) - c(y); only the best
//     Options.Breadth[level-1] of them are extended (1 beyond the slice).
//   - The search state is an explicit stack of frames; there is no recursion.
//   - With Options.Search = SearchFirst the breadth is ignored: each level-1
//     alternative is followed along its top-ranked continuation only, and the
//     first positive closing is committed.
//   - Before committing, the gain of the chosen move is recomputed from its
//     edge lists; a mismatch is reported as ErrGainInconsistency and the move is
//     dropped.
//
// Determinism:
//
//   - Each run draws from its own RNG stream derived from Options.Seed and the
//     run index, so results do not depend on Options.Workers.
//   - Aggregation picks the lowest cost, ties going to the lowest run index.
//
// Concurrency:
//
//   - Runs execute on Options.Workers goroutines. The instance, cost function
//     and candidate lists are shared read-only; tours and run state are not.
//   - Options.OnRunDone is invoked from worker goroutines.
package lk
