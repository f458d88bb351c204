// SPDX-License-Identifier: MIT
// Package lk - sentinel errors.
//
// ErrConfiguration and ErrDegenerateInstance are returned by Improve before any
// run starts. ErrGainInconsistency never escapes a run: it is logged at debug
// level, counted in RunReport.Inconsistent, and the offending move is dropped.

package lk

import "errors"

var (
	// ErrConfiguration indicates invalid Options.
	ErrConfiguration = errors.New("lk: invalid configuration")

	// ErrDegenerateInstance indicates an instance with fewer than 3 nodes.
	ErrDegenerateInstance = errors.New("lk: instance needs at least 3 nodes")

	// ErrGainInconsistency indicates that a move's tracked gain disagrees with
	// the gain recomputed from its edges.
	ErrGainInconsistency = errors.New("lk: gain inconsistency")
)
