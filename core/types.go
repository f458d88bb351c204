// SPDX-License-Identifier: MIT
// Package core - node and instance types plus the sentinel error set.
//
// Errors:
//
//	ErrEmptyInstance    - no nodes were supplied.
//	ErrBadDimension     - dimension is neither 2 nor 3.
//	ErrDuplicateNodeID  - two nodes share an ID.
//	ErrNonFiniteCoord   - a coordinate is NaN or ±Inf.

package core

import "errors"

// Sentinel errors for instance construction.
var (
	// ErrEmptyInstance indicates that an instance was built from zero nodes.
	ErrEmptyInstance = errors.New("core: instance has no nodes")

	// ErrBadDimension indicates a dimension other than 2 or 3.
	ErrBadDimension = errors.New("core: dimension must be 2 or 3")

	// ErrDuplicateNodeID indicates that two nodes share the same ID.
	ErrDuplicateNodeID = errors.New("core: duplicate node ID")

	// ErrNonFiniteCoord indicates a NaN or infinite coordinate.
	ErrNonFiniteCoord = errors.New("core: non-finite coordinate")
)

// Node is a point with a stable identity.
//
// ID is unique within its Instance. Z is 0 for two-dimensional instances.
type Node struct {
	ID      int
	X, Y, Z float64
}

// Instance is an ordered set of nodes over which a tour is sought.
// The position of a node in Nodes is its index in every solver.
type Instance struct {
	// Name is a free-form label (the TSPLIB NAME field when read from file).
	Name string

	// Dim is the coordinate dimension, 2 or 3.
	Dim int

	// Nodes is the validated node slice. Do not mutate after construction.
	Nodes []Node

	index map[int]int // ID → position
}
