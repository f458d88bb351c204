// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"math"
)

// NewInstance validates nodes and returns an Instance that owns a copy of them.
//
// Validation stages: dimension, emptiness, finiteness of every coordinate,
// uniqueness of IDs. For dim == 2 every Z is forced to 0.
// Complexity: O(n) time and memory.
func NewInstance(name string, dim int, nodes []Node) (*Instance, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("NewInstance: dim=%d: %w", dim, ErrBadDimension)
	}
	if len(nodes) == 0 {
		return nil, ErrEmptyInstance
	}

	var (
		own   = make([]Node, len(nodes))
		index = make(map[int]int, len(nodes))
		i     int
		nd    Node
	)
	for i, nd = range nodes {
		if dim == 2 {
			nd.Z = 0
		}
		if !finite(nd.X) || !finite(nd.Y) || !finite(nd.Z) {
			return nil, fmt.Errorf("NewInstance: node %d: %w", nd.ID, ErrNonFiniteCoord)
		}
		if prev, dup := index[nd.ID]; dup {
			return nil, fmt.Errorf("NewInstance: id %d at %d and %d: %w", nd.ID, prev, i, ErrDuplicateNodeID)
		}
		index[nd.ID] = i
		own[i] = nd
	}

	return &Instance{Name: name, Dim: dim, Nodes: own, index: index}, nil
}

// Len returns the number of nodes.
func (in *Instance) Len() int { return len(in.Nodes) }

// Dist returns the Euclidean distance between the nodes at indices i and j.
// Indices are not checked; callers iterate over 0..Len()-1.
func (in *Instance) Dist(i, j int) float64 {
	return Distance(in.Nodes[i], in.Nodes[j])
}

// IndexOf maps a node ID to its index.
func (in *Instance) IndexOf(id int) (int, bool) {
	i, ok := in.index[id]
	return i, ok
}

// IDs returns node IDs for a sequence of indices.
func (in *Instance) IDs(order []int) []int {
	out := make([]int, len(order))
	for i, v := range order {
		out[i] = in.Nodes[v].ID
	}

	return out
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
