// SPDX-License-Identifier: MIT

// Package tsplib reads and writes TSPLIB ".tsp" files restricted to what the
// solver handles: TYPE TSP with EDGE_WEIGHT_TYPE EUC_2D or EUC_3D and a
// NODE_COORD_SECTION.
//
// Reading keeps the header fields in file order so that a solution can be
// written back with the same header. Writing emits the nodes in visiting
// order, renumbered from 0; a "path" tour drops the first node.
//
// Format:
//
//	NAME : berlin52
//	TYPE : TSP
//	DIMENSION : 52
//	EDGE_WEIGHT_TYPE : EUC_2D
//	NODE_COORD_SECTION
//	1 565.0 575.0
//	...
//	EOF
package tsplib
