// SPDX-License-Identifier: MIT

package tsplib

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linkern/core"
)

var (
	// ErrUnsupported indicates a TYPE or EDGE_WEIGHT_TYPE the solver cannot handle.
	ErrUnsupported = errors.New("tsplib: unsupported problem")

	// ErrMalformed indicates a syntax error; it is wrapped with the line number.
	ErrMalformed = errors.New("tsplib: malformed file")
)

// Well-known header keys.
const (
	KeyName           = "NAME"
	KeyType           = "TYPE"
	KeyComment        = "COMMENT"
	KeyDimension      = "DIMENSION"
	KeyEdgeWeightType = "EDGE_WEIGHT_TYPE"
)

// HeaderField is one "KEY : VALUE" line.
type HeaderField struct {
	Key   string
	Value string
}

// File is a parsed .tsp file.
type File struct {
	// Header holds the KEY : VALUE lines in file order.
	Header []HeaderField

	// Instance holds the nodes of NODE_COORD_SECTION.
	Instance *core.Instance
}

// Get returns the value of the first header field named key.
func (f *File) Get(key string) (string, bool) {
	for _, h := range f.Header {
		if h.Key == key {
			return h.Value, true
		}
	}

	return "", false
}

// TourType selects how a solution is written.
type TourType string

const (
	// Cycle writes every node of the tour.
	Cycle TourType = "cycle"

	// Path drops the first node, leaving a Hamiltonian path.
	Path TourType = "path"
)

// ParseTourType accepts "cycle" or "path".
func ParseTourType(s string) (TourType, error) {
	switch TourType(s) {
	case Cycle, Path:
		return TourType(s), nil
	case "":
		return Cycle, nil
	}

	return "", fmt.Errorf("tour type %q: %w", s, ErrUnsupported)
}

// SolutionName returns the conventional solution file name
// "<name>_<cost with 3 decimals>.tsp".
func SolutionName(name string, cost float64) string {
	return fmt.Sprintf("%s_%.3f.tsp", name, cost)
}
