// SPDX-License-Identifier: MIT

package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/linkern/core"
)

// WriteFile creates path and writes the solution with Write.
func WriteFile(path string, header []HeaderField, dim int, nodes []core.Node, tt TourType) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, header, dim, nodes, tt)
}

// Write emits header, NODE_COORD_SECTION with nodes in the given (visiting)
// order renumbered from 0, and EOF. For Path the first node is dropped.
// A DIMENSION field is rewritten to the number of nodes actually written.
func Write(w io.Writer, header []HeaderField, dim int, nodes []core.Node, tt TourType) error {
	if dim != 2 && dim != 3 {
		return fmt.Errorf("Write: dim=%d: %w", dim, ErrUnsupported)
	}
	if tt == Path && len(nodes) > 0 {
		nodes = nodes[1:]
	}

	bw := bufio.NewWriter(w)
	for _, h := range header {
		v := h.Value
		if h.Key == KeyDimension {
			v = strconv.Itoa(len(nodes))
		}
		fmt.Fprintf(bw, "%s : %s\n", h.Key, v)
	}
	bw.WriteString("NODE_COORD_SECTION\n")
	for i, nd := range nodes {
		if dim == 3 {
			fmt.Fprintf(bw, "%d %s %s %s\n", i, ftoa(nd.X), ftoa(nd.Y), ftoa(nd.Z))
			continue
		}
		fmt.Fprintf(bw, "%d %s %s\n", i, ftoa(nd.X), ftoa(nd.Y))
	}
	bw.WriteString("EOF\n")

	return bw.Flush()
}

func ftoa(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
