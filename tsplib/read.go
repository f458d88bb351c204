// SPDX-License-Identifier: MIT

package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/linkern/core"
)

// malformed wraps ErrMalformed with a 1-based line number.
func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), ErrMalformed)
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return file, nil
}

// Read parses a TSPLIB file.
//
// Header lines are "KEY : VALUE" (split at the first colon) until
// NODE_COORD_SECTION; node lines are "id x y" or "id x y z" until EOF or the
// end of input. TYPE must be TSP and EDGE_WEIGHT_TYPE must be EUC_2D or EUC_3D.
// When DIMENSION is present it must match the number of nodes.
func Read(r io.Reader) (*File, error) {
	var (
		sc      = bufio.NewScanner(r)
		file    = &File{}
		nodes   []core.Node
		dim     int
		inNodes bool
		lineNo  int
		line    string
	)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		lineNo++
		line = strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		if !inNodes {
			if line == "NODE_COORD_SECTION" {
				var err error
				if dim, err = checkHeader(file, lineNo); err != nil {
					return nil, err
				}
				inNodes = true
				continue
			}
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				return nil, malformed(lineNo, "expected KEY : VALUE, got %q", line)
			}
			file.Header = append(file.Header, HeaderField{
				Key:   strings.TrimSpace(key),
				Value: strings.TrimSpace(value),
			})
			continue
		}

		nd, err := parseNode(line, dim, lineNo)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, nd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !inNodes {
		return nil, malformed(lineNo, "missing NODE_COORD_SECTION")
	}

	if s, ok := file.Get(KeyDimension); ok {
		want, err := strconv.Atoi(s)
		if err != nil || want != len(nodes) {
			return nil, malformed(lineNo, "DIMENSION %q but %d nodes", s, len(nodes))
		}
	}

	name, _ := file.Get(KeyName)
	inst, err := core.NewInstance(name, dim, nodes)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}
	file.Instance = inst

	return file, nil
}

// checkHeader validates TYPE and EDGE_WEIGHT_TYPE and returns the dimension.
func checkHeader(f *File, lineNo int) (int, error) {
	typ, ok := f.Get(KeyType)
	if !ok {
		return 0, malformed(lineNo, "missing %s", KeyType)
	}
	if typ != "TSP" {
		return 0, fmt.Errorf("TYPE %q: %w", typ, ErrUnsupported)
	}

	ewt, ok := f.Get(KeyEdgeWeightType)
	if !ok {
		return 0, malformed(lineNo, "missing %s", KeyEdgeWeightType)
	}
	switch ewt {
	case "EUC_2D":
		return 2, nil
	case "EUC_3D":
		return 3, nil
	}

	return 0, fmt.Errorf("EDGE_WEIGHT_TYPE %q: %w", ewt, ErrUnsupported)
}

func parseNode(line string, dim, lineNo int) (core.Node, error) {
	fields := strings.Fields(line)
	if len(fields) != dim+1 {
		return core.Node{}, malformed(lineNo, "want %d fields, got %d", dim+1, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return core.Node{}, malformed(lineNo, "node id %q", fields[0])
	}
	var xyz [3]float64
	for i := 0; i < dim; i++ {
		if xyz[i], err = strconv.ParseFloat(fields[i+1], 64); err != nil {
			return core.Node{}, malformed(lineNo, "coordinate %q", fields[i+1])
		}
	}

	return core.Node{ID: id, X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
