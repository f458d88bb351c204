// SPDX-License-Identifier: MIT

package tour

import (
	"fmt"
	"math"
)

// costTolerance bounds |cached - recomputed| relative to the tour cost.
const costTolerance = 1e-6

// Validate checks every structural invariant and the cached cost:
//   - links are symmetric (next(prev(v)) == v),
//   - positions advance by one along successors,
//   - walking successors from node 0 visits all n nodes exactly once,
//   - the cached cost equals a fresh sum within a relative 1e-6.
//
// Any violation is reported as ErrCorrupt with detail.
// Complexity: O(n).
func (t *Tour) Validate() error {
	var (
		n    = t.n
		v, w int
	)
	for v = 0; v < n; v++ {
		w = t.link[v][1]
		if w < 0 || w >= n || w == v {
			return fmt.Errorf("Validate: node %d successor %d: %w", v, w, ErrCorrupt)
		}
		if t.link[w][0] != v {
			return fmt.Errorf("Validate: asymmetric link %d→%d: %w", v, w, ErrCorrupt)
		}
		if t.pos[w] != (t.pos[v]+1)%n {
			return fmt.Errorf("Validate: position %d→%d not consecutive: %w", v, w, ErrCorrupt)
		}
	}

	seen := make([]bool, n)
	v = 0
	for i := 0; i < n; i++ {
		if seen[v] {
			return fmt.Errorf("Validate: cycle closes after %d nodes: %w", i, ErrCorrupt)
		}
		seen[v] = true
		v = t.link[v][1]
	}
	if v != 0 {
		return fmt.Errorf("Validate: walk does not return to 0: %w", ErrCorrupt)
	}

	fresh := t.sum()
	if math.Abs(fresh-t.total) > costTolerance*math.Max(1, math.Abs(fresh)) {
		return fmt.Errorf("Validate: cached cost %.9g, recomputed %.9g: %w", t.total, fresh, ErrCorrupt)
	}

	return nil
}
