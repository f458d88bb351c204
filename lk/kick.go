// SPDX-License-Identifier: MIT
// Package lk - improving double-bridge kicks.
//
// A double bridge cuts four tour edges (u_i, v_i), taken in tour order, and
// reconnects the four segments S1=v1..u2, S2=v2..u3, S3=v3..u4, S4=v4..u1 as
// S4 S3 S2 S1 without reversing any of them. No sequential chain search can
// reach this move, which is why it is tried separately once the passes stop
// finding improvements. Only strictly improving kicks are applied.

package lk

import (
	"slices"

	"github.com/katalvlaran/linkern/tour"
	"golang.org/x/exp/rand"
)

// minKickNodes is the smallest tour on which a double bridge changes the cycle.
const minKickNodes = 8

// kick tries up to trials random double bridges and applies the first one that
// improves the tour by more than eps. It returns the applied edges' endpoints
// or nil.
func kick(t *tour.Tour, r *rand.Rand, trials int, eps float64) []tour.Edge {
	n := t.Len()
	if n < minKickNodes || trials <= 0 {
		return nil
	}

	var (
		seq     = t.Sequence()
		cuts    [4]int
		removed = make([]tour.Edge, 4)
		added   = make([]tour.Edge, 4)
		u, v    [4]int
		gain    float64
		i       int
	)
	for trial := 0; trial < trials; trial++ {
		pickDistinct(r, n, cuts[:])
		slices.Sort(cuts[:])
		for i = 0; i < 4; i++ {
			u[i] = seq[cuts[i]]
			v[i] = seq[(cuts[i]+1)%n]
			removed[i] = tour.E(u[i], v[i])
		}
		added[0] = tour.E(u[0], v[2])
		added[1] = tour.E(u[3], v[1])
		added[2] = tour.E(u[2], v[0])
		added[3] = tour.E(u[1], v[3])

		gain = 0
		for i = 0; i < 4; i++ {
			gain += t.EdgeCost(removed[i].A, removed[i].B) - t.EdgeCost(added[i].A, added[i].B)
		}
		if gain <= eps {
			continue
		}
		if err := t.ApplyExchange(removed, added); err != nil {
			continue
		}

		return removed
	}

	return nil
}

// pickDistinct fills dst with distinct values from 0..n-1 (len(dst) <= n).
func pickDistinct(r *rand.Rand, n int, dst []int) {
	for i := 0; i < len(dst); {
		dst[i] = r.Intn(n)
		if !slices.Contains(dst[:i], dst[i]) {
			i++
		}
	}
}
