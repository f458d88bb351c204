// SPDX-License-Identifier: MIT

package tour_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/linkern/tour"
	"golang.org/x/exp/rand"
)

// exchangeCase is a prepared exchange on a fixed random tour.
type exchangeCase struct {
	removed []tour.Edge
	added   []tour.Edge
}

// feasibleExchanges draws count feasible k-exchanges on base.
func feasibleExchanges(b *testing.B, base *tour.Tour, k, count int) []exchangeCase {
	b.Helper()
	r := rand.New(rand.NewSource(uint64(k)))
	out := make([]exchangeCase, 0, count)
	for tries := 0; len(out) < count; tries++ {
		if tries > 1000*count {
			b.Fatalf("k=%d: only %d feasible exchanges found", k, len(out))
		}
		removed, ends := randomCuts(base, k, r)
		added := randomMatching(ends, r)
		if base.Feasible(removed, added) {
			out = append(out, exchangeCase{removed: removed, added: added})
		}
	}

	return out
}

// BenchmarkApplyExchange measures ApplyExchange at k=2 (segment reversal) and
// k=3 (relink) on a 1000-node tour.
func BenchmarkApplyExchange(b *testing.B) {
	const n = 1000
	inst := randomInstance(b, n, 11)
	base, err := tour.New(tour.Random(n, rand.New(rand.NewSource(5))), inst.Dist)
	if err != nil {
		b.Fatal(err)
	}

	for _, k := range []int{2, 3} {
		b.Run(fmt.Sprintf("k%d", k), func(b *testing.B) {
			cases := feasibleExchanges(b, base, k, 64)
			tours := make([]*tour.Tour, len(cases))

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				j := i % len(cases)
				if j == 0 {
					b.StopTimer()
					for c := range tours {
						tours[c] = base.Clone()
					}
					b.StartTimer()
				}
				if err := tours[j].ApplyExchange(cases[j].removed, cases[j].added); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
