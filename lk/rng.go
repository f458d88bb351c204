// SPDX-License-Identifier: MIT
// Package lk - deterministic RNG streams.
//
// Every run owns one *rand.Rand (golang.org/x/exp/rand, PCG source) seeded with
// deriveSeed(base, run). Streams are never shared across goroutines.

package lk

import "golang.org/x/exp/rand"

// defaultSeed is used when Options.Seed == 0.
const defaultSeed uint64 = 1

// baseSeed applies the zero-seed policy.
func baseSeed(seed uint64) uint64 {
	if seed == 0 {
		return defaultSeed
	}

	return seed
}

// deriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer so that neighboring run indices get unrelated streams.
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// newRNG returns the stream for one run.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
