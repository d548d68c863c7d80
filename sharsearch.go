// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: MIT

// Package sharsearch implements Shar's algorithm for a branch-minimized
// binary search over sorted slices.
//
// Unlike a textbook binary search, the descent never branches on "found":
// it probes a power-of-two index pattern that only depends on the length,
// and resolves found / not-found once at the very end. That keeps branch
// prediction stable across inputs. When several elements compare equal,
// the smallest matching index is returned.
//
// See https://probablydance.com/2023/04/27/beautiful-branchless-binary-search/
// and https://muscar.eu/shar-binary-search-meta.html for the idea.
package sharsearch

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// SearchBy searches x with the comparator cmp, which must report the
// ordering of an element relative to the sought target: negative if the
// element sorts before the target, zero if it matches, positive if it
// sorts after.
//
// x must be sorted consistently with cmp. This is not checked: an
// unsorted x still terminates and stays in bounds, but the result is
// unspecified.
//
// The return values follow the slices.BinarySearch convention: the index
// and true if the target is present, otherwise the position where it
// would be inserted to keep x sorted, and false.
func SearchBy[S ~[]E, E any](x S, cmp func(E) int) (int, bool) {
	length := len(x)
	if length == 0 {
		return 0, false
	}

	left := 0
	right := length

	step := bitFloor(length)

	// When the length is not a power of two, one extra probe decides
	// which side of the slice the power-of-two window is anchored to.
	// Anchoring the upper window flush against right is what keeps every
	// later probe below len(x).
	if step != length && cmp(x[step]) < 0 {
		length -= step + 1
		if length == 0 {
			return right, false
		}
		step = nextPowerOfTwo(length)
		left = right - step
	}

	for {
		step /= 2
		if step == 0 {
			break
		}
		// left+step < len(x): step is always below the window size
		// established above, and left only ever grows by consumed steps.
		if cmp(x[left+step]) < 0 {
			left += step
		}
	}

	switch c := cmp(x[left]); {
	case c == 0:
		return left, true
	case c > 0:
		return left, false
	}
	// x[left] sorts before the target, so the answer is the next slot.
	if left+1 >= len(x) {
		return left + 1, false
	}
	if cmp(x[left+1]) == 0 {
		return left + 1, true
	}
	return left + 1, false
}

// Search searches for target in the sorted slice x.
// See SearchBy for the sortedness requirement and the return convention.
func Search[S ~[]E, E constraints.Ordered](x S, target E) (int, bool) {
	return SearchBy(x, func(e E) int {
		switch {
		case e < target:
			return -1
		case e > target:
			return 1
		}
		return 0
	})
}

// SearchByKey searches the sorted slice x for the element whose key,
// as produced by extract, equals key.
// See SearchBy for the sortedness requirement and the return convention.
func SearchByKey[S ~[]E, E any, K constraints.Ordered](x S, key K, extract func(E) K) (int, bool) {
	return SearchBy(x, func(e E) int {
		switch k := extract(e); {
		case k < key:
			return -1
		case k > key:
			return 1
		}
		return 0
	})
}

// bitFloor returns the largest power of two not exceeding n.
// n must be positive.
func bitFloor(n int) int {
	return 1 << (bits.Len(uint(n)) - 1)
}

// nextPowerOfTwo returns the smallest power of two that is at least n.
// n must be positive, and never exceeds bitFloor of the slice length at
// the one call site, so the shift cannot overflow.
func nextPowerOfTwo(n int) int {
	return 1 << bits.Len(uint(n-1))
}
