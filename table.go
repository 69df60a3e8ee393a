// Copyright 2021 The conf Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package conf

import (
	"slices"
	"strings"
	"unsafe"

	"github.com/dgryski/go-farm"
)

// entry is one key/value pair of a parsed document.
type entry struct {
	key  string
	hash uint64 // farm.Hash64 of key
	value
}

const entrySize = int(unsafe.Sizeof(entry{}))

// bucketSize approximates what findDuplicate holds per entry: one map key
// and one single-element bucket.
const bucketSize = int(unsafe.Sizeof(uint64(0)) + unsafe.Sizeof([]int(nil)) + unsafe.Sizeof(int(0)))

func hashKey(key []byte) uint64 {
	return farm.Hash64(key)
}

// compareKeys orders keys by length first, then by content.  This is not
// lexicographic order; sorting and searching must both use it.
func compareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func sortEntries(entries []entry) {
	slices.SortFunc(entries, func(a, b entry) int {
		return compareKeys(a.key, b.key)
	})
}

func searchEntries(entries []entry, key string) (int, bool) {
	return slices.BinarySearchFunc(entries, key, func(e entry, k string) int {
		return compareKeys(e.key, k)
	})
}

// findDuplicate returns a key that appears more than once in entries.
// Entries are bucketed by their key hash so only colliding keys are
// compared byte by byte.
func findDuplicate(entries []entry) (string, bool) {
	buckets := make(map[uint64][]int, len(entries))
	for i := range entries {
		e := &entries[i]
		for _, j := range buckets[e.hash] {
			if entries[j].key == e.key {
				return e.key, true
			}
		}
		buckets[e.hash] = append(buckets[e.hash], i)
	}
	return "", false
}
