// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"bytes"
	"fmt"
	"slices"
)

// CompareKeys orders two encoded map keys: unsigned byte-wise, the first
// differing byte decides, and a strict prefix sorts first. Map entries
// are written in ascending CompareKeys order and decoded maps must be
// strictly ascending.
func CompareKeys(a, b []byte) int {
	return bytes.Compare(a, b)
}

// encodedEntry pairs a map entry with the canonical bytes of its key.
type encodedEntry struct {
	key   []byte
	entry Entry
}

// sortEntries encodes every key at the given depth and returns the
// entries in canonical order. Two keys with identical encodings are an
// error: the decoder would reject the result anyway.
func sortEntries(entries []Entry, depth int) ([]encodedEntry, error) {
	sorted := make([]encodedEntry, len(entries))
	for index, entry := range entries {
		key, err := appendTerm(nil, entry.Key, depth)
		if err != nil {
			return nil, fmt.Errorf("map key %d: %w", index, err)
		}
		sorted[index] = encodedEntry{key: key, entry: entry}
	}

	slices.SortFunc(sorted, func(a, b encodedEntry) int {
		return CompareKeys(a.key, b.key)
	})

	for index := 1; index < len(sorted); index++ {
		if CompareKeys(sorted[index-1].key, sorted[index].key) == 0 {
			return nil, fmt.Errorf("%w: key %x appears more than once", ErrDuplicateKey, sorted[index].key)
		}
	}
	return sorted, nil
}

// inCanonicalOrder reports whether current may follow previous in a
// decoded map. The first key of a map has no predecessor.
func inCanonicalOrder(previous, current []byte) bool {
	return previous == nil || CompareKeys(previous, current) < 0
}
