// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"sort"

	"github.com/MateuszBartosiewicz/bzip2/internal/huffcode"
)

// optimize runs the fixed four-iteration selector/length co-optimization
// of spec section 4.4.4: group the MTF symbol stream into runs of up to
// huffmanGroupRunLen symbols, assign each group to its cheapest table
// under the current lengths, re-accumulate per-table frequencies from
// that assignment, and re-derive each table's lengths via the
// package-merge allocator. The final iteration additionally records the
// per-group selector sequence.
func (h *HuffmanBackEnd) optimize(freq []uint32) {
	for iter := 0; iter < 4; iter++ {
		final := iter == 3

		tableFreq := make([][]uint32, h.numTables)
		for i := range tableFreq {
			tableFreq[i] = make([]uint32, h.a)
		}
		if final {
			h.selectors = make([]uint8, 0, h.numSelectors)
			h.selectLengths = make([][]uint8, h.numTables)
			for i := range h.tables {
				h.selectLengths[i] = append([]uint8(nil), h.tables[i].lengths...)
			}
		}

		cost := make([]int64, h.numTables)
		for gs := 0; gs < len(h.syms); gs += huffmanGroupRunLen {
			ge := gs + huffmanGroupRunLen
			if ge > len(h.syms) {
				ge = len(h.syms)
			}
			group := h.syms[gs:ge]

			for i := range cost {
				cost[i] = 0
			}
			for _, sym := range group {
				for i, t := range h.tables {
					cost[i] += int64(t.lengths[sym])
				}
			}
			best := 0
			for i := 1; i < h.numTables; i++ {
				if cost[i] < cost[best] {
					best = i
				}
			}

			for _, sym := range group {
				tableFreq[best][sym]++
			}
			if final {
				h.selectors = append(h.selectors, uint8(best))
			}
		}

		for i := range h.tables {
			h.tables[i].lengths = allocateLengths(tableFreq[i], maxPrefixBits)
		}
	}
}

// freqKey pairs a sort key with the symbol it belongs to, so that after
// sorting by key the original symbol order can be recovered.
type freqKey struct {
	key uint64
	sym int
}

// allocateLengths sorts freq by the (freq<<9)|symbol key of spec section
// 4.4.4, invokes the package-merge allocator, and un-permutes the result
// back to symbol order.
func allocateLengths(freq []uint32, maxLen int) []uint8 {
	a := len(freq)
	keys := make([]freqKey, a)
	for s, f := range freq {
		keys[s] = freqKey{key: uint64(f)<<9 | uint64(s), sym: s}
	}
	sortFreqKeys(keys)

	sortedFreq := make([]uint32, a)
	for j, k := range keys {
		sortedFreq[j] = freq[k.sym]
	}
	sortedLengths := huffcode.Allocate(sortedFreq, maxLen)

	lengths := make([]uint8, a)
	for j, k := range keys {
		lengths[k.sym] = sortedLengths[j]
	}
	return lengths
}

func sortFreqKeys(keys []freqKey) {
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].key < keys[j].key })
}
