// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBackEnd runs newHuffmanBackEnd + the table-building stages (but not
// emission) over a synthetic BWT buffer, for testing the Huffman back end
// in isolation from the bit-sink and BWT stages.
func buildBackEnd(t *testing.T, bwt []int32, present [256]bool) *HuffmanBackEnd {
	t.Helper()
	var buf []byte
	sink := NewBitSink(&sinkBuf{&buf})
	h := newHuffmanBackEnd(sink, bwt, &present)
	freq := h.symbolFrequencies()
	h.seedTables(freq)
	h.optimize(freq)
	h.assignCanonicalCodes()
	return h
}

// sinkBuf is a minimal io.Writer used only so buildBackEnd can construct a
// BitSink without exercising real I/O.
type sinkBuf struct{ buf *[]byte }

func (s *sinkBuf) Write(p []byte) (int, error) {
	*s.buf = append(*s.buf, p...)
	return len(p), nil
}

func syntheticBWT(pattern string, n int) ([]int32, [256]bool) {
	var present [256]bool
	bwt := make([]int32, n)
	for i := range bwt {
		b := pattern[i%len(pattern)]
		bwt[i] = int32(b)
		present[b] = true
	}
	return bwt, present
}

// TestHuffmanTablesSatisfyKraftsInequality checks P6: every table's final
// code lengths satisfy Kraft's inequality with equality, which is the
// defining property of a complete canonical prefix code.
func TestHuffmanTablesSatisfyKraftsInequality(t *testing.T) {
	bwt, present := syntheticBWT("mississippimississippimississippimississippi", 3000)
	h := buildBackEnd(t, bwt, present)

	require.GreaterOrEqual(t, len(h.tables), 2)
	for i, tbl := range h.tables {
		var sum float64
		for _, l := range tbl.lengths {
			require.GreaterOrEqual(t, int(l), 1, "table %d", i)
			require.LessOrEqual(t, int(l), maxPrefixBits, "table %d", i)
			sum += 1.0 / float64(uint64(1)<<uint(l))
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "table %d fails Kraft's inequality", i)
	}
}

// TestSelectorsMinimizeCostUnderFinalLengths checks P7: for every group,
// the recorded selector is a minimal-cost table under the lengths in
// effect when the final optimize iteration made its selection (the
// lengths the third iteration produced, one step before optimize's own
// last re-derivation), with ties broken to the lowest index.
func TestSelectorsMinimizeCostUnderFinalLengths(t *testing.T) {
	bwt, present := syntheticBWT("the quick brown fox jumps over the lazy dog", 3000)
	h := buildBackEnd(t, bwt, present)

	for g, sel := range h.selectors {
		gs := g * huffmanGroupRunLen
		ge := gs + huffmanGroupRunLen
		if ge > len(h.syms) {
			ge = len(h.syms)
		}
		group := h.syms[gs:ge]

		costOf := func(tableIdx int) int64 {
			var c int64
			for _, sym := range group {
				c += int64(h.selectLengths[tableIdx][sym])
			}
			return c
		}

		want := 0
		for i := 1; i < h.numTables; i++ {
			if costOf(i) < costOf(want) {
				want = i
			}
		}
		assert.Equal(t, want, int(sel), "group %d selector should minimize cost", g)
	}
}

// TestSelectorCountMatchesCeilDiv checks P8.
func TestSelectorCountMatchesCeilDiv(t *testing.T) {
	bwt, present := syntheticBWT("abcdefgh", 777)
	h := buildBackEnd(t, bwt, present)

	want := (h.stats.MTFLength + huffmanGroupRunLen - 1) / huffmanGroupRunLen
	assert.Equal(t, want, len(h.selectors))
	assert.Equal(t, want, h.numSelectors)
}

func TestHuffmanBackEndIsDeterministic(t *testing.T) {
	bwt, present := syntheticBWT("aabbccddeeffgghhiijjkkll", 2000)
	h1 := buildBackEnd(t, bwt, present)
	h2 := buildBackEnd(t, bwt, present)

	if diff := cmp.Diff(h1.tables, h2.tables, cmp.AllowUnexported(huffTable{})); diff != "" {
		t.Errorf("identical inputs produced different tables (-run1 +run2):\n%s", diff)
	}
}
