// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// HuffmanBackEnd turns the BWT output of one block into its emitted body:
// MTF+RLE2, table-count selection, initial table seeding, four-iteration
// selector/length co-optimization, canonical code assignment, and
// emission of the symbol map, selectors, code lengths, and payload.
//
// It is constructed fresh for each block by BlockCompressor.Close and
// discarded afterwards; see spec section 3 (Lifecycles).
type HuffmanBackEnd struct {
	sink *BitSink

	dict byteSymbolMap
	syms []uint16 // MTF+RLE2 symbol stream, length M.
	a    int      // Alphabet size K+2.

	numTables    int
	numSelectors int
	selectors    []uint8
	tables       []huffTable

	// selectLengths is a snapshot, per table, of the code lengths in
	// effect when the final optimize iteration chose selectors (spec
	// section 4.4.4: those lengths predate that same iteration's own
	// re-derivation step, which produces the lengths actually emitted).
	// Kept only so tests can check P7 against the lengths the spec
	// actually means by "the final iteration's lengths".
	selectLengths [][]uint8

	// stats is filled in during Encode for BlockCompressor.Stats.
	stats Stats
}

// huffTable holds one canonical Huffman table: code lengths in symbol
// order, and the packed (length<<24)|code used for O(1) payload emission.
type huffTable struct {
	lengths []uint8
	packed  []uint32
}

// Stats exposes a few post-close counters useful for testing and for
// callers instrumenting compression behavior, mirroring the teacher's
// exported InputOffset/OutputOffset counters on Writer.
type Stats struct {
	NumTables    int
	NumSelectors int
	MTFLength    int
}

// newHuffmanBackEnd prepares the MTF+RLE2 pass and the table-count
// selection (spec sections 4.4.1-4.4.2); the caller drives the rest via
// Encode.
func newHuffmanBackEnd(sink *BitSink, bwt []int32, present *[256]bool) *HuffmanBackEnd {
	h := &HuffmanBackEnd{sink: sink}
	h.dict = newByteSymbolMap(present)
	h.syms, _ = encodeMTFRLE2(bwt, h.dict)
	h.a = len(h.dict.dict) + 2

	m := len(h.syms)
	switch {
	case m >= 2400:
		h.numTables = 6
	case m >= 1200:
		h.numTables = 5
	case m >= 600:
		h.numTables = 4
	case m >= 200:
		h.numTables = 3
	default:
		h.numTables = 2
	}
	h.numSelectors = (m + huffmanGroupRunLen - 1) / huffmanGroupRunLen

	h.stats = Stats{NumTables: h.numTables, NumSelectors: h.numSelectors, MTFLength: m}
	return h
}

// Encode runs the full back end and writes the block body to the sink.
func (h *HuffmanBackEnd) Encode() {
	freq := h.symbolFrequencies()
	h.seedTables(freq)
	h.optimize(freq)
	h.assignCanonicalCodes()
	h.emitSymbolMap()
	h.emitTableMetadata()
	h.emitCodeLengths()
	h.emitPayload()
}

func (h *HuffmanBackEnd) symbolFrequencies() []uint32 {
	freq := make([]uint32, h.a)
	for _, s := range h.syms {
		freq[s]++
	}
	return freq
}

// seedTables performs the initial table seeding heuristic of spec
// section 4.4.3: partition the alphabet into numTables contiguous ranges
// of approximately equal cumulative frequency, biasing the first
// iteration's table-selection cost toward the right table without yet
// running a real length allocation.
func (h *HuffmanBackEnd) seedTables(freq []uint32) {
	const highCost = 15

	var total uint64
	for _, f := range freq {
		total += uint64(f)
	}

	h.tables = make([]huffTable, h.numTables)
	for i := range h.tables {
		h.tables[i].lengths = make([]uint8, h.a)
	}

	remaining := total
	gs := 0
	for i := 0; i < h.numTables; i++ {
		tFreq := remaining / uint64(h.numTables-i)
		ge := gs - 1
		var aFreq uint64
		for aFreq < tFreq && ge < h.a-1 {
			ge++
			aFreq += uint64(freq[ge])
		}
		if ge > gs && i != 0 && i != h.numTables-1 && (h.numTables-i)%2 == 0 {
			aFreq -= uint64(freq[ge])
			ge--
		}
		for v := 0; v < h.a; v++ {
			if v >= gs && v <= ge {
				h.tables[i].lengths[v] = 0
			} else {
				h.tables[i].lengths[v] = highCost
			}
		}
		remaining -= aFreq
		gs = ge + 1
	}
}
