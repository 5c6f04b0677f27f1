// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// emitSymbolMap writes the two-level bitmap of byte values in use: a
// 16-bit segment presence mask, MSB-first, followed by one 16-bit
// per-byte presence mask for each segment that has at least one byte in
// use. This mirrors the symMap/symMaps construction in the teacher's
// Writer.compressBlock, generalized off of byteSymbolMap instead of an
// inline dictMap.
func (h *HuffmanBackEnd) emitSymbolMap() {
	var present [256]bool
	for _, v := range h.dict.dict {
		present[v] = true
	}

	var segUsed [16]bool
	var segBits [16]uint16
	for v := 0; v < 256; v++ {
		if present[v] {
			seg := v >> 4
			segUsed[seg] = true
			segBits[seg] |= 1 << uint(15-(v&0xf))
		}
	}

	var segMask uint16
	for seg := 0; seg < 16; seg++ {
		if segUsed[seg] {
			segMask |= 1 << uint(15-seg)
		}
	}
	h.sink.WriteBits(16, uint32(segMask))
	for seg := 0; seg < 16; seg++ {
		if segUsed[seg] {
			h.sink.WriteBits(16, uint32(segBits[seg]))
		}
	}
}

// emitTableMetadata writes the table count, selector count, and the
// MTF-then-unary-coded selector sequence (spec section 4.4.6, point 2).
func (h *HuffmanBackEnd) emitTableMetadata() {
	h.sink.WriteBits(3, uint32(h.numTables))
	h.sink.WriteBits(15, uint32(h.numSelectors))

	selMTF := newMoveToFront(h.numTables)
	for _, sel := range h.selectors {
		pos := selMTF.access(sel)
		h.sink.WriteUnary(pos)
	}
}

// emitCodeLengths writes each table's lengths as an initial 5-bit value
// followed by, for every symbol in ascending order, a unary-like
// increment/decrement sequence that walks the running length to that
// symbol's length: a 2-bit code (2 = increase, 3 = decrease) repeated
// once per unit of |delta|, terminated by a single 0 bit. Spec section
// 4.4.6, point 3.
func (h *HuffmanBackEnd) emitCodeLengths() {
	for i := range h.tables {
		t := &h.tables[i]
		curL := int(t.lengths[0])
		h.sink.WriteBits(5, uint32(curL))

		for _, l := range t.lengths {
			target := int(l)
			code := uint32(3)
			if target > curL {
				code = 2
			}
			for curL != target {
				h.sink.WriteBits(2, code)
				if code == 2 {
					curL++
				} else {
					curL--
				}
			}
			h.sink.WriteBool(false)
		}
	}
}

// emitPayload writes the MTF+RLE2 symbol stream using the canonical code
// of whichever table each group was assigned to (spec section 4.4.6,
// point 4).
func (h *HuffmanBackEnd) emitPayload() {
	group := -1
	var tbl *huffTable
	for i, sym := range h.syms {
		if g := i / huffmanGroupRunLen; g != group {
			group = g
			tbl = &h.tables[h.selectors[group]]
		}
		packed := tbl.packed[sym]
		length := packed >> 24
		code := packed & 0xffffff
		h.sink.WriteBits(uint(length), code)
	}
}
