// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// byteSymbolMap assigns consecutive symbol indices 0..K-1 to the byte
// values present in a block, in ascending byte order, per spec section
// 4.4.1. It mirrors the dictMap/dict construction in the teacher's
// Writer.compressBlock, generalized to return an explicit lookup table
// instead of inlining the bookkeeping into the caller.
type byteSymbolMap struct {
	symOf [256]uint8 // Valid only where present[v] was true.
	dict  []uint8    // dict[s] is the byte value for symbol s, len K.
}

func newByteSymbolMap(present *[256]bool) byteSymbolMap {
	var m byteSymbolMap
	for v := 0; v < 256; v++ {
		if present[v] {
			m.symOf[v] = uint8(len(m.dict))
			m.dict = append(m.dict, uint8(v))
		}
	}
	return m
}

// moveToFront implements the MTF list used by the RLE2 stage: an array of
// symbol indices, shifted on each access so the most recently
// used symbol sits at the front. This is the same small-alphabet
// array-shift strategy as the teacher's moveToFront in mtf_rle2.go,
// operating here on symbol indices already resolved by byteSymbolMap.
type moveToFront struct {
	list []uint8 // list[i] is the symbol currently at MTF position i.
	pos  []uint8 // pos[sym] is the current MTF position of sym.
}

func newMoveToFront(k int) *moveToFront {
	m := &moveToFront{list: make([]uint8, k), pos: make([]uint8, k)}
	for i := 0; i < k; i++ {
		m.list[i] = uint8(i)
		m.pos[i] = uint8(i)
	}
	return m
}

// access moves sym to the front and returns its prior position.
func (m *moveToFront) access(sym uint8) int {
	p := int(m.pos[sym])
	copy(m.list[1:p+1], m.list[:p])
	m.list[0] = sym
	for i := 0; i <= p; i++ {
		m.pos[m.list[i]] = uint8(i)
	}
	return p
}

// encodeMTFRLE2 runs the BWT output through MTF and the RUNA/RUNB
// run-length stage in one pass, per spec section 4.4.1. It returns the
// full symbol stream over the alphabet {RUNA=0, RUNB=1, 2..K, EOB=K+1}.
func encodeMTFRLE2(bwt []int32, dict byteSymbolMap) (syms []uint16, eob uint16) {
	k := len(dict.dict)
	eob = uint16(k + 1)
	mtf := newMoveToFront(k)

	syms = make([]uint16, 0, len(bwt)+1)
	var zeroRun int
	flushZeros := func() {
		if zeroRun == 0 {
			return
		}
		z := zeroRun - 1
		for {
			if z&1 == 0 {
				syms = append(syms, runA)
			} else {
				syms = append(syms, runB)
			}
			if z < 2 {
				break
			}
			z = (z - 2) >> 1
		}
		zeroRun = 0
	}

	for _, b := range bwt {
		sym := dict.symOf[byte(b)]
		p := mtf.access(sym)
		if p == 0 {
			zeroRun++
			continue
		}
		flushZeros()
		syms = append(syms, uint16(p+1))
	}
	flushZeros()
	syms = append(syms, eob)
	return syms, eob
}

const (
	runA uint16 = 0
	runB uint16 = 1
)
