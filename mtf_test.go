// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteSymbolMapOrdering(t *testing.T) {
	var present [256]bool
	present['c'] = true
	present['a'] = true
	present['z'] = true

	m := newByteSymbolMap(&present)
	assert.Equal(t, []uint8{'a', 'c', 'z'}, m.dict)
	assert.Equal(t, uint8(0), m.symOf['a'])
	assert.Equal(t, uint8(1), m.symOf['c'])
	assert.Equal(t, uint8(2), m.symOf['z'])
}

func TestMoveToFrontAccess(t *testing.T) {
	m := newMoveToFront(4)

	assert.Equal(t, 2, m.access(2))
	assert.Equal(t, []uint8{2, 0, 1, 3}, m.list)

	assert.Equal(t, 0, m.access(2))
	assert.Equal(t, []uint8{2, 0, 1, 3}, m.list)

	assert.Equal(t, 3, m.access(3))
	assert.Equal(t, []uint8{3, 2, 0, 1}, m.list)
}

func TestEncodeMTFRLE2ZeroRuns(t *testing.T) {
	var present [256]bool
	present['a'] = true
	present['b'] = true

	dict := newByteSymbolMap(&present)
	// All 'a's: every access after the first hits MTF position 0, so this
	// collapses into one long zero-run followed by the EOB symbol.
	bwt := []int32{'a', 'a', 'a', 'a', 'a'}
	syms, eob := encodeMTFRLE2(bwt, dict)

	assert.Equal(t, uint16(3), eob) // K=2 -> EOB = K+1 = 3.
	assert.Equal(t, eob, syms[len(syms)-1])
	for _, s := range syms[:len(syms)-1] {
		assert.True(t, s == runA || s == runB)
	}
}

func TestEncodeMTFRLE2Alternating(t *testing.T) {
	var present [256]bool
	present['a'] = true
	present['b'] = true

	dict := newByteSymbolMap(&present)
	bwt := []int32{'a', 'b', 'a', 'b'}
	syms, eob := encodeMTFRLE2(bwt, dict)

	// The first access finds 'a' already at MTF position 0, a zero-run of
	// one coded as RUNA; every later access is MTF position 1 -> sym 2.
	assert.Equal(t, []uint16{0, 2, 2, 2, eob}, syms)
}
