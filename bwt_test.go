// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// bwtReference computes the Burrows-Wheeler transform of block[:n] by
// brute-force cyclic rotation sort, as an independent check on the
// suffix-array-based implementation under test. Identical rotations (in a
// periodic block) are ordered by descending start index, the order in
// which the suffix sort of the doubled block yields them; this only
// affects origPtr, not the permuted bytes.
func bwtReference(block []byte, n int) (bwt []int32, origPtr int) {
	rotations := make([]int, n)
	for i := range rotations {
		rotations[i] = i
	}
	less := func(i, j int) bool {
		for k := 0; k < n; k++ {
			a := block[(rotations[i]+k)%n]
			b := block[(rotations[j]+k)%n]
			if a != b {
				return a < b
			}
		}
		return rotations[i] > rotations[j]
	}
	// Simple insertion sort; n is small in these tests.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			rotations[j], rotations[j-1] = rotations[j-1], rotations[j]
		}
	}

	bwt = make([]int32, n)
	for i, r := range rotations {
		if r == 0 {
			origPtr = i
		}
		bwt[i] = int32(block[(r+n-1)%n])
	}
	return bwt, origPtr
}

func TestSAISBWTMatchesReference(t *testing.T) {
	cases := []string{
		"a",
		"banana",
		"abracadabra",
		"mississippi",
		"aaaaaaaaaa",
		"the quick brown fox jumps over the lazy dog",
	}
	for _, s := range cases {
		n := len(s)
		block := make([]byte, n+1)
		copy(block, s)
		block[n] = block[0]

		bwt := newSAISBWT()
		gotBWT, gotPtr := bwt.Transform(block, n)
		wantBWT, wantPtr := bwtReference([]byte(s), n)

		assert.Equal(t, wantBWT, gotBWT, "string %q", s)
		assert.Equal(t, wantPtr, gotPtr, "string %q", s)
	}
}

func TestSAISBWTEmptyBlock(t *testing.T) {
	bwt := newSAISBWT()
	got, ptr := bwt.Transform(nil, 0)
	assert.Nil(t, got)
	assert.Equal(t, -1, ptr)
}

func TestSAISBWTReuseAcrossBlocks(t *testing.T) {
	bwt := newSAISBWT()
	for _, s := range []string{"short", "a much longer input string to exercise growth", "x"} {
		n := len(s)
		block := make([]byte, n+1)
		copy(block, s)
		block[n] = block[0]
		_, _ = bwt.Transform(block, n)
	}
}
