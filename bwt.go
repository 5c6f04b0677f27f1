// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "github.com/MateuszBartosiewicz/bzip2/internal/sais"

// The Burrows-Wheeler Transform implementation used here is based on the
// Suffix Array by Induced Sorting (SA-IS) methodology by Nong, Zhang, and
// Chan, as implemented by Yuta Mori and adapted in internal/sais.
//
// References:
//	https://sites.google.com/site/yuta256/sais
//	https://en.wikipedia.org/wiki/Burrows%E2%80%93Wheeler_transform

// BWT is the external suffix-sort collaborator contract described in
// spec section 6.2: given a cyclic block of length n, it returns the
// permuted bytes (widened to int32, only the low 8 bits meaningful) and
// the index of the row that begins with block[0].
//
// A BlockCompressor is constructed with a BWT implementation; callers may
// substitute their own suffix-sort kernel as long as it honors this
// contract. Transform receives the block with its one-byte wrap suffix
// already appended (block[n] == block[0]), matching the layout
// BlockCompressor prepares at close; a correct implementation need not
// read past index n-1 to produce the cyclic permutation.
type BWT interface {
	Transform(block []byte, n int) (bwt []int32, origPtr int)
}

// saisBWT is the bundled default BWT implementation. It keeps its scratch
// buffers between calls, so one value can transform several blocks in
// turn without reallocating them; it is not safe for concurrent use.
type saisBWT struct {
	sa  []int
	dup []byte
}

// newSAISBWT returns a ready-to-use bundled BWT implementation.
func newSAISBWT() *saisBWT {
	return &saisBWT{}
}

func (t *saisBWT) Transform(block []byte, n int) (bwt []int32, origPtr int) {
	if n == 0 {
		return nil, -1
	}

	// Classic string-doubling trick: duplicate the block so that every
	// cyclic rotation of block[:n] appears as an ordinary prefix of some
	// suffix of the doubled string. Only suffixes starting in the first
	// half are kept; their preceding (cyclic) byte is the BWT output.
	if cap(t.dup) < 2*n {
		t.dup = make([]byte, 2*n)
	}
	dup := t.dup[:2*n]
	copy(dup, block[:n])
	copy(dup[n:], block[:n])

	if cap(t.sa) < 2*n {
		t.sa = make([]int, 2*n)
	}
	sa := t.sa[:2*n]
	sais.ComputeSA(dup, sa)

	bwt = make([]int32, n)
	var j int
	for _, i := range sa {
		if i >= n {
			continue
		}
		if i == 0 {
			origPtr = j
			i = n
		}
		bwt[j] = int32(dup[i-1])
		j++
	}
	return bwt, origPtr
}
