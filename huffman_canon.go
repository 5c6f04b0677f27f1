// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// assignCanonicalCodes derives a canonical prefix code from each table's
// final lengths (spec section 4.4.5): symbols are assigned codes in
// ascending order of (length, symbol index), starting from code 0 and
// left-shifting the running code by one after each length class. The
// result is packed as (length<<24)|code per symbol for constant-time
// lookup during payload emission.
func (h *HuffmanBackEnd) assignCanonicalCodes() {
	for i := range h.tables {
		t := &h.tables[i]
		t.packed = make([]uint32, h.a)

		minL, maxL := maxPrefixBits+1, 0
		for _, l := range t.lengths {
			if int(l) < minL {
				minL = int(l)
			}
			if int(l) > maxL {
				maxL = int(l)
			}
		}

		code := uint32(0)
		for l := minL; l <= maxL; l++ {
			for sym := 0; sym < h.a; sym++ {
				if int(t.lengths[sym]) == l {
					t.packed[sym] = uint32(l)<<24 | code
					code++
				}
			}
			code <<= 1
		}
	}
}
