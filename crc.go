// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import "hash/crc32"

// reverseLUT maps a byte to its bit-reversed value. BZip2's CRC-32 variant
// consumes bits most-significant-first, the opposite of the standard
// library's reflected IEEE table; reversing every byte in and out of the
// standard algorithm reproduces the unreflected variant without having to
// hand-roll a second 256-entry table.
var reverseLUT [256]byte

func init() {
	for i := range reverseLUT {
		b := byte(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		reverseLUT[i] = b
	}
}

func reverseUint32(v uint32) (x uint32) {
	x |= uint32(reverseLUT[byte(v>>0)]) << 24
	x |= uint32(reverseLUT[byte(v>>8)]) << 16
	x |= uint32(reverseLUT[byte(v>>16)]) << 8
	x |= uint32(reverseLUT[byte(v>>24)]) << 0
	return x
}

// BlockCRC is the running BZip2 CRC-32 (polynomial 0x04C11DB7, initial
// value all-ones, MSB-first, output complemented) of the original bytes
// fed into a block before RLE1 preconditioning. It is updated one run at
// a time, matching the granularity at which RLE1 commits runs.
type BlockCRC struct {
	crc uint32
}

// Update folds n copies of value into the running CRC. n must be >= 1.
func (c *BlockCRC) Update(value byte, n int) {
	var buf [255]byte
	for i := range buf[:n] {
		buf[i] = reverseLUT[value]
	}
	raw := reverseUint32(c.crc)
	raw = crc32.Update(raw, crc32.IEEETable, buf[:n])
	c.crc = reverseUint32(raw)
}

// Sum32 returns the CRC-32 accumulated so far.
func (c *BlockCRC) Sum32() uint32 { return c.crc }

// Reset restores the CRC to its zero value, ready for a new block.
func (c *BlockCRC) Reset() { c.crc = 0 }
