// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// crcReference computes the BZip2 CRC-32 variant directly, bit by bit,
// as an independent check on BlockCRC's table-driven implementation.
func crcReference(data []byte) uint32 {
	crc := uint32(0xffffffff)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bit := (b >> uint(i)) & 1
			top := crc >> 31
			crc <<= 1
			if top^uint32(bit) != 0 {
				crc ^= 0x04c11db7
			}
		}
	}
	return ^crc
}

func TestBlockCRCMatchesReference(t *testing.T) {
	tests := [][]byte{
		nil,
		[]byte("a"),
		[]byte("hello, world"),
		bytes20(),
	}
	for _, data := range tests {
		var c BlockCRC
		for _, b := range data {
			c.Update(b, 1)
		}
		assert.Equal(t, crcReference(data), c.Sum32())
	}
}

func TestBlockCRCRunUpdate(t *testing.T) {
	var byRun, byByte BlockCRC
	byRun.Update('x', 7)
	for i := 0; i < 7; i++ {
		byByte.Update('x', 1)
	}
	assert.Equal(t, byByte.Sum32(), byRun.Sum32())
}

func TestBlockCRCReset(t *testing.T) {
	var c BlockCRC
	c.Update('z', 3)
	c.Reset()
	assert.Equal(t, uint32(0), c.Sum32())
}

func bytes20() []byte {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
