// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bzip2 implements the block-level core of the BZip2 compressed
// data format: run-length preconditioning (RLE1), the Burrows-Wheeler
// transform, and the multi-table Huffman back end (MTF, RLE2, selector
// co-optimization, canonical code assignment, and bit-packed emission).
//
// This package produces the bit-exact encoding of a single BZip2 block,
// suitable for concatenation by a stream framer with other such blocks.
// Stream framing (the "BZh<level>" header, the stream footer and its
// combined CRC, file I/O, and decompression) is deliberately out of
// scope; see BlockCompressor for the block-level API a framer drives.
//
// There does not exist a formal specification of the BZip2 format. Much
// of this package is derived from reverse engineering the reference C
// implementation and secondary sources.
//
// References:
//	http://bzip.org/
//	https://en.wikipedia.org/wiki/Bzip2
package bzip2

const (
	// blkMagicHi and blkMagicLo form the 48-bit per-block marker (BCD
	// digits of Pi), written as two 24-bit values by BlockCompressor.Close.
	blkMagicHi = 0x314159
	blkMagicLo = 0x265359

	blockSizeUnit = 100000 // Bytes per compression level per BZip2 file format.

	minUniqueSyms = 0   // Smallest dictionary this package will encode (A=2).
	maxUniqueSyms = 256 // 256 possible byte values.

	maxPrefixBits       = 17 // Encoder-side cap on Huffman code length.
	huffmanGroupRunLen  = 50 // Symbols per selector group.
	minNumTables        = 2
	maxNumTables        = 6
	eobReserved         = 2 // RUNA and RUNB occupy symbols 0 and 1.
)

// Compression level constants, mirroring the conventional flate/bzip2
// naming so callers can write NewBlockCompressor(sink, bzip2.BestSpeed, nil)
// instead of a bare magic number.
const (
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = 9
)

// BlockSize returns the block-buffer capacity in bytes for the given
// BZip2 compression level (1..9), per spec section 6.1: 100000 bytes per
// level.
func BlockSize(level int) int {
	return level * blockSizeUnit
}

// Error is the wrapper type for recoverable errors specific to this
// package. It is distinct from fatalError: a value of this type reaching
// errRecover is converted into a returned error, never re-panicked.
type Error string

func (e Error) Error() string { return "bzip2: " + string(e) }

// fatalError marks a precondition violation (spec section 7, class 2): a
// programming error such as writing after Close, a write_bits value that
// overflows its declared bit width, or a BWT kernel returning an
// out-of-range primary pointer. These are fatal assertions, not
// recoverable at runtime, so errRecover refuses to catch them and lets
// them continue unwinding — mirroring the teacher's own common.go, which
// re-panics a runtime.Error instead of converting it into a returned
// error.
type fatalError string

func (e fatalError) Error() string { return "bzip2: " + string(e) }

var (
	// ErrClosed is the panic value of any write operation on a
	// BlockCompressor that has already been closed.
	ErrClosed error = fatalError("block compressor already closed")
)

// errRecover turns a panic raised by one of the write_* primitives (a
// failed sink write, surfaced as a panic to unwind out of deeply nested
// bit-emission helpers) back into a returned error. Programming errors
// (fatalError, precondition violations per spec section 7) are not
// recovered here and continue to panic, matching the teacher's errRecover
// idiom in common.go.
func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case Error:
		*err = ex
	case sinkError:
		*err = ex.err
	default:
		panic(ex)
	}
}
