// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bzip2

// BlockCompressor accumulates one BZip2 block's worth of input through
// RLE1 preconditioning and, on Close, runs the Burrows-Wheeler transform
// and the Huffman back end and writes the complete block to a BitSink.
//
// A BlockCompressor is single-use: once Close returns, WriteByte and
// Write panic with ErrClosed. This mirrors the teacher's Writer lifecycle in
// writer.go, scoped down to a single block instead of an open-ended
// stream of blocks.
type BlockCompressor struct {
	sink     *BitSink
	capacity int
	bwt      BWT

	block   []byte // Accumulated RLE1 output; len(block) <= capacity.
	present [256]bool

	rleVal byte
	rleRun int
	rleHas bool // Whether rleRun/rleVal describe a pending run.

	crc    BlockCRC
	closed bool

	stats Stats
}

// NewBlockCompressor returns a BlockCompressor that RLE1-encodes input
// into a block of at most about BlockSize(level) bytes and, on Close, writes one
// complete BZip2 block to sink. bwt selects the Burrows-Wheeler
// implementation; passing nil selects the bundled suffix-array-based
// transform.
func NewBlockCompressor(sink *BitSink, level int, bwt BWT) *BlockCompressor {
	if bwt == nil {
		bwt = newSAISBWT()
	}
	return &BlockCompressor{
		sink:     sink,
		capacity: BlockSize(level),
		bwt:      bwt,
		block:    make([]byte, 0, BlockSize(level)),
	}
}

// IsEmpty reports whether any bytes have been accepted yet.
func (c *BlockCompressor) IsEmpty() bool {
	return len(c.block) == 0 && !c.rleHas
}

// CRC returns the running BZip2 CRC-32 of the runs committed so far. A run
// still in flight is folded in only when it is committed, so the value
// covers every accepted byte only after Close.
func (c *BlockCompressor) CRC() uint32 { return c.crc.Sum32() }

// Stats returns a snapshot of back-end sizing counters. It is only
// meaningful after Close.
func (c *BlockCompressor) Stats() Stats { return c.stats }

// WriteByte admits a single byte into the block's RLE1 state machine. It
// reports false when the block has no remaining capacity for the byte,
// in which case the caller must Close this compressor and start another.
func (c *BlockCompressor) WriteByte(v byte) bool {
	if c.closed {
		panic(ErrClosed)
	}
	if !c.admit(v) {
		return false
	}
	c.rleAccept(v)
	return true
}

// Write admits as many bytes of buf as fit and returns that count. A
// short count (less than len(buf)) means the block is full.
func (c *BlockCompressor) Write(buf []byte) int {
	for i, v := range buf {
		if !c.WriteByte(v) {
			return i
		}
	}
	return len(buf)
}

// admit reports whether accepting one more byte cannot overflow capacity.
// rleAccept's worst case growth is 4 literal bytes plus one length byte
// when a run reaches 255 (see emitRun), so refusing once
// len(c.block) > capacity-5 guarantees every committed run still fits.
func (c *BlockCompressor) admit(v byte) bool {
	return len(c.block) <= c.capacity-5
}

// rleAccept feeds v through the RLE1 state machine (spec section 4.2):
// runs of the same byte up to length 3 are passed through literally;
// a byte identical to an in-flight run of 4 or more extends the run
// instead of being written, and the run is flushed (as 4 literals plus
// a length byte) once it reaches 255 or is broken by a different byte.
func (c *BlockCompressor) rleAccept(v byte) {
	switch {
	case !c.rleHas:
		c.rleVal, c.rleRun, c.rleHas = v, 1, true
	case v == c.rleVal && c.rleRun < 4:
		c.rleRun++
	case v == c.rleVal: // rleRun >= 4: extend the hidden tail count.
		c.rleRun++
		if c.rleRun == 255 {
			c.emitRun(c.rleVal, c.rleRun)
			c.rleHas = false
		}
	default:
		c.emitRun(c.rleVal, c.rleRun)
		c.rleVal, c.rleRun, c.rleHas = v, 1, true
	}
}

// emitRun commits r copies of v to the block and the running CRC. Runs
// of 1-3 are stored as r literal bytes; runs of 4 or more are stored as
// 4 literal bytes followed by one length byte encoding r-4, per spec
// section 4.2's wire representation of a completed run. The length byte
// is itself a literal byte of the block, so its presence bit is set too.
func (c *BlockCompressor) emitRun(v byte, r int) {
	c.crc.Update(v, r)
	c.present[v] = true

	lit := r
	if lit > 4 {
		lit = 4
	}
	for i := 0; i < lit; i++ {
		c.block = append(c.block, v)
	}
	if r >= 4 {
		c.block = append(c.block, byte(r-4))
		c.present[r-4] = true
	}
}

// Close flushes any in-flight run, runs the BWT and Huffman back end, and
// writes the complete block (including its 48-bit magic, CRC, and
// origin-pointer preamble) to the sink. Close is idempotent; calling it
// on an already-closed compressor returns nil without writing anything.
func (c *BlockCompressor) Close() (err error) {
	if c.closed {
		return nil
	}
	defer errRecover(&err)

	if c.rleHas {
		c.emitRun(c.rleVal, c.rleRun)
		c.rleHas = false
	}
	c.closed = true

	n := len(c.block)
	block := make([]byte, n+1)
	copy(block, c.block)
	if n > 0 {
		block[n] = block[0]
	}

	bwt, origPtr := c.bwt.Transform(block, n)
	if origPtr < 0 || origPtr >= n {
		panic(fatalError("BWT returned an out-of-range origPtr"))
	}

	c.sink.WriteBits(24, blkMagicHi)
	c.sink.WriteBits(24, blkMagicLo)
	c.sink.WriteU32(c.crc.Sum32())
	c.sink.WriteBool(false) // Randomized-block flag; never set by this encoder.
	c.sink.WriteBits(24, uint32(origPtr))

	h := newHuffmanBackEnd(c.sink, bwt, &c.present)
	h.Encode()
	c.stats = h.stats
	return nil
}
