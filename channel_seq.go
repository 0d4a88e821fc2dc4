// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

// sequentialChannel is a single-threaded bounded ring buffer of opaque
// tokenSize-byte tokens: plain indices, no atomics, no memory ordering
// concerns, since the sequential scheduler drives every actor from one
// goroutine.
//
// Grounded on original_source/src/csdf/sequential.c's push/pop/
// number_tokens (a separate preallocated token arena addressed by
// start/end indices modulo the buffer size), adapted to mask-based
// indexing to match the power-of-two sizing shared with
// [concurrentChannel].
type sequentialChannel struct {
	buf     []byte
	tokSize int
	mask    uint64
	start   uint64
	end     uint64
}

func newSequentialChannel(minCapacity, tokenSize int) *sequentialChannel {
	n := roundToPow2(minCapacity)
	return &sequentialChannel{
		buf:     make([]byte, n*tokenSize),
		tokSize: tokenSize,
		mask:    uint64(n - 1),
	}
}

func (c *sequentialChannel) prefill(initial []byte) {
	n := len(initial) / c.tokSize
	for i := 0; i < n; i++ {
		copy(c.slot(uint64(i)), initial[i*c.tokSize:(i+1)*c.tokSize])
	}
	c.end = uint64(n)
}

func (c *sequentialChannel) slot(i uint64) []byte {
	off := (i & c.mask) * uint64(c.tokSize)
	return c.buf[off : off+uint64(c.tokSize)]
}

func (c *sequentialChannel) push(token []byte) error {
	if c.occupancy() > int(c.mask) {
		return ErrChannelOverflow
	}
	copy(c.slot(c.end), token)
	c.end++
	return nil
}

func (c *sequentialChannel) pop(out []byte) error {
	if c.occupancy() == 0 {
		return ErrWouldBlock
	}
	copy(out, c.slot(c.start))
	c.start++
	return nil
}

func (c *sequentialChannel) occupancy() int {
	return int(c.end - c.start)
}

func (c *sequentialChannel) capacity() int {
	return int(c.mask + 1)
}
