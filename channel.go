// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"code.hybscloud.com/atomix"
)

// pad is cache line padding, preventing false sharing between fields
// owned by the producer side and fields owned by the consumer side.
//
// Grounded on the teacher's options.go pad type.
type pad [64]byte

// channel is the common contract shared by both FIFO variants (§4.B):
// push copies one token's bytes in at the producer end, pop copies one
// token's bytes out at the consumer end, occupancy reports the number of
// buffered tokens. Implementations: [sequentialChannel] (no
// synchronization, used by the sequential scheduler) and [concurrentChannel]
// (SPSC, acquire/release ordered, used by the parallel scheduler).
type channel interface {
	push(token []byte) error
	pop(out []byte) error
	occupancy() int
	capacity() int
}

// concurrentChannel is a single-producer/single-consumer bounded ring
// buffer of opaque tokenSize-byte tokens, synchronized with acquire/
// release atomics and no locks.
//
// Directly adapted from the teacher's SPSC[T] (spsc.go): Lamport's ring
// buffer with cached opposite-side index, generalized from a generic
// element type T to a fixed-size byte slot (CSDF tokens are opaque byte
// blobs of a size declared by the connecting ports, not a Go type the
// runtime knows about).
//
// The producer reads head with acquire before asserting not-full, writes
// the payload with plain byte copies, then publishes the new tail with
// release; the consumer mirrors this for the pop side. Exactly one
// producer goroutine and one consumer goroutine may use a channel: fan-out
// is modeled by allocating N parallel channels from one source port (§4.B),
// never by sharing one channel across multiple consumers.
type concurrentChannel struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buf        []byte // flat storage, n slots of tokenSize bytes each
	tokSize    int
	mask       uint64
}

// newConcurrentChannel allocates a concurrent channel with room for at
// least minCapacity tokens of size tokenSize each, rounded up to the next
// power of two so slot indexing can use a bitmask, same as the teacher's
// SPSC.
func newConcurrentChannel(minCapacity, tokenSize int) *concurrentChannel {
	n := roundToPow2(minCapacity)
	return &concurrentChannel{
		buf:     make([]byte, n*tokenSize),
		tokSize: tokenSize,
		mask:    uint64(n - 1),
	}
}

// prefill seeds the channel with initial tokens (delays), advancing tail
// past them. Must be called before any concurrent access begins.
func (c *concurrentChannel) prefill(initial []byte) {
	n := len(initial) / c.tokSize
	for i := 0; i < n; i++ {
		copy(c.slot(uint64(i)), initial[i*c.tokSize:(i+1)*c.tokSize])
	}
	c.tail.StoreRelaxed(uint64(n))
}

func (c *concurrentChannel) slot(i uint64) []byte {
	off := (i & c.mask) * uint64(c.tokSize)
	return c.buf[off : off+uint64(c.tokSize)]
}

// push copies token (exactly tokenSize bytes) into the channel. Returns
// ErrChannelOverflow if the channel is full — a sizing bug under a
// consistent graph, not a backpressure signal to retry.
func (c *concurrentChannel) push(token []byte) error {
	tail := c.tail.LoadRelaxed()
	if tail-c.cachedHead > c.mask {
		c.cachedHead = c.head.LoadAcquire()
		if tail-c.cachedHead > c.mask {
			return ErrChannelOverflow
		}
	}
	copy(c.slot(tail), token)
	c.tail.StoreRelease(tail + 1)
	return nil
}

// pop copies the oldest token's bytes into out (which must be at least
// tokenSize long) and advances the channel. Returns ErrWouldBlock if the
// channel is empty (a legitimate, transient condition polled by the
// parallel scheduler's can-fire check, unlike push's overflow).
func (c *concurrentChannel) pop(out []byte) error {
	head := c.head.LoadRelaxed()
	if head >= c.cachedTail {
		c.cachedTail = c.tail.LoadAcquire()
		if head >= c.cachedTail {
			return ErrWouldBlock
		}
	}
	copy(out, c.slot(head))
	c.head.StoreRelease(head + 1)
	return nil
}

// occupancy returns the number of tokens currently buffered. Since this
// reads both atomics without coordination it is only a momentary estimate
// when called concurrently with push/pop; the parallel scheduler only
// relies on it being eventually accurate, via the can-fire retry loop.
func (c *concurrentChannel) occupancy() int {
	tail := c.tail.LoadAcquire()
	head := c.head.LoadAcquire()
	return int(tail - head)
}

func (c *concurrentChannel) capacity() int {
	return int(c.mask + 1)
}

// roundToPow2 rounds n up to the next power of 2, minimum 1.
//
// Grounded on the teacher's options.go roundToPow2.
func roundToPow2(n int) int {
	if n < 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
