// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func u64tok(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func TestRoundToPow2(t *testing.T) {
	require.Equal(t, 1, roundToPow2(0))
	require.Equal(t, 1, roundToPow2(1))
	require.Equal(t, 4, roundToPow2(3))
	require.Equal(t, 8, roundToPow2(8))
	require.Equal(t, 16, roundToPow2(9))
}

func TestConcurrentChannelPushPop(t *testing.T) {
	c := newConcurrentChannel(4, 8)
	require.Equal(t, 4, c.capacity())

	require.NoError(t, c.push(u64tok(1)))
	require.NoError(t, c.push(u64tok(2)))
	require.Equal(t, 2, c.occupancy())

	out := make([]byte, 8)
	require.NoError(t, c.pop(out))
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(out))
	require.NoError(t, c.pop(out))
	require.Equal(t, uint64(2), binary.LittleEndian.Uint64(out))

	require.ErrorIs(t, c.pop(out), ErrWouldBlock)
}

func TestConcurrentChannelOverflow(t *testing.T) {
	c := newConcurrentChannel(2, 8)
	require.NoError(t, c.push(u64tok(1)))
	require.NoError(t, c.push(u64tok(2)))
	require.ErrorIs(t, c.push(u64tok(3)), ErrChannelOverflow)
}

func TestConcurrentChannelPrefill(t *testing.T) {
	c := newConcurrentChannel(4, 8)
	initial := append(u64tok(10), u64tok(20)...)
	c.prefill(initial)
	require.Equal(t, 2, c.occupancy())

	out := make([]byte, 8)
	require.NoError(t, c.pop(out))
	require.Equal(t, uint64(10), binary.LittleEndian.Uint64(out))
}

func TestConcurrentChannelWraps(t *testing.T) {
	c := newConcurrentChannel(2, 8)
	out := make([]byte, 8)
	for i := uint64(0); i < 20; i++ {
		require.NoError(t, c.push(u64tok(i)))
		require.NoError(t, c.pop(out))
		require.Equal(t, i, binary.LittleEndian.Uint64(out))
	}
}
