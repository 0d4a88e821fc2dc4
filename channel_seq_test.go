// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequentialChannelPushPop(t *testing.T) {
	c := newSequentialChannel(4, 8)
	require.NoError(t, c.push(u64tok(7)))
	require.NoError(t, c.push(u64tok(8)))
	require.Equal(t, 2, c.occupancy())

	out := make([]byte, 8)
	require.NoError(t, c.pop(out))
	require.Equal(t, uint64(7), binary.LittleEndian.Uint64(out))
	require.NoError(t, c.pop(out))
	require.Equal(t, uint64(8), binary.LittleEndian.Uint64(out))

	require.ErrorIs(t, c.pop(out), ErrWouldBlock)
}

func TestSequentialChannelOverflow(t *testing.T) {
	c := newSequentialChannel(2, 8)
	require.NoError(t, c.push(u64tok(1)))
	require.NoError(t, c.push(u64tok(2)))
	require.ErrorIs(t, c.push(u64tok(3)), ErrChannelOverflow)
}

func TestSequentialChannelPrefill(t *testing.T) {
	c := newSequentialChannel(4, 8)
	initial := append(u64tok(1), u64tok(2)...)
	c.prefill(initial)
	require.Equal(t, 2, c.occupancy())
}
