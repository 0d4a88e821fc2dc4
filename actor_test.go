// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActorRunCanFire(t *testing.T) {
	a := &Actor{
		Inputs:  []InputPort{{Consumption: 2, TokenSize: 8}},
		Execute: noopExecute,
	}
	run := newActorRun(a, 1, nil)
	ch := newSequentialChannel(4, 8)
	run.inputs[0] = ch

	require.False(t, run.canFire())
	require.NoError(t, ch.push(u64tok(1)))
	require.False(t, run.canFire())
	require.NoError(t, ch.push(u64tok(2)))
	require.True(t, run.canFire())
}

func TestActorRunCanFireBudgetExhausted(t *testing.T) {
	a := &Actor{Execute: noopExecute}
	run := newActorRun(a, 0, nil)
	require.False(t, run.canFire())
}

func TestActorRunFireDoubles(t *testing.T) {
	a := &Actor{
		Inputs:  []InputPort{{Consumption: 1, TokenSize: 8}},
		Outputs: []OutputPort{{Production: 1, TokenSize: 8}},
		Execute: func(consumed, produced []byte) {
			v := binary.LittleEndian.Uint64(consumed)
			binary.LittleEndian.PutUint64(produced, v*2)
		},
	}
	rec := newRecorder(a, 3)
	run := newActorRun(a, 3, rec)

	in := newSequentialChannel(4, 8)
	require.NoError(t, in.push(u64tok(5)))
	run.inputs[0] = in

	out := newSequentialChannel(4, 8)
	run.outputs[0] = []channel{out}

	require.True(t, run.canFire())
	require.NoError(t, run.fire())
	require.Equal(t, 1, run.fireCount)

	var got [8]byte
	require.NoError(t, out.pop(got[:]))
	require.Equal(t, uint64(10), binary.LittleEndian.Uint64(got[:]))

	tokens := rec.tokens(0)
	require.Equal(t, uint64(10), binary.LittleEndian.Uint64(tokens))
}

func TestActorRunFanOutFullSequence(t *testing.T) {
	a := &Actor{
		Outputs: []OutputPort{{Production: 3, TokenSize: 8}},
		Execute: func(consumed, produced []byte) {
			for i := 0; i < 3; i++ {
				binary.LittleEndian.PutUint64(produced[i*8:i*8+8], uint64(i+1))
			}
		},
	}
	run := newActorRun(a, 1, nil)

	chA := newSequentialChannel(4, 8)
	chB := newSequentialChannel(4, 8)
	run.outputs[0] = []channel{chA, chB}

	require.NoError(t, run.fire())

	for _, ch := range []*sequentialChannel{chA, chB} {
		require.Equal(t, 3, ch.occupancy())
		for i := 0; i < 3; i++ {
			var got [8]byte
			require.NoError(t, ch.pop(got[:]))
			require.Equal(t, uint64(i+1), binary.LittleEndian.Uint64(got[:]))
		}
	}
}
