// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderRecordAndTokens(t *testing.T) {
	a := &Actor{
		Outputs: []OutputPort{
			{Production: 1, TokenSize: 8},
			{Production: 2, TokenSize: 4},
		},
	}
	rec := newRecorder(a, 2)

	produced1 := make([]byte, 0, 16)
	produced1 = append(produced1, u64tok(1)...)
	produced1 = append(produced1, make([]byte, 8)...)
	rec.record(a, produced1)

	got := rec.tokens(0)
	require.Len(t, got, 8)
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(got))
}

func TestRecorderTokensIsCopy(t *testing.T) {
	a := &Actor{Outputs: []OutputPort{{Production: 1, TokenSize: 8}}}
	rec := newRecorder(a, 1)
	rec.record(a, u64tok(42))

	got := rec.tokens(0)
	got[0] = 0xFF

	got2 := rec.tokens(0)
	require.Equal(t, uint64(42), binary.LittleEndian.Uint64(got2))
}
