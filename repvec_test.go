// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noopExecute(consumed, produced []byte) {}

func TestRepetitionVectorEmptyGraph(t *testing.T) {
	q, err := RepetitionVector(Graph{})
	require.NoError(t, err)
	require.Empty(t, q)
}

func TestRepetitionVectorUniformRates(t *testing.T) {
	g := Graph{
		Actors: []Actor{
			{Outputs: []OutputPort{{Production: 1, TokenSize: 8}}, Execute: noopExecute},
			{
				Inputs:  []InputPort{{Consumption: 1, TokenSize: 8}},
				Outputs: []OutputPort{{Production: 1, TokenSize: 8}},
				Execute: noopExecute,
			},
			{Inputs: []InputPort{{Consumption: 1, TokenSize: 8}}, Execute: noopExecute},
		},
		Connections: []Connection{
			{Source: OutputID{0, 0}, Destination: InputID{1, 0}, TokenSize: 8},
			{Source: OutputID{1, 0}, Destination: InputID{2, 0}, TokenSize: 8},
		},
	}

	q, err := RepetitionVector(g)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 1, 1}, q)
}

func TestRepetitionVectorUnbalancedRates(t *testing.T) {
	g := Graph{
		Actors: []Actor{
			{Outputs: []OutputPort{{Production: 3, TokenSize: 4}}, Execute: noopExecute},
			{Inputs: []InputPort{{Consumption: 2, TokenSize: 4}}, Execute: noopExecute},
		},
		Connections: []Connection{
			{Source: OutputID{0, 0}, Destination: InputID{1, 0}, TokenSize: 4},
		},
	}

	q, err := RepetitionVector(g)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3}, q)
}

func TestRepetitionVectorDisconnected(t *testing.T) {
	g := Graph{
		Actors: []Actor{
			{Outputs: []OutputPort{{Production: 1, TokenSize: 4}}, Execute: noopExecute},
			{Inputs: []InputPort{{Consumption: 1, TokenSize: 4}}, Execute: noopExecute},
		},
	}

	_, err := RepetitionVector(g)
	require.ErrorIs(t, err, ErrInconsistentGraph)
}

func TestRepetitionVectorConflictingRates(t *testing.T) {
	g := Graph{
		Actors: []Actor{
			{
				Outputs: []OutputPort{
					{Production: 1, TokenSize: 4},
					{Production: 1, TokenSize: 4},
				},
				Execute: noopExecute,
			},
			{
				Inputs:  []InputPort{{Consumption: 1, TokenSize: 4}},
				Outputs: []OutputPort{{Production: 2, TokenSize: 4}},
				Execute: noopExecute,
			},
			{
				Inputs:  []InputPort{{Consumption: 1, TokenSize: 4}},
				Outputs: []OutputPort{{Production: 3, TokenSize: 4}},
				Execute: noopExecute,
			},
			{
				Inputs: []InputPort{
					{Consumption: 1, TokenSize: 4},
					{Consumption: 1, TokenSize: 4},
				},
				Execute: noopExecute,
			},
		},
		Connections: []Connection{
			{Source: OutputID{0, 0}, Destination: InputID{1, 0}, TokenSize: 4},
			{Source: OutputID{0, 1}, Destination: InputID{2, 0}, TokenSize: 4},
			{Source: OutputID{1, 0}, Destination: InputID{3, 0}, TokenSize: 4},
			{Source: OutputID{2, 0}, Destination: InputID{3, 1}, TokenSize: 4},
		},
	}

	_, err := RepetitionVector(g)
	require.ErrorIs(t, err, ErrInconsistentGraph)
}
