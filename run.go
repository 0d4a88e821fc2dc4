// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import "fmt"

// Run owns everything a scheduler needs to execute Graph g for
// numIterations iterations: the repetition vector, one channel per
// connection, and one actorRun per actor. A Run is created, driven to
// completion by exactly one of [SequentialRun] or [ParallelRun], observed
// via [Run.RecordedTokens], then discarded; Go's garbage collector
// reclaims its channels and recorders once no scheduler or caller still
// references it; no destructor is needed (§7's "partial allocations are
// fully released on failure" correspondingly means [NewRun] simply
// doesn't return a Run when it returns an error).
//
// Grounded on original_source/src/csdf/execution/graph.c's
// CsdfGraphRun / new_sequential_run / create_buffers / create_actor_runs.
type Run struct {
	graph         Graph
	q             []uint64
	numIterations int
	concurrent    bool

	channels []channel
	actors   []*actorRun
}

// NewRun computes the repetition vector, validates the graph, and
// constructs channels and actor run state for numIterations iterations,
// using the sequential channel variant (§4.B). A Run built this way is
// intended for [SequentialRun]. Use [NewParallelRun] to build one backed
// by the concurrent SPSC channel variant for [ParallelRun].
//
// Returns ErrInvalidGraph if the graph violates a structural invariant,
// ErrInconsistentGraph if no positive repetition vector exists, or
// ErrGraphTooLarge on repetition-vector arithmetic overflow.
func NewRun(g Graph, numIterations int) (*Run, error) {
	return newRun(g, numIterations, false)
}

// NewParallelRun is [NewRun], but builds channels using the concurrent
// SPSC variant, required by [ParallelRun] since each channel is shared
// between two separate worker goroutines.
func NewParallelRun(g Graph, numIterations int) (*Run, error) {
	return newRun(g, numIterations, true)
}

func newRun(g Graph, numIterations int, concurrent bool) (*Run, error) {
	if numIterations <= 0 {
		return nil, fmt.Errorf("%w: numIterations must be positive, got %d", ErrInvalidGraph, numIterations)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	q, err := RepetitionVector(g)
	if err != nil {
		return nil, err
	}

	run := &Run{
		graph:         g,
		q:             q,
		numIterations: numIterations,
		concurrent:    concurrent,
		channels:      make([]channel, len(g.Connections)),
		actors:        make([]*actorRun, len(g.Actors)),
	}

	run.createChannels()
	run.createActorRuns()

	return run, nil
}

// createChannels allocates one channel per connection, sized per §4.B:
// capacity = initialTokens + 2*q[src]*production + 1, then prefills it
// with the connection's initial tokens.
//
// Grounded on graph.c's calculate_buffer_max_tokens/create_buffers.
func (r *Run) createChannels() {
	for i := range r.graph.Connections {
		c := &r.graph.Connections[i]
		srcPort := r.graph.Actors[c.Source.Actor].Outputs[c.Source.Output]
		capTokens := c.numInitialTokens() + 2*int(r.q[c.Source.Actor])*srcPort.Production + 1

		var ch channel
		if r.concurrent {
			cc := newConcurrentChannel(capTokens, c.TokenSize)
			cc.prefill(c.InitialTokens)
			ch = cc
		} else {
			sc := newSequentialChannel(capTokens, c.TokenSize)
			sc.prefill(c.InitialTokens)
			ch = sc
		}
		r.channels[i] = ch
	}
}

// createActorRuns allocates one actorRun per actor, with maxFireCount =
// numIterations * q[a], and wires its input/output channel bindings by
// scanning connections twice: first to count fan-out per output port,
// then to bind the inbound channel of each input port and populate the
// per-output channel lists.
//
// Grounded on graph.c's create_actor_runs two-pass scan.
func (r *Run) createActorRuns() {
	for ai := range r.graph.Actors {
		a := &r.graph.Actors[ai]
		maxFireCount := r.numIterations * int(r.q[ai])
		rec := newRecorder(a, maxFireCount)
		run := newActorRun(a, maxFireCount, rec)

		fanout := make([]int, len(a.Outputs))
		for ci := range r.graph.Connections {
			c := &r.graph.Connections[ci]
			if c.Source.Actor == ai {
				fanout[c.Source.Output]++
			}
		}
		for oi := range a.Outputs {
			run.outputs[oi] = make([]channel, 0, fanout[oi])
		}

		for ci := range r.graph.Connections {
			c := &r.graph.Connections[ci]
			if c.Destination.Actor == ai {
				run.inputs[c.Destination.Input] = r.channels[ci]
			}
			if c.Source.Actor == ai {
				run.outputs[c.Source.Output] = append(run.outputs[c.Source.Output], r.channels[ci])
			}
		}

		r.actors[ai] = run
	}
}

// RepetitionVector returns the canonical repetition vector this Run was
// built with.
func (r *Run) RepetitionVector() []uint64 {
	q := make([]uint64, len(r.q))
	copy(q, r.q)
	return q
}

// RecordedTokens returns a copy of every byte produced by the given
// actor's output port across the run so far. Safe to call once the
// scheduler has returned; the recorder is not synchronized, so a call made
// while a parallel scheduler's workers are still firing races with them.
func (r *Run) RecordedTokens(actor, output int) []byte {
	return r.actors[actor].rec.tokens(output)
}
