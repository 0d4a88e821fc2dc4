// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package csdf provides a runtime for executing Cyclo-Static / Synchronous
// Data Flow (CSDF/SDF) graphs.
//
// A graph is a directed multigraph of actors connected by FIFO channels.
// Each actor, when it fires, atomically consumes a fixed number of tokens
// from each input channel and produces a fixed number of tokens on each
// output channel. Channels may carry initial tokens (delays), which enable
// feedback loops.
//
// # Quick Start
//
//	g := csdf.Graph{
//	    Actors: []csdf.Actor{
//	        {Outputs: []csdf.OutputPort{{Production: 1, TokenSize: 8}}, Execute: source},
//	        {Inputs: []csdf.InputPort{{Consumption: 1, TokenSize: 8}},
//	         Outputs: []csdf.OutputPort{{Production: 1, TokenSize: 8}}, Execute: gain},
//	        {Inputs: []csdf.InputPort{{Consumption: 1, TokenSize: 8}}, Execute: sink},
//	    },
//	    Connections: []csdf.Connection{
//	        {Source: csdf.OutputID{Actor: 0, Output: 0}, Destination: csdf.InputID{Actor: 1, Input: 0}, TokenSize: 8},
//	        {Source: csdf.OutputID{Actor: 1, Output: 0}, Destination: csdf.InputID{Actor: 2, Input: 0}, TokenSize: 8},
//	    },
//	}
//
//	run, err := csdf.NewRun(g, 100)
//	if err != nil {
//	    // ErrInconsistentGraph, ErrInvalidGraph, or ErrGraphTooLarge
//	}
//	if err := csdf.SequentialRun(run); err != nil {
//	    // ErrSchedulingDeadlock
//	}
//	tokens := run.RecordedTokens(0, 0) // bytes produced by actor 0's output 0
//
// # Repetition Vector
//
// Before a graph can run, the runtime solves the balance equations to find
// the minimal positive integer repetition vector q, such that one iteration
// (each actor a fired q[a] times) returns every channel to its initial
// occupancy. See [RepetitionVector].
//
// # Schedulers
//
// [SequentialRun] drives a graph on a single goroutine, firing whichever
// enabled actor has the lowest index until every actor has exhausted its
// iteration budget. [ParallelRun] assigns each actor its own worker
// goroutine, coordinated through single-producer/single-consumer channels;
// see [Threading] for the injectable worker-creation capability.
//
// # Errors
//
// Errors are a small, closed taxonomy: [ErrInvalidGraph],
// [ErrInconsistentGraph], [ErrChannelOverflow], [ErrSchedulingDeadlock],
// [ErrThreadingError], and [ErrGraphTooLarge]. See the Is* helpers for
// classification.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/iox] for semantic
// backpressure signaling and adaptive backoff, golang.org/x/sync/errgroup
// for the default worker pool, and github.com/hashicorp/go-multierror to
// aggregate threading failures.
package csdf
