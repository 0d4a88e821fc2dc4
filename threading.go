// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"golang.org/x/sync/errgroup"
)

// Threading is the host-injectable capability the parallel scheduler uses
// to create one worker per actor and wait for all of them. It exists so
// tests and alternative runtimes can swap in a different execution
// substrate (e.g. a fixed worker pool, or an instrumented one counting
// spawned workers) without [ParallelRun] depending on goroutines directly.
//
// Grounded on original_source/src/csdf/execution/parallel.h's
// CsdfThreading vtable (createThread/joinThread), generalized from a C
// struct of function pointers to a Go interface; the vtable's
// sleep/microsecondsSleep half is handled instead by each worker's own
// code.hybscloud.com/iox.Backoff (§4.H), matching how the teacher's test
// suite backs off around a can-fire-style poll loop (correctness_test.go).
type Threading interface {
	// Spawn starts fn running as a new worker and returns immediately;
	// fn's return value is collected by the next Join.
	Spawn(fn func() error)
	// Join blocks until every worker started by Spawn since the last Join
	// has returned, and reports a non-nil error if any of them returned one.
	Join() error
}

// defaultThreading is the built-in [Threading] implementation: one
// goroutine per Spawn call, joined by golang.org/x/sync/errgroup, whose
// Wait reports only the first error a worker returned.
//
// An errgroup-style goroutine lifecycle has no counterpart in
// hayabusa-cloud-lfq itself (its queues are synchronization primitives,
// not goroutine orchestrators); adopted instead from the rest of the
// pack's use of golang.org/x/sync/errgroup for exactly this
// create/join/error-aggregate shape.
type defaultThreading struct {
	g *errgroup.Group
}

// NewThreading returns the default goroutine-based [Threading]
// implementation.
func NewThreading() Threading {
	return &defaultThreading{g: &errgroup.Group{}}
}

func (t *defaultThreading) Spawn(fn func() error) {
	t.g.Go(fn)
}

func (t *defaultThreading) Join() error {
	err := t.g.Wait()
	t.g = &errgroup.Group{}
	return err
}
