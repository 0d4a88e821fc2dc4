// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"code.hybscloud.com/iox"
)

// ParallelRun drives run to completion using threading to create one
// worker per actor. Each worker repeatedly polls its actor's canFire,
// backing off between polls with its own code.hybscloud.com/iox.Backoff,
// and fires until the actor's fire count reaches numIterations*q[actor].
// Workers are created in ascending actor order and joined together; if
// any worker returns a non-nil error, ParallelRun still waits for every
// other worker before returning the aggregated failure (§4.H: "best
// effort" error aggregation, not fail-fast cancellation), via
// [newThreadingError].
//
// run must have been built with [NewParallelRun] (concurrent SPSC
// channels); a Run built with [NewRun] is not safe to hand to ParallelRun,
// since its channels are not synchronized for cross-goroutine use.
//
// original_source/src/csdf/execution/parallel.c never got past a stub
// (its parallel_run walks the actor list and always returns false), so
// the per-actor worker loop below is this module's own design; what is
// grounded on the original is the CsdfThreading vtable shape in
// parallel.h, adapted here to [Threading]/iox.Backoff.
func ParallelRun(threading Threading, run *Run) error {
	errs := make([]error, len(run.actors))

	for ai := range run.actors {
		ai := ai
		a := run.actors[ai]
		threading.Spawn(func() error {
			err := runActorWorker(a)
			errs[ai] = err
			return err
		})
	}

	joinErr := threading.Join()
	if joinErr == nil {
		return nil
	}
	return newThreadingError(errs...)
}

func runActorWorker(a *actorRun) error {
	backoff := iox.Backoff{}
	for a.fireCount < a.maxFireCount {
		if !a.canFire() {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		if err := a.fire(); err != nil {
			return err
		}
	}
	return nil
}
