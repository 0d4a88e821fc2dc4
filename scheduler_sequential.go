// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

// SequentialRun drives run to completion on the calling goroutine: it
// performs exactly run's configured number of iterations, each firing
// actors in deterministic ascending-index order until every actor has
// exhausted that iteration's share of the repetition vector.
//
// Tie-break: on each pass, the scan restarts from actor 0 and fires the
// first actor that still has firings remaining in this iteration AND is
// enabled; this is part of the observable contract (§4.G) so that tests
// can assert exact token histories, not just aggregate counts.
//
// Returns ErrSchedulingDeadlock if an iteration stalls with some actor's
// remaining firings still positive — under a consistent graph with
// correctly sized channels this cannot happen; it indicates a bug in
// construction, not a transient condition to retry.
//
// Grounded on original_source/src/csdf/sequential.c's
// sequential_iteration (fire any enabled actor with budget left, restart
// the scan, declare deadlock when a full pass finds none).
func SequentialRun(run *Run) error {
	for iter := 0; iter < run.numIterations; iter++ {
		if err := sequentialIteration(run); err != nil {
			return err
		}
	}
	return nil
}

func sequentialIteration(run *Run) error {
	remaining := make([]uint64, len(run.actors))
	copy(remaining, run.q)

	for {
		progressed := false
		for ai, a := range run.actors {
			if remaining[ai] > 0 && a.canFire() {
				if err := a.fire(); err != nil {
					return err
				}
				remaining[ai]--
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}

	for _, rem := range remaining {
		if rem > 0 {
			return ErrSchedulingDeadlock
		}
	}
	return nil
}
