// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

// actorRun is the per-actor execution state: a reference to the static
// actor description, scratch buffers for one firing's consumed and
// produced bytes, channel bindings, an optional recorder, and the
// fire-count budget.
//
// Every field here is owned by exactly one goroutine: the sequential
// scheduler's single loop, or (in the parallel scheduler) the one worker
// assigned to this actor. Bindings hold the channel values of the owning
// [Run]'s channel slice directly; they are not indices into that slice.
//
// Grounded on original_source/src/csdf/execution/actorrun.h's
// CsdfActorRun and actor.c's consume/produce/can_fire/fire.
type actorRun struct {
	actor *Actor

	consumed []byte
	produced []byte

	inputs  []channel   // one channel per input port
	outputs [][]channel // one channel list per output port (fan-out)

	rec *recorder // nil if unrecorded

	maxFireCount int
	fireCount    int
}

// newActorRun allocates an actorRun for a, with scratch buffers sized per
// §4.D and a budget of maxFireCount firings. Channel bindings are filled
// in afterward by the Run constructor, which scans the graph's
// connections for each actor.
func newActorRun(a *Actor, maxFireCount int, rec *recorder) *actorRun {
	return &actorRun{
		actor:        a,
		consumed:     make([]byte, a.consumedSize()),
		produced:     make([]byte, a.producedSize()),
		inputs:       make([]channel, len(a.Inputs)),
		outputs:      make([][]channel, len(a.Outputs)),
		rec:          rec,
		maxFireCount: maxFireCount,
	}
}

// canFire reports whether the actor may fire: its budget is not
// exhausted, every input channel holds at least that port's consumption
// rate in tokens, and every fan-out channel bound to each output port has
// room for that port's production rate. No side effects.
//
// The output-side check is what keeps channel sizing (§4.F) valid under
// the parallel scheduler: without it, an actor with no inputs (a pure
// source) would race ahead of a slower downstream consumer with nothing
// to throttle it, overrunning a buffer sized for at most a couple of
// iterations of slack. Gating production on downstream room makes an
// overflow only possible when the graph or its channel sizing is itself
// inconsistent, matching ErrChannelOverflow's fatal, never-retried
// contract.
func (r *actorRun) canFire() bool {
	if r.fireCount >= r.maxFireCount {
		return false
	}
	for i, in := range r.actor.Inputs {
		if r.inputs[i].occupancy() < in.Consumption {
			return false
		}
	}
	for i, out := range r.actor.Outputs {
		for _, ch := range r.outputs[i] {
			if ch.capacity()-ch.occupancy() < out.Production {
				return false
			}
		}
	}
	return true
}

// fire executes one firing. Precondition: canFire returned true in the
// same logical step (the parallel scheduler relies on this actor being
// the sole consumer of each of its input channels, so no further
// synchronization is needed between the check and the consume step).
//
// Steps, in order (§4.D): consume, execute, produce, record, increment
// fireCount. Fan-out ordering (per-token loop inside per-channel loop)
// is the order used here; the spec treats this as observationally
// equivalent to the inverse, since channels are independent, as long as
// every fan-out channel receives the full production sequence in order
// (§9). produce restarts its read cursor at the port's first token for
// each channel and advances it token by token, so no channel receives the
// first token repeatedly.
func (r *actorRun) fire() error {
	if err := r.consume(); err != nil {
		return err
	}

	r.actor.Execute(r.consumed, r.produced)

	if err := r.produce(); err != nil {
		return err
	}

	if r.rec != nil {
		r.rec.record(r.actor, r.produced)
	}

	r.fireCount++
	return nil
}

func (r *actorRun) consume() error {
	off := 0
	for i, in := range r.actor.Inputs {
		n := in.Consumption
		for t := 0; t < n; t++ {
			if err := r.inputs[i].pop(r.consumed[off : off+in.TokenSize]); err != nil {
				return err
			}
			off += in.TokenSize
		}
	}
	return nil
}

func (r *actorRun) produce() error {
	off := 0
	for i, out := range r.actor.Outputs {
		n := out.Production * out.TokenSize
		portBytes := r.produced[off : off+n]
		for _, ch := range r.outputs[i] {
			tok := portBytes
			for len(tok) > 0 {
				if err := ch.push(tok[:out.TokenSize]); err != nil {
					return err
				}
				tok = tok[out.TokenSize:]
			}
		}
		off += n
	}
	return nil
}
