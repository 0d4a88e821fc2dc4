// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

// recorder captures every token an actor produces, per output port, for
// later observation by tests. It observes only produced tokens; consumed-
// token observation is out of scope (§4.E).
//
// Grounded on original_source/record.{h,c}'s CsdfRecordData /
// store_produced_tokens: one preallocated byte buffer per output, sized
// for the actor's entire run (maxFireCount firings), with a per-output
// write cursor advanced on every recorded firing.
type recorder struct {
	buffers []recorderBuffer
}

type recorderBuffer struct {
	data      []byte
	tokenSize int
	end       int
}

// newRecorder allocates storage for maxFireCount firings of actor a.
func newRecorder(a *Actor, maxFireCount int) *recorder {
	bufs := make([]recorderBuffer, len(a.Outputs))
	for i, out := range a.Outputs {
		bufs[i] = recorderBuffer{
			data:      make([]byte, maxFireCount*out.Production*out.TokenSize),
			tokenSize: out.TokenSize,
		}
	}
	return &recorder{buffers: bufs}
}

// record appends one firing's produced bytes, split across output ports
// in port order (mirroring how fire's Produce step lays them out in the
// produced scratch buffer).
func (r *recorder) record(a *Actor, produced []byte) {
	off := 0
	for i, out := range a.Outputs {
		n := out.Production * out.TokenSize
		buf := &r.buffers[i]
		copy(buf.data[buf.end:buf.end+n], produced[off:off+n])
		buf.end += n
		off += n
	}
}

// tokens returns a copy of every token recorded so far for the given
// output, so the caller cannot alias or mutate the recorder's internal
// storage (§6: "no aliasing of recorder-internal storage").
func (r *recorder) tokens(output int) []byte {
	buf := &r.buffers[output]
	out := make([]byte, buf.end)
	copy(out, buf.data[:buf.end])
	return out
}
