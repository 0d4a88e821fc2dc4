// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import (
	"errors"

	"code.hybscloud.com/iox"
	"github.com/hashicorp/go-multierror"
)

// ErrInconsistentGraph indicates no positive-integer repetition vector
// exists for the graph: the balance equations have no solution, or the
// graph is disconnected (some actor is unreachable from the pivot).
//
// Recovery: the caller must fix the graph. No partial run state is kept.
var ErrInconsistentGraph = errors.New("csdf: inconsistent graph")

// ErrInvalidGraph indicates the graph violates a structural invariant from
// the data model: a connection whose endpoints disagree on token size, an
// input port with zero or more than one incoming connection, or a port
// with a non-positive rate. Unlike ErrInconsistentGraph this is a shape
// problem, not a balance-equation problem.
var ErrInvalidGraph = errors.New("csdf: invalid graph")

// ErrChannelOverflow indicates a push would overwrite unread data. This is
// fatal: it means the channel was mis-sized by the constructor, which
// under a consistent graph with correct sizing should never happen. It is
// not a backpressure signal; callers should abort the run.
var ErrChannelOverflow = errors.New("csdf: channel overflow")

// ErrSchedulingDeadlock indicates a sequential iteration stalled with a
// non-zero remainder: no enabled actor had firings left, yet the
// iteration's firing budget was not exhausted. This indicates the graph
// is inconsistent or its channels are under-initialized; it is fatal.
var ErrSchedulingDeadlock = errors.New("csdf: scheduling deadlock")

// ErrThreadingError indicates that the parallel scheduler's Join reported
// a failure: one or more workers returned an error (for example
// ErrChannelOverflow from a firing). Every worker is joined before this
// error is returned; see [AsThreadingError] to recover the individual
// causes.
var ErrThreadingError = errors.New("csdf: threading error")

// ErrGraphTooLarge indicates arithmetic overflow while solving the
// repetition vector (accumulating the LCM of port rate denominators
// across actors). The caller should reduce the graph size.
var ErrGraphTooLarge = errors.New("csdf: graph too large")

// ErrWouldBlock indicates a channel pop found nothing to consume yet. Both
// schedulers check canFire before firing, so a pop does not return it in
// practice; a firing that does get it returns it as an error, without a
// retry. An alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsInconsistentGraph reports whether err is or wraps ErrInconsistentGraph.
func IsInconsistentGraph(err error) bool { return errors.Is(err, ErrInconsistentGraph) }

// IsInvalidGraph reports whether err is or wraps ErrInvalidGraph.
func IsInvalidGraph(err error) bool { return errors.Is(err, ErrInvalidGraph) }

// IsChannelOverflow reports whether err is or wraps ErrChannelOverflow.
func IsChannelOverflow(err error) bool { return errors.Is(err, ErrChannelOverflow) }

// IsSchedulingDeadlock reports whether err is or wraps ErrSchedulingDeadlock.
func IsSchedulingDeadlock(err error) bool { return errors.Is(err, ErrSchedulingDeadlock) }

// IsThreadingError reports whether err is or wraps ErrThreadingError.
func IsThreadingError(err error) bool { return errors.Is(err, ErrThreadingError) }

// IsGraphTooLarge reports whether err is or wraps ErrGraphTooLarge.
func IsGraphTooLarge(err error) bool { return errors.Is(err, ErrGraphTooLarge) }

// IsWouldBlock reports whether err indicates a channel pop found nothing
// to consume. Delegates to [iox.IsWouldBlock]; re-exported for ecosystem
// consistency with the rest of the hybscloud queue stack.
func IsWouldBlock(err error) bool { return iox.IsWouldBlock(err) }

// threadingError wraps an aggregated set of worker failures under
// ErrThreadingError, so errors.Is(err, ErrThreadingError) holds while
// [AsThreadingError] can still recover the individual causes.
type threadingError struct {
	causes *multierror.Error
}

func (e *threadingError) Error() string {
	return "csdf: threading error: " + e.causes.Error()
}

func (e *threadingError) Unwrap() error { return ErrThreadingError }

// AsThreadingError recovers the individual worker failures aggregated
// inside a ThreadingError, if err is one.
func AsThreadingError(err error) (*multierror.Error, bool) {
	var te *threadingError
	if errors.As(err, &te) {
		return te.causes, true
	}
	return nil, false
}

// newThreadingError wraps one or more worker failures as a ThreadingError.
// Returns nil if errs contains no non-nil error.
func newThreadingError(errs ...error) error {
	var agg *multierror.Error
	for _, err := range errs {
		if err != nil {
			agg = multierror.Append(agg, err)
		}
	}
	if agg == nil {
		return nil
	}
	return &threadingError{causes: agg}
}
