// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import "fmt"

// ExecuteFunc is an actor's execution function: a pure, deterministic,
// non-blocking map from a contiguous consumed-tokens byte region to a
// contiguous produced-tokens byte region. Both regions are the
// concatenation, in port order, of each port's tokenSize*rate bytes.
//
// Grounded on original_source/src/csdf/actor.h's
// `typedef void (*ActorExecution)(const void *consumed, void *produced)`.
type ExecuteFunc func(consumed, produced []byte)

// InputPort describes one input of an actor: how many tokens it consumes
// per firing, and the byte size of each token.
type InputPort struct {
	Consumption int
	TokenSize   int
}

// OutputPort describes one output of an actor: how many tokens it
// produces per firing, and the byte size of each token.
type OutputPort struct {
	Production int
	TokenSize  int
}

// Actor is a stateless computational node: an ordered list of input ports,
// an ordered list of output ports, and a pure execution function.
type Actor struct {
	Inputs  []InputPort
	Outputs []OutputPort
	Execute ExecuteFunc
}

// consumedSize is the total byte size of one firing's consumed region.
func (a *Actor) consumedSize() int {
	n := 0
	for _, in := range a.Inputs {
		n += in.Consumption * in.TokenSize
	}
	return n
}

// producedSize is the total byte size of one firing's produced region.
func (a *Actor) producedSize() int {
	n := 0
	for _, out := range a.Outputs {
		n += out.Production * out.TokenSize
	}
	return n
}

// OutputID names a specific output port: an actor index and an output
// index within that actor.
type OutputID struct {
	Actor  int
	Output int
}

// InputID names a specific input port: an actor index and an input index
// within that actor.
type InputID struct {
	Actor int
	Input int
}

// Connection is a directed edge from one output port to one input port,
// carrying a token size (must equal both endpoints' token sizes) and an
// optional blob of initial tokens (delays, enabling feedback loops).
//
// Fan-out (several connections sharing one source port) is permitted;
// fan-in (more than one connection terminating at one input port) is not.
type Connection struct {
	Source        OutputID
	Destination   InputID
	TokenSize     int
	InitialTokens []byte // len must be a multiple of TokenSize
}

// numInitialTokens returns the number of whole tokens in InitialTokens.
func (c *Connection) numInitialTokens() int {
	if c.TokenSize == 0 {
		return 0
	}
	return len(c.InitialTokens) / c.TokenSize
}

// Graph is an ordered sequence of actors and an ordered sequence of
// connections. Actor identity is its index. A Graph is read-only across
// every run built from it and may be shared by concurrent runs.
type Graph struct {
	Actors      []Actor
	Connections []Connection
}

// validate checks every structural invariant from the data model: token
// sizes agree across a connection's endpoints, every input port has
// exactly one incoming connection, and every rate is positive. It does
// NOT check balance (see RepetitionVector for that).
//
// The original C implementation performs none of these checks and relies
// entirely on caller discipline; an out-of-bounds actor/port index there
// is undefined behavior. This validation is a supplement (see
// SPEC_FULL.md) so a malformed Graph fails with a typed error instead of
// an out-of-range panic deep inside run construction.
func (g *Graph) validate() error {
	n := len(g.Actors)
	for ai := range g.Actors {
		a := &g.Actors[ai]
		for pi := range a.Inputs {
			if a.Inputs[pi].Consumption <= 0 {
				return fmt.Errorf("%w: actor %d input %d has non-positive consumption rate", ErrInvalidGraph, ai, pi)
			}
			if a.Inputs[pi].TokenSize <= 0 {
				return fmt.Errorf("%w: actor %d input %d has non-positive token size", ErrInvalidGraph, ai, pi)
			}
		}
		for pi := range a.Outputs {
			if a.Outputs[pi].Production <= 0 {
				return fmt.Errorf("%w: actor %d output %d has non-positive production rate", ErrInvalidGraph, ai, pi)
			}
			if a.Outputs[pi].TokenSize <= 0 {
				return fmt.Errorf("%w: actor %d output %d has non-positive token size", ErrInvalidGraph, ai, pi)
			}
		}
		if a.Execute == nil {
			return fmt.Errorf("%w: actor %d has no execution function", ErrInvalidGraph, ai)
		}
	}

	inboundCount := make(map[InputID]int)
	for ci := range g.Connections {
		c := &g.Connections[ci]
		if c.Source.Actor < 0 || c.Source.Actor >= n {
			return fmt.Errorf("%w: connection %d source actor %d out of range", ErrInvalidGraph, ci, c.Source.Actor)
		}
		if c.Destination.Actor < 0 || c.Destination.Actor >= n {
			return fmt.Errorf("%w: connection %d destination actor %d out of range", ErrInvalidGraph, ci, c.Destination.Actor)
		}
		src := &g.Actors[c.Source.Actor]
		dst := &g.Actors[c.Destination.Actor]
		if c.Source.Output < 0 || c.Source.Output >= len(src.Outputs) {
			return fmt.Errorf("%w: connection %d source output %d out of range", ErrInvalidGraph, ci, c.Source.Output)
		}
		if c.Destination.Input < 0 || c.Destination.Input >= len(dst.Inputs) {
			return fmt.Errorf("%w: connection %d destination input %d out of range", ErrInvalidGraph, ci, c.Destination.Input)
		}
		srcPort := src.Outputs[c.Source.Output]
		dstPort := dst.Inputs[c.Destination.Input]
		if c.TokenSize != srcPort.TokenSize || c.TokenSize != dstPort.TokenSize {
			return fmt.Errorf("%w: connection %d token size %d disagrees with port sizes (%d, %d)",
				ErrInvalidGraph, ci, c.TokenSize, srcPort.TokenSize, dstPort.TokenSize)
		}
		if c.TokenSize <= 0 {
			return fmt.Errorf("%w: connection %d has non-positive token size", ErrInvalidGraph, ci)
		}
		if len(c.InitialTokens)%c.TokenSize != 0 {
			return fmt.Errorf("%w: connection %d initial tokens length %d not a multiple of token size %d",
				ErrInvalidGraph, ci, len(c.InitialTokens), c.TokenSize)
		}
		inboundCount[c.Destination]++
	}

	for ai := range g.Actors {
		for ii := range g.Actors[ai].Inputs {
			id := InputID{Actor: ai, Input: ii}
			switch inboundCount[id] {
			case 1:
				// ok
			case 0:
				return fmt.Errorf("%w: input %v has no incoming connection", ErrInvalidGraph, id)
			default:
				return fmt.Errorf("%w: input %v has %d incoming connections, fan-in is not permitted", ErrInvalidGraph, id, inboundCount[id])
			}
		}
	}

	return nil
}
