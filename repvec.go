// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csdf

import "fmt"

// RepetitionVector computes the minimal positive integer repetition
// vector q for g: for every connection,
// production[src] * q[src_actor] == consumption[dst] * q[dst_actor].
//
// Actor 0 is the pivot, fixed at 1/1. Candidates propagate along
// connections by depth-first traversal until no actor remains unset; any
// connection whose two endpoints already have candidates must agree, or
// the graph is inconsistent. A graph with zero connections and more than
// one actor is inconsistent (every non-pivot actor is unreachable).
//
// A zero-actor graph returns an empty, consistent vector.
//
// Grounded on original_source/src/csdf/repetition.c
// (fill_candidate_vector's DFS-over-connections, any_zero,
// fill_repetition_vector's LCM-of-denominators).
func RepetitionVector(g Graph) ([]uint64, error) {
	n := len(g.Actors)
	if n == 0 {
		return []uint64{}, nil
	}

	adj := buildConnectionAdjacency(g, n)

	candidates := make([]rational, n)
	setRational(&candidates[0], 1, 1)
	if !fillCandidateVector(g, adj, 0, candidates) {
		return nil, fmt.Errorf("%w: conflicting port rates", ErrInconsistentGraph)
	}
	for a := range candidates {
		if isRationalZero(&candidates[a]) {
			return nil, fmt.Errorf("%w: actor %d unreachable from pivot", ErrInconsistentGraph, a)
		}
	}

	return buildRepetitionVector(candidates)
}

// connRef names one connection's role relative to an actor: whether the
// actor is the connection's source or destination, and the partner actor.
type connRef struct {
	conn    *Connection
	partner int
	asSrc   bool
}

// buildConnectionAdjacency groups connections by each actor they touch, so
// propagation doesn't rescan every connection at every recursion depth.
func buildConnectionAdjacency(g Graph, n int) [][]connRef {
	adj := make([][]connRef, n)
	for i := range g.Connections {
		c := &g.Connections[i]
		adj[c.Source.Actor] = append(adj[c.Source.Actor], connRef{conn: c, partner: c.Destination.Actor, asSrc: true})
		adj[c.Destination.Actor] = append(adj[c.Destination.Actor], connRef{conn: c, partner: c.Source.Actor, asSrc: false})
	}
	return adj
}

// fillCandidateVector propagates the candidate fraction outward from
// actor pivotID along every connection touching it. Returns false on a
// conflicting equality test.
func fillCandidateVector(g Graph, adj [][]connRef, pivotID int, candidates []rational) bool {
	for _, ref := range adj[pivotID] {
		production, consumption := rateRatio(g, ref.conn)

		pivotVal := &candidates[pivotID]
		partnerVal := &candidates[ref.partner]

		var num, den uint64
		if ref.asSrc {
			// partner is the destination: partnerQ = pivotQ * production / consumption
			num = pivotVal.num * uint64(production)
			den = pivotVal.den * uint64(consumption)
		} else {
			// partner is the source: partnerQ = pivotQ * consumption / production
			num = pivotVal.num * uint64(consumption)
			den = pivotVal.den * uint64(production)
		}

		if isRationalZero(partnerVal) {
			setReduceRational(partnerVal, num, den)
			if !fillCandidateVector(g, adj, ref.partner, candidates) {
				return false
			}
		} else if !rationalEq(partnerVal, num, den) {
			return false
		}
	}
	return true
}

// rateRatio returns the production rate of the connection's source port
// and the consumption rate of its destination port.
func rateRatio(g Graph, c *Connection) (production, consumption int) {
	srcPort := g.Actors[c.Source.Actor].Outputs[c.Source.Output]
	dstPort := g.Actors[c.Destination.Actor].Inputs[c.Destination.Input]
	return srcPort.Production, dstPort.Consumption
}

// buildRepetitionVector scales every candidate fraction by the LCM of all
// denominators, producing the canonical positive integer vector.
func buildRepetitionVector(candidates []rational) ([]uint64, error) {
	multiple := uint64(1)
	for i := range candidates {
		m, ok := lcmUint64(multiple, candidates[i].den)
		if !ok {
			return nil, fmt.Errorf("%w: repetition vector LCM overflow", ErrGraphTooLarge)
		}
		multiple = m
	}

	q := make([]uint64, len(candidates))
	for i := range candidates {
		product := multiple * candidates[i].num
		if candidates[i].num != 0 && product/candidates[i].num != multiple {
			return nil, fmt.Errorf("%w: repetition vector product overflow", ErrGraphTooLarge)
		}
		q[i] = product / candidates[i].den
	}
	return q, nil
}
