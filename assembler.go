// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/goeq/sparse"
)

// scatter is the precomputed wiring between one element's local k x k
// compute output and the shared global structure: every (row, col) pair
// the pattern analyser found structurally present is resolved, once, to
// its flat position in a Matrix's Vals slice, so that assembly itself is a
// direct array write rather than a search (the "O(1) amortised insertion"
// the pattern analyser's pre-reservation buys, per §4.2's rationale).
type scatter struct {
	k         int   // the element's DoF count, taken from its index table
	rhsLocal  []int // element-local row index, for entries that land in rhs
	rhsGlobal []int // destination index into the global rhs
	lhsRow    []int // element-local row index
	lhsCol    []int // element-local col index
	lhsPos    []int // destination index into Matrix.Vals
}

// buildScatters resolves every element's index table against pattern into
// a scatter, once, at System construction time.
func buildScatters(tables [][]sparse.Entry, free int, pattern *sparse.Pattern) []scatter {
	out := make([]scatter, len(tables))
	for ei, t := range tables {
		sc := scatter{k: len(t)}
		for i := 0; i < len(t); i++ {
			if t[i].Global >= free {
				break // sorted ascending: the remaining entries are fixed
			}
			sc.rhsLocal = append(sc.rhsLocal, t[i].Local)
			sc.rhsGlobal = append(sc.rhsGlobal, t[i].Global)
			for j := i; j < len(t); j++ {
				if t[j].Global >= free {
					break
				}
				pos := pattern.Position(t[i].Global, t[j].Global)
				r, c := t[i].Local, t[j].Local
				if r > c {
					r, c = c, r // local_lhs is read in its upper triangle only
				}
				sc.lhsRow = append(sc.lhsRow, r)
				sc.lhsCol = append(sc.lhsCol, c)
				sc.lhsPos = append(sc.lhsPos, pos)
			}
		}
		out[ei] = sc
	}
	return out
}

// apply computes the element's local contribution and scatters it into m
// (an LHS accumulator, canonical or forked) and rhs (length >= free).
// k mismatches between what the element reported via Dofs() and what it
// returned from Compute are a contract violation (§4.1's "undefined
// behaviour" class), asserted the way gofem's domain.go asserts element
// dimensions against cell topology.
func (s *System) apply(ei int, e Element, m *sparse.Matrix, rhs []float64) error {
	lhs, localRHS, err := e.Compute(&s.cfg)
	if err != nil {
		return chk.Err("element %d: compute failed: %v", ei, err)
	}
	sc := s.scatters[ei]
	k := sc.k
	utl.IntAssert(len(localRHS), k)
	utl.IntAssert(len(lhs), k)

	for idx, local := range sc.rhsLocal {
		rhs[sc.rhsGlobal[idx]] += localRHS[local]
	}
	for idx, pos := range sc.lhsPos {
		m.Add(pos, lhs[sc.lhsRow[idx]][sc.lhsCol[idx]])
	}
	return nil
}

// assembleSerial implements the serial mode of §4.3: a straight loop over
// elements in input order, after zeroing the shared structure in place.
func (s *System) assembleSerial() error {
	s.lhs.Zero()
	for i := range s.rhs {
		s.rhs[i] = 0
	}
	for ei, e := range s.elements {
		if err := s.apply(ei, e, s.lhs, s.rhs); err != nil {
			return err
		}
	}
	return nil
}
