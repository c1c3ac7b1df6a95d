// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparse holds the column-compressed sparse structure of the free
// block of the global left-hand side, the value-array accumulator that is
// assembled into that structure, and the pluggable linear solver registry.
package sparse

import "sort"

// Entry is a (local, global) pair in a single element's index table, sorted
// ascending by Global. Local refers to the position of a DoF inside the
// element's own Dofs() slice; Global is its position in the system's global
// DoF vector.
type Entry struct {
	Local  int
	Global int
}

// Pattern is the structural nonzero set of the free-block LHS: a
// column-compressed sparse skeleton covering only the upper triangle
// (row <= col), built once from element incidence and never mutated
// afterwards.
type Pattern struct {
	F      int   // number of free DoFs == matrix dimension
	ColPtr []int // length F+1; column c owns RowIdx[ColPtr[c]:ColPtr[c+1]]
	RowIdx []int // length nnz; ascending row within each column
}

// Nnz returns the number of structural nonzeros.
func (p *Pattern) Nnz() int { return len(p.RowIdx) }

// Position returns the index into a Matrix's Vals slice for (row, col), or
// -1 if (row, col) is not a structural nonzero, including when either index
// lies outside the free block [0, F); Analyze guarantees row <= col is the
// only orientation stored.
func (p *Pattern) Position(row, col int) int {
	if row > col {
		row, col = col, row
	}
	if row < 0 || col >= p.F {
		return -1
	}
	lo, hi := p.ColPtr[col], p.ColPtr[col+1]
	for lo < hi {
		mid := (lo + hi) / 2
		r := p.RowIdx[mid]
		switch {
		case r == row:
			return mid
		case r < row:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// Analyze derives the column-wise nonzero structure of the free-block LHS
// from the per-element sorted index tables: for every pair (row, col) with
// row <= col inside a single element's table, if both are free (< free),
// row is a structural nonzero of column col. Tables are walked in order but
// the analyser sorts each column's rows independently afterwards, so the
// resulting Pattern is independent of element input order (P3/P4/P8).
func Analyze(tables [][]Entry, free int) *Pattern {
	cols := make([]map[int]struct{}, free)
	for _, t := range tables {
		for i := 0; i < len(t); i++ {
			if t[i].Global >= free {
				break // table sorted ascending: the rest are fixed too
			}
			for j := i; j < len(t); j++ {
				if t[j].Global >= free {
					break
				}
				col := t[j].Global
				if cols[col] == nil {
					cols[col] = make(map[int]struct{})
				}
				cols[col][t[i].Global] = struct{}{}
			}
		}
	}
	p := &Pattern{F: free, ColPtr: make([]int, free+1)}
	for c := 0; c < free; c++ {
		rows := make([]int, 0, len(cols[c]))
		for r := range cols[c] {
			rows = append(rows, r)
		}
		sort.Ints(rows)
		p.ColPtr[c+1] = p.ColPtr[c] + len(rows)
		p.RowIdx = append(p.RowIdx, rows...)
	}
	return p
}
