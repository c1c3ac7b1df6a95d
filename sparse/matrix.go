// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import "gonum.org/v1/gonum/mat"

// Matrix is a value-array accumulator over a shared, read-only Pattern. Many
// Matrix instances may alias the same Pattern (same ColPtr/RowIdx) while
// each owns a private Vals slice; this is the "structure shared, values
// thread-local" split the parallel reduction (package goeq, assembler) is
// built on.
type Matrix struct {
	Pattern *Pattern
	Vals    []float64 // aligned 1:1 with Pattern.RowIdx
}

// NewMatrix allocates a zeroed Matrix over p.
func (p *Pattern) NewMatrix() *Matrix {
	return &Matrix{Pattern: p, Vals: make([]float64, p.Nnz())}
}

// Zero resets every value slot to zero; the structure is untouched.
func (m *Matrix) Zero() {
	for i := range m.Vals {
		m.Vals[i] = 0
	}
}

// Fork returns a sibling Matrix that aliases the same Pattern but owns a
// fresh, zero-initialised value array. Used by the parallel assembler to
// hand each worker its own accumulator.
func (m *Matrix) Fork() *Matrix {
	return &Matrix{Pattern: m.Pattern, Vals: make([]float64, len(m.Vals))}
}

// Join adds other's values into m, pointwise. Both must share the same
// Pattern (same length, same structural order); join is commutative and
// associative, so callers may fold any number of siblings into one in any
// order.
func (m *Matrix) Join(other *Matrix) {
	for i, v := range other.Vals {
		m.Vals[i] += v
	}
}

// Add accumulates val into the structural slot at position pos, as returned
// by Pattern.Position for some (row, col). The slot must already exist
// (built by Analyze); this is a programmer-error contract,
// not a runtime condition, so callers that computed pos via Pattern.Position
// ahead of time never hit the -1 case on the hot path.
func (m *Matrix) Add(pos int, val float64) {
	m.Vals[pos] += val
}

// MulVec computes y = A*x, where A is the symmetric matrix whose upper
// triangle is stored in m. Used by the LSMR reference solver, which only
// needs mat-vec products, not a factorization.
func (m *Matrix) MulVec(x, y []float64) {
	for i := range y {
		y[i] = 0
	}
	p := m.Pattern
	for col := 0; col < p.F; col++ {
		for k := p.ColPtr[col]; k < p.ColPtr[col+1]; k++ {
			row := p.RowIdx[k]
			v := m.Vals[k]
			y[row] += v * x[col]
			if row != col {
				y[col] += v * x[row]
			}
		}
	}
}

// ToSymDense converts m into a dense symmetric matrix, for reference
// solvers (e.g. dense Cholesky) that trade sparsity for a well-tested
// numerical kernel.
func (m *Matrix) ToSymDense() *mat.SymDense {
	p := m.Pattern
	d := mat.NewSymDense(p.F, nil)
	for col := 0; col < p.F; col++ {
		for k := p.ColPtr[col]; k < p.ColPtr[col+1]; k++ {
			row := p.RowIdx[k]
			d.SetSym(row, col, m.Vals[k])
		}
	}
	return d
}

// ToDense returns the full dense representation (row-major), mirroring the
// symmetric upper-triangle storage into both halves. Intended for tests and
// debugging, not for the assembly hot path.
func (m *Matrix) ToDense() [][]float64 {
	p := m.Pattern
	out := make([][]float64, p.F)
	for i := range out {
		out[i] = make([]float64, p.F)
	}
	for col := 0; col < p.F; col++ {
		for k := p.ColPtr[col]; k < p.ColPtr[col+1]; k++ {
			row := p.RowIdx[k]
			out[row][col] = m.Vals[k]
			out[col][row] = m.Vals[k]
		}
	}
	return out
}
