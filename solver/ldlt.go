// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver provides the two reference LinearSolver implementations
// named by the "ldlt" and "lsmr" configuration values: a dense Cholesky
// (LDLT) direct solver for symmetric positive-definite systems, and an
// LSMR iterative least-squares solver for the indefinite/ill-conditioned
// cases the direct solver cannot safely factor. Both register themselves
// with package sparse's registry on import.
package solver

import (
	"fmt"

	"github.com/cpmech/goeq/sparse"
	"gonum.org/v1/gonum/mat"
)

func init() {
	sparse.Register("ldlt", func() sparse.LinearSolver { return new(LDLT) })
}

// LDLT is a direct solver for symmetric positive-definite systems. It
// densifies the structural pattern into an F x F symmetric matrix and
// factorizes with gonum's Cholesky (A = L D L^T for an SPD A is equivalent
// to the classic Cholesky A = R^T R up to the diagonal scaling); for the
// small-to-moderate free-DoF counts this core targets, trading sparsity for
// a well-tested dense kernel is the right reference-solver tradeoff.
type LDLT struct {
	f    int
	chol mat.Cholesky
}

// AnalyzePattern records the matrix dimension; the dense factorization has
// no structural skeleton to precompute beyond that.
func (s *LDLT) AnalyzePattern(p *sparse.Pattern) error {
	s.f = p.F
	return nil
}

// SetMatrix densifies m and factorizes it. A non-positive-definite matrix
// is reported as a solver error and aborts the calling Newton iteration, per
// the linear solver contract.
func (s *LDLT) SetMatrix(m *sparse.Matrix) error {
	if s.f == 0 {
		return nil
	}
	dense := m.ToSymDense()
	if ok := s.chol.Factorize(dense); !ok {
		return fmt.Errorf("solver: ldlt: matrix is not positive-definite")
	}
	return nil
}

// Solve computes x = M^-1 b via the cached factorization.
func (s *LDLT) Solve(b, x []float64) error {
	if s.f == 0 {
		return nil
	}
	bv := mat.NewVecDense(len(b), append([]float64(nil), b...))
	var xv mat.VecDense
	if err := s.chol.SolveVecTo(&xv, bv); err != nil {
		return fmt.Errorf("solver: ldlt: %w", err)
	}
	copy(x, xv.RawVector().Data)
	return nil
}
