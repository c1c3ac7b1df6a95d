// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/goeq/sparse"
	"gonum.org/v1/gonum/floats"
)

func init() {
	sparse.Register("lsmr", func() sparse.LinearSolver { return new(LSMR) })
}

// LSMR is an iterative least-squares solver (Fong & Saunders, "LSMR: An
// iterative algorithm for sparse least-squares problems", SIAM J. Sci.
// Comput. 33(5), 2011). Unlike LDLT it does not require the matrix to be
// positive-definite, trading exactness for iteration count; it is the
// fallback reference solver for indefinite or ill-conditioned systems.
//
// The matrix here is always square and symmetric, so the Golub-Kahan
// bidiagonalization this algorithm relies on uses the same mat-vec routine
// for both "A*v" and "A^T*u".
type LSMR struct {
	mat     *sparse.Matrix
	maxIter int
	atol    float64
}

// maxIter bounds the bidiagonalization; 0 means 2*F+10 (a generous default
// for the small-to-moderate systems this core targets). atol is the
// stopping tolerance on |zetabar|; 0 means defaultLSMRAtol.
const defaultLSMRAtol = 1e-10

// AnalyzePattern is a no-op: LSMR only needs mat-vec products, computed
// directly off whatever Matrix SetMatrix is given each iteration.
func (s *LSMR) AnalyzePattern(p *sparse.Pattern) error { return nil }

// SetMatrix stores the matrix to solve against; LSMR reads it lazily
// inside Solve via Matrix.MulVec.
func (s *LSMR) SetMatrix(m *sparse.Matrix) error {
	s.mat = m
	return nil
}

// Solve runs LSMR to approximately solve M x = b, writing the result into x.
func (s *LSMR) Solve(b, x []float64) error {
	n := len(b)
	for i := range x {
		x[i] = 0
	}
	if n == 0 {
		return nil
	}

	maxIter := s.maxIter
	if maxIter <= 0 {
		maxIter = 2*n + 10
	}
	atol := s.atol
	if atol <= 0 {
		atol = defaultLSMRAtol
	}

	u := append([]float64(nil), b...)
	beta := floats.Norm(u, 2)
	if beta == 0 {
		return nil // b == 0 => x == 0
	}
	floats.Scale(1/beta, u)

	v := make([]float64, n)
	s.mat.MulVec(u, v)
	alpha := floats.Norm(v, 2)
	if alpha > 0 {
		floats.Scale(1/alpha, v)
	} else {
		return nil // A^T b == 0 => no useful search direction
	}

	alphabar := alpha
	zetabar := alpha * beta
	rho, rhobar := 1.0, 1.0
	cbar, sbar := 1.0, 0.0

	h := append([]float64(nil), v...)
	hbar := make([]float64, n)

	av := make([]float64, n)
	atu := make([]float64, n)

	for itn := 0; itn < maxIter; itn++ {
		// bidiagonalization step: u, beta = A v - alpha u; v, alpha = A^T u - beta v
		s.mat.MulVec(v, av)
		for i := range u {
			u[i] = av[i] - alpha*u[i]
		}
		beta = floats.Norm(u, 2)
		if beta > 0 {
			floats.Scale(1/beta, u)
		}

		s.mat.MulVec(u, atu)
		for i := range v {
			v[i] = atu[i] - beta*v[i]
		}
		alpha = floats.Norm(v, 2)
		if alpha > 0 {
			floats.Scale(1/alpha, v)
		}

		// rotation eliminating the sub-diagonal of the bidiagonal system
		rhoold := rho
		rho = math.Hypot(alphabar, beta)
		c := alphabar / rho
		sn := beta / rho
		thetanew := sn * alpha
		alphabar = c * alpha

		// rotation eliminating the resulting super-diagonal
		rhobarold := rhobar
		thetabar := sbar * rho
		rhobar = math.Hypot(cbar*rho, thetanew)
		cbar = cbar * rho / rhobar
		sbar = thetanew / rhobar
		zeta := cbar * zetabar
		zetabar = -sbar * zetabar

		// update the search direction and the solution estimate
		scaleHbar := thetabar * rho / (rhoold * rhobarold)
		for i := range hbar {
			hbar[i] = h[i] - scaleHbar*hbar[i]
		}
		scaleX := zeta / (rho * rhobar)
		for i := range x {
			x[i] += scaleX * hbar[i]
		}
		for i := range h {
			h[i] = v[i] - (thetanew/rho)*h[i]
		}

		if math.Abs(zetabar) < atol {
			break
		}
	}
	return nil
}
