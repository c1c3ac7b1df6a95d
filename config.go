// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

// Config is the option bag consumed by System.New (to select and wire the
// linear solver) and by System.Solve (to drive the Newton iteration); it
// is also what Element.Compute receives, so that an element's local
// compute can read back the current Iteration.
//
// Config carries no implicit defaults of its own: a zero Config{} is not
// usable directly (an empty LinearSolver name is rejected as unknown, and
// a zero MaxIter stops at iteration 0) because Rtol/Xtol/Lambda of 0.0
// are legitimate, spec-exercised values (see scenario 5: an always-
// diverging element run with rtol = xtol = 0 to force the iteration-limit
// path) and cannot be distinguished from "not set". Start from
// DefaultConfig() and override only the fields you need.
type Config struct {
	LinearSolver string  // "ldlt" or "lsmr" (or any name registered in package sparse)
	Lambda       float64 // scalar load factor applied to each free Dof's target
	MaxIter      int     // upper bound on Newton iterations
	Rtol         float64 // residual-norm stopping tolerance
	Xtol         float64 // correction-norm stopping tolerance
	Parallel     bool    // assemble over a worker pool instead of serially
	Workers      int     // worker count when Parallel; <= 0 means "auto" (GOMAXPROCS)
	Verbose      bool    // opt-in iteration trace; never read back, never affects control flow

	// Iteration is set by System.Solve before every assembly and is the
	// only field an Element.Compute is expected to read back.
	Iteration int
}

// DefaultConfig returns the configuration table from the spec: ldlt solver,
// unit load factor, 100 iterations, and 1e-7 tolerances on both residual
// and step norm.
func DefaultConfig() Config {
	return Config{
		LinearSolver: "ldlt",
		Lambda:       1.0,
		MaxIter:      100,
		Rtol:         1e-7,
		Xtol:         1e-7,
	}
}
