// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

// StoppingReason is the exit condition of a Newton iteration.
type StoppingReason int

const (
	// NotSolved is the reason before Solve has ever been called.
	NotSolved StoppingReason = -1
	// ResidualBelowTol means the residual norm dropped below Rtol.
	ResidualBelowTol StoppingReason = 0
	// StepBelowTol means the correction norm dropped below Xtol.
	StepBelowTol StoppingReason = 1
	// IterationLimit means MaxIter iterations ran without converging.
	IterationLimit StoppingReason = 2
)

// String returns the human-readable mapping from §6 of the spec.
func (r StoppingReason) String() string {
	switch r {
	case NotSolved:
		return "Not solved"
	case ResidualBelowTol:
		return "A solution was found, given rtol"
	case StepBelowTol:
		return "A solution was found, given xtol"
	case IterationLimit:
		return "The iteration limit was reached"
	default:
		return "unknown stopping reason"
	}
}
