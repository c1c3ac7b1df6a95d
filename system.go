// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

import (
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/goeq/sparse"
)

// System ties together a fixed set of Elements, the global DoF ordering and
// sparsity pattern derived from them, the canonical accumulators, and a
// pluggable linear solver, and drives the Newton iteration of §4.5.
//
// A System is built once, over a fixed Element slice and Config, by New;
// Solve may be called any number of times afterwards, each time resuming
// from the Dofs' current Value/Delta (there is no implicit reset between
// calls — callers that want a fresh solve should reset their own Dofs).
type System struct {
	elements []Element
	dofs     []*Dof
	index    map[Key]int
	scatters []scatter
	free     int

	pattern *sparse.Pattern
	lhs     *sparse.Matrix
	rhs     []float64
	x       []float64 // Newton correction, solved fresh each iteration
	target  []float64 // lambda-scaled target, free block only; dof.Target itself is never mutated

	solver sparse.LinearSolver
	cfg    Config

	reason   StoppingReason
	residual []float64 // last computed residual, free block only
}

// New indexes elements, derives the free-block sparsity pattern, resolves
// and wires cfg.LinearSolver, and returns a System ready for Solve.
//
// An unrecognised cfg.LinearSolver is raised here, at construction, as a
// *ConfigError — not deferred to the first Solve call — since §7 treats a
// bad solver name as a configuration mistake rather than a solve-time
// failure.
func New(elements []Element, cfg Config) (*System, error) {
	dofs, index, dofLists, free := buildIndex(elements)

	tables := make([][]sparse.Entry, len(elements))
	for i, list := range dofLists {
		tables[i] = indexTable(list, index)
	}

	pattern := sparse.Analyze(tables, free)
	lhs := pattern.NewMatrix()
	scatters := buildScatters(tables, free, pattern)

	ls, err := sparse.New(cfg.LinearSolver)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := ls.AnalyzePattern(pattern); err != nil {
		return nil, &ConfigError{Err: err}
	}

	return &System{
		elements: elements,
		dofs:     dofs,
		index:    index,
		scatters: scatters,
		free:     free,
		pattern:  pattern,
		lhs:      lhs,
		rhs:      make([]float64, free),
		x:        make([]float64, free),
		target:   make([]float64, free),
		solver:   ls,
		cfg:      cfg,
		reason:   NotSolved,
		residual: make([]float64, free),
	}, nil
}

// Dof looks up the Dof registered under key, if any.
func (s *System) Dof(key Key) (*Dof, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.dofs[i], true
}

// StoppingReason reports why the most recent Solve call returned, or
// NotSolved if Solve has not yet been called.
func (s *System) StoppingReason() StoppingReason { return s.reason }

// Free returns the number of free (unconstrained) DoFs.
func (s *System) Free() int { return s.free }

// assemble dispatches to the serial or parallel assembly path per
// cfg.Parallel, writing into the canonical s.lhs/s.rhs either way.
func (s *System) assemble() error {
	if s.cfg.Parallel {
		return s.assembleParallel()
	}
	return s.assembleSerial()
}

// Solve runs the Newton iteration described in §4.5: scale every free Dof's
// target by Lambda once, then repeat assemble / check-residual / factorize
// and solve / correct / check-step until one of the three stopping
// conditions fires or MaxIter is reached.
func (s *System) Solve() (StoppingReason, error) {
	for i, d := range s.dofs[:s.free] {
		s.target[i] = s.cfg.Lambda * d.Target
	}

	for iter := 0; ; iter++ {
		s.cfg.Iteration = iter
		if s.cfg.Verbose {
			io.Pf("goeq: iteration %d\n", iter)
		}
		if iter >= s.cfg.MaxIter {
			s.reason = IterationLimit
			s.commitResiduals()
			return s.reason, nil
		}

		if err := s.assemble(); err != nil {
			return s.reason, err
		}

		for i := range s.residual {
			s.residual[i] = s.rhs[i] - s.target[i]
		}
		rnorm := floats.Norm(s.residual, 2)
		if s.cfg.Verbose {
			io.Pf("goeq: iteration %d: residual norm = %v\n", iter, rnorm)
		}
		if rnorm < s.cfg.Rtol {
			s.reason = ResidualBelowTol
			s.commitResiduals()
			return s.reason, nil
		}

		if err := s.solver.SetMatrix(s.lhs); err != nil {
			return s.reason, &SolverError{Err: err}
		}
		if err := s.solver.Solve(s.residual, s.x); err != nil {
			return s.reason, &SolverError{Err: err}
		}

		for i, d := range s.dofs[:s.free] {
			d.Delta -= s.x[i]
			d.Value -= s.x[i]
		}
		xnorm := floats.Norm(s.x, 2)
		if xnorm < s.cfg.Xtol {
			s.reason = StepBelowTol
			s.commitResiduals()
			return s.reason, nil
		}
	}
}

// commitResiduals writes the last computed residual into each free Dof's
// Residual field, on whichever of the three exits Solve took.
func (s *System) commitResiduals() {
	for i, d := range s.dofs[:s.free] {
		d.Residual = s.residual[i]
	}
}
