// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import "fmt"

// LinearSolver is the pluggable contract over a sparse symmetric matrix:
// analyze the structural skeleton once, refresh its values every Newton
// iteration, then solve M x = b in place of x.
type LinearSolver interface {
	AnalyzePattern(p *Pattern) error
	SetMatrix(m *Matrix) error
	Solve(b, x []float64) error
}

// Factory builds a fresh LinearSolver instance.
type Factory func() LinearSolver

var registry = make(map[string]Factory)

// Register adds name to the solver registry. Reference solvers register
// themselves from package solver's init() functions; callers may register
// their own under any other name before constructing a System.
func Register(name string, f Factory) {
	registry[name] = f
}

// New constructs a LinearSolver by name, or an error if name is not
// registered. Unknown names are a configuration error, not a panic: the
// caller is expected to surface this at system construction time.
func New(name string) (LinearSolver, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sparse: unknown linear solver %q", name)
	}
	return f(), nil
}
