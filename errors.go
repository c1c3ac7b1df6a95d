// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

// ConfigError wraps a configuration mistake caught at System construction
// time: an unrecognised LinearSolver name, or an error returned by the
// selected solver's AnalyzePattern. No other Config field is validated.
// It is always returned, never
// panicked: a bad Config is an ordinary, recoverable input error.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// SolverError wraps an error returned by the pluggable LinearSolver during
// SetMatrix or Solve (typically a singular or indefinite matrix). The
// underlying error is preserved unchanged via Unwrap, so callers that care
// about the solver's own error kind can still errors.As/errors.Is past the
// wrapper; only the message gains a "linear solver:" prefix identifying
// which stage of the Newton iteration failed.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return "linear solver: " + e.Err.Error() }
func (e *SolverError) Unwrap() error { return e.Err }
