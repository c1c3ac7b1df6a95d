// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

// Element is the polymorphic contract every local contributor satisfies:
// an ordered, stable set of DoFs, plus a local LHS/RHS compute as a
// function of the current DoF values and the driver's option bag. This
// mirrors gofem's Elem interface (AddToKb/AddToRhs) collapsed onto the
// single signature the parallel assembly path there already used.
//
// Dofs is called exactly once per Element, by the indexer, at System
// construction time; its result is cached and must remain valid (same
// length, same identities, same order) for the Element's entire lifetime.
// Mutating it afterwards is undefined behaviour.
//
// Compute must return a k x k local_lhs and a length-k local_rhs, where
// k == len(Dofs()); local_lhs is interpreted symmetrically — only its
// upper triangle (row <= col) is ever read.
type Element interface {
	Dofs() []*Dof
	Compute(opts *Config) (localLHS [][]float64, localRHS []float64, err error)
}
