// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goeq is a small finite-element-style equation assembly and
// nonlinear solver core: client code supplies Elements, each owning a set
// of DoFs, and the core reconciles them into a global ordering, derives
// the sparsity pattern of the global left-hand side, assembles it on
// demand (serially or in parallel), and drives a Newton iteration over a
// pluggable sparse linear solver.
package goeq

// Key is the stable, value-based identity of a scalar unknown. Two Dofs
// with equal Key are the same unknown for the purposes of deduplication,
// regardless of whether they are the same *Dof instance: this lets two
// elements that independently construct a Dof for "the same" physical
// quantity still hash to a single global index (P1). Owner must be a
// comparable value (Go's usual map-key rules); a non-comparable Owner
// (e.g. a slice) is undefined behaviour, per the identity contract.
type Key struct {
	Owner   any
	Channel string
}

// Dof is a scalar unknown: a stable identity, its current value, its
// target/reference value, a fixed/free flag, and two scratch fields
// (Delta, Residual) written only by the Newton driver between assembly
// calls. Dof is created by client code before constructing a System and
// outlives it; when two elements are meant to reference "the same"
// unknown they should share the same *Dof pointer (or, at minimum, equal
// Key values — the indexer treats the first Dof seen for a given Key as
// canonical and keys all later lookups by Key, not by pointer).
//
// Flipping Fixed after a System has been constructed over this Dof is
// undefined behaviour: the indexer snapshots fixedness at build time.
type Dof struct {
	Key      Key
	Value    float64
	Target   float64
	Fixed    bool
	Delta    float64 // accumulated Newton correction
	Residual float64 // scratch: final residual at this Dof, written once at Solve exit
}
