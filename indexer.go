// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

import (
	"sort"

	"github.com/cpmech/goeq/sparse"
)

// buildIndex implements §4.1: it queries each element's DoF list exactly
// once, partitions the union into free-then-fixed order of first
// discovery, and returns the global DoF vector, the identity -> index map,
// and each element's sorted (local, global) index table.
//
// dofLists[i] is cached so elements are never asked for their DoF list a
// second time; New builds each element's index table from that cache, and
// the assembler works from those tables only.
func buildIndex(elements []Element) (dofs []*Dof, index map[Key]int, dofLists [][]*Dof, free int) {
	dofLists = make([][]*Dof, len(elements))
	for i, e := range elements {
		dofLists[i] = e.Dofs()
	}

	seen := make(map[Key]struct{})
	var freeDofs, fixedDofs []*Dof
	for _, list := range dofLists {
		for _, d := range list {
			if _, ok := seen[d.Key]; ok {
				continue
			}
			seen[d.Key] = struct{}{}
			if d.Fixed {
				fixedDofs = append(fixedDofs, d)
			} else {
				freeDofs = append(freeDofs, d)
			}
		}
	}

	free = len(freeDofs)
	dofs = make([]*Dof, 0, free+len(fixedDofs))
	dofs = append(dofs, freeDofs...)
	dofs = append(dofs, fixedDofs...)

	index = make(map[Key]int, len(dofs))
	for i, d := range dofs {
		index[d.Key] = i
	}

	return dofs, index, dofLists, free
}

// indexTable builds the sorted (local, global) table for one element's DoF
// list, given the global index map.
func indexTable(list []*Dof, index map[Key]int) []sparse.Entry {
	t := make([]sparse.Entry, len(list))
	for local, d := range list {
		t[local] = sparse.Entry{Local: local, Global: index[d.Key]}
	}
	sort.Slice(t, func(i, j int) bool { return t[i].Global < t[j].Global })
	return t
}
