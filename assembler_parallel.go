// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goeq

import (
	"runtime"
	"sync"

	"github.com/cpmech/goeq/sparse"
)

// assembleParallel implements the parallel mode of §4.3/§5: the element
// range is partitioned into contiguous, disjoint chunks (one per worker),
// each worker assembles into its own forked Matrix/rhs pair using the same
// precomputed scatters as the serial path, and the canonical accumulators
// are folded back in a fixed (worker-index) order — so the floating point
// result is deterministic and, modulo reassociation of the contributing
// sums, identical to the serial path's element-order accumulation (P5).
//
// This diverges deliberately from gofem's MPI-based distributed assembly
// (s_implicit.go / mpi.World()): there is no distributed-memory model here,
// only a goroutine pool over one process's element slice.
func (s *System) assembleParallel() error {
	n := len(s.elements)
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return s.assembleSerial()
	}

	type chunk struct {
		lo, hi int
		lhs    *sparse.Matrix
		rhs    []float64
		err    error
	}
	chunks := make([]chunk, workers)
	per := (n + workers - 1) / workers
	for w := range chunks {
		lo := w * per
		hi := lo + per
		if hi > n {
			hi = n
		}
		chunks[w] = chunk{lo: lo, hi: hi, lhs: s.lhs.Fork(), rhs: make([]float64, len(s.rhs))}
	}

	var wg sync.WaitGroup
	for w := range chunks {
		c := &chunks[w]
		if c.lo >= c.hi {
			continue
		}
		wg.Add(1)
		go func(c *chunk) {
			defer wg.Done()
			for ei := c.lo; ei < c.hi; ei++ {
				if err := s.apply(ei, s.elements[ei], c.lhs, c.rhs); err != nil {
					c.err = err
					return
				}
			}
		}(c)
	}
	wg.Wait()

	s.lhs.Zero()
	for i := range s.rhs {
		s.rhs[i] = 0
	}
	for _, c := range chunks {
		if c.err != nil {
			return c.err
		}
		s.lhs.Join(c.lhs)
		for i, v := range c.rhs {
			s.rhs[i] += v
		}
	}
	return nil
}
