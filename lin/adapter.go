// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin wraps sparse linear solvers behind a small set-factorise-solve interface
package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Adapter defines the linear-solve abstraction used by the solvers. The protocol is:
// SetA whenever the coefficient matrix (triplet) changes, Fact to (re)factorise with
// the current triplet values, Solve for each right-hand side, and Free at the end.
type Adapter interface {
	SetA(T *la.Triplet) (err error) // sets/refreshes coefficient matrix
	Fact() (err error)              // performs factorisation
	Solve(x, b []float64) (err error)
	Free() // frees solver memory
}

// Sparse implements Adapter using the real sparse solvers (umfpack or mumps).
// The solver is initialised once per triplet; reassembling values into the same
// triplet only requires a new factorisation, not a new initialisation.
type Sparse struct {

	// configuration
	Name      string // "umfpack" or "mumps"
	Symmetric bool   // use symmetric solver
	Verbose   bool   // verbose
	Ordering  string // ordering scheme (mumps only; may be empty)
	Scaling   string // scaling scheme (mumps only; may be empty)

	// internal
	lis         la.SparseSolver // linear solver
	tri         *la.Triplet     // triplet this solver was initialised with
	initialised bool            // Init was called
}

// NewSparse returns a new sparse linear-solve adapter. name=="" defaults to umfpack.
func NewSparse(name string) *Sparse {
	if name == "" {
		name = "umfpack"
	}
	return &Sparse{Name: name}
}

// SetA initialises the solver with triplet T. A second call with the same triplet is
// a no-op since the solver keeps a reference to the triplet; a call with a different
// triplet frees the previous solver and initialises a new one.
func (o *Sparse) SetA(T *la.Triplet) (err error) {
	if o.initialised && T == o.tri {
		return
	}
	if o.initialised {
		o.lis.Free()
		o.initialised = false
	}
	o.lis = la.NewSparseSolver(o.Name)
	o.lis.Init(T, &la.SpArgs{
		Symmetric: o.Symmetric,
		Verbose:   o.Verbose,
		Ordering:  o.Ordering,
		Scaling:   o.Scaling,
	})
	o.tri = T
	o.initialised = true
	return
}

// Fact performs the numerical factorisation with the current triplet values
func (o *Sparse) Fact() (err error) {
	if !o.initialised {
		return chk.Err("linear solver must be initialised with SetA before calling Fact")
	}
	o.lis.Fact()
	return
}

// Solve solves A・x = b using the last factorisation
func (o *Sparse) Solve(x, b []float64) (err error) {
	if !o.initialised {
		return chk.Err("linear solver must be initialised with SetA before calling Solve")
	}
	o.lis.Solve(x, b, false)
	return
}

// Free frees solver memory
func (o *Sparse) Free() {
	if o.initialised {
		o.lis.Free()
		o.initialised = false
		o.tri = nil
	}
}
