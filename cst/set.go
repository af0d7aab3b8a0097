// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cst

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Item is one constraint bound to global equation numbers. Each item owns one
// Lagrange multiplier. Items are constructed once from geometry and fixed
// endpoints and are immutable thereafter; they are evaluated per Newton iteration.
type Item struct {
	Key string    // label; e.g. "ux", "dist"
	Con Holonomic // the constraint model
	Eqs []int     // global equation numbers of the dofs this constraint touches
	X   []float64 // reference positions of those dofs
}

// ItemArray is an array of constraint items
type ItemArray []*Item

// Set composes constraints into the global constraint system. With y the global
// displacement vector and λ the Lagrange multipliers, the augmented system is
//
//	_       _
//	|  K  Bt  | / δy \   / -R - Bt・λ \
//	|         | |    | = |            |
//	|_ B   0 _| \ δλ /   \    -g      /
//
// where row i of B is the Jacobian of item i scattered to its equations.
type Set struct {
	Items ItemArray    // active constraints
	A     la.Triplet   // matrix of Jacobian coefficients
	Am    *la.CCMatrix // compressed form of A; rebuilt by Assemble
}

// Add appends a constraint bound to global equations eqs with reference positions X
func (o *Set) Add(key string, con Holonomic, eqs []int, X []float64) error {
	if len(eqs) != len(X) {
		return chk.Err("constraint %q: %d equations but %d reference positions", key, len(eqs), len(X))
	}
	o.Items = append(o.Items, &Item{key, con, eqs, X})
	return nil
}

// Build allocates the assembly structures.
//
//	ny   -- number of global displacement dofs
//	nlam -- number of Lagrange multipliers (== number of items)
//	nnzA -- number of non-zeros in A
func (o *Set) Build(ny int) (nlam, nnzA int) {
	nlam = len(o.Items)
	if nlam == 0 {
		return
	}
	for _, it := range o.Items {
		nnzA += len(it.Eqs)
	}
	o.A.Init(nlam, ny, nnzA)
	return
}

// local gathers the local displacement vector of item it from the global vector
func (o *Set) local(it *Item, u []float64) []float64 {
	uloc := make([]float64, len(it.Eqs))
	for j, eq := range it.Eqs {
		uloc[j] = u[eq]
	}
	return uloc
}

// Assemble rebuilds the compressed A matrix at the current state. Must be called
// after Build and before AddToRhs in every Newton iteration, since constraint
// Jacobians may depend on the displacements.
func (o *Set) Assemble(u []float64, t float64) (err error) {
	if len(o.Items) == 0 {
		return
	}
	o.A.Start()
	for i, it := range o.Items {
		jac, err := it.Con.B(it.X, o.local(it, u), t)
		if err != nil {
			return chk.Err("cannot compute Jacobian of constraint %q:\n%v", it.Key, err)
		}
		for j, eq := range it.Eqs {
			o.A.Put(i, eq, jac[j])
		}
	}
	o.Am = o.A.ToMatrix(nil)
	return
}

// Residuals returns the residual g of each constraint at the current state
func (o *Set) Residuals(u []float64, t float64) (g []float64, err error) {
	g = make([]float64, len(o.Items))
	for i, it := range o.Items {
		g[i], err = it.Con.G(it.X, o.local(it, u), t)
		if err != nil {
			return nil, chk.Err("cannot compute residual of constraint %q:\n%v", it.Key, err)
		}
	}
	return
}

// Vdrifts returns the velocity drift b of each constraint (B・v + b = 0)
func (o *Set) Vdrifts(u []float64, t float64) (b []float64, err error) {
	b = make([]float64, len(o.Items))
	for i, it := range o.Items {
		b[i], err = it.Con.Vdrift(it.X, o.local(it, u), t)
		if err != nil {
			return nil, chk.Err("cannot compute velocity drift of constraint %q:\n%v", it.Key, err)
		}
	}
	return
}

// Adrifts returns the acceleration drift a of each constraint (B・dv/dt + a = 0)
func (o *Set) Adrifts(u, du []float64, t float64) (a []float64, err error) {
	a = make([]float64, len(o.Items))
	for i, it := range o.Items {
		duloc := make([]float64, len(it.Eqs))
		for j, eq := range it.Eqs {
			duloc[j] = du[eq]
		}
		a[i], err = it.Con.Adrift(it.X, o.local(it, u), duloc, t)
		if err != nil {
			return nil, chk.Err("cannot compute acceleration drift of constraint %q:\n%v", it.Key, err)
		}
	}
	return
}

// AddToRhs adds the constraint terms to the augmented right-hand side vector fb,
// which holds ny displacement equations followed by one equation per multiplier:
//
//	fb[:ny]   += -Bt・λ
//	fb[ny+i]  = -g_i
func (o *Set) AddToRhs(fb, u, lam []float64, t float64) (err error) {
	if len(o.Items) == 0 {
		return
	}
	if o.Am == nil {
		return chk.Err("constraint set must be assembled before AddToRhs")
	}
	la.SpMatTrVecMulAdd(fb, -1, o.Am, lam) // fb += -1 * At * λ
	g, err := o.Residuals(u, t)
	if err != nil {
		return
	}
	n := len(u)
	for i := range o.Items {
		fb[n+i] = -g[i]
	}
	return
}
