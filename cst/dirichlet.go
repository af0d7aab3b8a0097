// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cst

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Dirichlet constrains a single degree of freedom to a prescribed motion U(t):
//
//	g(X,u,t) = u - U(t)
//
// The prescribed motion is given as one time function; its first and second time
// derivatives (G and H) supply the velocity and acceleration drift terms:
//
//	B = [1]      b = -dU/dt      a = -d²U/dt²
//
// so that B・v + b = 0 and B・dv/dt + a = 0 hold on the constraint manifold.
type Dirichlet struct {
	U dbf.T // prescribed motion
}

// NewDirichlet returns a new Dirichlet constraint. mot==nil fixes the dof at zero.
func NewDirichlet(mot dbf.T) *Dirichlet {
	if mot == nil {
		mot = &dbf.Zero
	}
	return &Dirichlet{U: mot}
}

// G returns the residual g = u - U(t)
func (o *Dirichlet) G(X, u []float64, t float64) (g float64, err error) {
	if len(u) != 1 {
		return 0, chk.Err("Dirichlet constraint works on a single dof; got %d", len(u))
	}
	return u[0] - o.U.F(t, nil), nil
}

// B returns the Jacobian [1]
func (o *Dirichlet) B(X, u []float64, t float64) (jac []float64, err error) {
	if len(u) != 1 {
		return nil, chk.Err("Dirichlet constraint works on a single dof; got %d", len(u))
	}
	return []float64{1}, nil
}

// Vdrift returns b = -dU/dt
func (o *Dirichlet) Vdrift(X, u []float64, t float64) (b float64, err error) {
	return -o.U.G(t, nil), nil
}

// Adrift returns a = -d²U/dt²
func (o *Dirichlet) Adrift(X, u, du []float64, t float64) (a float64, err error) {
	return -o.U.H(t, nil), nil
}
