// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cst implements constraint models: each constraint computes its residual,
// Jacobian, and velocity/acceleration drift terms from local reference positions X,
// local displacements u, and time t.
package cst

import "github.com/cpmech/gosl/chk"

// Nonholonomic is the velocity-level constraint contract. With v = du/dt the
// constraint reads
//
//	B(X,u,t)・v + b(X,u,t) = 0
//
// and, at acceleration level,
//
//	B(X,u,t)・dv/dt + a(X,u,v,t) = 0
type Nonholonomic interface {
	B(X, u []float64, t float64) (jac []float64, err error)          // Jacobian ∂g/∂u
	Vdrift(X, u []float64, t float64) (b float64, err error)         // b in B・v + b = 0
	Adrift(X, u, du []float64, t float64) (a float64, err error)     // a in B・dv/dt + a = 0
}

// Holonomic is the position-level constraint contract: additionally to the
// velocity-level terms, the residual g(X,u,t) itself is available.
type Holonomic interface {
	Nonholonomic
	G(X, u []float64, t float64) (g float64, err error) // residual
}

// NonholonomicBase provides failing defaults so that concrete constraints must
// override the whole velocity-level contract.
type NonholonomicBase struct{}

// B is not implemented in the base type
func (o *NonholonomicBase) B(X, u []float64, t float64) (jac []float64, err error) {
	return nil, chk.Err("constraint: B is not implemented")
}

// Vdrift is not implemented in the base type
func (o *NonholonomicBase) Vdrift(X, u []float64, t float64) (b float64, err error) {
	return 0, chk.Err("constraint: Vdrift is not implemented")
}

// Adrift is not implemented in the base type
func (o *NonholonomicBase) Adrift(X, u, du []float64, t float64) (a float64, err error) {
	return 0, chk.Err("constraint: Adrift is not implemented")
}

// HolonomicBase provides failing defaults for the position-level contract
type HolonomicBase struct {
	NonholonomicBase
}

// G is not implemented in the base type
func (o *HolonomicBase) G(X, u []float64, t float64) (g float64, err error) {
	return 0, chk.Err("constraint: G is not implemented")
}
