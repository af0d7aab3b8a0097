// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cst

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// FixedDistance constrains two nodes to keep their initial distance. X and u hold
// the two nodes back to back: X = {X1, X2} and u = {u1, u2}, each with ndim
// components. With x = X + u and L0 = ‖X2-X1‖ the residual is the scaled
// difference of squared distances
//
//	g = (‖x2-x1‖² - L0²) / (2・L0)
//
// which is zero when the distance is preserved and negative when the nodes move
// closer. The Jacobian, velocity drift, and acceleration drift are
//
//	B = {-(x2-x1), (x2-x1)} / L0      b = 0      a = ‖du2-du1‖² / L0
type FixedDistance struct{}

// NewFixedDistance returns a new fixed-distance constraint
func NewFixedDistance() *FixedDistance {
	return new(FixedDistance)
}

// split checks dimensions and returns ndim and the initial distance L0
func (o *FixedDistance) split(X, u []float64) (ndim int, l0 float64, err error) {
	if len(X) != len(u) || len(X)%2 != 0 || len(X) == 0 {
		return 0, 0, chk.Err("FixedDistance constraint needs two nodes back to back; got len(X)=%d len(u)=%d", len(X), len(u))
	}
	ndim = len(X) / 2
	for i := 0; i < ndim; i++ {
		d := X[ndim+i] - X[i]
		l0 += d * d
	}
	l0 = math.Sqrt(l0)
	if l0 < 1e-14 {
		return 0, 0, chk.Err("FixedDistance constraint: nodes coincide in the reference configuration")
	}
	return
}

// G returns the residual
func (o *FixedDistance) G(X, u []float64, t float64) (g float64, err error) {
	ndim, l0, err := o.split(X, u)
	if err != nil {
		return
	}
	var cur float64
	for i := 0; i < ndim; i++ {
		d := (X[ndim+i] + u[ndim+i]) - (X[i] + u[i])
		cur += d * d
	}
	return (cur - l0*l0) / (2.0 * l0), nil
}

// B returns the Jacobian with respect to the local displacements
func (o *FixedDistance) B(X, u []float64, t float64) (jac []float64, err error) {
	ndim, l0, err := o.split(X, u)
	if err != nil {
		return
	}
	jac = make([]float64, 2*ndim)
	for i := 0; i < ndim; i++ {
		d := (X[ndim+i] + u[ndim+i]) - (X[i] + u[i])
		jac[i] = -d / l0
		jac[ndim+i] = d / l0
	}
	return
}

// Vdrift returns b = 0: the constraint has no explicit time dependence
func (o *FixedDistance) Vdrift(X, u []float64, t float64) (b float64, err error) {
	_, _, err = o.split(X, u)
	return 0, err
}

// Adrift returns the quadratic-velocity term a = ‖du2-du1‖²/L0
func (o *FixedDistance) Adrift(X, u, du []float64, t float64) (a float64, err error) {
	ndim, l0, err := o.split(X, u)
	if err != nil {
		return
	}
	for i := 0; i < ndim; i++ {
		d := du[ndim+i] - du[i]
		a += d * d
	}
	return a / l0, nil
}
