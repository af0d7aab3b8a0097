// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// CubicSpring implements System for a set of uncoupled unit cells with a cubic
// hardening spring (Duffing-type):
//
//	f_int,i = Kcof・u_i + Kappa・u_i³        K_i(u) = Kcof + 3・Kappa・u_i²
//
// with lumped mass Mass per degree of freedom and no damping. This is the
// smallest genuinely nonlinear system and is used to exercise the Newton loops.
type CubicSpring struct {
	Recorder

	// parameters
	Mass  float64 // lumped mass per dof
	Kcof  float64 // linear stiffness coefficient
	Kappa float64 // cubic stiffness coefficient

	// external load
	load []float64
	mult dbf.T

	// derived
	ndofs int
	mMat  *la.CCMatrix // cached lumped mass
}

// NewCubicSpring returns a new cubic-spring system
func NewCubicSpring(ndofs int, mass, kcof, kappa float64) *CubicSpring {
	return &CubicSpring{Mass: mass, Kcof: kcof, Kappa: kappa, ndofs: ndofs}
}

// SetLoad sets the external load: f_ext(t) = load・mult(t)
func (o *CubicSpring) SetLoad(load []float64, mult dbf.T) error {
	if len(load) != o.ndofs {
		return chk.Err("load vector must have length %d; got %d", o.ndofs, len(load))
	}
	o.load = load
	o.mult = mult
	return nil
}

// Ndofs returns the number of free degrees of freedom
func (o *CubicSpring) Ndofs() int { return o.ndofs }

// M returns the (lumped, cached) mass matrix
func (o *CubicSpring) M() *la.CCMatrix {
	if o.mMat == nil {
		T := new(la.Triplet)
		T.Init(o.ndofs, o.ndofs, o.ndofs)
		for i := 0; i < o.ndofs; i++ {
			T.Put(i, i, o.Mass)
		}
		o.mMat = T.ToMatrix(nil)
	}
	return o.mMat
}

// D returns nil: the cubic-spring system has no damping operator
func (o *CubicSpring) D() *la.CCMatrix { return nil }

// K returns the tangent stiffness at u. The tangent is displacement-dependent and
// therefore never cached.
func (o *CubicSpring) K(u []float64, t float64) *la.CCMatrix {
	T := new(la.Triplet)
	T.Init(o.ndofs, o.ndofs, o.ndofs)
	for i := 0; i < o.ndofs; i++ {
		T.Put(i, i, o.Kcof+3.0*o.Kappa*u[i]*u[i])
	}
	return T.ToMatrix(nil)
}

// FInt returns internal forces
func (o *CubicSpring) FInt(u []float64, t float64) []float64 {
	f := make([]float64, o.ndofs)
	for i := 0; i < o.ndofs; i++ {
		f[i] = o.Kcof*u[i] + o.Kappa*u[i]*u[i]*u[i]
	}
	return f
}

// KAndF returns the tangent stiffness and internal forces together
func (o *CubicSpring) KAndF(u []float64, t float64) (*la.CCMatrix, []float64) {
	return o.K(u, t), o.FInt(u, t)
}

// FExt returns external forces at time t
func (o *CubicSpring) FExt(u, du []float64, t float64) []float64 {
	f := make([]float64, o.ndofs)
	if o.mult == nil || o.load == nil {
		return f
	}
	m := o.mult.F(t, nil)
	for i := 0; i < o.ndofs; i++ {
		f[i] = o.load[i] * m
	}
	return f
}

// AddToJac adds cM・M + cK・K(u) to the global Jacobian triplet. There is no
// damping term to add.
func (o *CubicSpring) AddToJac(Kb *la.Triplet, cM, cD, cK float64, u []float64, t float64) error {
	for i := 0; i < o.ndofs; i++ {
		Kb.Put(i, i, cM*o.Mass+cK*(o.Kcof+3.0*o.Kappa*u[i]*u[i]))
	}
	return nil
}

// NnzJac returns the maximum number of non-zeros in the Jacobian
func (o *CubicSpring) NnzJac() int { return o.ndofs }
