// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/sys"
)

// jwhAlpha implements the JWH-alpha scheme: the generalized-alpha method
// applied to the first-order form with the auxiliary velocity v,
//
//	dq/dt = v        M・dv/dt + D・v + f_int(q) = f_ext
//
// Blends are weighted with alpha (not 1-alpha) so the coefficients enter the
// algebra mirrored relative to the second-order scheme.
type jwhAlpha struct {
	c  JWHAlphaCoefs
	dt float64

	// scratch (mid-point blends)
	qf, vf, ddqm []float64
}

func (o *jwhAlpha) Kind() Kind { return JWHAlpha }
func (o *jwhAlpha) UseV() bool { return true }

// Init computes the coefficients for the given spectral radius and step size
func (o *jwhAlpha) Init(rho, dt float64) (err error) {
	if dt <= 0 {
		return chk.Err("time step must be positive; got %v", dt)
	}
	o.dt = dt
	return o.c.Calc(rho)
}

// Predict advances time by dt and predicts the kinematic variables. The update
// order matters: each line reads only not-yet-updated variables.
func (o *jwhAlpha) Predict(s *State) {
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt
	for i := range s.Q {
		s.Q[i] += dt*(am-gamma)/am*s.Dq[i] + dt*gamma/am*s.V[i] + af*dt*dt*gamma*(1.0-gamma)/am*s.Ddq[i]
		s.Dq[i] += (s.V[i]-s.Dq[i])/am + af*dt*(1.0-gamma)/am*s.Ddq[i]
		s.V[i] += dt * (1.0 - gamma) * s.Ddq[i]
		s.Ddq[i] = 0
	}
	s.T += dt
}

// Assemble fills Kb with dres/dq and res with the residual at the generalized
// mid-point of the step from old to s. Returns the external force vector.
func (o *jwhAlpha) Assemble(Kb *la.Triplet, res []float64, s, old *State, m sys.System) (fext []float64, err error) {
	n := len(s.Q)
	if o.qf == nil {
		o.qf = make([]float64, n)
		o.vf = make([]float64, n)
		o.ddqm = make([]float64, n)
	}
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt

	// mid-point blends
	for i := 0; i < n; i++ {
		o.ddqm[i] = am*s.Ddq[i] + (1.0-am)*old.Ddq[i]
		o.qf[i] = af*s.Q[i] + (1.0-af)*old.Q[i]
		o.vf[i] = af*s.V[i] + (1.0-af)*old.V[i]
	}
	tf := af*s.T + (1.0-af)*old.T

	// residual: res = f_ext - M・ddqm - D・vf - f_int(qf,tf)
	fext = m.FExt(o.qf, o.vf, tf)
	la.Vector(res).Apply(1, fext)
	la.SpMatVecMulAdd(res, -1, m.M(), o.ddqm)
	if D := m.D(); D != nil {
		la.SpMatVecMulAdd(res, -1, D, o.vf)
	}
	fint := m.FInt(o.qf, tf)
	for i := 0; i < n; i++ {
		res[i] -= fint[i]
	}

	// Jacobian: dres/dq = -am²/(af・gamma²・dt²)・M - am/(gamma・dt)・D - af・K
	Kb.Start()
	err = m.AddToJac(Kb, -am*am/(af*gamma*gamma*dt*dt), -am/(gamma*dt), -af, o.qf, tf)
	return
}

// Correct applies the Newton correction to all kinematic variables
func (o *jwhAlpha) Correct(s *State, delta []float64) {
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt
	for i := range delta {
		s.Q[i] += delta[i]
		s.Dq[i] += delta[i] / (gamma * dt)
		s.V[i] += am / (af * gamma * dt) * delta[i]
		s.Ddq[i] += am / (af * gamma * gamma * dt * dt) * delta[i]
	}
}

// EffStiffness assembles the constant effective stiffness of a linear system
func (o *jwhAlpha) EffStiffness(Kb *la.Triplet, m sys.System) error {
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt
	Kb.Start()
	return m.AddToJac(Kb, am*am/(af*gamma*gamma*dt*dt), am/(gamma*dt), af, nil, 0)
}

// EffForce fills f with the effective force for the step from old.T to old.T+dt
func (o *jwhAlpha) EffForce(f []float64, old *State, m sys.System) error {
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt
	tf := old.T + af*dt
	fext := m.FExt(old.Q, old.Dq, tf)
	la.Vector(f).Apply(1, fext)
	M := m.M()
	la.SpMatVecMulAdd(f, am*am/(af*gamma*gamma*dt*dt), M, old.Q)
	la.SpMatVecMulAdd(f, -am*(gamma-am)/(af*gamma*gamma*dt), M, old.Dq)
	la.SpMatVecMulAdd(f, am/(af*gamma*dt), M, old.V)
	la.SpMatVecMulAdd(f, -(gamma-am)/gamma, M, old.Ddq)
	la.SpMatVecMulAdd(f, -(1.0-af), m.K(old.Q, tf), old.Q)
	if D := m.D(); D != nil {
		la.SpMatVecMulAdd(f, am/(gamma*dt), D, old.Q)
		la.SpMatVecMulAdd(f, -(gamma-am)/gamma, D, old.Dq)
	}
	return nil
}

// Update fills s with the full state at old.T+dt from the solved displacements
func (o *jwhAlpha) Update(q []float64, old, s *State) {
	am, af, gamma, dt := o.c.Am, o.c.Af, o.c.Gamma, o.dt
	s.T = old.T + dt
	la.Vector(s.Q).Apply(1, q)
	for i := range q {
		s.Dq[i] = (q[i]-old.Q[i])/(gamma*dt) + (gamma-1.0)/gamma*old.Dq[i]
		s.V[i] = am/af*s.Dq[i] + (1.0-am)/af*old.Dq[i] + (af-1.0)/af*old.V[i]
		s.Ddq[i] = (s.V[i]-old.V[i])/(gamma*dt) + (gamma-1.0)/gamma*old.Ddq[i]
	}
}
