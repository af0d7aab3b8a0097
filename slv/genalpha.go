// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/sys"
)

// genAlpha implements the generalized-alpha scheme for the second-order form
//
//	M・ddq + D・dq + f_int(q) = f_ext
//
// The equilibrium is enforced at the generalized mid-point: accelerations are
// blended with alpha_m and the remaining quantities with alpha_f.
type genAlpha struct {
	c  GenAlphaCoefs
	dt float64

	// scratch (mid-point blends)
	qf, dqf, ddqm []float64
}

func (o *genAlpha) Kind() Kind { return GenAlpha }
func (o *genAlpha) UseV() bool { return false }

// Init computes the coefficients for the given spectral radius and step size
func (o *genAlpha) Init(rho, dt float64) (err error) {
	if dt <= 0 {
		return chk.Err("time step must be positive; got %v", dt)
	}
	o.dt = dt
	return o.c.Calc(rho)
}

// Predict advances time by dt and predicts the kinematic variables assuming
// zero acceleration over the step
func (o *genAlpha) Predict(s *State) {
	dt := o.dt
	for i := range s.Q {
		s.Q[i] += dt*s.Dq[i] + dt*dt*(0.5-o.c.Beta)*s.Ddq[i]
		s.Dq[i] += dt * (1.0 - o.c.Gamma) * s.Ddq[i]
		s.Ddq[i] = 0
	}
	s.T += dt
}

// Assemble fills Kb with dres/dq and res with the residual at the generalized
// mid-point of the step from old to s. Returns the external force vector.
func (o *genAlpha) Assemble(Kb *la.Triplet, res []float64, s, old *State, m sys.System) (fext []float64, err error) {
	n := len(s.Q)
	if o.qf == nil {
		o.qf = make([]float64, n)
		o.dqf = make([]float64, n)
		o.ddqm = make([]float64, n)
	}
	am, af, beta, gamma, dt := o.c.Am, o.c.Af, o.c.Beta, o.c.Gamma, o.dt

	// mid-point blends
	for i := 0; i < n; i++ {
		o.ddqm[i] = (1.0-am)*s.Ddq[i] + am*old.Ddq[i]
		o.qf[i] = (1.0-af)*s.Q[i] + af*old.Q[i]
		o.dqf[i] = (1.0-af)*s.Dq[i] + af*old.Dq[i]
	}
	tf := (1.0-af)*s.T + af*old.T

	// residual: res = f_ext - M・ddqm - D・dqf - f_int(qf,tf)
	fext = m.FExt(o.qf, o.dqf, tf)
	la.Vector(res).Apply(1, fext)
	la.SpMatVecMulAdd(res, -1, m.M(), o.ddqm)
	if D := m.D(); D != nil {
		la.SpMatVecMulAdd(res, -1, D, o.dqf)
	}
	fint := m.FInt(o.qf, tf)
	for i := 0; i < n; i++ {
		res[i] -= fint[i]
	}

	// Jacobian: dres/dq = -(1-am)/(beta・dt²)・M - (1-af)・gamma/(beta・dt)・D - (1-af)・K
	Kb.Start()
	err = m.AddToJac(Kb, -(1.0-am)/(beta*dt*dt), -(1.0-af)*gamma/(beta*dt), -(1.0-af), o.qf, tf)
	return
}

// Correct applies the Newton correction to displacements, velocities, and
// accelerations with the Newmark update ratios
func (o *genAlpha) Correct(s *State, delta []float64) {
	beta, gamma, dt := o.c.Beta, o.c.Gamma, o.dt
	for i := range delta {
		s.Q[i] += delta[i]
		s.Dq[i] += gamma / (beta * dt) * delta[i]
		s.Ddq[i] += delta[i] / (beta * dt * dt)
	}
}

// EffStiffness assembles the constant effective stiffness of a linear system
func (o *genAlpha) EffStiffness(Kb *la.Triplet, m sys.System) error {
	am, af, beta, gamma, dt := o.c.Am, o.c.Af, o.c.Beta, o.c.Gamma, o.dt
	Kb.Start()
	return m.AddToJac(Kb, (1.0-am)/(beta*dt*dt), (1.0-af)*gamma/(beta*dt), 1.0-af, nil, 0)
}

// EffForce fills f with the effective force for the step from old.T to old.T+dt
func (o *genAlpha) EffForce(f []float64, old *State, m sys.System) error {
	am, af, beta, gamma, dt := o.c.Am, o.c.Af, o.c.Beta, o.c.Gamma, o.dt
	tf := old.T + (1.0-af)*dt
	fext := m.FExt(old.Q, old.Dq, tf)
	la.Vector(f).Apply(1, fext)
	M := m.M()
	la.SpMatVecMulAdd(f, (1.0-am)/(beta*dt*dt), M, old.Q)
	la.SpMatVecMulAdd(f, (1.0-am)/(beta*dt), M, old.Dq)
	la.SpMatVecMulAdd(f, -(0.5*(am-1.0)+beta)/beta, M, old.Ddq)
	la.SpMatVecMulAdd(f, -af, m.K(old.Q, tf), old.Q)
	if D := m.D(); D != nil {
		la.SpMatVecMulAdd(f, (1.0-af)*gamma/(beta*dt), D, old.Q)
		la.SpMatVecMulAdd(f, -(gamma*(af-1.0)+beta)/beta, D, old.Dq)
		la.SpMatVecMulAdd(f, -(1.0-af)*(beta-0.5*gamma)*dt/beta, D, old.Ddq)
	}
	return nil
}

// Update fills s with the full state at old.T+dt from the solved displacements
func (o *genAlpha) Update(q []float64, old, s *State) {
	beta, gamma, dt := o.c.Beta, o.c.Gamma, o.dt
	s.T = old.T + dt
	la.Vector(s.Q).Apply(1, q)
	for i := range q {
		s.Ddq[i] = (q[i]-old.Q[i])/(beta*dt*dt) - old.Dq[i]/(beta*dt) - (0.5-beta)/beta*old.Ddq[i]
		s.Dq[i] = old.Dq[i] + dt*((1.0-gamma)*old.Ddq[i]+gamma*s.Ddq[i])
	}
}
