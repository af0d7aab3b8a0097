// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/lin"
	"github.com/mechkit/godyn/sys"
)

// LinearDynamics integrates a linear time-invariant system: the effective
// stiffness is assembled and factorised once and each time step reduces to one
// effective-force evaluation and one back-substitution.
type LinearDynamics struct {
	Cf  *Config      // solver parameters
	Sys sys.System   // the mechanical system (must have constant M, D, K)
	Sch LinearScheme // time integration scheme
}

// NewLinearDynamics validates the configuration and prepares the solver
func NewLinearDynamics(cf *Config, m sys.System) (o *LinearDynamics, err error) {
	err = cf.Validate(m.Ndofs(), true)
	if err != nil {
		return
	}
	sch, err := NewLinearScheme(cf.Scheme)
	if err != nil {
		return
	}
	err = sch.Init(cf.RhoInf, cf.Dt)
	if err != nil {
		return
	}
	return &LinearDynamics{Cf: cf, Sys: m, Sch: sch}, nil
}

// Run performs the time integration from T0 to Tend with output on the DtOut grid
func (o *LinearDynamics) Run() (err error) {
	cf, m, sch := o.Cf, o.Sys, o.Sch
	n := m.Ndofs()

	s := cf.initialState(n, sch.UseV())
	old := NewState(n, sch.UseV())
	f := make([]float64, n)
	q := make([]float64, n)

	// consistent initial accelerations: M・ddq0 = f_ext(t0) - D・dq0 - K・q0
	fext0 := m.FExt(s.Q, s.Dq, s.T)
	la.Vector(f).Apply(1, fext0)
	la.SpMatVecMulAdd(f, -1, m.K(s.Q, s.T), s.Q)
	if D := m.D(); D != nil {
		la.SpMatVecMulAdd(f, -1, D, s.Dq)
	}
	Mb := new(la.Triplet)
	Mb.Init(n, n, m.NnzJac())
	err = m.AddToJac(Mb, 1, 0, 0, s.Q, s.T)
	if err != nil {
		return
	}
	mls := lin.NewSparse(cf.LinSolName)
	err = mls.SetA(Mb)
	if err != nil {
		return
	}
	err = mls.Fact()
	if err != nil {
		mls.Free()
		return
	}
	err = mls.Solve(s.Ddq, f)
	mls.Free()
	if err != nil {
		return
	}

	// effective stiffness: assembled and factorised once
	Kb := new(la.Triplet)
	Kb.Init(n, n, m.NnzJac())
	err = sch.EffStiffness(Kb, m)
	if err != nil {
		return
	}
	lis := lin.NewSparse(cf.LinSolName)
	defer lis.Free()
	err = lis.SetA(Kb)
	if err != nil {
		return
	}
	err = lis.Fact()
	if err != nil {
		return
	}

	grid := outGrid(cf.T0, cf.Tend, cf.DtOut)
	const eps = 1e-13
	m.ClearTimesteps()

	idx := 0
	for idx < len(grid) {
		if s.T+eps >= grid[idx] {
			m.WriteTimestep(s.T, s.Q)
			idx++
			if idx == len(grid) {
				break
			}
		}
		old.CopyFrom(s)
		err = sch.EffForce(f, old, m)
		if err != nil {
			return
		}
		err = lis.Solve(q, f)
		if err != nil {
			return
		}
		sch.Update(q, old, s)
	}
	return
}
