// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/lin"
	"github.com/mechkit/godyn/sys"
)

// IterRecord holds per-step Newton diagnostics
type IterRecord struct {
	T     float64 // time of the step
	Niter int     // number of iterations taken
	Resid float64 // final residual norm
}

// NonlinearDynamics integrates the nonlinear equation of motion with an
// implicit alpha scheme and a full Newton-Raphson loop per time step.
type NonlinearDynamics struct {
	Cf  *Config      // solver parameters
	Sys sys.System   // the mechanical system
	Sch Scheme       // time integration scheme
	Nit []IterRecord // per-step diagnostics when Cf.TrackNiter
}

// NewNonlinearDynamics validates the configuration and prepares the solver
func NewNonlinearDynamics(cf *Config, m sys.System) (o *NonlinearDynamics, err error) {
	err = cf.Validate(m.Ndofs(), true)
	if err != nil {
		return
	}
	sch, err := NewScheme(cf.Scheme)
	if err != nil {
		return
	}
	err = sch.Init(cf.RhoInf, cf.Dt)
	if err != nil {
		return
	}
	return &NonlinearDynamics{Cf: cf, Sys: m, Sch: sch}, nil
}

// Run performs the time integration from T0 to Tend. Output is recorded on the
// DtOut grid: each pass first writes the current state if it has reached the
// next grid point, then advances one step. A step that fails to converge either
// aborts the whole run (ConvAbort) or rolls back to the last accepted state and
// retries with the same step size; rolled-back steps record no output.
func (o *NonlinearDynamics) Run() (err error) {
	cf, m, sch := o.Cf, o.Sys, o.Sch
	n := m.Ndofs()

	// state and work vectors
	s := cf.initialState(n, sch.UseV())
	old := NewState(n, sch.UseV())
	res := make([]float64, n)
	delta := make([]float64, n)
	fextOld := make([]float64, n)

	// Jacobian and linear solver
	Kb := new(la.Triplet)
	Kb.Init(n, n, m.NnzJac())
	lis := lin.NewSparse(cf.LinSolName)
	defer lis.Free()

	// output grid
	grid := outGrid(cf.T0, cf.Tend, cf.DtOut)
	const eps = 1e-13
	m.ClearTimesteps()

	// the convergence scale is the running maximum of the external force norm,
	// seeded with atol so a zero-load start does not demand exact zeros
	absFext := cf.Atol
	var fext []float64

	idx := 0
	for idx < len(grid) {

		// output
		if s.T+eps >= grid[idx] {
			m.WriteTimestep(s.T, s.Q)
			idx++
			if idx == len(grid) {
				break
			}
		}

		// save state for rollback
		old.CopyFrom(s)
		if fext != nil {
			la.Vector(fextOld).Apply(1, fext)
		}

		// predict and evaluate
		sch.Predict(s)
		fext, err = sch.Assemble(Kb, res, s, old, m)
		if err != nil {
			return
		}
		absFext = math.Max(absFext, la.Vector(fext).Norm())
		resAbs := la.Vector(res).Norm()

		// Newton-Raphson loop
		nit := 0
		for resAbs > cf.Rtol*absFext+cf.Atol {
			err = lis.SetA(Kb)
			if err != nil {
				return
			}
			err = lis.Fact()
			if err != nil {
				return
			}
			err = lis.Solve(delta, res)
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				delta[i] = -delta[i]
			}
			sch.Correct(s, delta)
			fext, err = sch.Assemble(Kb, res, s, old, m)
			if err != nil {
				return
			}
			resAbs = la.Vector(res).Norm()
			nit++
			if cf.Verbose {
				io.Pf("t=%-13g it=%2d  residual=%13.6e\n", s.T, nit, resAbs)
			}
			if cf.WriteIter {
				m.WriteTimestep(s.T+cf.Dt/1e6*float64(nit), s.Q)
			}
			if nit > cf.NmaxIt {
				if cf.ConvAbort {
					io.PfRed("\nno convergence with dt=%g at t=%g after %d iterations (residual=%g)\n", cf.Dt, s.T, nit, resAbs)
					return chk.Err("time integration aborted: no convergence with dt=%g at t=%g", cf.Dt, s.T)
				}
				io.Pforan("no convergence with dt=%g at t=%g; rolling back\n", cf.Dt, s.T)
				// accelerations keep the predictor value
				s.T = old.T
				la.Vector(s.Q).Apply(1, old.Q)
				la.Vector(s.Dq).Apply(1, old.Dq)
				if s.V != nil {
					la.Vector(s.V).Apply(1, old.V)
				}
				fext = fextOld
				break
			}
		}

		if cf.TrackNiter {
			o.Nit = append(o.Nit, IterRecord{s.T, nit, resAbs})
		}
	}
	return
}

// outGrid returns the output sampling times: T0 inclusive to Tend exclusive,
// spaced by dtOut
func outGrid(t0, tEnd, dtOut float64) (grid []float64) {
	for i := 0; ; i++ {
		t := t0 + float64(i)*dtOut
		if t >= tEnd {
			break
		}
		grid = append(grid, t)
	}
	return
}
