// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/lin"
	"github.com/mechkit/godyn/sys"
)

// NonlinearStatics solves K(q)・q = f_ext(t) by Newton-Raphson with load
// stepping: the pseudo-time t ramps the load in LoadSteps equal increments
// from T0 to TStatic. The Jacobian may be reused across iterations (JacReuse)
// and Newton corrections may be under-relaxed (NewtonDamping).
type NonlinearStatics struct {
	Cf  *Config      // solver parameters
	Sys sys.System   // the mechanical system
	Q   []float64    // final displacements (after Run)
	Nit []IterRecord // per-load-step diagnostics when Cf.TrackNiter
}

// NewNonlinearStatics validates the configuration and prepares the solver
func NewNonlinearStatics(cf *Config, m sys.System) (o *NonlinearStatics, err error) {
	err = cf.Validate(m.Ndofs(), false)
	if err != nil {
		return
	}
	return &NonlinearStatics{Cf: cf, Sys: m}, nil
}

// Run performs the load stepping. The initial state is recorded first, then
// each accepted load factor records one output entry. A factor that fails to
// converge either aborts the whole run (ConvAbort) or is accepted as-is with a
// warning; the increments stay equal in both cases.
func (o *NonlinearStatics) Run() (err error) {
	cf, m := o.Cf, o.Sys
	n := m.Ndofs()

	q := make([]float64, n)
	if cf.Q0 != nil {
		copy(q, cf.Q0)
	}
	res := make([]float64, n)
	delta := make([]float64, n)

	Kb := new(la.Triplet)
	Kb.Init(n, n, m.NnzJac())
	lis := lin.NewSparse(cf.LinSolName)
	defer lis.Free()

	m.ClearTimesteps()
	m.WriteTimestep(cf.T0, q)
	ds := (cf.TStatic - cf.T0) / float64(cf.LoadSteps)

	for step := 1; step <= cf.LoadSteps; step++ {
		t := cf.T0 + float64(step)*ds
		if step == cf.LoadSteps {
			t = cf.TStatic
		}

		// residual at the current iterate: res = f_ext(t) - f_int(q,t)
		fext := m.FExt(q, nil, t)
		fint := m.FInt(q, t)
		for i := 0; i < n; i++ {
			res[i] = fext[i] - fint[i]
		}
		absFext := la.Vector(fext).Norm()
		resAbs := la.Vector(res).Norm()

		// Newton-Raphson loop
		nit := 0
		for resAbs > cf.Rtol*absFext+cf.Atol {
			if nit%cf.JacReuse == 0 {
				Kb.Start()
				err = m.AddToJac(Kb, 0, 0, 1, q, t)
				if err != nil {
					return
				}
				err = lis.SetA(Kb)
				if err != nil {
					return
				}
				err = lis.Fact()
				if err != nil {
					return
				}
			}
			err = lis.Solve(delta, res)
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				q[i] += cf.NewtonDamping * delta[i]
			}
			fext = m.FExt(q, nil, t)
			fint = m.FInt(q, t)
			for i := 0; i < n; i++ {
				res[i] = fext[i] - fint[i]
			}
			absFext = la.Vector(fext).Norm()
			resAbs = la.Vector(res).Norm()
			nit++
			if cf.Verbose {
				io.Pf("load factor=%-10g it=%2d  residual=%13.6e\n", t, nit, resAbs)
			}
			if cf.WriteIter {
				m.WriteTimestep(t+1e-6*float64(nit), q)
			}
			if nit >= cf.NmaxIt {
				if cf.ConvAbort {
					io.PfRed("\nno convergence at load factor %g after %d iterations (residual=%g)\n", t, nit, resAbs)
					return chk.Err("statics aborted: no convergence at load factor %g", t)
				}
				io.Pforan("no convergence at load factor %g; accepting iterate and proceeding\n", t)
				break
			}
		}

		if cf.TrackNiter {
			o.Nit = append(o.Nit, IterRecord{t, nit, resAbs})
		}
		m.WriteTimestep(t, q)
	}
	o.Q = q
	return
}

// LinearStatics solves K・q = f_ext(TStatic) with a single factorisation
type LinearStatics struct {
	Cf  *Config    // solver parameters
	Sys sys.System // the mechanical system
	Q   []float64  // displacements (after Run)
}

// NewLinearStatics validates the configuration and prepares the solver
func NewLinearStatics(cf *Config, m sys.System) (o *LinearStatics, err error) {
	err = cf.Validate(m.Ndofs(), false)
	if err != nil {
		return
	}
	return &LinearStatics{Cf: cf, Sys: m}, nil
}

// Run solves the linear static problem and records the zero state and the solution
func (o *LinearStatics) Run() (err error) {
	cf, m := o.Cf, o.Sys
	n := m.Ndofs()

	q := make([]float64, n)
	t := cf.TStatic
	fext := m.FExt(q, nil, t)

	Kb := new(la.Triplet)
	Kb.Init(n, n, m.NnzJac())
	err = m.AddToJac(Kb, 0, 0, 1, q, t)
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

	m.ClearTimesteps()
	m.WriteTimestep(0, q)
	err = lis.Solve(q, fext)
	if err != nil {
		return
	}
	m.WriteTimestep(t, q)
	o.Q = q
	return
}
