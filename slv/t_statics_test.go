// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/mechkit/godyn/sys"
)

func Test_sta01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta01. linear system: one iteration per load step")

	// k・u = f with k=100, f=50  =>  u = 0.5
	m := sys.NewLinear(2)
	m.PutK(0, 0, 100)
	m.PutK(1, 1, 100)
	err := m.SetLoad([]float64{50, 50}, &dbf.Cte{C: 1})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}

	cf := NewConfig()
	cf.TrackNiter = true

	sol, err := NewNonlinearStatics(cf, m)
	if err != nil {
		tst.Errorf("NewNonlinearStatics failed: %v\n", err)
		return
	}
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	chk.Array(tst, "u", 1e-12, sol.Q, []float64{0.5, 0.5})

	// the linear problem converges in one Newton iteration at the first factor;
	// later factors start from the already-converged solution and take none
	chk.IntAssert(len(sol.Nit), 10)
	chk.IntAssert(sol.Nit[0].Niter, 1)
	for _, rec := range sol.Nit[1:] {
		io.Pf("t=%-4g niter=%d resid=%g\n", rec.T, rec.Niter, rec.Resid)
		if rec.Niter > 1 {
			tst.Errorf("linear statics took %d iterations at load factor %g\n", rec.Niter, rec.T)
			return
		}
	}

	// the initial state plus one output entry per load factor
	chk.IntAssert(len(m.Tout), 11)
	chk.Float64(tst, "first factor", 1e-15, m.Tout[0], 0.0)
	chk.Array(tst, "u(0)", 1e-15, m.Uout[0], []float64{0, 0})
	chk.Float64(tst, "last factor", 1e-15, m.Tout[10], 1.0)
}

func Test_sta02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta02. cubic spring statics")

	// u + u³ = 2  =>  u = 1
	m := sys.NewCubicSpring(3, 1, 1, 1)
	err := m.SetLoad([]float64{2, 2, 2}, &dbf.Cte{C: 1})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}

	cf := NewConfig()
	cf.Rtol = 1e-12

	sol, err := NewNonlinearStatics(cf, m)
	if err != nil {
		tst.Errorf("NewNonlinearStatics failed: %v\n", err)
		return
	}
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Array(tst, "u", 1e-8, sol.Q, []float64{1, 1, 1})
}

func Test_sta03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta03. cubic spring statics with damping and Jacobian reuse")

	m := sys.NewCubicSpring(1, 1, 1, 1)
	err := m.SetLoad([]float64{2}, &dbf.Cte{C: 1})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}

	cf := NewConfig()
	cf.Rtol = 1e-12
	cf.NewtonDamping = 0.8
	cf.JacReuse = 3
	cf.TrackNiter = true

	sol, err := NewNonlinearStatics(cf, m)
	if err != nil {
		tst.Errorf("NewNonlinearStatics failed: %v\n", err)
		return
	}
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Array(tst, "u", 1e-8, sol.Q, []float64{1})
	for _, rec := range sol.Nit {
		io.Pf("t=%-4g niter=%d resid=%g\n", rec.T, rec.Niter, rec.Resid)
	}
}

func Test_sta04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta04. linear statics with single factorisation")

	m := sys.NewLinear(2)
	m.PutK(0, 0, 4)
	m.PutK(0, 1, -1)
	m.PutK(1, 0, -1)
	m.PutK(1, 1, 3)
	err := m.SetLoad([]float64{7, 1}, &dbf.Cte{C: 1})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}

	cf := NewConfig()
	sol, err := NewLinearStatics(cf, m)
	if err != nil {
		tst.Errorf("NewLinearStatics failed: %v\n", err)
		return
	}
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// K = [4 -1; -1 3], f = {7, 1}  =>  u = {2, 1}
	chk.Array(tst, "u", 1e-12, sol.Q, []float64{2, 1})

	// zero state and solution recorded
	chk.IntAssert(len(m.Tout), 2)
	chk.Array(tst, "u(0)", 1e-15, m.Uout[0], []float64{0, 0})
	chk.Array(tst, "u(1)", 1e-12, m.Uout[1], []float64{2, 1})
}

func Test_sta05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta05. statics configuration validation")

	m := sys.NewLinear(1)
	m.PutK(0, 0, 1)

	cf := NewConfig()
	cf.Q0 = []float64{1, 2, 3}
	_, err := NewNonlinearStatics(cf, m)
	if err == nil {
		tst.Errorf("NewNonlinearStatics should have failed with wrong Q0 length\n")
		return
	}
	io.Pf("bad q0 : %v\n", err)

	cf = NewConfig()
	cf.RhoInf = -1
	_, err = NewLinearStatics(cf, m)
	if err == nil {
		tst.Errorf("NewLinearStatics should have failed with negative RhoInf\n")
	}
}

func Test_sta06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sta06. iteration cap allows at most NmaxIt iterations")

	// strong cubic load: one Newton iteration is nowhere near convergence
	m := sys.NewCubicSpring(1, 1, 1, 1)
	err := m.SetLoad([]float64{1000}, &dbf.Cte{C: 1})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}

	cf := NewConfig()
	cf.LoadSteps = 1
	cf.NmaxIt = 1
	cf.ConvAbort = false
	cf.TrackNiter = true

	sol, err := NewNonlinearStatics(cf, m)
	if err != nil {
		tst.Errorf("NewNonlinearStatics failed: %v\n", err)
		return
	}
	err = sol.Run()
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// the loop stops exactly at the cap and the iterate is accepted anyway
	chk.IntAssert(len(sol.Nit), 1)
	chk.IntAssert(sol.Nit[0].Niter, 1)
	chk.IntAssert(len(m.Tout), 2)
	io.Pf("accepted resid : %g\n", sol.Nit[0].Resid)
}
