// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cst

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// quad is a prescribed motion U(t) = t² for testing
type quad struct{}

func (o quad) Init(prms dbf.Params)             {}
func (o quad) F(t float64, x []float64) float64 { return t * t }
func (o quad) G(t float64, x []float64) float64 { return 2 * t }
func (o quad) H(t float64, x []float64) float64 { return 2 }
func (o quad) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

func Test_base01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("base01. base types fail with not-implemented errors")

	var nh NonholonomicBase
	if _, err := nh.B(nil, nil, 0); err == nil {
		tst.Errorf("B should have failed\n")
		return
	}
	if _, err := nh.Vdrift(nil, nil, 0); err == nil {
		tst.Errorf("Vdrift should have failed\n")
		return
	}
	if _, err := nh.Adrift(nil, nil, nil, 0); err == nil {
		tst.Errorf("Adrift should have failed\n")
		return
	}

	var h HolonomicBase
	if _, err := h.G(nil, nil, 0); err == nil {
		tst.Errorf("G should have failed\n")
	}
}

func Test_dirichlet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet01. prescribed motion U(t) = t²")

	con := NewDirichlet(quad{})
	X := []float64{0}
	u := []float64{0.1}
	t := 2.0

	g, err := con.G(X, u, t)
	if err != nil {
		tst.Errorf("G failed: %v\n", err)
		return
	}
	chk.Float64(tst, "g", 1e-15, g, -3.9)

	jac, err := con.B(X, u, t)
	if err != nil {
		tst.Errorf("B failed: %v\n", err)
		return
	}
	chk.Array(tst, "B", 1e-15, jac, []float64{1})

	// on the constraint manifold: v = dU/dt and B・v + b = 0
	b, err := con.Vdrift(X, u, t)
	if err != nil {
		tst.Errorf("Vdrift failed: %v\n", err)
		return
	}
	v := 2 * t
	chk.Float64(tst, "B・v + b", 1e-15, jac[0]*v+b, 0)

	// and ddq = d²U/dt² with B・ddq + a = 0
	a, err := con.Adrift(X, u, nil, t)
	if err != nil {
		tst.Errorf("Adrift failed: %v\n", err)
		return
	}
	chk.Float64(tst, "B・ddq + a", 1e-15, jac[0]*2.0+a, 0)

	// dimension check
	_, err = con.G(X, []float64{1, 2}, t)
	if err == nil {
		tst.Errorf("G should have failed with two dofs\n")
	}
}

func Test_dirichlet02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet02. nil motion fixes the dof at zero")

	con := NewDirichlet(nil)
	g, err := con.G([]float64{0}, []float64{0.25}, 10)
	if err != nil {
		tst.Errorf("G failed: %v\n", err)
		return
	}
	chk.Float64(tst, "g", 1e-15, g, 0.25)

	b, err := con.Vdrift(nil, []float64{0.25}, 10)
	if err != nil {
		tst.Errorf("Vdrift failed: %v\n", err)
		return
	}
	chk.Float64(tst, "b", 1e-15, b, 0)
}

func Test_fixdist01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fixdist01. residual: rigid translation and approach")

	con := NewFixedDistance()
	X := []float64{0, 0, 1, 0} // two nodes in 2D, unit distance apart

	// rigid translation preserves the distance
	u := []float64{0.3, -0.2, 0.3, -0.2}
	g, err := con.G(X, u, 0)
	if err != nil {
		tst.Errorf("G failed: %v\n", err)
		return
	}
	chk.Float64(tst, "g (translation)", 1e-15, g, 0)

	// nodes moving closer give a negative residual
	u = []float64{0, 0, -0.1, 0}
	g, err = con.G(X, u, 0)
	if err != nil {
		tst.Errorf("G failed: %v\n", err)
		return
	}
	chk.Float64(tst, "g (approach)", 1e-15, g, -0.095)
	if g >= 0 {
		tst.Errorf("residual should be negative when nodes approach\n")
		return
	}

	// coincident reference nodes are rejected
	_, err = con.G([]float64{0, 0, 0, 0}, u, 0)
	if err == nil {
		tst.Errorf("G should have failed with coincident nodes\n")
	}
}

func Test_fixdist02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fixdist02. Jacobian versus finite differences")

	con := NewFixedDistance()
	X := []float64{0.1, 0.2, 1.3, -0.4}
	u := []float64{0.01, -0.02, 0.03, 0.05}

	jac, err := con.B(X, u, 0)
	if err != nil {
		tst.Errorf("B failed: %v\n", err)
		return
	}

	h := 1e-6
	for j := 0; j < 4; j++ {
		up := make([]float64, 4)
		um := make([]float64, 4)
		copy(up, u)
		copy(um, u)
		up[j] += h
		um[j] -= h
		gp, err := con.G(X, up, 0)
		if err != nil {
			tst.Errorf("G failed: %v\n", err)
			return
		}
		gm, err := con.G(X, um, 0)
		if err != nil {
			tst.Errorf("G failed: %v\n", err)
			return
		}
		fd := (gp - gm) / (2 * h)
		io.Pf("dg/du%d = %13.8f  fd = %13.8f\n", j, jac[j], fd)
		chk.Float64(tst, io.Sf("dg/du%d", j), 1e-8, jac[j], fd)
	}
}

func Test_fixdist03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fixdist03. rotation: velocity and centripetal acceleration drift")

	// node 2 rotates about node 1 with angular velocity w
	con := NewFixedDistance()
	X := []float64{0, 0, 1, 0}
	w := 2.0
	theta := 0.3

	u := []float64{0, 0, math.Cos(theta) - 1, math.Sin(theta)}
	du := []float64{0, 0, -w * math.Sin(theta), w * math.Cos(theta)}
	ddu := []float64{0, 0, -w * w * math.Cos(theta), -w * w * math.Sin(theta)}

	jac, err := con.B(X, u, 0)
	if err != nil {
		tst.Errorf("B failed: %v\n", err)
		return
	}

	// B・v + b = 0: tangential velocity does not change the distance
	b, err := con.Vdrift(X, u, 0)
	if err != nil {
		tst.Errorf("Vdrift failed: %v\n", err)
		return
	}
	Bv := 0.0
	for j := 0; j < 4; j++ {
		Bv += jac[j] * du[j]
	}
	chk.Float64(tst, "B・v + b", 1e-14, Bv+b, 0)

	// B・dv/dt + a = 0: centripetal acceleration balances the quadratic term
	a, err := con.Adrift(X, u, du, 0)
	if err != nil {
		tst.Errorf("Adrift failed: %v\n", err)
		return
	}
	Ba := 0.0
	for j := 0; j < 4; j++ {
		Ba += jac[j] * ddu[j]
	}
	chk.Float64(tst, "B・dv/dt + a", 1e-13, Ba+a, 0)
}

func Test_set01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("set01. constraint set assembly")

	var set Set
	err := set.Add("ux0", NewDirichlet(quad{}), []int{0}, []float64{0})
	if err != nil {
		tst.Errorf("Add failed: %v\n", err)
		return
	}
	err = set.Add("dist", NewFixedDistance(), []int{1, 2, 3, 4}, []float64{0, 0, 1, 0})
	if err != nil {
		tst.Errorf("Add failed: %v\n", err)
		return
	}

	ny := 5
	nlam, nnzA := set.Build(ny)
	chk.IntAssert(nlam, 2)
	chk.IntAssert(nnzA, 5)

	u := []float64{0.1, 0, 0, 0, 0}
	t := 2.0
	err = set.Assemble(u, t)
	if err != nil {
		tst.Errorf("Assemble failed: %v\n", err)
		return
	}

	g, err := set.Residuals(u, t)
	if err != nil {
		tst.Errorf("Residuals failed: %v\n", err)
		return
	}
	chk.Array(tst, "g", 1e-15, g, []float64{-3.9, 0})

	b, err := set.Vdrifts(u, t)
	if err != nil {
		tst.Errorf("Vdrifts failed: %v\n", err)
		return
	}
	chk.Array(tst, "b", 1e-15, b, []float64{-4, 0})

	a, err := set.Adrifts(u, make([]float64, ny), t)
	if err != nil {
		tst.Errorf("Adrifts failed: %v\n", err)
		return
	}
	chk.Array(tst, "a", 1e-15, a, []float64{-2, 0})

	// augmented right-hand side: fb[:ny] -= Bt・λ and fb[ny+i] = -g_i
	fb := make([]float64, ny+nlam)
	lam := []float64{2, 3}
	err = set.AddToRhs(fb, u, lam, t)
	if err != nil {
		tst.Errorf("AddToRhs failed: %v\n", err)
		return
	}
	chk.Array(tst, "fb", 1e-14, fb, []float64{-2, 3, 0, -3, 0, 3.9, 0})

	// mismatched equations and positions are rejected
	err = set.Add("bad", NewDirichlet(nil), []int{0, 1}, []float64{0})
	if err == nil {
		tst.Errorf("Add should have failed with mismatched lengths\n")
	}
}
