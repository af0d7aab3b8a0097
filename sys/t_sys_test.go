// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

func Test_linear01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linear01. linear system matrices and forces")

	m := NewLinear(2)
	m.PutM(0, 0, 1)
	m.PutM(1, 1, 2)
	m.PutK(0, 0, 4)
	m.PutK(0, 1, -1)
	m.PutK(1, 0, -1)
	m.PutK(1, 1, 3)

	chk.IntAssert(m.Ndofs(), 2)

	// no damping entries: the damping operator must be absent, not zero
	if m.D() != nil {
		tst.Errorf("D should be nil for an undamped system\n")
		return
	}

	// f_int = K・u
	u := []float64{1, 2}
	chk.Array(tst, "fint", 1e-15, m.FInt(u, 0), []float64{2, 5})

	K, f := m.KAndF(u, 0)
	chk.Array(tst, "fint (KAndF)", 1e-15, f, []float64{2, 5})
	v := make([]float64, 2)
	la.SpMatVecMulAdd(v, 1, K, u)
	chk.Array(tst, "K・u", 1e-15, v, []float64{2, 5})

	// external load with constant multiplier
	err := m.SetLoad([]float64{10, 20}, &dbf.Cte{C: 0.5})
	if err != nil {
		tst.Errorf("SetLoad failed: %v\n", err)
		return
	}
	chk.Array(tst, "fext", 1e-15, m.FExt(u, nil, 123), []float64{5, 10})

	// wrong load dimension
	err = m.SetLoad([]float64{1}, &dbf.Cte{C: 1})
	if err == nil {
		tst.Errorf("SetLoad should have failed with wrong dimension\n")
	}
}

func Test_linear02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linear02. Jacobian assembly: cM・M + cD・D + cK・K")

	m := NewLinear(2)
	m.PutM(0, 0, 1)
	m.PutM(1, 1, 2)
	m.PutD(0, 0, 0.1)
	m.PutD(1, 1, 0.2)
	m.PutK(0, 0, 4)
	m.PutK(0, 1, -1)
	m.PutK(1, 0, -1)
	m.PutK(1, 1, 3)

	Kb := new(la.Triplet)
	Kb.Init(2, 2, m.NnzJac())
	err := m.AddToJac(Kb, 10, 100, 1, nil, 0)
	if err != nil {
		tst.Errorf("AddToJac failed: %v\n", err)
		return
	}

	// J = 10・M + 100・D + K = [24 -1; -1 43]
	J := Kb.ToMatrix(nil)
	v := make([]float64, 2)
	la.SpMatVecMulAdd(v, 1, J, []float64{1, 0})
	chk.Array(tst, "J・e0", 1e-13, v, []float64{24, -1})
	la.Vector(v).Fill(0)
	la.SpMatVecMulAdd(v, 1, J, []float64{0, 1})
	chk.Array(tst, "J・e1", 1e-13, v, []float64{-1, 43})
}

func Test_cubic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cubic01. cubic spring forces and tangent")

	m := NewCubicSpring(2, 3, 10, 2)
	chk.IntAssert(m.Ndofs(), 2)
	if m.D() != nil {
		tst.Errorf("D should be nil for the cubic spring\n")
		return
	}

	// f_int = k・u + kappa・u³
	u := []float64{1, 2}
	chk.Array(tst, "fint", 1e-15, m.FInt(u, 0), []float64{12, 36})

	// tangent K = k + 3・kappa・u²
	K := m.K(u, 0)
	v := make([]float64, 2)
	la.SpMatVecMulAdd(v, 1, K, []float64{1, 1})
	chk.Array(tst, "K・1", 1e-15, v, []float64{16, 34})

	// Jacobian with cM and cK
	Kb := new(la.Triplet)
	Kb.Init(2, 2, m.NnzJac())
	err := m.AddToJac(Kb, 2, 0, 1, u, 0)
	if err != nil {
		tst.Errorf("AddToJac failed: %v\n", err)
		return
	}
	J := Kb.ToMatrix(nil)
	la.Vector(v).Fill(0)
	la.SpMatVecMulAdd(v, 1, J, []float64{1, 1})
	chk.Array(tst, "(2M+K)・1", 1e-15, v, []float64{22, 40})
}

func Test_recorder01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("recorder01. output history stores copies")

	var rec Recorder
	u := []float64{1, 2}
	rec.WriteTimestep(0, u)
	u[0] = 99
	rec.WriteTimestep(0.1, u)

	chk.IntAssert(len(rec.Tout), 2)
	chk.Array(tst, "u(0)", 1e-15, rec.Uout[0], []float64{1, 2})
	chk.Array(tst, "u(0.1)", 1e-15, rec.Uout[1], []float64{99, 2})

	rec.ClearTimesteps()
	chk.IntAssert(len(rec.Tout), 0)
	chk.IntAssert(len(rec.Uout), 0)
}

func Test_summary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("summary01. summary save and read roundtrip")

	var rec Recorder
	rec.WriteTimestep(0, []float64{0, 0})
	rec.WriteTimestep(0.5, []float64{1, -1})

	sum := NewSummary("sumtest01", &rec)
	err := os.MkdirAll("/tmp/godyn", 0777)
	if err != nil {
		tst.Errorf("cannot create output directory: %v\n", err)
		return
	}
	err = sum.Save("/tmp/godyn", "json")
	if err != nil {
		tst.Errorf("Save failed: %v\n", err)
		return
	}

	back, err := ReadSummary("/tmp/godyn", "sumtest01", "json")
	if err != nil {
		tst.Errorf("ReadSummary failed: %v\n", err)
		return
	}
	chk.String(tst, back.Key, "sumtest01")
	chk.Array(tst, "time", 1e-15, back.Time, []float64{0, 0.5})
	chk.Array(tst, "disp(1)", 1e-15, back.Disp[1], []float64{1, -1})
}
