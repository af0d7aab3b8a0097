// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// entry is one (i,j,value) term of a sparse matrix kept in raw form so that the
// system can re-assemble scaled copies into a global Jacobian triplet.
type entry struct {
	i, j int
	v    float64
}

// Linear implements System for a linear mechanical system with constant mass,
// damping, and stiffness. Internal forces are f_int(u,t) = K・u. External forces
// are a constant spatial load vector scaled by a time function.
type Linear struct {
	Recorder

	// definition
	ndofs  int
	ments  []entry // mass entries
	dents  []entry // damping entries (may be empty)
	kents  []entry // stiffness entries
	load   []float64
	mult   dbf.T // load multiplier; nil means no external load

	// cached compressed matrices; invalidated whenever an entry is added
	mMat *la.CCMatrix
	dMat *la.CCMatrix
	kMat *la.CCMatrix
}

// NewLinear returns a new linear system with ndofs free degrees of freedom
func NewLinear(ndofs int) *Linear {
	return &Linear{ndofs: ndofs}
}

// PutM adds one mass matrix entry
func (o *Linear) PutM(i, j int, v float64) {
	o.ments = append(o.ments, entry{i, j, v})
	o.mMat = nil
}

// PutD adds one damping matrix entry
func (o *Linear) PutD(i, j int, v float64) {
	o.dents = append(o.dents, entry{i, j, v})
	o.dMat = nil
}

// PutK adds one stiffness matrix entry
func (o *Linear) PutK(i, j int, v float64) {
	o.kents = append(o.kents, entry{i, j, v})
	o.kMat = nil
}

// SetLoad sets the external load: f_ext(t) = load・mult(t)
func (o *Linear) SetLoad(load []float64, mult dbf.T) error {
	if len(load) != o.ndofs {
		return chk.Err("load vector has %d components but system has %d dofs", len(load), o.ndofs)
	}
	o.load = load
	o.mult = mult
	return nil
}

// Ndofs returns the number of free degrees of freedom
func (o *Linear) Ndofs() int { return o.ndofs }

// compress builds a compressed-column matrix from raw entries
func (o *Linear) compress(ents []entry) *la.CCMatrix {
	T := new(la.Triplet)
	T.Init(o.ndofs, o.ndofs, len(ents))
	for _, e := range ents {
		T.Put(e.i, e.j, e.v)
	}
	return T.ToMatrix(nil)
}

// M returns the mass matrix (cached)
func (o *Linear) M() *la.CCMatrix {
	if o.mMat == nil {
		o.mMat = o.compress(o.ments)
	}
	return o.mMat
}

// D returns the damping matrix or nil if the system has no damping
func (o *Linear) D() *la.CCMatrix {
	if len(o.dents) == 0 {
		return nil
	}
	if o.dMat == nil {
		o.dMat = o.compress(o.dents)
	}
	return o.dMat
}

// K returns the (constant) stiffness matrix (cached)
func (o *Linear) K(u []float64, t float64) *la.CCMatrix {
	if o.kMat == nil {
		o.kMat = o.compress(o.kents)
	}
	return o.kMat
}

// FInt returns internal forces f_int = K・u
func (o *Linear) FInt(u []float64, t float64) []float64 {
	f := make([]float64, o.ndofs)
	la.SpMatVecMulAdd(f, 1, o.K(u, t), u)
	return f
}

// KAndF returns the stiffness matrix and internal forces together
func (o *Linear) KAndF(u []float64, t float64) (*la.CCMatrix, []float64) {
	return o.K(u, t), o.FInt(u, t)
}

// FExt returns external forces at time t
func (o *Linear) FExt(u, du []float64, t float64) []float64 {
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

// AddToJac adds cM・M + cD・D + cK・K to the global Jacobian triplet
func (o *Linear) AddToJac(Kb *la.Triplet, cM, cD, cK float64, u []float64, t float64) error {
	for _, e := range o.ments {
		Kb.Put(e.i, e.j, cM*e.v)
	}
	if len(o.dents) > 0 {
		for _, e := range o.dents {
			Kb.Put(e.i, e.j, cD*e.v)
		}
	}
	for _, e := range o.kents {
		Kb.Put(e.i, e.j, cK*e.v)
	}
	return nil
}

// NnzJac returns the maximum number of non-zeros in the Jacobian
func (o *Linear) NnzJac() int {
	return len(o.ments) + len(o.dents) + len(o.kents)
}
