// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sys defines the mechanical-system abstraction consumed by the solvers
// in addition to a couple of concrete (small) systems used in tests and examples.
package sys

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// System is the contract between the solvers and the assembled, constraint-reduced
// mechanical system. All vectors have length Ndofs (free degrees of freedom).
//
// The equation of motion is
//
//	M・ddq + D・dq + f_int(q,t) = f_ext(q,dq,t)
//
// Matrices are returned in compressed-column form for matrix-vector products;
// Jacobian contributions are assembled into a global triplet via AddToJac with
// the pattern
//
//	Kb += cM・M + cD・D + cK・K(u,t)
//
// where the D term is genuinely omitted (not zero-substituted) when the system
// has no damping operator.
type System interface {
	Ndofs() int
	M() *la.CCMatrix                                                            // mass matrix (constant, cached)
	D() *la.CCMatrix                                                            // damping matrix or nil
	K(u []float64, t float64) *la.CCMatrix                                      // tangent stiffness
	FInt(u []float64, t float64) []float64                                      // internal forces
	KAndF(u []float64, t float64) (*la.CCMatrix, []float64)                     // tangent stiffness and internal forces together
	FExt(u, du []float64, t float64) []float64                                  // external forces
	AddToJac(Kb *la.Triplet, cM, cD, cK float64, u []float64, t float64) error  // adds cM・M + cD・D + cK・K(u,t) to Kb
	NnzJac() int                                                                // max number of non-zeros in Jacobian
	WriteTimestep(t float64, u []float64)                                       // appends (t,u) to the output history
	ClearTimesteps()                                                            // clears the output history
}

// Recorder holds the accumulated output history of a system. It is append-only:
// the solvers call WriteTimestep exactly once per accepted step (plus optional
// per-iteration diagnostic writes) and ClearTimesteps once at the start of a solve.
type Recorder struct {
	Tout []float64   // recorded times
	Uout [][]float64 // recorded displacements (copies)
}

// WriteTimestep appends a copy of u at time t
func (o *Recorder) WriteTimestep(t float64, u []float64) {
	v := make([]float64, len(u))
	la.Vector(v).Apply(1, u)
	o.Tout = append(o.Tout, t)
	o.Uout = append(o.Uout, v)
}

// ClearTimesteps clears the output history
func (o *Recorder) ClearTimesteps() {
	o.Tout = nil
	o.Uout = nil
}

// Summary holds the recorded history of one simulation for persistence
type Summary struct {
	Key  string      // simulation key
	Time []float64   // recorded times
	Disp [][]float64 // recorded displacements
}

// NewSummary returns a summary from a recorder
func NewSummary(key string, rec *Recorder) *Summary {
	return &Summary{Key: key, Time: rec.Tout, Disp: rec.Uout}
}

// Save saves summary to dirout/key.sum using enctype ("json" or "gob")
func (o *Summary) Save(dirout, enctype string) (err error) {
	fil, err := os.Create(filepath.Join(dirout, io.Sf("%s.sum", o.Key)))
	if err != nil {
		return chk.Err("cannot create summary file:\n%v", err)
	}
	defer fil.Close()
	enc := utl.NewEncoder(fil, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	return
}

// ReadSummary reads a summary back from dirout/key.sum
func ReadSummary(dirout, key, enctype string) (o *Summary, err error) {
	fil, err := os.Open(filepath.Join(dirout, io.Sf("%s.sum", key)))
	if err != nil {
		return nil, chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	o = new(Summary)
	dec := utl.NewDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}
