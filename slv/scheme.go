// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package slv implements the statics and implicit time integration solvers:
// Newton-Raphson statics with load stepping, and nonlinear/linear dynamics with
// the generalized-alpha and JWH-alpha schemes.
package slv

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mechkit/godyn/sys"
)

// Kind identifies a time integration scheme
type Kind int

// available schemes
const (
	GenAlpha Kind = iota + 1 // generalized-alpha (second-order form)
	JWHAlpha                 // JWH-alpha (first-order form)
)

// String returns the name of the scheme
func (o Kind) String() string {
	switch o {
	case GenAlpha:
		return "genalpha"
	case JWHAlpha:
		return "jwhalpha"
	}
	return "unknown"
}

// ParseKind converts a scheme name to its Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "genalpha", "":
		return GenAlpha, nil
	case "jwhalpha":
		return JWHAlpha, nil
	}
	return 0, chk.Err("unknown time integration scheme %q", name)
}

// Scheme is the strategy consumed by the dynamics solvers. A scheme owns the
// step size and the alpha coefficients; the solver owns the Newton loop, the
// linear solver, and the output. The protocol per time step is: Predict once,
// then Assemble/Correct until the residual norm is small.
//
// Assemble fills the Jacobian triplet and the residual at the current iterate.
// The Jacobian it assembles is dres/dq, so the Newton correction is the
// negative of the linear-solve result.
type Scheme interface {
	Kind() Kind                                                                             // scheme identifier
	UseV() bool                                                                             // scheme carries the auxiliary velocity
	Init(rho, dt float64) error                                                             // computes coefficients; fails on invalid rho or dt
	Predict(s *State)                                                                       // advances s.T by dt and predicts the kinematic variables
	Assemble(Kb *la.Triplet, res []float64, s, old *State, m sys.System) ([]float64, error) // fills Kb and res; returns f_ext
	Correct(s *State, delta []float64)                                                      // applies the Newton correction
}

// LinearScheme extends Scheme with the single-factorisation path for linear
// time-invariant systems: the effective stiffness is assembled and factorised
// once and each step reduces to one effective-force evaluation and one solve.
type LinearScheme interface {
	Scheme
	EffStiffness(Kb *la.Triplet, m sys.System) error       // assembles the (constant) effective stiffness
	EffForce(f []float64, old *State, m sys.System) error  // fills f with the effective force for the step from old.T
	Update(q []float64, old *State, s *State)              // fills s from the solved displacements q and the old state
}

// NewScheme returns the scheme of the given kind
func NewScheme(kind Kind) (Scheme, error) {
	switch kind {
	case GenAlpha:
		return new(genAlpha), nil
	case JWHAlpha:
		return new(jwhAlpha), nil
	}
	return nil, chk.Err("unknown time integration scheme kind %d", kind)
}

// NewLinearScheme returns the scheme of the given kind for linear systems
func NewLinearScheme(kind Kind) (LinearScheme, error) {
	s, err := NewScheme(kind)
	if err != nil {
		return nil, err
	}
	return s.(LinearScheme), nil
}
