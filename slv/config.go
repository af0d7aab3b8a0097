// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import "github.com/cpmech/gosl/chk"

// Config holds all solver parameters. Zero values of optional fields are
// replaced by defaults in Validate; required fields (the time step, for the
// dynamics solvers) make Validate fail when missing.
type Config struct {

	// scheme
	Scheme Kind    // time integration scheme
	RhoInf float64 // spectral radius at infinite frequency; in [0,1]

	// time stepping
	T0    float64 // initial time
	Tend  float64 // final time
	Dt    float64 // time step (required for dynamics)
	DtOut float64 // output interval; 0 means Dt

	// Newton-Raphson
	Rtol          float64 // relative tolerance on the residual
	Atol          float64 // absolute tolerance on the residual
	NmaxIt        int     // max Newton iterations; 0 means 30 (dynamics) or 1000 (statics)
	ConvAbort     bool    // abort the whole run when a step fails to converge
	NewtonDamping float64 // scale factor on Newton corrections (statics); 0 means 1
	JacReuse      int     // refactorise the Jacobian every JacReuse-th iteration (statics); 0 means 1

	// statics load stepping
	LoadSteps int     // number of pseudo-time load steps; 0 means 10
	TStatic   float64 // pseudo-time at full load; 0 means 1

	// diagnostics
	Verbose    bool // print residuals per iteration
	WriteIter  bool // record the state of every Newton iteration
	TrackNiter bool // record (time, iterations, residual) per accepted step

	// linear solver
	LinSolName string // "umfpack" or "mumps"; "" means umfpack

	// initial conditions; nil means zero
	Q0  []float64 // initial displacements
	Dq0 []float64 // initial velocities
}

// NewConfig returns a configuration with defaults. ConvAbort defaults to true:
// failing to converge stops the run instead of silently retrying forever.
func NewConfig() *Config {
	return &Config{
		Scheme:    GenAlpha,
		RhoInf:    0.9,
		Tend:      1.0,
		Rtol:      1e-9,
		Atol:      1e-6,
		ConvAbort: true,
	}
}

// Validate checks the configuration against the system size and fills defaults.
// dynamic indicates whether a time-stepping solver will consume this config.
func (o *Config) Validate(ndofs int, dynamic bool) (err error) {
	if dynamic {
		if o.Dt <= 0 {
			return chk.Err("time step Dt must be positive; got %v", o.Dt)
		}
		if o.Tend <= o.T0 {
			return chk.Err("final time Tend=%v must be greater than initial time T0=%v", o.Tend, o.T0)
		}
	}
	if o.RhoInf < 0 || o.RhoInf > 1 {
		return chk.Err("spectral radius RhoInf must be within [0,1]; got %v", o.RhoInf)
	}
	if o.Q0 != nil && len(o.Q0) != ndofs {
		return chk.Err("initial displacements have %d entries but the system has %d dofs", len(o.Q0), ndofs)
	}
	if o.Dq0 != nil && len(o.Dq0) != ndofs {
		return chk.Err("initial velocities have %d entries but the system has %d dofs", len(o.Dq0), ndofs)
	}
	if o.DtOut <= 0 {
		o.DtOut = o.Dt
	}
	if o.NmaxIt <= 0 {
		if dynamic {
			o.NmaxIt = 30
		} else {
			o.NmaxIt = 1000
		}
	}
	if o.NewtonDamping <= 0 {
		o.NewtonDamping = 1
	}
	if o.JacReuse <= 0 {
		o.JacReuse = 1
	}
	if o.LoadSteps <= 0 {
		o.LoadSteps = 10
	}
	if o.TStatic <= 0 {
		o.TStatic = 1
	}
	return
}

// initialState builds the initial state from the configuration
func (o *Config) initialState(ndofs int, useV bool) *State {
	s := NewState(ndofs, useV)
	s.T = o.T0
	if o.Q0 != nil {
		copy(s.Q, o.Q0)
	}
	if o.Dq0 != nil {
		copy(s.Dq, o.Dq0)
		if useV {
			copy(s.V, o.Dq0)
		}
	}
	return s
}
