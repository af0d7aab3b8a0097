// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import "github.com/cpmech/gosl/chk"

// GenAlphaCoefs holds the generalized-alpha coefficients parametrised by the
// spectral radius at infinite frequency. rho==1 recovers the trapezoidal rule
// (no numerical damping); rho==0 annihilates the highest frequency in one step.
type GenAlphaCoefs struct {
	Am    float64 // alpha_m
	Af    float64 // alpha_f
	Beta  float64 // beta
	Gamma float64 // gamma
}

// Calc computes the coefficients from the spectral radius
func (o *GenAlphaCoefs) Calc(rho float64) (err error) {
	if rho < 0 || rho > 1 {
		return chk.Err("spectral radius must be within [0,1]; got %v", rho)
	}
	o.Am = (2.0*rho - 1.0) / (rho + 1.0)
	o.Af = rho / (rho + 1.0)
	o.Beta = 0.25 * (1.0 - o.Am + o.Af) * (1.0 - o.Am + o.Af)
	o.Gamma = 0.5 - o.Am + o.Af
	return
}

// JWHAlphaCoefs holds the coefficients of the JWH-alpha scheme, the
// generalized-alpha variant for the first-order (velocity) form.
type JWHAlphaCoefs struct {
	Am    float64 // alpha_m
	Af    float64 // alpha_f
	Gamma float64 // gamma
}

// Calc computes the coefficients from the spectral radius
func (o *JWHAlphaCoefs) Calc(rho float64) (err error) {
	if rho < 0 || rho > 1 {
		return chk.Err("spectral radius must be within [0,1]; got %v", rho)
	}
	o.Am = (3.0 - rho) / (2.0 * (1.0 + rho))
	o.Af = 1.0 / (1.0 + rho)
	o.Gamma = 0.5 + o.Am - o.Af
	return
}
