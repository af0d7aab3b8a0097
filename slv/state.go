// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slv

import "github.com/cpmech/gosl/la"

// State holds the kinematic variables of the time integration at one instant.
// The auxiliary velocity V is carried only by schemes that integrate the
// first-order form (JWH-alpha); it is nil otherwise.
type State struct {
	T   float64   // current time
	Q   []float64 // displacements
	Dq  []float64 // velocities
	V   []float64 // auxiliary velocities or nil
	Ddq []float64 // accelerations
}

// NewState returns a new zeroed state with ndofs entries per vector
func NewState(ndofs int, useV bool) *State {
	o := &State{
		Q:   make([]float64, ndofs),
		Dq:  make([]float64, ndofs),
		Ddq: make([]float64, ndofs),
	}
	if useV {
		o.V = make([]float64, ndofs)
	}
	return o
}

// CopyFrom copies time and all vectors from another state
func (o *State) CopyFrom(s *State) {
	o.T = s.T
	la.Vector(o.Q).Apply(1, s.Q)
	la.Vector(o.Dq).Apply(1, s.Dq)
	la.Vector(o.Ddq).Apply(1, s.Ddq)
	if o.V != nil {
		la.Vector(o.V).Apply(1, s.V)
	}
}
