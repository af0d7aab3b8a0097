// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/mechkit/godyn/slv"
	"github.com/mechkit/godyn/sys"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/godyn
	Encoder string `json:"encoder"` // encoder name; "gob" or "json"
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "mumps" or "umfpack"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Ordering  string `json:"ordering"`  // ordering scheme (mumps only)
	Scaling   string `json:"scaling"`   // scaling scheme (mumps only)
}

// SolverData holds time integration and Newton-Raphson solver data
type SolverData struct {

	// solver and scheme selection
	Type   string  `json:"type"`   // solver type: statics, linstatics, dynamics, lindynamics
	Scheme string  `json:"scheme"` // time integration scheme: genalpha, jwhalpha
	RhoInf float64 `json:"rhoinf"` // spectral radius at infinite frequency

	// time stepping
	T0    float64 `json:"t0"`    // initial time
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step size
	DtOut float64 `json:"dtout"` // time step size for output

	// Newton-Raphson
	NmaxIt        int     `json:"nmaxit"`        // number of max iterations
	Atol          float64 `json:"atol"`          // absolute tolerance
	Rtol          float64 `json:"rtol"`          // relative tolerance
	ConvAbort     bool    `json:"convabort"`     // abort on convergence failure
	NewtonDamping float64 `json:"newtondamping"` // scale factor on static Newton corrections
	JacReuse      int     `json:"jacreuse"`      // refactorise Jacobian every JacReuse-th static iteration

	// statics load stepping
	LoadSteps int     `json:"loadsteps"` // number of load steps
	TStatic   float64 `json:"tstatic"`   // pseudo-time at full load

	// diagnostics
	Verbose    bool `json:"verbose"`    // show residuals
	WriteIter  bool `json:"writeiter"`  // record every Newton iteration
	TrackNiter bool `json:"trackniter"` // record per-step iteration counts

	// initial conditions
	Q0  []float64 `json:"q0"`  // initial displacements
	Dq0 []float64 `json:"dq0"` // initial velocities
}

// MatEntry holds one sparse matrix entry. Duplicates are summed on assembly.
type MatEntry struct {
	I int     `json:"i"` // row
	J int     `json:"j"` // column
	V float64 `json:"v"` // value
}

// SysData holds the definition of a linear mechanical system
type SysData struct {
	Ndofs   int         `json:"ndofs"`   // number of degrees of freedom
	M       []*MatEntry `json:"M"`       // mass matrix entries
	D       []*MatEntry `json:"D"`       // damping matrix entries (may be empty)
	K       []*MatEntry `json:"K"`       // stiffness matrix entries
	Load    []float64   `json:"load"`    // spatial load vector (may be empty)
	LoadFcn string      `json:"loadfcn"` // name of load multiplier function
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // global simulation data
	Functions FuncsData  `json:"functions"` // functions of time
	System    SysData    `json:"system"`    // mechanical system definition
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Solver    SolverData `json:"solver"`    // solver data

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	EncType string // encoder type
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/godyn/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// results
	return &o
}

// MakeSystem builds the linear mechanical system from the input data
func (o *Simulation) MakeSystem() (m *sys.Linear, err error) {
	if o.System.Ndofs < 1 {
		return nil, chk.Err("system must have at least one dof; got ndofs=%d", o.System.Ndofs)
	}
	m = sys.NewLinear(o.System.Ndofs)
	for _, e := range o.System.M {
		m.PutM(e.I, e.J, e.V)
	}
	for _, e := range o.System.D {
		m.PutD(e.I, e.J, e.V)
	}
	for _, e := range o.System.K {
		m.PutK(e.I, e.J, e.V)
	}
	if len(o.System.Load) > 0 {
		var mult dbf.T = &dbf.Cte{C: 1}
		if o.System.LoadFcn != "" {
			mult, err = o.Functions.Get(o.System.LoadFcn)
			if err != nil {
				return nil, chk.Err("cannot find load multiplier function:\n%v", err)
			}
		}
		err = m.SetLoad(o.System.Load, mult)
		if err != nil {
			return nil, err
		}
	}
	return
}

// MakeConfig builds the solver configuration from the input data
func (o *Simulation) MakeConfig() (cf *slv.Config, err error) {
	kind, err := slv.ParseKind(o.Solver.Scheme)
	if err != nil {
		return
	}
	cf = slv.NewConfig()
	cf.Scheme = kind
	cf.RhoInf = o.Solver.RhoInf
	cf.T0 = o.Solver.T0
	cf.Tend = o.Solver.Tf
	cf.Dt = o.Solver.Dt
	cf.DtOut = o.Solver.DtOut
	cf.Rtol = o.Solver.Rtol
	cf.Atol = o.Solver.Atol
	cf.NmaxIt = o.Solver.NmaxIt
	cf.ConvAbort = o.Solver.ConvAbort
	cf.NewtonDamping = o.Solver.NewtonDamping
	cf.JacReuse = o.Solver.JacReuse
	cf.LoadSteps = o.Solver.LoadSteps
	cf.TStatic = o.Solver.TStatic
	cf.Verbose = o.Solver.Verbose
	cf.WriteIter = o.Solver.WriteIter
	cf.TrackNiter = o.Solver.TrackNiter
	cf.LinSolName = o.LinSol.Name
	cf.Q0 = o.Solver.Q0
	cf.Dq0 = o.Solver.Dq0
	return
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {
	o.Type = "dynamics"
	o.Scheme = "genalpha"
	o.RhoInf = 0.9
	o.Tf = 1.0
	o.Atol = 1e-6
	o.Rtol = 1e-9
	o.ConvAbort = true
}
