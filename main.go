// Copyright 2026 The Godyn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mechkit/godyn/inp"
	"github.com/mechkit/godyn/slv"
	"github.com/mechkit/godyn/sys"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	saveSummary := io.ArgToBool(3, true)

	// message
	if verbose {
		io.PfWhite("\nGodyn -- implicit time integration for structural dynamics\n")
		io.Pf("Copyright 2026 The Godyn Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
			"save summary", "saveSummary", saveSummary,
		))
	}

	// input data
	sim := inp.ReadSim(fnamepath, erasePrev)
	m, err := sim.MakeSystem()
	if err != nil {
		chk.Panic("cannot build mechanical system:\n%v", err)
	}
	cf, err := sim.MakeConfig()
	if err != nil {
		chk.Panic("cannot build solver configuration:\n%v", err)
	}

	// run simulation
	switch sim.Solver.Type {
	case "statics":
		var solver *slv.NonlinearStatics
		solver, err = slv.NewNonlinearStatics(cf, m)
		if err == nil {
			err = solver.Run()
		}
	case "linstatics":
		var solver *slv.LinearStatics
		solver, err = slv.NewLinearStatics(cf, m)
		if err == nil {
			err = solver.Run()
		}
	case "dynamics", "":
		var solver *slv.NonlinearDynamics
		solver, err = slv.NewNonlinearDynamics(cf, m)
		if err == nil {
			err = solver.Run()
		}
	case "lindynamics":
		var solver *slv.LinearDynamics
		solver, err = slv.NewLinearDynamics(cf, m)
		if err == nil {
			err = solver.Run()
		}
	default:
		chk.Panic("unknown solver type %q", sim.Solver.Type)
	}
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	// save summary
	if saveSummary {
		sum := sys.NewSummary(sim.Key, &m.Recorder)
		err = sum.Save(sim.DirOut, sim.EncType)
		if err != nil {
			chk.Panic("cannot save summary:\n%v", err)
		}
		if verbose {
			io.Pf("\nsummary saved to %s\n", sim.DirOut)
		}
	}
}
