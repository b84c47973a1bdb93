// Package sim's driver.go implements C8: the per-step pipeline sequencer
// and the HEV outer charge-balancing fixed-point loop, grounded on
// SimDrive.py's sim_drive and on the teacher's internal/backtest/engine.go
// (Engine.Run's sequential per-interval loop) and
// internal/strategy/oracle.go (outer iterative solver idiom).
package sim

import (
	"math"

	"vehsim/internal/cycle"
	"vehsim/internal/simerrors"
	"vehsim/internal/simlog"
	"vehsim/internal/simstate"
	"vehsim/internal/units"
	"vehsim/internal/vehicle"
)

const maxHevIterations = 30

// Result bundles one converged simulation run: the state trace, the
// vehicle/cycle it was run against, and charge-balance convergence info.
type Result struct {
	Vehicle      *vehicle.Vehicle
	Cycle        *cycle.Cycle
	State        *simstate.State
	InitSoc      float64
	Ess2FuelKwh  float64
	Converged    bool
	Iterations   int
}

// Driver sequences C4->C5->C6->C7 per step and runs the outer HEV
// charge-balance loop. Stateless; safe to reuse across runs.
type Driver struct{}

// NewDriver returns a ready-to-use Driver.
func NewDriver() *Driver { return &Driver{} }

// Run executes Driver.run(cyc, veh, initSoc?) per spec.md §4.7/§6.
// A nil initSoc selects the powertrain-type default; an out-of-range value
// is replaced by that default (InvalidInitialSoc, never fatal).
func (d *Driver) Run(c *cycle.Cycle, v *vehicle.Vehicle, initSoc *float64) (*Result, error) {
	soc0 := defaultInitSoc(v)
	if initSoc != nil {
		if *initSoc < 0 || *initSoc > 1 {
			simlog.WithField("component", "driver").Warnf(
				"initial SOC %.4f out of [0,1], substituting default %.4f", *initSoc, soc0)
		} else {
			soc0 = *initSoc
		}
	}

	if v.VehPtType != units.PtHEV {
		st, err := d.runOnce(c, v, soc0)
		if err != nil {
			return nil, err
		}
		return &Result{Vehicle: v, Cycle: c, State: st, InitSoc: soc0, Converged: true, Iterations: 1}, nil
	}

	// HEV outer charge-balance fixed-point loop (spec.md §4.7).
	cur := soc0
	var st *simstate.State
	var ess2fuel float64
	converged := false
	iterations := 0
	for iter := 0; iter < maxHevIterations; iter++ {
		iterations = iter + 1
		var err error
		st, err = d.runOnce(c, v, cur)
		if err != nil {
			return nil, err
		}
		ess2fuel = computeEss2FuelKwh(c, v, st)
		if ess2fuel <= v.EssToFuelOkError {
			converged = true
			break
		}
		cur = clamp01f(st.Soc[st.N-1])
	}
	if !converged {
		simlog.WithField("component", "driver").Warnf(
			"HEV charge-balance loop did not converge after %d iterations (ess2fuelKwh=%.6f)", iterations, ess2fuel)
	}

	// Always perform one additional final run with the converged initSoc.
	finalSt, err := d.runOnce(c, v, cur)
	if err != nil {
		return nil, err
	}
	ess2fuel = computeEss2FuelKwh(c, v, finalSt)

	res := &Result{Vehicle: v, Cycle: c, State: finalSt, InitSoc: cur, Ess2FuelKwh: ess2fuel, Converged: converged, Iterations: iterations}
	if !converged {
		return res, simerrors.New(simerrors.NonConvergence, "HEV charge-balance loop exhausted iteration budget")
	}
	return res, nil
}

// runOnce executes the full per-step pipeline for one initSoc value.
func (d *Driver) runOnce(c *cycle.Cycle, v *vehicle.Vehicle, initSoc float64) (*simstate.State, error) {
	n := c.Len()
	st := simstate.New(n)

	st.CycMet[0] = 1
	st.CurSocTarget[0] = v.MaxSoc
	st.EssCurKwh[0] = initSoc * v.MaxEssKwh
	st.Soc[0] = initSoc
	st.MpsAch[0] = c.SpeedMps[0]
	st.MphAch[0] = c.SpeedMph[0]
	st.MaxTracMps[0] = c.SpeedMps[0]

	for i := 1; i < n; i++ {
		dt := c.Dt[i]
		computeMisc(v, st, i, dt)
		computeLimits(v, st, i, dt)
		if err := computeRoadLoadAndSpeed(v, c, st, i, dt); err != nil {
			return nil, err
		}
		computeController(v, c, st, i, dt)
		computeIntegrator(v, st, i, dt)
	}
	return st, nil
}

func defaultInitSoc(v *vehicle.Vehicle) float64 {
	switch v.VehPtType {
	case units.PtCONV:
		return (v.MinSoc + v.MaxSoc) / 2 // spec.md §9: standardized, source disagreement noted
	case units.PtHEV:
		return (v.MinSoc + v.MaxSoc) / 2
	default: // PHEV, BEV
		return v.MaxSoc
	}
}

func computeEss2FuelKwh(c *cycle.Cycle, v *vehicle.Vehicle, st *simstate.State) float64 {
	n := st.N
	var fuelKj, roadwayKj float64
	for i := 1; i < n; i++ {
		fuelKj += st.FsKwOutAch[i] * c.Dt[i]
		roadwayKj += st.RoadwayChgKwOutAch[i] * c.Dt[i]
	}
	denom := fuelKj + roadwayKj
	if denom == 0 {
		return 1.0 // DESIGN.md: FASTSim's actual zero-denominator guard, not spec's 0-for-mpgge text
	}
	deltaSoc := st.Soc[0] - st.Soc[n-1]
	return math.Abs(deltaSoc * v.MaxEssKwh * 3600 / denom)
}

func clamp01f(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
