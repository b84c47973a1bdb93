package sim

import (
	"math"

	"vehsim/internal/simstate"
	"vehsim/internal/units"
	"vehsim/internal/vehicle"
)

// computeIntegrator is C7: updates ESS kWh, SOC, the engine-on timer, and
// distance, grounded on SimDrive.py's per-step state update following
// set_hybrid_cont_calcs.
func computeIntegrator(v *vehicle.Vehicle, st *simstate.State, i int, dt float64) {
	prev := i - 1

	eta := 1.0
	if v.EssRoundTripEff > 0 {
		if st.EssKwOutAch[i] < 0 {
			// Charging: round-trip loss pulls more out of the available
			// bus power than lands in the pack.
			eta = math.Sqrt(v.EssRoundTripEff)
		} else {
			// Discharging: round-trip loss removes more from the pack than
			// it delivers to the bus.
			eta = 1 / math.Sqrt(v.EssRoundTripEff)
		}
	}
	st.EssCurKwh[i] = st.EssCurKwh[prev] - st.EssKwOutAch[i]*(dt/3600)*eta

	if v.MaxEssKwh == 0 {
		st.Soc[i] = 0
	} else {
		st.Soc[i] = st.EssCurKwh[i] / v.MaxEssKwh
	}

	st.FsKwhOutAch[i] = st.FsKwOutAch[i] * (dt / 3600)

	electricOnly := st.FcKwOutAch[i] == 0 && st.FsKwOutAch[i] == 0
	if electricOnly {
		st.FcTimeOn[i] = 0
	} else {
		st.FcTimeOn[i] = st.FcTimeOn[prev] + dt
	}

	st.MphAch[i] = st.MpsAch[i] * units.MphPerMps
	st.DistMeters[i] = st.MpsAch[i] * dt
	st.DistMiles[i] = st.DistMeters[i] / units.MetersPerMile
}
