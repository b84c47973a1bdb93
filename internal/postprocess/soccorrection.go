package postprocess

import "vehsim/internal/sim"

// EstimateCorrectedFuelKJ is the SOC-equivalence correction entry point of
// spec.md §6 (estimate_corrected_fuel_kJ). The original FASTSim function
// body was not present in the retrieved original_source files — only its
// call-site contract (fastsim/tests/test_soc_correction.py: the correction
// should bring fuel_kJ + equivalent_fuel_kJ within 2% of the charge-balanced
// run's fuelKj across initSoc sweeps) was retrieved. Reconstructed here as
// an energy-weighted average fuel-converter efficiency applied to the net
// SOC drift; see DESIGN.md for the Open Question decision this resolves.
func EstimateCorrectedFuelKJ(res *sim.Result) float64 {
	st := res.State
	v := res.Vehicle
	n := st.N

	var fcKwOutSum, fcKwInSum float64
	for i := 1; i < n; i++ {
		fcKwOutSum += st.FcKwOutAch[i]
		fcKwInSum += st.FcKwInAch[i]
	}
	avgFcEff := 1.0
	if fcKwInSum > 0 {
		avgFcEff = fcKwOutSum / fcKwInSum
	}

	deltaSocKwh := (st.Soc[n-1] - st.Soc[0]) * v.MaxEssKwh
	return -deltaSocKwh * 3600 / avgFcEff
}
