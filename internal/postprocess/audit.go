package postprocess

import "vehsim/internal/sim"

// SignedIntegral holds the positive and negative trapezoidal-integral
// decomposition (kJ) of one kW-named time series.
type SignedIntegral struct {
	Name         string
	PositiveKj   float64
	NegativeKj   float64
}

// EnergyAudit is the postprocess.Diagnostics() entry point of spec.md §6:
// signed positive/negative kJ integrals for every kW time series, grounded
// on SimDrive.py's regex-driven get_diagnostics (every *Kw-suffixed field is
// integrated automatically there; here the named fields are enumerated
// explicitly since Go has no attribute-name reflection idiom for this).
type EnergyAudit struct {
	Series []SignedIntegral
}

// Diagnose computes the energy audit for a completed run.
func Diagnose(res *sim.Result) EnergyAudit {
	st := res.State
	c := res.Cycle
	n := st.N

	named := []struct {
		name   string
		values []float64
	}{
		{"dragKw", st.DragKw},
		{"accelKw", st.AccelKw},
		{"ascentKw", st.AscentKw},
		{"rollingKw", st.RollingKw},
		{"tireInertiaKw", st.TireInertiaKw},
		{"transOutAchKw", st.TransOutAchKw},
		{"transInAchKw", st.TransInAchKw},
		{"mcMechKwOutAch", st.McMechKwOutAch},
		{"mcElecKwInAch", st.McElecKwInAch},
		{"essKwOutAch", st.EssKwOutAch},
		{"fcKwOutAch", st.FcKwOutAch},
		{"fcKwInAch", st.FcKwInAch},
		{"fsKwOutAch", st.FsKwOutAch},
		{"roadwayChgKwOutAch", st.RoadwayChgKwOutAch},
		{"auxInKw", st.AuxInKw},
	}

	audit := EnergyAudit{}
	for _, series := range named {
		var pos, neg float64
		for i := 1; i < n; i++ {
			// Trapezoidal integral over [t[i-1],t[i]], matching np.trapz.
			kj := 0.5 * (series.values[i-1] + series.values[i]) * c.Dt[i]
			if kj >= 0 {
				pos += kj
			} else {
				neg += kj
			}
		}
		audit.Series = append(audit.Series, SignedIntegral{Name: series.name, PositiveKj: pos, NegativeKj: neg})
	}
	return audit
}
