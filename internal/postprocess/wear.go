package postprocess

import (
	"math"

	"vehsim/internal/sim"
)

// BatteryWear is the battery-wear proxy of spec.md §4.8, grounded on
// SimDrive.py's set_battery_wear (addKwh / dodCycs / essPercDeadArray via
// essLifeCoefA/essLifeCoefB).
type BatteryWear struct {
	AddKwh       float64
	DodCycs      float64
	EssPercDead  float64
}

// ComputeBatteryWear accumulates addKwh over charging intervals and derives
// depth-of-discharge cycles and the percent-dead proxy.
func ComputeBatteryWear(res *sim.Result) BatteryWear {
	st := res.State
	c := res.Cycle
	v := res.Vehicle
	n := st.N

	var addKwh float64
	for i := 1; i < n; i++ {
		if st.EssKwOutAch[i] < 0 {
			addKwh += -st.EssKwOutAch[i] * c.Dt[i] / 3600
		}
	}

	if v.MaxEssKwh == 0 {
		return BatteryWear{}
	}
	dodCycs := addKwh / v.MaxEssKwh
	essPercDead := math.Min(100, v.EssLifeCoefA*math.Pow(math.Max(dodCycs, 1e-9), v.EssLifeCoefB))
	return BatteryWear{AddKwh: addKwh, DodCycs: dodCycs, EssPercDead: essPercDead}
}
