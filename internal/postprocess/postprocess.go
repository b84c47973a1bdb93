// Package postprocess implements C9: summary, energy audit, and
// battery-wear proxy, grounded on
// original_source/src/SimDrive.py's SimDrivePost (get_output,
// get_diagnostics, set_battery_wear).
package postprocess

import (
	"math"

	"vehsim/internal/cycle"
	"vehsim/internal/sim"
	"vehsim/internal/simstate"
	"vehsim/internal/units"
)

// Summary is the headline scalar output of a simulation run.
type Summary struct {
	Mpgge               float64
	MpggeElec           float64
	BatteryKwhPerMi      float64
	ElectricKwhPerMi     float64
	MaxTraceMissMph      float64
	Ess2FuelKwh          float64
	InitialSoc           float64
	FinalSoc             float64
	AvgSpeedMph          float64
	AvgAccelMphps        float64
	ZeroToSixtySecs      float64
	TotalDistanceMiles   float64
	TotalFuelKwh         float64
}

// Summarize is the postprocess.Summary() entry point of spec.md §6, named
// as a free function (rather than a sim.Result method) to avoid a
// sim<->postprocess import cycle.
func Summarize(res *sim.Result) Summary {
	st := res.State
	c := res.Cycle
	n := st.N

	var totalDistMi, totalFsKwh, essDischgKj, roadwayChgKj float64
	var maxTraceMiss float64
	var speedSum float64
	var accelSum float64
	var accelCount int

	for i := 1; i < n; i++ {
		totalDistMi += st.DistMiles[i]
		totalFsKwh += st.FsKwhOutAch[i]
		if st.EssKwOutAch[i] > 0 {
			essDischgKj += st.EssKwOutAch[i] * c.Dt[i]
		}
		roadwayChgKj += st.RoadwayChgKwOutAch[i] * c.Dt[i]

		miss := math.Abs(c.SpeedMps[i]-st.MpsAch[i]) * units.MphPerMps
		if miss > maxTraceMiss {
			maxTraceMiss = miss
		}
		speedSum += st.MphAch[i]
		dMph := st.MphAch[i] - st.MphAch[i-1]
		if dMph > 0 {
			accelSum += dMph / c.Dt[i]
			accelCount++
		}
	}

	var mpgge float64
	if totalFsKwh > 0 {
		mpgge = totalDistMi / (totalFsKwh / units.KwhPerGGE)
	}

	var batteryKwhPerMi, electricKwhPerMi float64
	if totalDistMi > 0 {
		batteryKwhPerMi = (essDischgKj / 3600) / totalDistMi
		electricKwhPerMi = (roadwayChgKj/3600 + essDischgKj/3600) / totalDistMi
	}

	mpggeElec := mpgge
	if mpgge > 0 {
		mpggeElec = 1 / (1/mpgge + electricKwhPerMi/units.KwhPerGGE)
	} else if electricKwhPerMi > 0 {
		mpggeElec = units.KwhPerGGE / electricKwhPerMi
	}

	zeroToSixty := zeroToSixtyTime(c, st)

	avgAccel := 0.0
	if accelCount > 0 {
		avgAccel = accelSum / float64(accelCount)
	}

	return Summary{
		Mpgge:              mpgge,
		MpggeElec:          mpggeElec,
		BatteryKwhPerMi:     batteryKwhPerMi,
		ElectricKwhPerMi:    electricKwhPerMi,
		MaxTraceMissMph:     maxTraceMiss,
		Ess2FuelKwh:         res.Ess2FuelKwh,
		InitialSoc:          st.Soc[0],
		FinalSoc:            st.Soc[n-1],
		AvgSpeedMph:         speedSum / float64(n-1),
		AvgAccelMphps:       avgAccel,
		ZeroToSixtySecs:     zeroToSixty,
		TotalDistanceMiles:  totalDistMi,
		TotalFuelKwh:        totalFsKwh,
	}
}

// zeroToSixtyTime linearly interpolates the time at which mphAch first
// crosses 60 mph, or 0 if never reached, per spec.md §4.8.
func zeroToSixtyTime(c *cycle.Cycle, st *simstate.State) float64 {
	const target = 60.0
	for i := 1; i < st.N; i++ {
		if st.MphAch[i] >= target {
			if st.MphAch[i] == st.MphAch[i-1] {
				return c.TimeS[i]
			}
			frac := (target - st.MphAch[i-1]) / (st.MphAch[i] - st.MphAch[i-1])
			return c.TimeS[i-1] + frac*(c.TimeS[i]-c.TimeS[i-1])
		}
	}
	return 0
}
