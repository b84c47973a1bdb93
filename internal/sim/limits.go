package sim

import (
	"math"

	"vehsim/internal/curvefit"
	"vehsim/internal/simstate"
	"vehsim/internal/units"
	"vehsim/internal/vehicle"
)

// computeMisc is C4's first stage (set_misc_calcs): the per-step quantities
// every other component of this step depends on before any limit or power
// calc runs — aux draw, the high-accessory-load FC-on latch, the traction
// speed ceiling, and the roadway-charge cap (always zero, see below).
func computeMisc(v *vehicle.Vehicle, st *simstate.State, i int, dt float64) {
	prev := i - 1

	if v.NoElecAux {
		st.AuxInKw[i] = v.AuxKw / v.AltEff
	} else {
		st.AuxInKw[i] = v.AuxKw
	}

	st.ReachedBuff[i] = st.Soc[prev] >= v.MinSoc+v.PercHighAccBuf
	if st.Soc[prev] < v.MinSoc || (st.HighAccFcOnTag[prev] == 1 && !st.ReachedBuff[i]) {
		st.HighAccFcOnTag[i] = 1
	} else {
		st.HighAccFcOnTag[i] = 0
	}

	st.MaxTracMps[i] = st.MpsAch[prev] + v.MaxTracMps2*dt

	// No roadway-charging-station table is modeled in this port (FASTSim's
	// own MaxRoadwayChgKw table is zero-initialized absent an explicit
	// charging-infrastructure file).
	st.CurMaxRoadwayChgKw[i] = 0
}

// computeLimits is C4: dynamic per-step max/min power for FS, FC, ESS, MC,
// traction, grounded on SimDrive.py's set_comp_lims.
func computeLimits(v *vehicle.Vehicle, st *simstate.State, i int, dt float64) {
	prev := i - 1

	// Fuel storage.
	st.CurMaxFsKwOut[i] = math.Min(v.MaxFuelStorKw, st.FsKwOutAch[prev]+(v.MaxFuelStorKw/v.FuelStorSecsToPeakPwr)*dt)

	// Fuel converter, rate-limited.
	fcTransLimKw := st.FcKwOutAch[prev] + (v.MaxFuelConvKw/v.FuelConvSecsToPeakPwr)*dt
	st.CurMaxFcKwOut[i] = math.Min(math.Min(v.MaxFuelConvKw, v.FcMaxOutKw), fcTransLimKw)

	// ESS discharge cap.
	if v.MaxEssKwh == 0 || st.Soc[prev] < v.MinSoc {
		st.CurMaxEssKwOut[i] = 0
	} else {
		essCapLimDischgKw := v.MaxEssKwh * math.Sqrt(v.EssRoundTripEff) * 3600 * (st.Soc[prev] - v.MinSoc) / dt
		st.CurMaxEssKwOut[i] = math.Min(v.MaxEssKw, essCapLimDischgKw)
	}

	// ESS charge cap, symmetric.
	if v.MaxEssKwh == 0 || v.MaxEssKw == 0 {
		st.CurMaxEssChgKw[i] = 0
	} else {
		essCapLimChgKw := math.Max((v.MaxSoc-st.Soc[prev])*v.MaxEssKwh/math.Sqrt(v.EssRoundTripEff)*3600/dt, 0)
		st.CurMaxEssChgKw[i] = math.Min(essCapLimChgKw, v.MaxEssKw)
	}

	// curMaxElecKw is the raw, uncapped sum of everything that can feed the
	// electrical bus this step; curMaxAvailElecKw is that same sum capped by
	// the motor's electrical-in ceiling mcMaxElecInKw (SimDrive.py:130-142).
	// Downstream callers that need the physical motor ceiling read
	// curMaxAvailElecKw; callers that need the bus's raw capacity (the
	// all-electric feasibility check, the max-trans-out term) read
	// curMaxElecKw.
	uncapped := 0.0
	if v.FcEffType == units.FcFuelCell {
		uncapped += st.CurMaxFcKwOut[i]
	}
	uncapped += st.CurMaxEssKwOut[i] + st.CurMaxRoadwayChgKw[i]
	uncapped -= st.AuxInKw[i]
	st.CurMaxElecKw[i] = uncapped
	st.CurMaxAvailElecKw[i] = math.Min(uncapped, v.McMaxElecInKw)

	// Motor electrical-in limit via table lookup, gated on the UNCAPPED bus
	// ceiling but evaluated at the capped one (SimDrive.py:144-153).
	if st.CurMaxElecKw[i] > 0 {
		k := curvefit.SegmentIndex(v.McKwInArray, st.CurMaxAvailElecKw[i])
		st.McElecInLimKw[i] = math.Min(v.McKwOutArray[k], v.MaxMotorKw)
	} else {
		st.McElecInLimKw[i] = 0
	}

	mcTransiLimKw := math.Abs(st.McMechKwOutAch[prev]) + (v.MaxMotorKw/v.MotorSecsToPeakPwr)*dt
	stopStartFactor := 1.0
	if v.StopStart {
		stopStartFactor = 0
	}
	st.CurMaxMcKwOut[i] = math.Max(minOf3(st.McElecInLimKw[i], mcTransiLimKw, stopStartFactor*v.MaxMotorKw), -v.MaxMotorKw)

	if st.CurMaxMcKwOut[i] == 0 {
		st.CurMaxMcElecKwIn[i] = 0
	} else {
		k := curvefit.SegmentIndex(v.McKwOutArray, st.CurMaxMcKwOut[i])
		st.CurMaxMcElecKwIn[i] = st.CurMaxMcKwOut[i] / v.McFullEffArray[k]
	}

	if v.MaxMotorKw == 0 {
		st.EssLimMcRegenPercKw[i] = 0
	} else {
		st.EssLimMcRegenPercKw[i] = math.Min((st.CurMaxEssChgKw[i]+st.AuxInKw[i])/v.MaxMotorKw, 1)
	}
	if st.CurMaxEssChgKw[i] == 0 {
		st.EssLimMcRegenKw[i] = 0
	} else {
		k := curvefit.SegmentIndex(v.McKwOutArray, st.CurMaxEssChgKw[i]-st.CurMaxRoadwayChgKw[i])
		st.EssLimMcRegenKw[i] = math.Min(v.MaxMotorKw, st.CurMaxEssChgKw[i]/v.McFullEffArray[k])
	}
	st.CurMaxMechMcKwIn[i] = math.Min(st.EssLimMcRegenKw[i], v.MaxMotorKw)

	// Traction limit, kW.
	denom := 1 + v.CgHeightM*v.Mu/v.WheelBaseM
	st.CurMaxTracKw[i] = st.MaxTracMps[i] * units.Gravity * v.Mu * v.AxleWeightFrac * v.VehKg / denom / 1000

	// Max trans out.
	transOut := st.CurMaxMcKwOut[i]
	if v.FcEffType != units.FcFuelCell {
		transOut += st.CurMaxFcKwOut[i]
	}
	if v.NoElecSys || v.NoElecAux || st.HighAccFcOnTag[i] == 1 {
		transOut -= st.AuxInKw[i]
	} else {
		transOut -= math.Min(st.CurMaxElecKw[i], 0)
	}
	transOut *= v.TransEff
	cap := st.CurMaxTracKw[i] / v.TransEff
	if transOut > cap {
		transOut = cap
	}
	st.CurMaxTransKwOut[i] = transOut
}

func minOf3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func clampSigned(x, maxAbs float64) float64 {
	if x > maxAbs {
		return maxAbs
	}
	if x < -maxAbs {
		return -maxAbs
	}
	return x
}
