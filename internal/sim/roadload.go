package sim

import (
	"fmt"
	"math"

	"vehsim/internal/cycle"
	"vehsim/internal/simerrors"
	"vehsim/internal/simstate"
	"vehsim/internal/units"
	"vehsim/internal/vehicle"
)

// computeRoadLoadAndSpeed is C5: drag/rolling/ascent/inertia power demand
// and the achieved-speed solve, grounded on SimDrive.py's set_power_calcs /
// set_ach_speed.
func computeRoadLoadAndSpeed(v *vehicle.Vehicle, c *cycle.Cycle, st *simstate.State, i int, dt float64) error {
	prev := i - 1
	vTarget := c.SpeedMps[i]
	vPrev := st.MpsAch[prev]
	vAvg := (vPrev + vTarget) / 2

	// MaxTracMps[i] is set by computeMisc, which runs before this step.

	drag := 0.5 * units.AirDensity * v.DragCoef * v.FrontalAreaM2 * vAvg * vAvg * vAvg / 1000
	accel := v.VehKg / (2 * dt) * (vTarget*vTarget - vPrev*vPrev) / 1000
	grade := c.Grade[i]
	ascent := units.Gravity * math.Sin(math.Atan(grade)) * v.VehKg * vAvg / 1000
	rolling := units.Gravity * v.Crr * v.VehKg * vAvg / 1000

	omega := vTarget / v.WheelRadiusM
	omegaPrev := vPrev / v.WheelRadiusM
	tireInertia := 0.5 * v.WheelInertiaKgM2 * float64(v.NumWheels) * (omega*omega - omegaPrev*omegaPrev) / (dt * 1000)

	st.DragKw[i] = drag
	st.AccelKw[i] = accel
	st.AscentKw[i] = ascent
	st.RollingKw[i] = rolling
	st.TireInertiaKw[i] = tireInertia

	tracReq := drag + accel + ascent
	wheelReq := tracReq + rolling + tireInertia
	st.WheelReqKw[i] = wheelReq

	vMphAvg := vAvg * units.MphPerMps
	regenContrLimKwPerc := v.MaxRegen / (1 + v.RegenA*math.Exp(-v.RegenB*(vMphAvg+1)))
	regenBrake := math.Max(0, math.Min(st.CurMaxMechMcKwIn[i]*v.TransEff, regenContrLimKwPerc*(-wheelReq)))
	frictionBrake := -math.Min(regenBrake+wheelReq, 0)

	transOutReq := wheelReq + frictionBrake
	st.TransOutReqKw[i] = transOutReq

	if transOutReq <= st.CurMaxTransKwOut[i] {
		st.CycMet[i] = 1
		st.TransOutAchKw[i] = transOutReq
		st.MpsAch[i] = vTarget
		return nil
	}

	st.CycMet[i] = -1
	st.TransOutAchKw[i] = st.CurMaxTransKwOut[i]

	// Speed solve: balance curMaxTransKwOut against the same physics, cubic
	// in the achieved speed v. drag uses vAvg^3 = ((vPrev+v)/2)^3, which is
	// cubic in v; accel and tireInertia are quadratic in v (v^2 terms);
	// ascent and rolling are linear in vAvg, hence linear in v. Expanding
	// each against the binomial (vPrev+v)^3 and collecting by power of v
	// gives a3 v^3 + a2 v^2 + a1 v + a0 = 0.
	k1 := 0.5 * units.AirDensity * v.DragCoef * v.FrontalAreaM2 / 1000 / 8
	c2 := v.VehKg / (2 * dt * 1000)
	c3 := units.Gravity * math.Sin(math.Atan(grade)) * v.VehKg / (2 * 1000)
	c4 := units.Gravity * v.Crr * v.VehKg / (2 * 1000)
	c5 := 0.5 * v.WheelInertiaKgM2 * float64(v.NumWheels) / (v.WheelRadiusM * v.WheelRadiusM * dt * 1000)

	a3 := k1
	a2 := 3*k1*vPrev + c2 + c5
	a1 := 3*k1*vPrev*vPrev + c3 + c4
	a0 := k1*vPrev*vPrev*vPrev - c2*vPrev*vPrev + c3*vPrev + c4*vPrev - c5*vPrev*vPrev - st.CurMaxTransKwOut[i]

	roots := SolveCubicRealRoots(a3, a2, a1, a0)
	speed, ok := NearestRootClamped(roots, vTarget, st.MaxTracMps[i])
	if !ok {
		return simerrors.New(simerrors.NumericFailure, fmt.Sprintf("cubic speed solve found no finite root at step %d", i))
	}
	st.MpsAch[i] = speed
	return nil
}
