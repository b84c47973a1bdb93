package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehsim/internal/cycle"
	"vehsim/internal/sim"
	"vehsim/internal/vehicle"
)

func runConv(t *testing.T, cycName string) *sim.Result {
	t.Helper()
	c, err := cycle.FromName(cycName)
	require.NoError(t, err)
	v, err := vehicle.FromParams(vehicle.ReferenceCONV())
	require.NoError(t, err)
	res, err := sim.NewDriver().Run(c, v, nil)
	require.NoError(t, err)
	return res
}

func runHEV(t *testing.T, cycName string) *sim.Result {
	t.Helper()
	c, err := cycle.FromName(cycName)
	require.NoError(t, err)
	v, err := vehicle.FromParams(vehicle.ReferenceHEV())
	require.NoError(t, err)
	res, err := sim.NewDriver().Run(c, v, nil)
	require.NoError(t, err)
	return res
}

func TestConvInvariants(t *testing.T) {
	res := runConv(t, "udds")
	st := res.State
	for i := 1; i < st.N; i++ {
		assert.Contains(t, []int{1, -1}, st.CycMet[i])
		assert.LessOrEqual(t, st.MpsAch[i], st.MaxTracMps[i]+1e-9)
		assert.LessOrEqual(t, st.FcKwOutAch[i], st.CurMaxFcKwOut[i]+1e-6)
		assert.GreaterOrEqual(t, st.DistMiles[i], 0.0)
	}
}

func TestHEVSocBounded(t *testing.T) {
	res := runHEV(t, "udds")
	st := res.State
	for i := 0; i < st.N; i++ {
		assert.GreaterOrEqual(t, st.Soc[i], -1e-6)
		assert.LessOrEqual(t, st.Soc[i], 1+1e-6)
	}
}

func TestHEVChargeBalanceConverges(t *testing.T) {
	res := runHEV(t, "udds")
	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Ess2FuelKwh, res.Vehicle.EssToFuelOkError+1e-6)
}

func TestMonotoneCumulativeDistance(t *testing.T) {
	res := runConv(t, "udds")
	st := res.State
	cum := 0.0
	for i := 1; i < st.N; i++ {
		cum += st.DistMiles[i]
		assert.GreaterOrEqual(t, cum, 0.0)
	}
}

func TestStopStartReducesFuel(t *testing.T) {
	c, err := cycle.FromName("udds")
	require.NoError(t, err)

	pOff := vehicle.ReferenceCONV()
	pOff.StopStart = false
	vOff, err := vehicle.FromParams(pOff)
	require.NoError(t, err)
	resOff, err := sim.NewDriver().Run(c, vOff, nil)
	require.NoError(t, err)

	pOn := vehicle.ReferenceCONV()
	pOn.StopStart = true
	vOn, err := vehicle.FromParams(pOn)
	require.NoError(t, err)
	resOn, err := sim.NewDriver().Run(c, vOn, nil)
	require.NoError(t, err)

	fuelOff := sumFsKwh(resOff)
	fuelOn := sumFsKwh(resOn)
	assert.LessOrEqual(t, fuelOn, fuelOff+1e-9)
}

func sumFsKwh(res *sim.Result) float64 {
	var total float64
	for i := 1; i < res.State.N; i++ {
		total += res.State.FsKwhOutAch[i]
	}
	return total
}

func TestCubicSolverRealRoots(t *testing.T) {
	// x^3 - 6x^2 + 11x - 6 = 0 has roots 1, 2, 3.
	roots := sim.SolveCubicRealRoots(1, -6, 11, -6)
	require.Len(t, roots, 3)
	sum := roots[0] + roots[1] + roots[2]
	assert.InDelta(t, 6.0, sum, 1e-6)
}

func TestNearestRootClamped(t *testing.T) {
	v, ok := sim.NearestRootClamped([]float64{-5, 2, 10}, 3, 8)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}
