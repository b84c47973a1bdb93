package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehsim/internal/simerrors"
	"vehsim/internal/vehicle"
)

func TestFromParamsDerivesMass(t *testing.T) {
	p := vehicle.ReferenceHEV()
	v, err := vehicle.FromParams(p)
	require.NoError(t, err)
	assert.Greater(t, v.VehKg, 0.0)
	assert.Greater(t, v.MaxTracMps2, 0.0)
	assert.Greater(t, v.MaxRegenKwh, 0.0)
	assert.Len(t, v.FcEffArray, 100)
	assert.Len(t, v.McFullEffArray, 101)
	assert.Equal(t, 0.0, v.McKwInArray[0])
}

func TestFromParamsRejectsBadSocWindow(t *testing.T) {
	p := vehicle.ReferenceHEV()
	p.MinSoc = 0.9
	p.MaxSoc = 0.5
	_, err := vehicle.FromParams(p)
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidVehicle))
}

func TestFromParamsRejectsBadPtType(t *testing.T) {
	p := vehicle.ReferenceHEV()
	p.VehPtType = 99
	_, err := vehicle.FromParams(p)
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidVehicle))
}

func TestNoElecSysForConv(t *testing.T) {
	v, err := vehicle.FromParams(vehicle.ReferenceCONV())
	require.NoError(t, err)
	assert.True(t, v.NoElecSys)
}

func TestFromID(t *testing.T) {
	src := vehicle.ReferenceSource()
	v, err := vehicle.FromID(11, src)
	require.NoError(t, err)
	assert.Equal(t, 11, v.Selection)

	_, err = vehicle.FromID(999, src)
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidVehicle))
}
