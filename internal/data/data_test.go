package data_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehsim/internal/data"
)

const sampleVehicleCSV = `Selection,Name,vehPtType,fcEffType,cargoKg,gliderKg,transKg,compMassMultiplier,fuelConvKg,essMassKg,motorKg,vehOverrideKg,dragCoef,frontalAreaM2,crr,wheelRadiusM,wheelInertiaKgM2,numWheels,axleWeightFrac,wheelBaseM,cgHeightM,mu,maxFuelConvKw,fcMaxOutKw,fuelConvSecsToPeakPwr,maxFuelStorKw,fuelStorSecsToPeakPwr,maxMotorKw,motorSecsToPeakPwr,maxEssKw,maxEssKwh,essRoundTripEff,transEff,minSoc,maxSoc,maxAccelBufferMph,maxAccelBufferPercOfUseableSoc,percHighAccBuf,mphFcOn,kwDemandFcOn,minFcTimeOn,auxKw,altEff,chgEff,essToFuelOkError,essLifeCoefA,essLifeCoefB,stopStart,forceAuxOnFC,fcAbsEffImpr
1,Test CONV,1,1,136,1300,114,1.1,120,0,0,0,0.3,2.3,0.008,0.3255,0.8,4,0.59,2.7,0.53,0.7,75,75,6,2000,1,0,4,0,0,0.97,0.92,0,1,60,20%,10%,30,100,30,0.7,1.0,0.8,0.005,110,-0.6,false,false,0
`

func TestLoadVehicleCSV(t *testing.T) {
	src, err := data.LoadVehicleCSV(strings.NewReader(sampleVehicleCSV))
	require.NoError(t, err)
	p, ok := src[1]
	require.True(t, ok)
	assert.Equal(t, "Test CONV", p.Name)
	assert.InDelta(t, 0.2, p.MaxAccelBufferPercOfUseableSoc, 1e-9)
	assert.False(t, p.StopStart)
}

const sampleCycleCSV = `cycSecs,cycMps,cycGrade,cycRoadType
0,0,0,0
1,5,0,0
2,10,0,0
`

func TestLoadCycleCSV(t *testing.T) {
	rec, err := data.LoadCycleCSV("sample", strings.NewReader(sampleCycleCSV))
	require.NoError(t, err)
	assert.Len(t, rec.TimeS, 3)
	assert.Equal(t, 10.0, rec.SpeedMps[2])
}
