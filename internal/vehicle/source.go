package vehicle

import (
	"fmt"

	"vehsim/internal/simerrors"
)

// Source is a vehicle database keyed by Selection id, per spec.md §6.
type Source map[int]Params

// FromID looks up a vehicle by Selection id and derives it, per spec.md §6's
// Vehicle.from_id(n) entry point.
func FromID(id int, source Source) (*Vehicle, error) {
	p, ok := source[id]
	if !ok {
		return nil, simerrors.New(simerrors.InvalidVehicle, fmt.Sprintf("no vehicle with selection id %d", id))
	}
	return FromParams(p)
}

// ReferenceHEV is the module's bundled reference Toyota-Highlander-Hybrid-
// like vehicle (selection 11), used by the SOC-equivalence correction law
// test (spec.md §8) and as a concrete in-repo regression fixture.
func ReferenceHEV() Params {
	return Params{
		Selection:    11,
		Name:         "Reference HEV",
		VehPtType:    2, // HEV
		FcEffType:    1, // SI
		CargoKg:      136,
		GliderKg:     1300,
		TransKg:      114,
		CompMassMultiplier: 1.1,
		FuelConvKg:   120,
		EssMassKg:    80,
		MotorKg:      60,
		DragCoef:     0.3,
		FrontalAreaM2: 2.3,
		Crr:          0.008,
		WheelRadiusM: 0.3255,
		WheelInertiaKgM2: 0.8,
		NumWheels:    4,
		AxleWeightFrac: 0.59,
		WheelBaseM:   2.7,
		CgHeightM:    0.53,
		Mu:           0.7,
		MaxFuelConvKw: 75,
		FcMaxOutKw:   75,
		FuelConvSecsToPeakPwr: 6,
		MaxFuelStorKw: 2000,
		FuelStorSecsToPeakPwr: 1,
		MaxMotorKw:   60,
		MotorSecsToPeakPwr: 4,
		MaxEssKw:     40,
		MaxEssKwh:    1.5,
		EssRoundTripEff: 0.97,
		TransEff:     0.92,
		MinSoc:       0.4,
		MaxSoc:       0.8,
		MaxAccelBufferMph: 60,
		MaxAccelBufferPercOfUseableSoc: 0.2,
		PercHighAccBuf: 0.1,
		MphFcOn:      30,
		KwDemandFcOn: 100,
		MinFcTimeOn:  30,
		AuxKw:        0.7,
		AltEff:       1.0,
		ChgEff:       0.8,
		EssToFuelOkError: 0.005,
		EssLifeCoefA: 110.0,
		EssLifeCoefB: -0.6,
		StopStart:    false,
		ForceAuxOnFC: false,
		MaxRegen:     0.98,
		EssDischgToFcMaxEffPerc: 1.0,
		EssChgToFcMaxEffPerc:    1.0,
	}
}

// ReferenceCONV is the module's bundled reference conventional vehicle.
func ReferenceCONV() Params {
	p := ReferenceHEV()
	p.Selection = 1
	p.Name = "Reference CONV"
	p.VehPtType = 1
	p.MaxMotorKw = 0
	p.MaxEssKw = 0
	p.MaxEssKwh = 0
	p.MinSoc = 0
	p.MaxSoc = 1
	return p
}

// ReferenceSource bundles the two reference vehicles keyed by Selection.
func ReferenceSource() Source {
	return Source{
		1:  ReferenceCONV(),
		11: ReferenceHEV(),
	}
}
