// Package vehicle implements C2: the vehicle parameter bundle plus derived
// efficiency curves and mass, grounded on
// original_source/src/LoadData.py's clean_data/set_init_calcs/set_veh_mass.
package vehicle

import (
	"fmt"
	"math"

	"vehsim/internal/curvefit"
	"vehsim/internal/simerrors"
	"vehsim/internal/units"
)

// Params is the raw, caller-supplied vehicle parameter record — one row of
// a vehicle database, pre-derivation. Field names follow spec.md §3.
type Params struct {
	Selection int
	Name      string

	VehPtType units.VehPtType
	FcEffType units.FcEffType

	// Mass components, kg.
	CargoKg              float64
	GliderKg             float64
	TransKg              float64
	CompMassMultiplier   float64
	FuelConvKg           float64
	EssMassKg            float64
	MotorKg              float64
	VehOverrideKg        float64 // if > 0, overrides the computed vehKg

	// Aero/rolling/traction.
	DragCoef    float64
	FrontalAreaM2 float64
	Crr         float64
	WheelRadiusM float64
	WheelInertiaKgM2 float64
	NumWheels   int
	AxleWeightFrac float64
	WheelBaseM  float64
	CgHeightM   float64
	Mu          float64

	// Power ratings, kW.
	MaxFuelConvKw       float64
	FcMaxOutKw          float64
	FuelConvSecsToPeakPwr float64
	MaxFuelStorKw       float64
	FuelStorSecsToPeakPwr float64
	MaxMotorKw          float64
	MotorSecsToPeakPwr  float64
	MaxEssKw            float64
	MaxEssKwh           float64
	EssRoundTripEff     float64
	TransEff            float64

	// SOC window & buffers.
	MinSoc                         float64
	MaxSoc                         float64
	MaxAccelBufferMph              float64
	MaxAccelBufferPercOfUseableSoc float64
	PercHighAccBuf                 float64

	// Engine-on thresholds.
	MphFcOn     float64
	KwDemandFcOn float64
	MinFcTimeOn float64

	// Aux / charging.
	AuxKw            float64
	AltEff           float64
	ChgEff           float64
	EssToFuelOkError float64

	// Regen control.
	MaxRegen float64 // fractional regen-braking cap, distinct from the derived MaxRegenKwh energy buffer

	// ESS dispatch targets toward max-FC-efficiency operation. Default to
	// 1.0 (no scaling) when a source leaves them unset.
	EssDischgToFcMaxEffPerc float64
	EssChgToFcMaxEffPerc    float64

	// Battery-wear coefficients.
	EssLifeCoefA float64
	EssLifeCoefB float64

	StopStart    bool
	ForceAuxOnFC bool

	FcAbsEffImpr float64
}

// Vehicle is the immutable, fully-derived parameter bundle used by the
// simulation. Built once by FromParams/FromID.
type Vehicle struct {
	Params

	VehKg      float64
	MaxTracMps2 float64
	MaxRegenKwh float64

	FcKwOutArray []float64
	FcEffArray   []float64
	McKwOutArray  []float64
	McFullEffArray []float64
	McKwInArray   []float64

	NoElecSys bool
	NoElecAux bool

	RegenA float64
	RegenB float64

	// MaxFcEffKw is the output power at which FcEffArray peaks, used by the
	// controller's max-FC-efficiency motor-demand lookup (spec.md §4.5 step 6).
	MaxFcEffKw float64
	// MotorPeakEff is max(McFullEffArray), used in the regen-buffer target.
	MotorPeakEff float64
	// McMaxElecInKw is max(McKwInArray), the motor's electrical-in ceiling
	// independent of its mechanical rating (LoadData.py's mcMaxElecInKw).
	McMaxElecInKw float64
	// IdleFcKw is the engine's idle fuel-power draw used by the FC
	// forced-on state machine. Not a retrievable source column in this
	// pack's original_source files; reconstructed as 2% of fcMaxOutKw
	// (0 when maxFuelConvKw is 0).
	IdleFcKw float64
}

// FromParams validates p and builds the derived Vehicle, per spec.md §4.2.
func FromParams(p Params) (*Vehicle, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	v := &Vehicle{Params: p}
	v.deriveMass()
	v.deriveTraction()
	v.deriveEfficiencyCurves()
	v.NoElecSys = v.MaxEssKwh == 0 || v.MaxEssKw == 0 || v.MaxMotorKw == 0
	v.NoElecAux = v.NoElecSys || v.MaxMotorKw <= v.AuxKw || v.ForceAuxOnFC
	v.RegenA = units.FixedRegenA
	v.RegenB = units.FixedRegenB
	if v.EssDischgToFcMaxEffPerc == 0 {
		v.EssDischgToFcMaxEffPerc = 1.0
	}
	if v.EssChgToFcMaxEffPerc == 0 {
		v.EssChgToFcMaxEffPerc = 1.0
	}
	return v, nil
}

func validate(p Params) error {
	if p.VehPtType < units.PtCONV || p.VehPtType > units.PtBEV {
		return simerrors.New(simerrors.InvalidVehicle, fmt.Sprintf("unsupported vehPtType %d", p.VehPtType))
	}
	if p.FcEffType < units.FcSI || p.FcEffType > units.FcHDDiesel {
		return simerrors.New(simerrors.InvalidVehicle, fmt.Sprintf("unsupported fcEffType %d", p.FcEffType))
	}
	if p.MinSoc < 0 || p.MaxSoc > 1 || p.MinSoc >= p.MaxSoc {
		return simerrors.New(simerrors.InvalidVehicle, fmt.Sprintf("malformed SOC window [%v,%v]", p.MinSoc, p.MaxSoc))
	}
	negFields := map[string]float64{
		"cargoKg": p.CargoKg, "gliderKg": p.GliderKg, "transKg": p.TransKg,
		"fuelConvKg": p.FuelConvKg, "essMassKg": p.EssMassKg, "motorKg": p.MotorKg,
		"wheelRadiusM": p.WheelRadiusM, "maxEssKwh": p.MaxEssKwh,
	}
	for name, val := range negFields {
		if val < 0 {
			return simerrors.New(simerrors.InvalidVehicle, fmt.Sprintf("negative field %s=%v", name, val))
		}
	}
	if p.WheelRadiusM <= 0 {
		return simerrors.New(simerrors.InvalidVehicle, "wheelRadiusM must be positive")
	}
	if p.EssRoundTripEff < 0 || p.EssRoundTripEff > 1 {
		return simerrors.New(simerrors.InvalidVehicle, "essRoundTripEff must be in [0,1]")
	}
	return nil
}

func (v *Vehicle) deriveMass() {
	if v.VehOverrideKg > 0 {
		v.VehKg = v.VehOverrideKg
		return
	}
	compMass := (v.FuelConvKg + v.EssMassKg + v.MotorKg) * v.CompMassMultiplier
	v.VehKg = v.CargoKg + v.GliderKg + v.TransKg + compMass
}

func (v *Vehicle) deriveTraction() {
	denom := 1 + v.CgHeightM*v.Mu/v.WheelBaseM
	v.MaxTracMps2 = units.Gravity * v.Mu * v.AxleWeightFrac / denom
	v.MaxRegenKwh = 0.5 * v.VehKg * 27 * 27 / (3600 * 1000)
}

func (v *Vehicle) deriveEfficiencyCurves() {
	// Fuel converter: 100-bin uniform grid over [0, maxFuelConvKw].
	const fcBins = 100
	v.FcKwOutArray = curvefit.Linspace(0, v.MaxFuelConvKw, fcBins)
	percGrid := make([]float64, fcBins)
	if v.MaxFuelConvKw > 0 {
		for i, kw := range v.FcKwOutArray {
			percGrid[i] = kw / v.MaxFuelConvKw
		}
	}
	var xs, ys []float64
	switch v.FcEffType {
	case units.FcSI:
		xs, ys = units.FcPwrOutPercSI, units.FcEffMapSI
	case units.FcAtkinson:
		xs, ys = units.FcPwrOutPercAtkinson, units.FcEffMapAtkinson
	case units.FcDiesel:
		xs, ys = units.FcPwrOutPercDiesel, units.FcEffMapDiesel
	case units.FcFuelCell:
		xs, ys = units.FcPwrOutPercFC, units.FcEffMapFC
	default:
		xs, ys = units.FcPwrOutPercHD, units.FcEffMapHD
	}
	v.FcEffArray = curvefit.Resample(xs, ys, percGrid)
	for i := range v.FcEffArray {
		v.FcEffArray[i] += v.FcAbsEffImpr
	}
	maxEffIdx := 0
	for i, e := range v.FcEffArray {
		if e > v.FcEffArray[maxEffIdx] {
			maxEffIdx = i
		}
	}
	v.MaxFcEffKw = v.FcKwOutArray[maxEffIdx]

	// Motor: 101-bin uniform grid over [0, maxMotorKw].
	const mcBins = 101
	v.McKwOutArray = curvefit.Linspace(0, v.MaxMotorKw, mcBins)
	mcPercGrid := make([]float64, mcBins)
	if v.MaxMotorKw > 0 {
		for i, kw := range v.McKwOutArray {
			mcPercGrid[i] = kw / v.MaxMotorKw
		}
	}
	mcAdjPerc := clamp((v.MaxMotorKw-7.5)/67.5, 0, 1)
	large := curvefit.Resample(units.McPwrOutPerc, units.MCFullEffArray1, mcPercGrid)
	small := curvefit.Resample(units.McPwrOutPerc, units.MCFullEffArray2, mcPercGrid)
	v.McFullEffArray = make([]float64, mcBins)
	for i := range v.McFullEffArray {
		v.McFullEffArray[i] = mcAdjPerc*large[i] + (1-mcAdjPerc)*small[i]
	}
	v.McKwInArray = make([]float64, mcBins)
	for i := 1; i < mcBins; i++ {
		if v.McFullEffArray[i] > 0 {
			v.McKwInArray[i] = v.McKwOutArray[i] / v.McFullEffArray[i]
		}
	}
	v.McKwInArray[0] = 0

	peak := 0.0
	for _, e := range v.McFullEffArray {
		if e > peak {
			peak = e
		}
	}
	v.MotorPeakEff = peak

	maxElecIn := 0.0
	for _, kw := range v.McKwInArray {
		if kw > maxElecIn {
			maxElecIn = kw
		}
	}
	v.McMaxElecInKw = maxElecIn

	if v.MaxFuelConvKw > 0 {
		v.IdleFcKw = 0.02 * v.FcMaxOutKw
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
