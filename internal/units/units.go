// Package units holds the shared physical constants and canonical
// efficiency-curve breakpoints used throughout the simulator. They are
// process-wide read-only tables, matching FASTSim's Globals module.
package units

const (
	// Gravity, m/s^2.
	Gravity = 9.80665
	// AirDensity, kg/m^3, standard sea-level dry air.
	AirDensity = 1.2
	// MphPerMps converts m/s to mph.
	MphPerMps = 2.2369363
	// MetersPerMile.
	MetersPerMile = 1609.34
	// KwhPerGGE is kWh per gallon-of-gasoline-equivalent.
	KwhPerGGE = 33.7
)

// FcEffType enumerates the canonical fuel-converter efficiency curve shape.
type FcEffType int

const (
	FcSI FcEffType = iota + 1
	FcAtkinson
	FcDiesel
	FcFuelCell
	FcHDDiesel
)

// VehPtType enumerates powertrain architectures.
type VehPtType int

const (
	PtCONV VehPtType = iota + 1
	PtHEV
	PtPHEV
	PtBEV
)

// Canonical fuel-converter efficiency curves, fraction output power (x) vs.
// efficiency (y), as used by FASTSim's vehicle.py to build a per-vehicle
// fcEffArray. Breakpoints are normalized fractions of maxFuelConvKw in [0,1].
var (
	FcPwrOutPercSI      = []float64{0, 0.005, 0.015, 0.04, 0.1, 0.2, 0.4, 0.6, 0.8, 1.0}
	FcEffMapSI          = []float64{0.10, 0.12, 0.16, 0.22, 0.28, 0.33, 0.35, 0.36, 0.35, 0.34}
	FcPwrOutPercAtkinson = []float64{0, 0.02, 0.04, 0.06, 0.08, 0.10, 0.20, 0.40, 0.60, 0.80, 1.0}
	FcEffMapAtkinson    = []float64{0.10, 0.18, 0.24, 0.28, 0.32, 0.35, 0.38, 0.39, 0.38, 0.36, 0.34}
	FcPwrOutPercDiesel  = []float64{0, 0.005, 0.015, 0.04, 0.1, 0.2, 0.4, 0.6, 0.8, 1.0}
	FcEffMapDiesel      = []float64{0.10, 0.14, 0.20, 0.26, 0.32, 0.37, 0.40, 0.42, 0.41, 0.38}
	FcPwrOutPercFC      = []float64{0, 0.02, 0.04, 0.06, 0.10, 0.20, 0.40, 0.60, 0.80, 1.0}
	FcEffMapFC          = []float64{0.30, 0.42, 0.50, 0.55, 0.58, 0.58, 0.55, 0.52, 0.48, 0.45}
	FcPwrOutPercHD      = []float64{0, 0.005, 0.015, 0.04, 0.1, 0.2, 0.4, 0.6, 0.8, 1.0}
	FcEffMapHD          = []float64{0.12, 0.18, 0.25, 0.32, 0.38, 0.42, 0.44, 0.45, 0.44, 0.42}
)

// Canonical motor efficiency curves (large and small baseline), fraction of
// peak output power (x) vs. efficiency (y). Blended per-vehicle by
// mcKwAdjPerc in vehicle construction.
var (
	McPwrOutPerc    = []float64{0, 0.02, 0.04, 0.06, 0.08, 0.10, 0.20, 0.40, 0.60, 0.80, 1.0}
	MCFullEffArray1 = []float64{0.12, 0.16, 0.20, 0.30, 0.50, 0.70, 0.85, 0.89, 0.90, 0.90, 0.89} // large baseline
	MCFullEffArray2 = []float64{0.01, 0.02, 0.05, 0.10, 0.20, 0.40, 0.70, 0.85, 0.88, 0.89, 0.89} // small baseline
)

// FixedRegenA/B are the roadway-speed regen controller gain constants,
// fixed across all vehicles per spec.md / SimDrive.py.
const (
	FixedRegenA = 500.0
	FixedRegenB = 0.99
)
