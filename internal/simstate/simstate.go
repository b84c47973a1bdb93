// Package simstate implements C3: the per-step scratch arrays, one owned
// struct-of-arrays value replacing FASTSim's name-bound numpy-array
// attribute injection (SimDrive.py's SimDriveClassic.__init__), per
// spec.md §9.
package simstate

// State holds every N-length parallel array the step pipeline reads and
// writes. Index 0 carries initial conditions and is never recomputed by the
// step loop.
type State struct {
	N int

	// Achieved kinematics.
	MpsAch      []float64
	MphAch      []float64
	DistMeters  []float64
	DistMiles   []float64

	// Demand-side kW.
	DragKw        []float64
	AccelKw       []float64
	AscentKw      []float64
	RollingKw     []float64
	TireInertiaKw []float64
	WheelReqKw    []float64
	TransOutReqKw []float64
	TransInAchKw  []float64
	TransOutAchKw []float64

	CycMet []int // +1 or -1

	// Dynamic limits (C4 outputs).
	CurMaxFsKwOut  []float64
	CurMaxFcKwOut  []float64
	CurMaxEssKwOut []float64
	CurMaxEssChgKw []float64
	CurMaxAvailElecKw []float64
	CurMaxElecKw   []float64
	CurMaxMcKwOut  []float64
	CurMaxMcElecKwIn []float64
	McElecInLimKw  []float64
	EssLimMcRegenPercKw []float64
	EssLimMcRegenKw     []float64
	CurMaxMechMcKwIn []float64
	CurMaxTracKw   []float64
	CurMaxTransKwOut []float64
	CurMaxRoadwayChgKw []float64

	// Controller intermediates (C6).
	AccelBufferSoc           []float64
	RegenBufferSoc           []float64
	EssRegenBufferDischgKw   []float64
	MaxEssRegenBufferChgKw   []float64
	EssAccelBufferChgKw      []float64
	MaxEssAccelBufferDischgKw []float64
	EssAccelRegenDischgKw    []float64
	McElectInKwForMaxFcEff   []float64
	ElectKwReq4AE            []float64
	CanPowerAllElectrically  []bool
	DesiredEssKwOutForAE     []float64
	EssAEKwOut               []float64
	ErAEKwOut                []float64
	MinMcKw2HelpFc           []float64
	FcKwGapFrEff             []float64
	EssDesiredKw4FcEff       []float64
	EssKwIfFcIsReq           []float64
	ErKwIfFcIsReq            []float64
	McElecKwInIfFcIsReq      []float64
	McKwIfFcIsReq            []float64
	FcForcedState            []int
	FcForcedOn               []bool
	McMechKw4ForcedFc        []float64
	MinEssKw2HelpFc          []float64

	McMechKwOutAch []float64
	McElecKwInAch  []float64
	RoadwayChgKwOutAch []float64
	EssKwOutAch    []float64
	FcKwOutAch     []float64
	FcKwInAch      []float64
	FsKwOutAch     []float64
	FsKwhOutAch    []float64

	EssCurKwh      []float64
	Soc            []float64
	FcTimeOn       []float64
	PrevFcTimeOn   []float64
	HighAccFcOnTag []int
	ReachedBuff    []bool
	MaxTracMps     []float64
	AuxInKw        []float64
	CurSocTarget   []float64
}

// New allocates a zero-valued State sized for n time steps.
func New(n int) *State {
	f := func() []float64 { return make([]float64, n) }
	i := func() []int { return make([]int, n) }
	b := func() []bool { return make([]bool, n) }
	return &State{
		N: n,
		MpsAch: f(), MphAch: f(), DistMeters: f(), DistMiles: f(),
		DragKw: f(), AccelKw: f(), AscentKw: f(), RollingKw: f(), TireInertiaKw: f(),
		WheelReqKw: f(), TransOutReqKw: f(), TransInAchKw: f(), TransOutAchKw: f(),
		CycMet: i(),
		CurMaxFsKwOut: f(), CurMaxFcKwOut: f(), CurMaxEssKwOut: f(), CurMaxEssChgKw: f(),
		CurMaxAvailElecKw: f(), CurMaxElecKw: f(), CurMaxMcKwOut: f(), CurMaxMcElecKwIn: f(),
		McElecInLimKw: f(), EssLimMcRegenPercKw: f(), EssLimMcRegenKw: f(),
		CurMaxMechMcKwIn: f(),
		CurMaxTracKw: f(), CurMaxTransKwOut: f(), CurMaxRoadwayChgKw: f(),
		AccelBufferSoc: f(), RegenBufferSoc: f(), EssRegenBufferDischgKw: f(),
		MaxEssRegenBufferChgKw: f(), EssAccelBufferChgKw: f(), MaxEssAccelBufferDischgKw: f(),
		EssAccelRegenDischgKw: f(), McElectInKwForMaxFcEff: f(), ElectKwReq4AE: f(),
		CanPowerAllElectrically: b(), DesiredEssKwOutForAE: f(), EssAEKwOut: f(), ErAEKwOut: f(),
		MinMcKw2HelpFc: f(), FcKwGapFrEff: f(),
		EssDesiredKw4FcEff: f(), EssKwIfFcIsReq: f(), ErKwIfFcIsReq: f(), McElecKwInIfFcIsReq: f(),
		McKwIfFcIsReq: f(), FcForcedState: i(), FcForcedOn: b(),
		McMechKw4ForcedFc: f(), MinEssKw2HelpFc: f(),
		McMechKwOutAch: f(), McElecKwInAch: f(), RoadwayChgKwOutAch: f(), EssKwOutAch: f(),
		FcKwOutAch: f(), FcKwInAch: f(), FsKwOutAch: f(), FsKwhOutAch: f(),
		EssCurKwh: f(), Soc: f(), FcTimeOn: f(), PrevFcTimeOn: f(), HighAccFcOnTag: i(),
		ReachedBuff: b(), MaxTracMps: f(), AuxInKw: f(), CurSocTarget: f(),
	}
}
