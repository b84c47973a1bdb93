// Package data implements the ambient CSV ingestion for vehicle and cycle
// databases named in spec.md §6, grounded on the teacher's
// internal/backtest/csv.go (encoding/csv writer idiom, mirrored into a
// reader here).
package data

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"vehsim/internal/simerrors"
	"vehsim/internal/units"
	"vehsim/internal/vehicle"
)

// LoadVehicleCSV reads a vehicle database: one row per vehicle keyed by an
// integer Selection column. Cell sanitization per spec.md §6: trailing '%'
// divides by 100; case-insensitive true/false parses as bool; otherwise
// float; otherwise left as string (stored via Cell.Raw for callers that
// need it; FromParams only consumes the typed numeric/bool fields). Column
// names are normalized by replacing spaces with underscores.
func LoadVehicleCSV(r io.Reader) (vehicle.Source, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, simerrors.Wrap(simerrors.InvalidVehicle, "malformed vehicle CSV", err)
	}
	if len(rows) < 2 {
		return nil, simerrors.New(simerrors.InvalidVehicle, "vehicle CSV has no data rows")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ReplaceAll(strings.TrimSpace(h), " ", "_")
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[h] = i
	}

	source := vehicle.Source{}
	for _, row := range rows[1:] {
		cells := make(map[string]Cell, len(header))
		for i, col := range header {
			if i >= len(row) {
				continue
			}
			cells[col] = sanitizeCell(row[i])
		}
		sel, ok := cells["Selection"]
		if !ok {
			return nil, simerrors.New(simerrors.InvalidVehicle, "vehicle CSV missing Selection column")
		}
		selID := int(sel.Number)

		p := vehicle.Params{
			Selection:                      selID,
			Name:                            cells["Name"].Raw,
			VehPtType:                      units.VehPtType(int(cells["vehPtType"].Number)),
			FcEffType:                      units.FcEffType(int(cells["fcEffType"].Number)),
			CargoKg:                        cells["cargoKg"].Number,
			GliderKg:                       cells["gliderKg"].Number,
			TransKg:                        cells["transKg"].Number,
			CompMassMultiplier:             cells["compMassMultiplier"].Number,
			FuelConvKg:                     cells["fuelConvKg"].Number,
			EssMassKg:                      cells["essMassKg"].Number,
			MotorKg:                        cells["motorKg"].Number,
			VehOverrideKg:                  cells["vehOverrideKg"].Number,
			DragCoef:                       cells["dragCoef"].Number,
			FrontalAreaM2:                  cells["frontalAreaM2"].Number,
			Crr:                            cells["crr"].Number,
			WheelRadiusM:                   cells["wheelRadiusM"].Number,
			WheelInertiaKgM2:               cells["wheelInertiaKgM2"].Number,
			NumWheels:                      int(cells["numWheels"].Number),
			AxleWeightFrac:                 cells["axleWeightFrac"].Number,
			WheelBaseM:                     cells["wheelBaseM"].Number,
			CgHeightM:                      cells["cgHeightM"].Number,
			Mu:                             cells["mu"].Number,
			MaxFuelConvKw:                  cells["maxFuelConvKw"].Number,
			FcMaxOutKw:                     cells["fcMaxOutKw"].Number,
			FuelConvSecsToPeakPwr:          cells["fuelConvSecsToPeakPwr"].Number,
			MaxFuelStorKw:                  cells["maxFuelStorKw"].Number,
			FuelStorSecsToPeakPwr:          cells["fuelStorSecsToPeakPwr"].Number,
			MaxMotorKw:                     cells["maxMotorKw"].Number,
			MotorSecsToPeakPwr:             cells["motorSecsToPeakPwr"].Number,
			MaxEssKw:                       cells["maxEssKw"].Number,
			MaxEssKwh:                      cells["maxEssKwh"].Number,
			EssRoundTripEff:                cells["essRoundTripEff"].Number,
			TransEff:                       cells["transEff"].Number,
			MinSoc:                         cells["minSoc"].Number,
			MaxSoc:                         cells["maxSoc"].Number,
			MaxAccelBufferMph:              cells["maxAccelBufferMph"].Number,
			MaxAccelBufferPercOfUseableSoc: cells["maxAccelBufferPercOfUseableSoc"].Number,
			PercHighAccBuf:                 cells["percHighAccBuf"].Number,
			MphFcOn:                        cells["mphFcOn"].Number,
			KwDemandFcOn:                   cells["kwDemandFcOn"].Number,
			MinFcTimeOn:                    cells["minFcTimeOn"].Number,
			AuxKw:                          cells["auxKw"].Number,
			AltEff:                         cells["altEff"].Number,
			ChgEff:                         cells["chgEff"].Number,
			EssToFuelOkError:               cells["essToFuelOkError"].Number,
			EssLifeCoefA:                   cells["essLifeCoefA"].Number,
			EssLifeCoefB:                   cells["essLifeCoefB"].Number,
			StopStart:                      cells["stopStart"].Bool,
			ForceAuxOnFC:                   cells["forceAuxOnFC"].Bool,
			FcAbsEffImpr:                   cells["fcAbsEffImpr"].Number,
			MaxRegen:                       cells["maxRegen"].Number,
			EssDischgToFcMaxEffPerc:        cells["essDischgToFcMaxEffPerc"].Number,
			EssChgToFcMaxEffPerc:           cells["essChgToFcMaxEffPerc"].Number,
		}
		source[selID] = p
	}
	return source, nil
}

// Cell is a sanitized CSV cell, per spec.md §6's cell sanitization rules.
type Cell struct {
	Raw    string
	Number float64
	Bool   bool
	IsBool bool
}

func sanitizeCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err == nil {
			return Cell{Raw: raw, Number: v / 100}
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return Cell{Raw: raw, Bool: true, IsBool: true, Number: 1}
	case "false":
		return Cell{Raw: raw, Bool: false, IsBool: true, Number: 0}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Raw: raw, Number: v}
	}
	return Cell{Raw: raw}
}
