package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vehsim/internal/cycle"
	"vehsim/internal/simerrors"
)

// LoadCycleCSV reads an arbitrary drive-cycle CSV with columns cycSecs,
// cycMps, cycGrade, cycRoadType, per spec.md §6.
func LoadCycleCSV(name string, r io.Reader) (cycle.Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return cycle.Record{}, simerrors.Wrap(simerrors.InvalidCycle, "malformed cycle CSV", err)
	}
	if len(rows) < 2 {
		return cycle.Record{}, simerrors.New(simerrors.InvalidCycle, "cycle CSV has no data rows")
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{"cycSecs", "cycMps", "cycGrade", "cycRoadType"} {
		if _, ok := idx[col]; !ok {
			return cycle.Record{}, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle CSV missing column %q", col))
		}
	}
	rec := cycle.Record{Name: name}
	for _, row := range rows[1:] {
		t, e1 := strconv.ParseFloat(row[idx["cycSecs"]], 64)
		v, e2 := strconv.ParseFloat(row[idx["cycMps"]], 64)
		g, e3 := strconv.ParseFloat(row[idx["cycGrade"]], 64)
		rc, e4 := strconv.ParseFloat(row[idx["cycRoadType"]], 64)
		if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
			return cycle.Record{}, simerrors.New(simerrors.InvalidCycle, "non-numeric cell in cycle CSV")
		}
		rec.TimeS = append(rec.TimeS, t)
		rec.SpeedMps = append(rec.SpeedMps, v)
		rec.Grade = append(rec.Grade, g)
		rec.RoadChg = append(rec.RoadChg, rc)
	}
	return rec, nil
}
