package cycle

import (
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"vehsim/internal/simerrors"
)

//go:embed cycles/*.csv
var standardCycles embed.FS

// FromName loads one of the standard drive cycles shipped with the module
// (udds, us06, hwfet) from an embedded resource, per spec.md §6.
func FromName(name string) (*Cycle, error) {
	lname := strings.ToLower(name)
	data, err := standardCycles.ReadFile(fmt.Sprintf("cycles/%s.csv", lname))
	if err != nil {
		return nil, simerrors.Wrap(simerrors.InvalidCycle, fmt.Sprintf("unknown standard cycle %q", name), err)
	}
	rec, err := parseCSV(lname, data)
	if err != nil {
		return nil, err
	}
	return FromRecord(rec)
}

func parseCSV(name string, data []byte) (Record, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	if err != nil {
		return Record{}, simerrors.Wrap(simerrors.InvalidCycle, "malformed cycle CSV", err)
	}
	if len(rows) < 2 {
		return Record{}, simerrors.New(simerrors.InvalidCycle, "cycle CSV has no data rows")
	}
	header := rows[0]
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"cycSecs", "cycMps", "cycGrade", "cycRoadType"}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return Record{}, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle CSV missing column %q", col))
		}
	}
	rec := Record{Name: name}
	for _, row := range rows[1:] {
		t, err1 := strconv.ParseFloat(row[idx["cycSecs"]], 64)
		v, err2 := strconv.ParseFloat(row[idx["cycMps"]], 64)
		g, err3 := strconv.ParseFloat(row[idx["cycGrade"]], 64)
		rc, err4 := strconv.ParseFloat(row[idx["cycRoadType"]], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return Record{}, simerrors.New(simerrors.InvalidCycle, "non-numeric cell in cycle CSV")
		}
		rec.TimeS = append(rec.TimeS, t)
		rec.SpeedMps = append(rec.SpeedMps, v)
		rec.Grade = append(rec.Grade, g)
		rec.RoadChg = append(rec.RoadChg, rc)
	}
	return rec, nil
}
