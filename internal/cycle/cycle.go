// Package cycle implements C1: an immutable drive-cycle time series with
// derived dt and mph, grounded on original_source/src/LoadData.py's
// set_dependents and on the teacher's derived-duration idiom
// (internal/model/marketdata.go's Duration/DurationHours).
package cycle

import (
	"fmt"

	"vehsim/internal/simerrors"
	"vehsim/internal/units"
)

// Record is the raw, caller-supplied cycle data: one flat record of equal-
// length arrays, matching the CSV columns cycSecs, cycMps, cycGrade,
// cycRoadType (spec.md §6).
type Record struct {
	Name      string
	TimeS     []float64
	SpeedMps  []float64
	Grade     []float64
	RoadChg   []float64 // road-charge class, 0 = none
}

// Cycle is an immutable drive cycle: (t, v, grade, road-charge class) plus
// derived dt and mph. Never mutated after construction.
type Cycle struct {
	Name     string
	TimeS    []float64
	SpeedMps []float64
	Grade    []float64
	RoadChg  []float64
	Dt       []float64
	SpeedMph []float64
}

// FromRecord validates rec and builds an immutable Cycle, computing the
// derived dt/mph arrays. dt[0] is always 0 per spec.md §3.
func FromRecord(rec Record) (*Cycle, error) {
	n := len(rec.TimeS)
	if n < 2 {
		return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q has %d samples, need >= 2", rec.Name, n))
	}
	if len(rec.SpeedMps) != n || len(rec.Grade) != n {
		return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q has mismatched array lengths", rec.Name))
	}
	roadChg := rec.RoadChg
	if roadChg == nil {
		roadChg = make([]float64, n)
	} else if len(roadChg) != n {
		return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q road-charge array length mismatch", rec.Name))
	}
	if rec.TimeS[0] != 0 {
		return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q must start at t=0", rec.Name))
	}
	dt := make([]float64, n)
	mph := make([]float64, n)
	for i := 0; i < n; i++ {
		if rec.SpeedMps[i] < 0 {
			return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q has negative speed at index %d", rec.Name, i))
		}
		mph[i] = rec.SpeedMps[i] * units.MphPerMps
		if i == 0 {
			dt[i] = 0
			continue
		}
		dt[i] = rec.TimeS[i] - rec.TimeS[i-1]
		if dt[i] <= 0 {
			return nil, simerrors.New(simerrors.InvalidCycle, fmt.Sprintf("cycle %q time is non-monotone at index %d", rec.Name, i))
		}
	}
	return &Cycle{
		Name:     rec.Name,
		TimeS:    append([]float64(nil), rec.TimeS...),
		SpeedMps: append([]float64(nil), rec.SpeedMps...),
		Grade:    append([]float64(nil), rec.Grade...),
		RoadChg:  roadChg,
		Dt:       dt,
		SpeedMph: mph,
	}, nil
}

// Len returns the number of samples.
func (c *Cycle) Len() int { return len(c.TimeS) }

// ClipByTime returns a new Cycle containing only samples with t_s <= tEnd.
func (c *Cycle) ClipByTime(tEnd float64) (*Cycle, error) {
	cut := 0
	for cut < len(c.TimeS) && c.TimeS[cut] <= tEnd {
		cut++
	}
	return FromRecord(Record{
		Name:     c.Name,
		TimeS:    c.TimeS[:cut],
		SpeedMps: c.SpeedMps[:cut],
		Grade:    c.Grade[:cut],
		RoadChg:  c.RoadChg[:cut],
	})
}
