package cycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehsim/internal/cycle"
	"vehsim/internal/simerrors"
)

func TestFromRecordValid(t *testing.T) {
	rec := cycle.Record{
		Name:     "test",
		TimeS:    []float64{0, 1, 2, 3},
		SpeedMps: []float64{0, 5, 10, 5},
		Grade:    []float64{0, 0, 0, 0},
	}
	c, err := cycle.FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 0.0, c.Dt[0])
	assert.Equal(t, 1.0, c.Dt[1])
	assert.InDelta(t, 10*2.2369363, c.SpeedMph[2], 1e-9)
}

func TestFromRecordRejectsShort(t *testing.T) {
	_, err := cycle.FromRecord(cycle.Record{TimeS: []float64{0}, SpeedMps: []float64{0}, Grade: []float64{0}})
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidCycle))
}

func TestFromRecordRejectsNonMonotone(t *testing.T) {
	_, err := cycle.FromRecord(cycle.Record{
		TimeS:    []float64{0, 1, 1},
		SpeedMps: []float64{0, 1, 1},
		Grade:    []float64{0, 0, 0},
	})
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidCycle))
}

func TestFromRecordRejectsNegativeSpeed(t *testing.T) {
	_, err := cycle.FromRecord(cycle.Record{
		TimeS:    []float64{0, 1, 2},
		SpeedMps: []float64{0, -1, 1},
		Grade:    []float64{0, 0, 0},
	})
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidCycle))
}

func TestFromNameStandardCycles(t *testing.T) {
	for _, name := range []string{"udds", "us06", "hwfet"} {
		c, err := cycle.FromName(name)
		require.NoError(t, err, name)
		assert.GreaterOrEqual(t, c.Len(), 2)
	}
}

func TestFromNameUnknown(t *testing.T) {
	_, err := cycle.FromName("not-a-cycle")
	require.Error(t, err)
	assert.True(t, simerrors.Is(err, simerrors.InvalidCycle))
}

func TestClipByTime(t *testing.T) {
	c, err := cycle.FromName("udds")
	require.NoError(t, err)
	clipped, err := c.ClipByTime(10)
	require.NoError(t, err)
	assert.LessOrEqual(t, clipped.TimeS[clipped.Len()-1], 10.0)
}
