package curvefit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vehsim/internal/curvefit"
)

func TestResampleClampsToEndpoints(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	ys := []float64{0, 5, 10}
	out := curvefit.Resample(xs, ys, []float64{-1, 0, 0.25, 0.5, 2})
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.0, out[1])
	assert.InDelta(t, 2.5, out[2], 1e-9)
	assert.Equal(t, 5.0, out[3])
	assert.Equal(t, 10.0, out[4])
}

func TestSegmentIndexContract(t *testing.T) {
	arr := []float64{0, 1, 2, 3, 4}
	assert.Equal(t, 0, curvefit.SegmentIndex(arr, 0.5))
	assert.Equal(t, 3, curvefit.SegmentIndex(arr, 100))
	assert.Equal(t, 0, curvefit.SegmentIndex(arr, -5))
}

func TestLinspace(t *testing.T) {
	out := curvefit.Linspace(0, 10, 5)
	assert.Equal(t, []float64{0, 2.5, 5, 7.5, 10}, out)
}

func TestInterpAt(t *testing.T) {
	xs := []float64{0, 10}
	ys := []float64{0, 100}
	assert.InDelta(t, 50.0, curvefit.InterpAt(xs, ys, 5), 1e-9)
	assert.Equal(t, 0.0, curvefit.InterpAt(xs, ys, -5))
	assert.Equal(t, 100.0, curvefit.InterpAt(xs, ys, 50))
}
