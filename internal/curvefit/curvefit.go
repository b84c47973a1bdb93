// Package curvefit resamples the canonical engine/motor efficiency
// breakpoint curves onto the uniform per-vehicle grids Vehicle needs
// (fcEffArray, mcFullEffArray), using gonum's piecewise-linear interpolator.
// Grounded on PossumXI-Asgard_Arobi/Valkyrie's adoption of
// gonum.org/v1/gonum (there via mat, here via interp).
package curvefit

import "gonum.org/v1/gonum/interp"

// Resample builds a piecewise-linear interpolant over (xs, ys) and evaluates
// it at each point in queryXs, clamping out-of-range queries to the nearest
// endpoint value (matching spec.md §4.2's clamp-to-endpoints contract).
func Resample(xs, ys []float64, queryXs []float64) []float64 {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		panic(err) // curves are compiled-in constants; a Fit failure is a programming error
	}
	lo, hi := xs[0], xs[len(xs)-1]
	out := make([]float64, len(queryXs))
	for i, x := range queryXs {
		cx := x
		if cx < lo {
			cx = lo
		} else if cx > hi {
			cx = hi
		}
		out[i] = pl.Predict(cx)
	}
	return out
}

// Linspace returns n evenly spaced samples over [lo, hi] inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// SegmentIndex returns the largest index k such that arr[k] <= x, clamped to
// [0, len(arr)-2], using the -0.01 margin idiom from FASTSim's repeated
// argmax(arr > min(max(arr)-0.01, x)) - 1 lookup (spec.md §9).
func SegmentIndex(arr []float64, x float64) int {
	n := len(arr)
	if n < 2 {
		return 0
	}
	maxV := arr[n-1]
	threshold := x
	if maxV-0.01 < threshold {
		threshold = maxV - 0.01
	}
	idx := -1
	for i, v := range arr {
		if v > threshold {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = n
	}
	k := idx - 1
	if k < 0 {
		k = 0
	}
	if k > n-2 {
		k = n - 2
	}
	return k
}

// InterpAt linearly interpolates y=f(x) given a monotone xs/ys table,
// clamping to endpoints outside the table's range.
func InterpAt(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if n == 1 || x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	k := SegmentIndex(xs, x)
	x0, x1 := xs[k], xs[k+1]
	y0, y1 := ys[k], ys[k+1]
	if x1 == x0 {
		return y0
	}
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
