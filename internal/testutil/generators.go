package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-calib/fit/curve"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Grid returns n points starting at start spaced by step.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// ErfScan samples ModifiedErf(height, center, width) on x.
func ErfScan(x []float64, height, center, width float64) []float64 {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = curve.ModifiedErf(v, height, center, width)
	}
	return y
}

// PadPlateaus repeats the first value lead times at the front and the last
// value trail times at the back of (x, y), extending x with unit steps.
func PadPlateaus(x, y []float64, lead, trail int) ([]float64, []float64) {
	n := len(x)
	px := make([]float64, 0, n+lead+trail)
	py := make([]float64, 0, n+lead+trail)

	for i := lead; i > 0; i-- {
		px = append(px, x[0]-float64(i))
		py = append(py, y[0])
	}
	px = append(px, x...)
	py = append(py, y...)
	for i := 1; i <= trail; i++ {
		px = append(px, x[n-1]+float64(i))
		py = append(py, y[n-1])
	}

	return px, py
}

// LinearSweep returns I = slope*V + intercept on v.
func LinearSweep(v []float64, slope, intercept float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = slope*x + intercept
	}
	return out
}

// BreakdownSweep returns a reverse IV current whose normalized derivative
// (1/I) dI/dV equals baseline + amplitude*exp(-(V-vbd)^2/(2*std^2)).
func BreakdownSweep(v []float64, i0, baseline, amplitude, vbd, std float64) []float64 {
	out := make([]float64, len(v))
	area := amplitude * std * math.Sqrt(math.Pi/2)
	for i, x := range v {
		logI := baseline*(x-v[0]) + area*math.Erf((x-vbd)/(std*math.Sqrt2))
		out[i] = i0 * math.Exp(logI)
	}
	return out
}
