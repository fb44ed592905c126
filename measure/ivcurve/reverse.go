package ivcurve

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/fit/curve"
	"github.com/cwbudde/algo-calib/fit/lsq"
	"github.com/cwbudde/algo-calib/fit/poly"
)

// ReverseResult holds the breakdown voltage extracted from a reverse sweep.
// VBdStd is the width of the fitted Gaussian, not a standard error of its
// mean. Coefficients are the smoothing polynomial in ascending powers of V.
type ReverseResult struct {
	VBd             float64
	VBdStd          float64
	PeakSearchWidth float64
	Coefficients    [PolyDegree + 1]float64
}

// Gradient returns the index-spaced derivative of y: centered differences
// in the interior and one-sided differences at both ends. Fewer than two
// samples yield zeros.
func Gradient(y []float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	if n < 2 {
		return out
	}

	out[0] = y[1] - y[0]
	out[n-1] = y[n-1] - y[n-2]
	for k := 1; k < n-1; k++ {
		out[k] = (y[k+1] - y[k-1]) / 2
	}

	return out
}

// NormalizedDerivative returns (1/I) dI/dV with dI/dV taken as
// Gradient(i)/Gradient(v), which handles non-uniform voltage steps.
func NormalizedDerivative(v, i []float64) ([]float64, error) {
	if len(v) != len(i) {
		return nil, ErrLengthMismatch
	}

	gi := Gradient(i)
	gv := Gradient(v)

	w := make([]float64, len(v))
	for k := range w {
		w[k] = 1 / (gv[k] * i[k])
	}

	out := make([]float64, len(v))
	vecmath.MulBlock(out, gi, w)

	return out, nil
}

// FitReverse locates the breakdown voltage of a reverse sweep. halfWidth
// bounds the Gaussian window around the derivative peak; a non-positive
// value selects DefaultPeakHalfWidth.
func FitReverse(s Sweep, halfWidth float64) (ReverseResult, error) {
	if err := s.check(); err != nil {
		return ReverseResult{}, err
	}

	if len(s.V) < MinReverseSamples {
		return ReverseResult{}, fmt.Errorf("%w: %d, need %d", ErrTooFewSamples, len(s.V), MinReverseSamples)
	}

	if halfWidth <= 0 {
		halfWidth = DefaultPeakHalfWidth
	}

	deriv, err := NormalizedDerivative(s.V, s.I)
	if err != nil {
		return ReverseResult{}, err
	}

	if !fit.FiniteSlice(deriv) {
		return ReverseResult{}, fmt.Errorf("ivcurve: derivative: %w", ErrNonFinite)
	}

	smooth, err := poly.Fit(s.V, deriv, PolyDegree)
	if err != nil {
		return ReverseResult{}, fmt.Errorf("ivcurve: smoothing: %w", err)
	}

	smoothed := smooth.EvalSlice(s.V)
	peak := s.V[floats.MaxIdx(smoothed)]

	var wx, wy []float64
	for k, x := range s.V {
		if math.Abs(x-peak) <= halfWidth {
			wx = append(wx, x)
			wy = append(wy, smoothed[k])
		}
	}

	gauss := curve.Gauss{}
	if len(wx) <= gauss.NumParams() {
		return ReverseResult{}, fmt.Errorf("%w: %d around %.3g V", ErrWindowTooSmall, len(wx), peak)
	}

	p0 := []float64{0, 1, peak, (floats.Max(wx) - floats.Min(wx)) / 2}

	fitted, err := lsq.Fit(gauss, wx, wy, p0, lsq.Settings{MaxEvaluations: DefaultGaussMaxEvaluations})
	if err != nil {
		return ReverseResult{}, fmt.Errorf("ivcurve: gaussian fit: %w", err)
	}

	res := ReverseResult{
		VBd:             fitted.Params[2],
		VBdStd:          math.Abs(fitted.Params[3]),
		PeakSearchWidth: halfWidth,
	}
	copy(res.Coefficients[:], smooth.Coefficients())

	if !fit.Finite(res.VBd, res.VBdStd) || !fit.FiniteSlice(res.Coefficients[:]) {
		return ReverseResult{}, ErrNonFinite
	}

	return res, nil
}
