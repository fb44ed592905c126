package transition

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/fit/curve"
	"github.com/cwbudde/algo-calib/fit/linear"
	"github.com/cwbudde/algo-calib/fit/lsq"
)

const (
	// MinPoints is the smallest number of distinct responses a trimmed
	// scan must keep to be fitted.
	MinPoints = 4

	// DefaultErfMaxEvaluations caps the erf solver at 200*(params+1)
	// residual evaluations.
	DefaultErfMaxEvaluations = 800

	// DefaultCurvePoints is the density of the evaluated erf curve.
	DefaultCurvePoints = 100
)

// Errors returned by the transition fitters.
var (
	ErrLengthMismatch = errors.New("transition: x and y lengths differ")
	ErrTooFewPoints   = fmt.Errorf("transition: fewer than %d distinct points after trimming: %w", MinPoints, fit.ErrInsufficientData)
	ErrZeroSlope      = fmt.Errorf("transition: regression slope is zero: %w", fit.ErrFitDivergence)
)

// Seed is the amplitude/transition/width triple read from a scan header.
type Seed struct {
	Amplitude  float64
	Transition float64
	Width      float64
}

// Scan is one channel's transition measurement.
type Scan struct {
	X    []float64
	Y    []float64
	Seed Seed
}

// LinearResult is the linear-interpolation transition estimate.
type LinearResult struct {
	Slope           float64
	Intercept       float64
	TransitionPoint float64
	HalfMax         float64
	RSquared        float64
}

// ErfResult is the error-function fit with one standard error per parameter.
type ErfResult struct {
	Height             float64
	HeightStd          float64
	TransitionPoint    float64
	TransitionPointStd float64
	Width              float64
	WidthStd           float64
}

// Result combines both estimates for one scan. TrimmedX and TrimmedY hold
// the points used by the linear estimate.
type Result struct {
	Linear   LinearResult
	Erf      ErfResult
	TrimmedX []float64
	TrimmedY []float64
}

// Options tunes the erf solver. The zero value selects the defaults.
type Options struct {
	MaxEvaluations int
}

// Trim drops flat padding: leading points while y[0] == y[1] and trailing
// points while y[n-1] == y[n-2]. The trimmed scan must hold at least
// MinPoints distinct y values. The returned slices alias the inputs.
func Trim(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}

	lo, hi := 0, len(y)
	for hi-lo >= 2 && y[lo] == y[lo+1] {
		lo++
	}

	for hi-lo >= 2 && y[hi-1] == y[hi-2] {
		hi--
	}

	if distinct(y[lo:hi]) < MinPoints {
		return nil, nil, ErrTooFewPoints
	}

	return x[lo:hi], y[lo:hi], nil
}

func distinct(y []float64) int {
	seen := make(map[float64]struct{}, len(y))
	for _, v := range y {
		seen[v] = struct{}{}
	}

	return len(seen)
}

// FitLinear trims the scan and locates the half-maximum crossing of the
// regression line through the trimmed points. It also returns the trimmed
// series.
func FitLinear(x, y []float64) (LinearResult, []float64, []float64, error) {
	tx, ty, err := Trim(x, y)
	if err != nil {
		return LinearResult{}, nil, nil, err
	}

	line, err := linear.Regress(tx, ty)
	if err != nil {
		return LinearResult{}, nil, nil, fmt.Errorf("transition: %w", err)
	}

	if line.Slope == 0 {
		return LinearResult{}, nil, nil, ErrZeroSlope
	}

	halfMax := (ty[len(ty)-1] - ty[0]) / 2

	res := LinearResult{
		Slope:           line.Slope,
		Intercept:       line.Intercept,
		TransitionPoint: (halfMax - line.Intercept) / line.Slope,
		HalfMax:         halfMax,
		RSquared:        line.RSquared(),
	}

	if !fit.Finite(res.Slope, res.Intercept, res.TransitionPoint, res.HalfMax, res.RSquared) {
		return LinearResult{}, nil, nil, fmt.Errorf("transition: non-finite linear result: %w", fit.ErrFitDivergence)
	}

	return res, tx, ty, nil
}

// FitErf fits curve.ModifiedErf to the untrimmed scan, seeded with the
// header triple.
func FitErf(x, y []float64, seed Seed, opts Options) (ErfResult, error) {
	if len(x) != len(y) {
		return ErfResult{}, ErrLengthMismatch
	}

	if len(x) < MinPoints {
		return ErfResult{}, ErrTooFewPoints
	}

	maxEval := opts.MaxEvaluations
	if maxEval <= 0 {
		maxEval = DefaultErfMaxEvaluations
	}

	p0 := []float64{seed.Amplitude, seed.Transition, seed.Width}

	res, err := lsq.Fit(curve.Erf{}, x, y, p0, lsq.Settings{MaxEvaluations: maxEval})
	if err != nil {
		return ErfResult{}, fmt.Errorf("transition: erf fit: %w", err)
	}

	return ErfResult{
		Height:             res.Params[0],
		HeightStd:          res.StdErr[0],
		TransitionPoint:    res.Params[1],
		TransitionPointStd: res.StdErr[1],
		Width:              res.Params[2],
		WidthStd:           res.StdErr[2],
	}, nil
}

// Fit runs both estimates on one scan with default options.
func Fit(scan Scan) (Result, error) {
	return FitWithOptions(scan, Options{})
}

// FitWithOptions is Fit with explicit solver options.
func FitWithOptions(scan Scan, opts Options) (Result, error) {
	lin, tx, ty, err := FitLinear(scan.X, scan.Y)
	if err != nil {
		return Result{}, err
	}

	erf, err := FitErf(scan.X, scan.Y, scan.Seed, opts)
	if err != nil {
		return Result{}, err
	}

	return Result{Linear: lin, Erf: erf, TrimmedX: tx, TrimmedY: ty}, nil
}

// Curve evaluates the fitted erf on n evenly spaced points spanning the
// observed x range.
func Curve(res ErfResult, x []float64, n int) ([]float64, []float64) {
	if len(x) == 0 {
		return nil, nil
	}

	if n <= 0 {
		n = DefaultCurvePoints
	}

	return curve.Sample(func(v float64) float64 {
		return curve.ModifiedErf(v, res.Height, res.TransitionPoint, res.Width)
	}, floats.Min(x), floats.Max(x), n)
}
