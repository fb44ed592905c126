package ivcurve

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/fit/linear"
)

// ForwardResult holds the quenching resistance extracted from a forward
// sweep. Slope and Intercept describe the regression line in mA/V and mA.
type ForwardResult struct {
	RQuenching    float64
	RQuenchingStd float64
	Slope         float64
	Intercept     float64
	StartVoltage  float64
}

// FitForward regresses I on V over the samples with V >= start and returns
// R = 1000/slope. The uncertainty is the slope standard error propagated
// through 1000/slope, but never less than QuenchingFloor*|R|.
func FitForward(s Sweep, start float64) (ForwardResult, error) {
	if err := s.check(); err != nil {
		return ForwardResult{}, err
	}

	var v, i []float64
	for k, x := range s.V {
		if x >= start {
			v = append(v, x)
			i = append(i, s.I[k])
		}
	}

	if len(v) < MinForwardSamples {
		return ForwardResult{}, fmt.Errorf("%w: %d above %.3g V", ErrTooFewSamples, len(v), start)
	}

	line, err := linear.Regress(v, i)
	if err != nil {
		return ForwardResult{}, fmt.Errorf("ivcurve: forward regression: %w", err)
	}

	if line.Slope == 0 {
		return ForwardResult{}, ErrZeroSlope
	}

	r := 1000 / line.Slope
	std := math.Max(1000*line.SlopeErr/(line.Slope*line.Slope), QuenchingFloor*math.Abs(r))

	res := ForwardResult{
		RQuenching:    r,
		RQuenchingStd: std,
		Slope:         line.Slope,
		Intercept:     line.Intercept,
		StartVoltage:  start,
	}

	if !fit.Finite(res.RQuenching, res.RQuenchingStd, res.Slope, res.Intercept) {
		return ForwardResult{}, ErrNonFinite
	}

	return res, nil
}
