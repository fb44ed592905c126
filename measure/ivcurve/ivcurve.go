package ivcurve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-calib/fit"
)

const (
	// DefaultStartVoltage is the lower bound of the forward regression in V.
	DefaultStartVoltage = 1.55

	// DefaultPeakHalfWidth is the half-width in V of the Gaussian window
	// around the derivative peak.
	DefaultPeakHalfWidth = 5.0

	// PolyDegree is the degree of the derivative smoothing polynomial.
	PolyDegree = 5

	// MinReverseSamples is the smallest reverse sweep that can be smoothed.
	MinReverseSamples = PolyDegree + 1

	// MinForwardSamples is the smallest forward regression.
	MinForwardSamples = 2

	// DefaultGaussMaxEvaluations caps the Gaussian solver.
	DefaultGaussMaxEvaluations = 10000

	// QuenchingFloor is the relative lower bound on the quenching
	// resistance uncertainty.
	QuenchingFloor = 0.03
)

// Errors returned by the fitters.
var (
	ErrLengthMismatch = errors.New("ivcurve: V and I lengths differ")
	ErrTooFewSamples  = fmt.Errorf("ivcurve: too few samples: %w", fit.ErrInsufficientData)
	ErrWindowTooSmall = fmt.Errorf("ivcurve: peak window holds too few samples: %w", fit.ErrInsufficientData)
	ErrZeroSlope      = fmt.Errorf("ivcurve: forward slope is zero: %w", fit.ErrFitDivergence)
	ErrNonFinite      = fmt.Errorf("ivcurve: non-finite result: %w", fit.ErrFitDivergence)
	ErrBadDirection   = errors.New("ivcurve: unknown sweep direction")
)

// Direction is the bias direction of a sweep.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// String returns "Forward" or "Reverse".
func (d Direction) String() string {
	switch d {
	case Forward:
		return "Forward"
	case Reverse:
		return "Reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a file-name direction token to a Direction: "f" is
// forward, "r" is reverse. Full words are accepted too.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "f", "fwd", "forward":
		return Forward, nil
	case "r", "rev", "reverse":
		return Reverse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadDirection, token)
	}
}

// Sweep is one sensor's IV measurement. IErr is carried for reporting and
// is not used as a fit weight.
type Sweep struct {
	Sensor    string
	Direction Direction
	V         []float64
	I         []float64
	IErr      []float64
}

func (s Sweep) check() error {
	if len(s.V) != len(s.I) {
		return ErrLengthMismatch
	}

	return nil
}
