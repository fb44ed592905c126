package linear

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/internal/testutil"
)

func TestRegressExactLine(t *testing.T) {
	x := testutil.Grid(1.5, 0.05, 31)
	y := testutil.LinearSweep(x, 40, -55)

	l, err := Regress(x, y)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireNearlyEqual(t, "slope", l.Slope, 40, 1e-9)
	testutil.RequireNearlyEqual(t, "intercept", l.Intercept, -55, 1e-8)
	testutil.RequireNearlyEqual(t, "r2", l.RSquared(), 1, 1e-12)
	testutil.RequireNearlyEqual(t, "slope err", l.SlopeErr, 0, 1e-6)
	testutil.RequireNearlyEqual(t, "at", l.At(2), 25, 1e-8)
}

func TestRegressKnownStdErr(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 1, 2, 5}

	l, err := Regress(x, y)
	if err != nil {
		t.Fatal(err)
	}

	// Sxx = 5, Sxy = 5 -> slope 1, intercept 0; residuals (1, -1, -1, 1).
	testutil.RequireNearlyEqual(t, "slope", l.Slope, 1, 1e-12)
	testutil.RequireNearlyEqual(t, "intercept", l.Intercept, 0, 1e-12)
	// stderr = sqrt(SSR/(n-2)/Sxx) = sqrt(4/2/5)
	testutil.RequireNearlyEqual(t, "slope err", l.SlopeErr, math.Sqrt(0.4), 1e-12)
	// intercept err = slopeErr * sqrt(Sxx/n + mean^2) = sqrt(0.4)*sqrt(1.25+6.25)
	testutil.RequireNearlyEqual(t, "intercept err", l.InterceptErr, math.Sqrt(0.4)*math.Sqrt(7.5), 1e-12)
}

func TestRegressTwoPoints(t *testing.T) {
	l, err := Regress([]float64{1, 3}, []float64{2, 6})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, "slope", l.Slope, 2, 1e-12)
	if l.SlopeErr != 0 || l.InterceptErr != 0 {
		t.Errorf("two-point fit should report zero standard errors, got %+v", l)
	}
}

func TestRegressConstantY(t *testing.T) {
	l, err := Regress([]float64{1, 2, 3}, []float64{4, 4, 4})
	if err != nil {
		t.Fatal(err)
	}
	if l.Slope != 0 || l.R != 0 {
		t.Errorf("got slope %v r %v, want 0, 0", l.Slope, l.R)
	}
}

func TestRegressErrors(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		wantErr error
	}{
		{"mismatch", []float64{1, 2}, []float64{1}, ErrLengthMismatch},
		{"one point", []float64{1}, []float64{1}, fit.ErrInsufficientData},
		{"constant x", []float64{2, 2, 2}, []float64{1, 2, 3}, fit.ErrFitDivergence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Regress(tt.x, tt.y)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
