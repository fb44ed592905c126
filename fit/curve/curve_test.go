package curve

import (
	"math"
	"testing"
)

func TestModifiedErfCenterIsHalfHeight(t *testing.T) {
	for _, h := range []float64{1, 1000, -3.5, 0.25} {
		for _, w := range []float64{0.1, 1, 7, 250} {
			for _, c := range []float64{-20, 0, 12.5, 900} {
				if got := ModifiedErf(c, h, c, w); got != h/2 {
					t.Fatalf("ModifiedErf(center) = %v, want %v (h=%v w=%v c=%v)", got, h/2, h, w, c)
				}
			}
		}
	}
}

func TestModifiedErfLimits(t *testing.T) {
	const h = 1000.0
	if got := ModifiedErf(-1e6, h, 0, 5); math.Abs(got) > 1e-9 {
		t.Errorf("lower plateau = %g, want 0", got)
	}
	if got := ModifiedErf(1e6, h, 0, 5); math.Abs(got-h) > 1e-9 {
		t.Errorf("upper plateau = %g, want %g", got, h)
	}

	// width is the 2-sigma span: one sigma above center sits at the 84.13% point.
	got := ModifiedErf(2.5, 1, 0, 5)
	if math.Abs(got-0.8413447460685429) > 1e-12 {
		t.Errorf("one-sigma point = %.15f", got)
	}
}

func TestGaussian(t *testing.T) {
	if got := Gaussian(3, 0.5, 2, 3, 1.5); got != 2.5 {
		t.Errorf("peak = %v, want 2.5", got)
	}

	got := Gaussian(4, 0, 1, 3, 1)
	want := math.Exp(-0.5)
	if math.Abs(got-want) > 1e-15 {
		t.Errorf("one sigma = %v, want %v", got, want)
	}
}

func TestPolynomial(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		coeffs []float64
		want   float64
	}{
		{"empty", 2, nil, 0},
		{"constant", 5, []float64{3}, 3},
		{"linear", 2, []float64{1, 2}, 5},
		{"quintic", 2, []float64{1, 0, 0, 0, 0, 1}, 33},
		{"mixed", -1, []float64{1, 2, 3, 4}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Polynomial(tt.x, tt.coeffs); got != tt.want {
				t.Errorf("Polynomial(%v, %v) = %v, want %v", tt.x, tt.coeffs, got, tt.want)
			}
		})
	}
}

type model interface {
	NumParams() int
	Eval(x float64, p []float64) float64
	Grad(dst []float64, x float64, p []float64)
}

func checkGradient(t *testing.T, m model, p []float64, xs []float64) {
	t.Helper()

	grad := make([]float64, m.NumParams())
	for _, x := range xs {
		m.Grad(grad, x, p)
		for j := range p {
			h := 1e-6 * math.Max(1, math.Abs(p[j]))
			up := append([]float64(nil), p...)
			dn := append([]float64(nil), p...)
			up[j] += h
			dn[j] -= h
			num := (m.Eval(x, up) - m.Eval(x, dn)) / (2 * h)
			if math.Abs(num-grad[j]) > 1e-5*math.Max(1, math.Abs(num)) {
				t.Fatalf("x=%v param %d: analytic %v, numeric %v", x, j, grad[j], num)
			}
		}
	}
}

func TestErfGradient(t *testing.T) {
	checkGradient(t, Erf{}, []float64{1000, 50, 8}, []float64{30, 45, 50, 52.5, 70})
}

func TestGaussGradient(t *testing.T) {
	checkGradient(t, Gauss{}, []float64{0.1, 2, 30, 2.5}, []float64{24, 28, 30, 31, 36})
}

func TestLinspace(t *testing.T) {
	if got := Linspace(0, 1, 0); got != nil {
		t.Errorf("n=0: got %v, want nil", got)
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("n=1: got %v", got)
	}

	got := Linspace(-1, 1, 5)
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSample(t *testing.T) {
	xs, ys := Sample(func(x float64) float64 { return ModifiedErf(x, 2, 10, 4) }, 0, 20, 100)
	if len(xs) != 100 || len(ys) != 100 {
		t.Fatalf("lengths = %d, %d", len(xs), len(ys))
	}
	if xs[0] != 0 || xs[99] != 20 {
		t.Errorf("span = [%v, %v]", xs[0], xs[99])
	}
	for i := 1; i < len(ys); i++ {
		if ys[i] < ys[i-1] {
			t.Fatalf("sampled erf not monotonic at %d", i)
		}
	}
}
