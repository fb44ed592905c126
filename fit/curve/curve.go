package curve

import "math"

// invSqrtPi is 1/sqrt(pi).
const invSqrtPi = 0.56418958354775628694807945156077258584405062932899

// ModifiedErf returns an error function shifted up by height/2 and scaled to
// swing from 0 to height:
//
//	f(x) = height/2 * (1 + erf((x - center) / (width/2 * sqrt(2))))
//
// f(center) == height/2 exactly. A zero width is a caller error.
func ModifiedErf(x, height, center, width float64) float64 {
	return height / 2 * (1 + math.Erf((x-center)/(width/2*math.Sqrt2)))
}

// Gaussian returns offset + amplitude * exp(-(x-mean)^2 / (2*std^2)).
func Gaussian(x, offset, amplitude, mean, std float64) float64 {
	d := x - mean
	return offset + amplitude*math.Exp(-d*d/(2*std*std))
}

// Polynomial evaluates sum(coeffs[k] * x^k) using Horner's scheme.
// Coefficients are in ascending degree. An empty slice evaluates to 0.
func Polynomial(x float64, coeffs []float64) float64 {
	y := 0.0
	for k := len(coeffs) - 1; k >= 0; k-- {
		y = y*x + coeffs[k]
	}

	return y
}

// Erf is ModifiedErf as a parametric model with parameters
// (height, center, width).
type Erf struct{}

// NumParams returns 3.
func (Erf) NumParams() int { return 3 }

// Eval returns ModifiedErf(x, p[0], p[1], p[2]).
func (Erf) Eval(x float64, p []float64) float64 {
	return ModifiedErf(x, p[0], p[1], p[2])
}

// Grad writes the partial derivatives with respect to height, center and
// width into dst.
func (Erf) Grad(dst []float64, x float64, p []float64) {
	height, center, width := p[0], p[1], p[2]
	z := math.Sqrt2 * (x - center) / width
	g := math.Exp(-z * z)

	dst[0] = (1 + math.Erf(z)) / 2
	dst[1] = -height * g * math.Sqrt2 * invSqrtPi / width
	dst[2] = -height * g * z * invSqrtPi / width
}

// Gauss is Gaussian as a parametric model with parameters
// (offset, amplitude, mean, std).
type Gauss struct{}

// NumParams returns 4.
func (Gauss) NumParams() int { return 4 }

// Eval returns Gaussian(x, p[0], p[1], p[2], p[3]).
func (Gauss) Eval(x float64, p []float64) float64 {
	return Gaussian(x, p[0], p[1], p[2], p[3])
}

// Grad writes the partial derivatives with respect to offset, amplitude,
// mean and std into dst.
func (Gauss) Grad(dst []float64, x float64, p []float64) {
	amplitude, mean, std := p[1], p[2], p[3]
	d := x - mean
	s2 := std * std
	e := math.Exp(-d * d / (2 * s2))

	dst[0] = 1
	dst[1] = e
	dst[2] = amplitude * e * d / s2
	dst[3] = amplitude * e * d * d / (s2 * std)
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n == 1 yields {lo}; n <= 0 yields nil.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}

// Sample evaluates f on n evenly spaced points spanning [lo, hi] and returns
// the abscissae and values.
func Sample(f func(float64) float64, lo, hi float64, n int) (xs, ys []float64) {
	xs = Linspace(lo, hi, n)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}

	return xs, ys
}
