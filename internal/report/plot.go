package report

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-calib/fit/curve"
	"github.com/cwbudde/algo-calib/measure/ivcurve"
	"github.com/cwbudde/algo-calib/measure/transition"
)

// Plot size. The format follows the file extension (.png, .pdf, .svg).
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

var (
	black     = color.RGBA{A: 255}
	green     = color.RGBA{G: 100, A: 255}
	blue      = color.RGBA{B: 255, A: 255}
	turquoise = color.RGBA{R: 0, G: 206, B: 209, A: 255}
	orange    = color.RGBA{R: 255, G: 140, A: 255}
	gold      = color.RGBA{R: 255, G: 215, A: 255}
)

// errorPoints satisfies plotter.XYer and plotter.YErrorer.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for k := range x {
		pts[k].X = x[k]
		pts[k].Y = y[k]
	}

	return pts
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	return p
}

func scatter(pts plotter.XYs, c color.Color, shape draw.GlyphDrawer, radius vg.Length) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}

	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = radius

	return s, nil
}

func line(pts plotter.XYs, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}

	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.2)

	return l, nil
}

// ScanPlot draws a transition scan with its linear and erf estimates.
func ScanPlot(path, title string, scan transition.Scan, res transition.Result, curvePoints int) error {
	p := newPlot(title, "ADC", "Counts")

	data, err := scatter(xys(scan.X, scan.Y), black, draw.CircleGlyph{}, vg.Points(1.5))
	if err != nil {
		return fmt.Errorf("report: scan plot: %w", err)
	}
	p.Add(data)
	p.Legend.Add(fmt.Sprintf("data: seed t.p. %.2f, width %.2f", scan.Seed.Transition, scan.Seed.Width), data)

	lin := res.Linear
	ly := make([]float64, len(res.TrimmedX))
	for k, x := range res.TrimmedX {
		ly[k] = lin.Slope*x + lin.Intercept
	}

	linLine, err := line(xys(res.TrimmedX, ly), green)
	if err != nil {
		return fmt.Errorf("report: scan plot: %w", err)
	}

	linPoint, err := scatter(plotter.XYs{{X: lin.TransitionPoint, Y: lin.HalfMax}}, green, draw.CircleGlyph{}, vg.Points(3))
	if err != nil {
		return fmt.Errorf("report: scan plot: %w", err)
	}
	p.Add(linLine, linPoint)
	p.Legend.Add(fmt.Sprintf("linear: t.p. %.2f", lin.TransitionPoint), linLine)

	ex, ey := transition.Curve(res.Erf, scan.X, curvePoints)
	erfLine, err := line(xys(ex, ey), blue)
	if err != nil {
		return fmt.Errorf("report: scan plot: %w", err)
	}

	erfPoint, err := scatter(plotter.XYs{{X: res.Erf.TransitionPoint, Y: lin.HalfMax}}, blue, draw.BoxGlyph{}, vg.Points(3))
	if err != nil {
		return fmt.Errorf("report: scan plot: %w", err)
	}
	p.Add(erfLine, erfPoint)
	p.Legend.Add(fmt.Sprintf("erf: t.p. %.2f +/- %.2f, width %.2f +/- %.2f",
		res.Erf.TransitionPoint, res.Erf.TransitionPointStd, res.Erf.Width, res.Erf.WidthStd), erfLine)

	return p.Save(PlotWidth, PlotHeight, path)
}

func sweepErrors(s ivcurve.Sweep) errorPoints {
	pts := errorPoints{XYs: xys(s.V, s.I), YErrors: make(plotter.YErrors, len(s.V))}
	for k := range pts.YErrors {
		e := 0.0
		if k < len(s.IErr) {
			e = s.IErr[k]
		}
		pts.YErrors[k].Low = e
		pts.YErrors[k].High = e
	}

	return pts
}

// ForwardPlot draws a forward sweep with its regression line above the
// start voltage.
func ForwardPlot(path string, s ivcurve.Sweep, res ivcurve.ForwardResult) error {
	p := newPlot("Forward IV curve: SiPM "+s.Sensor, "Voltage (V)", "Current (mA)")

	pts := sweepErrors(s)

	data, err := scatter(pts.XYs, black, draw.CircleGlyph{}, vg.Points(1.5))
	if err != nil {
		return fmt.Errorf("report: forward plot: %w", err)
	}

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("report: forward plot: %w", err)
	}
	p.Add(bars, data)
	p.Legend.Add("data", data)

	var lx, ly []float64
	for _, v := range s.V {
		if v >= res.StartVoltage {
			lx = append(lx, v)
			ly = append(ly, res.Slope*v+res.Intercept)
		}
	}

	if len(lx) > 0 {
		fitLine, err := line(xys(lx, ly), green)
		if err != nil {
			return fmt.Errorf("report: forward plot: %w", err)
		}
		p.Add(fitLine)
		p.Legend.Add(fmt.Sprintf("linear fit: Rq = (%.2f +/- %.2f) Ohm", res.RQuenching, res.RQuenchingStd), fitLine)
	}

	return p.Save(PlotWidth, PlotHeight, path)
}

// ReversePlot draws the normalized derivative of a reverse sweep, its
// smoothing polynomial, the Gaussian window and the breakdown voltage.
func ReversePlot(path string, s ivcurve.Sweep, res ivcurve.ReverseResult) error {
	p := newPlot("Reverse IV curve: SiPM "+s.Sensor, "Voltage (V)", "(1/I) dI/dV (1/V)")

	deriv, err := ivcurve.NormalizedDerivative(s.V, s.I)
	if err != nil {
		return fmt.Errorf("report: reverse plot: %w", err)
	}

	smooth := make([]float64, len(s.V))
	var wx, wy []float64
	for k, v := range s.V {
		smooth[k] = curve.Polynomial(v, res.Coefficients[:])
		if math.Abs(v-res.VBd) <= res.PeakSearchWidth {
			wx = append(wx, v)
			wy = append(wy, smooth[k])
		}
	}

	data, err := scatter(xys(s.V, deriv), green, draw.CircleGlyph{}, vg.Points(1.5))
	if err != nil {
		return fmt.Errorf("report: reverse plot: %w", err)
	}
	p.Add(data)
	p.Legend.Add("derivative", data)

	polyLine, err := line(xys(s.V, smooth), turquoise)
	if err != nil {
		return fmt.Errorf("report: reverse plot: %w", err)
	}
	p.Add(polyLine)
	p.Legend.Add("5th-degree polynomial fit", polyLine)

	if len(wx) > 0 {
		window, err := line(xys(wx, wy), orange)
		if err != nil {
			return fmt.Errorf("report: reverse plot: %w", err)
		}
		p.Add(window)
		p.Legend.Add("gaussian window", window)
	}

	lo := math.Min(floats.Min(deriv), floats.Min(smooth))
	hi := math.Max(floats.Max(deriv), floats.Max(smooth))
	marker, err := line(plotter.XYs{{X: res.VBd, Y: lo}, {X: res.VBd, Y: hi}}, gold)
	if err != nil {
		return fmt.Errorf("report: reverse plot: %w", err)
	}
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("VBd = %.2f +/- %.2f V", res.VBd, res.VBdStd), marker)

	return p.Save(PlotWidth, PlotHeight, path)
}
