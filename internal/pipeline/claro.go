package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cwbudde/algo-calib/batch"
	"github.com/cwbudde/algo-calib/internal/record"
	"github.com/cwbudde/algo-calib/internal/report"
	"github.com/cwbudde/algo-calib/measure/transition"
)

// ClaroHeader is the header of the processed chips table.
var ClaroHeader = []string{
	"Station", "Chip", "Channel", "Amplitude", "Tr.Point", "Width", "erf_tr.point", "Std_erf_tr.point",
}

// ClaroJob fits the transition of every scan file in a batch. The table
// carries the erf estimate only.
type ClaroJob struct {
	Options transition.Options
	Logger  *slog.Logger
}

var _ batch.Job = (*ClaroJob)(nil)

func (j *ClaroJob) Name() string { return "claro" }

func (j *ClaroJob) Header() []string { return ClaroHeader }

// Classify rejects scans whose first line holds letters.
func (j *ClaroJob) Classify(path string) error {
	return batch.FirstLineClassifier(path)
}

// Process reads one scan and returns its single result row.
func (j *ClaroJob) Process(path string) ([]batch.Row, error) {
	scan, err := record.ReadScan(path)
	if err != nil {
		return nil, err
	}

	info, err := record.ParseScanInfo(path)
	if err != nil {
		orDefault(j.Logger).Warn("claro.metadata", "path", path, "err", err)
	}

	res, err := transition.FitWithOptions(scan, j.Options)
	if err != nil {
		return nil, err
	}

	erf := res.Erf
	orDefault(j.Logger).Debug("claro.fit.done", "path", path,
		"transition", erf.TransitionPoint, "linear_transition", res.Linear.TransitionPoint)

	return []batch.Row{{
		info.Station,
		info.Chip,
		info.Channel,
		report.Float(scan.Seed.Amplitude),
		report.Float(scan.Seed.Transition),
		report.Float(scan.Seed.Width),
		report.Float(erf.TransitionPoint),
		report.Float(erf.TransitionPointStd),
	}}, nil
}

// ScanReport is the single-file analysis of one scan.
type ScanReport struct {
	Path   string
	Info   record.ScanInfo
	Scan   transition.Scan
	Result transition.Result
}

// AnalyzeScan runs both transition estimates on one scan file. Missing
// path metadata is logged and does not fail the analysis.
func AnalyzeScan(path string, opts transition.Options, log *slog.Logger) (ScanReport, error) {
	scan, err := record.ReadScan(path)
	if err != nil {
		return ScanReport{}, err
	}

	info, err := record.ParseScanInfo(path)
	if err != nil {
		orDefault(log).Warn("claro.metadata", "path", path, "err", err)
	}

	res, err := transition.FitWithOptions(scan, opts)
	if err != nil {
		return ScanReport{}, fmt.Errorf("%s: %w", path, err)
	}

	return ScanReport{Path: path, Info: info, Scan: scan, Result: res}, nil
}

// Print writes the seed, linear and erf results in human readable form.
func (r ScanReport) Print(w io.Writer) error {
	lin, erf := r.Result.Linear, r.Result.Erf

	_, err := fmt.Fprintf(w, "station: %s\nchip: %s\nchannel: %s\n"+
		"amplitude: %g\ntransition point: %g\nwidth: %g\n\n"+
		"slope: %g\nintercept: %g\ntransition point (linear): %g\nR squared: %g\n"+
		"height: %g +/- %g\ntransition point (erf): %g +/- %g\nwidth (erf): %g +/- %g\n",
		r.Info.Station, r.Info.Chip, r.Info.Channel,
		r.Scan.Seed.Amplitude, r.Scan.Seed.Transition, r.Scan.Seed.Width,
		lin.Slope, lin.Intercept, lin.TransitionPoint, lin.RSquared,
		erf.Height, erf.HeightStd, erf.TransitionPoint, erf.TransitionPointStd, erf.Width, erf.WidthStd)

	return err
}

// PlotName is the file name of the scan plot.
func (r ScanReport) PlotName() string {
	return fmt.Sprintf("Plot_Claro_Chip%s_Ch%s.png", r.Info.Chip, r.Info.Channel)
}

// SavePlot draws the scan into dir and returns the file path.
func (r ScanReport) SavePlot(dir string, curvePoints int) (string, error) {
	path := filepath.Join(dir, r.PlotName())
	title := fmt.Sprintf("Fit Claro: Station %s, Chip %s, Channel %s", r.Info.Station, r.Info.Chip, r.Info.Channel)

	if err := report.ScanPlot(path, title, r.Scan, r.Result, curvePoints); err != nil {
		return "", err
	}

	return path, nil
}
