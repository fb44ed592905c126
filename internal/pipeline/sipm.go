package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-calib/batch"
	"github.com/cwbudde/algo-calib/fit"
	"github.com/cwbudde/algo-calib/internal/record"
	"github.com/cwbudde/algo-calib/internal/report"
	"github.com/cwbudde/algo-calib/measure/ivcurve"
)

// ErrNoSensors is returned for a sweep file without data rows.
var ErrNoSensors = fmt.Errorf("pipeline: sweep file has no sensors: %w", fit.ErrInsufficientData)

// SiPMHeader is the header of the batch sweep table. Value and Std hold the
// quenching resistance for forward sweeps and the breakdown voltage for
// reverse sweeps.
var SiPMHeader = []string{"Arduino", "Test", "Temperature", "Direction", "SiPM", "Value", "Std"}

// SensorResult is the outcome for one sensor of a sweep file.
type SensorResult struct {
	Sensor string
	Value  float64
	Std    float64
	Err    error
}

// SweepReport is the analysis of one sweep file.
type SweepReport struct {
	Path      string
	Info      record.SweepInfo
	Direction ivcurve.Direction
	Sensors   []SensorResult
	// Files lists the result table and plots written for this file.
	Files []string
}

// SiPMJob extracts quenching resistance or breakdown voltage for every
// sensor of every sweep file. Per-file results and plots are written to
// OutputDir as they are produced.
type SiPMJob struct {
	StartVoltage  float64
	PeakHalfWidth float64
	Workers       int
	OutputDir     string
	Plots         bool
	Logger        *slog.Logger
}

var _ batch.Job = (*SiPMJob)(nil)

func (j *SiPMJob) Name() string { return "sipm" }

func (j *SiPMJob) Header() []string { return SiPMHeader }

// Classify rejects files without a SiPM header followed by numeric rows.
func (j *SiPMJob) Classify(path string) error {
	return batch.HeaderClassifier(record.HeaderToken)(path)
}

// Process analyses one sweep file and returns one row per fitted sensor.
func (j *SiPMJob) Process(path string) ([]batch.Row, error) {
	rep, err := j.Analyze(path)
	if err != nil {
		return nil, err
	}

	var rows []batch.Row
	for _, s := range rep.Sensors {
		if s.Err != nil {
			continue
		}

		rows = append(rows, batch.Row{
			rep.Info.Arduino,
			rep.Info.Test,
			rep.Info.Temperature,
			rep.Direction.String(),
			s.Sensor,
			report.Float(s.Value),
			report.Float(s.Std),
		})
	}

	return rows, nil
}

// Analyze fits every sensor of the sweep file at path and writes the
// per-file result table and, if enabled, one plot per sensor. A sensor that
// fails is logged and left out of the table; the file fails only if no
// sensor could be fitted.
func (j *SiPMJob) Analyze(path string) (SweepReport, error) {
	log := orDefault(j.Logger)

	info, err := record.ParseSweepInfo(path)
	if err != nil {
		log.Warn("sipm.metadata", "path", path, "err", err)
	}

	rep := SweepReport{Path: path, Info: info, Direction: info.Dir()}

	sweeps, err := record.ReadSweeps(path, rep.Direction)
	if err != nil {
		return SweepReport{}, err
	}

	if len(sweeps) == 0 {
		return SweepReport{}, fmt.Errorf("%w: %s", ErrNoSensors, path)
	}

	if err := os.MkdirAll(j.OutputDir, 0o755); err != nil {
		return SweepReport{}, err
	}

	var header []string
	if rep.Direction == ivcurve.Forward {
		header = []string{"SiPM", "R_quenching", "R_quenching_std"}
		err = j.fitForward(&rep, sweeps)
	} else {
		header = []string{"SiPM", "V_bd", "V_bd_std"}
		err = j.fitReverse(&rep, sweeps)
	}

	if err != nil {
		return SweepReport{}, err
	}

	var (
		rows   []batch.Row
		failed []error
	)

	for _, s := range rep.Sensors {
		if s.Err != nil {
			log.Warn("sipm.sensor.failed", "path", path, "sensor", s.Sensor, "kind", batch.KindOf(s.Err), "err", s.Err)
			failed = append(failed, fmt.Errorf("sensor %s: %w", s.Sensor, s.Err))

			continue
		}

		rows = append(rows, batch.Row{s.Sensor, report.Float(s.Value), report.Float(s.Std)})
	}

	if len(rows) == 0 {
		return SweepReport{}, fmt.Errorf("%s: %w", path, errors.Join(failed...))
	}

	table := filepath.Join(j.OutputDir, j.baseName(rep)+"_results.csv")
	if err := report.WriteTable(table, ',', header, rows); err != nil {
		return SweepReport{}, err
	}
	rep.Files = append([]string{table}, rep.Files...)

	log.Debug("sipm.file.done", "path", path, "direction", rep.Direction, "sensors", len(rows))

	return rep, nil
}

func (j *SiPMJob) baseName(rep SweepReport) string {
	return fmt.Sprintf("Arduino%s_Test%s_%s", rep.Info.Arduino, rep.Info.Test, rep.Direction)
}

func (j *SiPMJob) plotPath(rep SweepReport, sensor string) string {
	return filepath.Join(j.OutputDir, fmt.Sprintf("%s_SiPM%s.pdf", j.baseName(rep), sensor))
}

func (j *SiPMJob) fitForward(rep *SweepReport, sweeps []ivcurve.Sweep) error {
	results, err := ivcurve.FitGroups(context.Background(), sweeps, j.Workers, func(s ivcurve.Sweep) (ivcurve.ForwardResult, error) {
		return ivcurve.FitForward(s, j.StartVoltage)
	})
	if err != nil {
		return err
	}

	for k, r := range results {
		sr := SensorResult{Sensor: r.Sensor, Value: r.Result.RQuenching, Std: r.Result.RQuenchingStd, Err: r.Err}
		if r.Err == nil && j.Plots {
			path := j.plotPath(*rep, r.Sensor)
			if err := report.ForwardPlot(path, sweeps[k], r.Result); err != nil {
				return fmt.Errorf("pipeline: plot sensor %s: %w", r.Sensor, err)
			}
			rep.Files = append(rep.Files, path)
		}
		rep.Sensors = append(rep.Sensors, sr)
	}

	return nil
}

func (j *SiPMJob) fitReverse(rep *SweepReport, sweeps []ivcurve.Sweep) error {
	results, err := ivcurve.FitGroups(context.Background(), sweeps, j.Workers, func(s ivcurve.Sweep) (ivcurve.ReverseResult, error) {
		return ivcurve.FitReverse(s, j.PeakHalfWidth)
	})
	if err != nil {
		return err
	}

	for k, r := range results {
		sr := SensorResult{Sensor: r.Sensor, Value: r.Result.VBd, Std: r.Result.VBdStd, Err: r.Err}
		if r.Err == nil && j.Plots {
			path := j.plotPath(*rep, r.Sensor)
			if err := report.ReversePlot(path, sweeps[k], r.Result); err != nil {
				return fmt.Errorf("pipeline: plot sensor %s: %w", r.Sensor, err)
			}
			rep.Files = append(rep.Files, path)
		}
		rep.Sensors = append(rep.Sensors, sr)
	}

	return nil
}
