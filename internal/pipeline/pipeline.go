// Package pipeline connects record readers, fitters and report writers
// into the Claro scan and SiPM sweep analyses.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-calib/batch"
	"github.com/cwbudde/algo-calib/internal/logger"
	"github.com/cwbudde/algo-calib/internal/report"
)

// OutcomeFiles names the artifacts of a batch run. Empty names are skipped.
type OutcomeFiles struct {
	All      string
	Bad      string
	Good     string
	Table    string
	Failures string
	XLSX     string
	Sheet    string
}

// ClaroFiles are the batch artifacts of the scan analysis.
var ClaroFiles = OutcomeFiles{
	All:      "claro_allfiles.txt",
	Bad:      "claro_badfiles.txt",
	Good:     "claro_goodfiles.txt",
	Table:    "processed_chips.txt",
	Failures: "claro_failures.txt",
	XLSX:     "processed_chips.xlsx",
	Sheet:    "processed_chips",
}

// SiPMFiles are the batch artifacts of the sweep analysis.
var SiPMFiles = OutcomeFiles{
	Bad:      "sipm_badfiles.txt",
	Good:     "sipm_goodfiles.txt",
	Table:    "sipm_results.tsv",
	Failures: "sipm_failures.txt",
	XLSX:     "sipm_results.xlsx",
	Sheet:    "sipm_results",
}

// WriteOutcome writes the path lists, the TSV result table, the failure
// table and, if xlsx is set, a workbook copy of the results into dir. All
// files are written even when empty.
func WriteOutcome(dir string, files OutcomeFiles, paths []string, out batch.Outcome, xlsx bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	lists := []struct {
		name  string
		lines []string
	}{
		{files.All, paths},
		{files.Bad, out.Malformed},
		{files.Good, out.Usable},
	}

	for _, l := range lists {
		if l.name == "" {
			continue
		}

		if err := report.WriteLines(filepath.Join(dir, l.name), l.lines); err != nil {
			return fmt.Errorf("pipeline: %s: %w", l.name, err)
		}
	}

	if err := report.WriteTable(filepath.Join(dir, files.Table), '\t', out.Header, out.Rows); err != nil {
		return fmt.Errorf("pipeline: %s: %w", files.Table, err)
	}

	if err := report.WriteFailures(filepath.Join(dir, files.Failures), out.Failures); err != nil {
		return fmt.Errorf("pipeline: %s: %w", files.Failures, err)
	}

	if xlsx {
		if err := report.WriteXLSX(filepath.Join(dir, files.XLSX), files.Sheet, out.Header, out.Rows); err != nil {
			return fmt.Errorf("pipeline: %s: %w", files.XLSX, err)
		}
	}

	return nil
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logger.L()
	}

	return l
}
