// Package report writes the artifacts of a calibration run: path lists,
// result tables, an optional xlsx workbook and fit plots.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/algo-calib/batch"
)

// Float formats v with the fewest digits that round-trip.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteLines writes one entry per line. An empty list yields an empty file.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteTable writes header and rows separated by comma ('\t' for TSV).
func WriteTable(path string, comma rune, header []string, rows []batch.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = comma

	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("report: %s: %w", path, err)
	}

	return f.Close()
}

// FailureHeader is the header of the failure table.
var FailureHeader = []string{"Path", "Kind", "Error"}

// WriteFailures writes the failed records of a batch as TSV.
func WriteFailures(path string, failures []batch.Failure) error {
	rows := make([]batch.Row, len(failures))
	for k, f := range failures {
		rows[k] = batch.Row{f.Path, string(f.Kind), f.Err.Error()}
	}

	return WriteTable(path, '\t', FailureHeader, rows)
}
