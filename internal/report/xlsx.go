package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-calib/batch"
)

// WriteXLSX stores a result table in a single-sheet workbook. Cells that
// parse as numbers are written as numbers.
func WriteXLSX(path, sheet string, header []string, rows []batch.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("report: xlsx sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, header, false); err != nil {
		return err
	}

	for k, row := range rows {
		if err := setRow(f, sheet, k+2, row, true); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: xlsx save: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []string, numeric bool) error {
	for k, v := range values {
		cell, err := excelize.CoordinatesToCellName(k+1, n)
		if err != nil {
			return err
		}

		var value any = v
		if numeric {
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				value = x
			}
		}

		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("report: xlsx %s: %w", cell, err)
		}
	}

	return nil
}
