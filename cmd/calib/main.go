// Command calib extracts calibration parameters from detector test data.
//
// Usage:
//
//	calib [global flags] claro [flags] [path]
//	calib [global flags] sipm [flags] [path]
//
// The path is analysed according to --mode. In auto mode a directory is
// searched for record files, a file whose name matches the single-record
// pattern is analysed on its own, and any other file is read as a list of
// record paths (for example a previous claro_goodfiles.txt).
//
// Examples:
//
//	calib claro ./secondolotto_1
//	calib claro --plot Ch_7_offset_0_Chip_004.txt
//	calib --output-dir results sipm ./iv_runs
//	calib --config calib.yaml --xlsx sipm ARDU_3_Test_2_f_25C_dataframe.csv
package main

import "os"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
