package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-calib/batch"
	"github.com/cwbudde/algo-calib/internal/config"
	"github.com/cwbudde/algo-calib/internal/pipeline"
	"github.com/cwbudde/algo-calib/internal/record"
)

var errBatchFailures = errors.New("some records could not be processed")

// inputPath picks the positional argument over the configured input.
func (a *app) inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return a.cfg.Input
}

// collect resolves a batch input to record paths.
func collect(input config.Input, path, pattern string) ([]string, error) {
	switch input {
	case config.InputDirectory:
		return record.Walk(path, pattern)
	case config.InputList:
		return record.ReadList(path)
	default:
		return nil, fmt.Errorf("calib: %s input is not a batch", input)
	}
}

// runBatch executes job over paths, writes the outcome files and prints a
// summary. Per-record failures are reported, not returned, unless every
// usable record failed.
func (a *app) runBatch(cmd *cobra.Command, job batch.Job, files pipeline.OutcomeFiles, paths []string) error {
	r := batch.Runner{Logger: a.log()}
	if !a.quiet {
		r.Progress = progressBar(cmd.ErrOrStderr())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "found %d files to read\n", len(paths))

	out := r.Run(job, paths)

	if err := pipeline.WriteOutcome(a.cfg.OutputDir, files, paths, out, a.cfg.Report.XLSX); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "found %d bad files\n", len(out.Malformed))
	fmt.Fprintf(w, "found %d good files\n", len(out.Usable))
	fmt.Fprintf(w, "processed %d, failed %d (insufficient data %d, fit divergence %d)\n",
		out.Processed(), len(out.Failures),
		out.CountKind(batch.KindInsufficientData), out.CountKind(batch.KindFitDivergence))
	fmt.Fprintf(w, "results written to %s\n", a.cfg.OutputDir)

	if len(out.Usable) > 0 && out.Processed() == 0 {
		return errBatchFailures
	}

	return nil
}
