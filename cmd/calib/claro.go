package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-calib/internal/config"
	"github.com/cwbudde/algo-calib/internal/pipeline"
	"github.com/cwbudde/algo-calib/measure/transition"
)

func claroCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "claro [path]",
		Short: "Fit transition points of Claro S-curve scans",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			path := a.inputPath(args)

			input, err := cfg.ResolveInput(path, cfg.Claro.SinglePattern)
			if err != nil {
				return err
			}

			opts := transition.Options{MaxEvaluations: cfg.Claro.ErfMaxEvaluations}
			a.log().Info("claro.start", "path", path, "input", input)

			if input == config.InputSingle {
				return a.claroSingle(cmd, path, opts)
			}

			paths, err := collect(input, path, cfg.Claro.Pattern)
			if err != nil {
				return err
			}

			files := pipeline.ClaroFiles
			if input == config.InputList {
				files.All = ""
			}

			return a.runBatch(cmd, &pipeline.ClaroJob{Options: opts, Logger: a.log()}, files, paths)
		},
	}

	c.Flags().Bool("plot", false, "save a PNG plot of a single scan")
	c.Flags().Int("curve-points", transition.DefaultCurvePoints, "points of the plotted erf curve")
	c.Flags().Int("max-evaluations", transition.DefaultErfMaxEvaluations, "erf solver evaluation limit")

	return c
}

func (a *app) claroSingle(cmd *cobra.Command, path string, opts transition.Options) error {
	rep, err := pipeline.AnalyzeScan(path, opts, a.log())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if err := rep.Print(w); err != nil {
		return err
	}

	if a.cfg.Claro.Plots {
		plot, err := rep.SavePlot(a.cfg.OutputDir, a.cfg.Claro.CurvePoints)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "plot saved as %s\n", plot)
	}

	return nil
}
