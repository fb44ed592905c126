package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-calib/internal/config"
	"github.com/cwbudde/algo-calib/internal/pipeline"
	"github.com/cwbudde/algo-calib/measure/ivcurve"
)

func sipmCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "sipm [path]",
		Short: "Extract quenching resistance and breakdown voltage from SiPM IV sweeps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			path := a.inputPath(args)

			input, err := cfg.ResolveInput(path, cfg.SiPM.Pattern)
			if err != nil {
				return err
			}

			job := &pipeline.SiPMJob{
				StartVoltage:  cfg.SiPM.StartVoltage,
				PeakHalfWidth: cfg.SiPM.PeakHalfWidth,
				Workers:       cfg.SiPM.Workers,
				OutputDir:     cfg.OutputDir,
				Plots:         cfg.SiPM.Plots,
				Logger:        a.log(),
			}
			a.log().Info("sipm.start", "path", path, "input", input)

			if input == config.InputSingle {
				return a.sipmSingle(cmd, job, path)
			}

			paths, err := collect(input, path, cfg.SiPM.Pattern)
			if err != nil {
				return err
			}

			return a.runBatch(cmd, job, pipeline.SiPMFiles, paths)
		},
	}

	c.Flags().Float64("start-voltage", ivcurve.DefaultStartVoltage, "lower voltage bound of the forward regression")
	c.Flags().Float64("peak-half-width", ivcurve.DefaultPeakHalfWidth, "half-width of the breakdown peak window in V")
	c.Flags().Int("workers", 1, "sensors fitted concurrently")
	c.Flags().Bool("plots", true, "write one PDF plot per sensor")

	return c
}

func (a *app) sipmSingle(cmd *cobra.Command, job *pipeline.SiPMJob, path string) error {
	rep, err := job.Analyze(path)
	if err != nil {
		return err
	}

	value, unit := "R_quenching", "Ohm"
	if rep.Direction == ivcurve.Reverse {
		value, unit = "V_bd", "V"
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s sweep, Arduino %s, test %s, %s\n\n", rep.Direction, rep.Info.Arduino, rep.Info.Test, rep.Info.Temperature)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "SiPM\t%s (%s)\tStd\tStatus\n", value, unit)
	for _, s := range rep.Sensors {
		if s.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", s.Sensor, s.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\tok\n", s.Sensor, s.Value, s.Std)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, f := range rep.Files {
		fmt.Fprintf(w, "saved %s\n", f)
	}

	return nil
}
