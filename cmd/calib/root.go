package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-calib/internal/config"
	"github.com/cwbudde/algo-calib/internal/logger"
)

// app carries the resolved configuration from the root command to the
// subcommands.
type app struct {
	cfg     config.Config
	quiet   bool
	cleanup func() error
}

func (a *app) log() *slog.Logger {
	return logger.L()
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	var (
		configPath string
		mode       string
		outputDir  string
		logLevel   string
		logFormat  string
		logFile    string
		xlsx       bool
	)

	cmd := &cobra.Command{
		Use:          "calib",
		Short:        "Detector calibration fit-and-extract engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("mode") {
				cfg.Mode = mode
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			if flags.Changed("log-file") {
				cfg.Logging.File = logFile
			}
			if flags.Changed("xlsx") {
				cfg.Report.XLSX = xlsx
			}

			if err := applySubcommandFlags(cmd, &cfg); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				File:   cfg.Logging.File,
			})
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.cleanup = cleanup
			logger.L().Debug("calib.config", "mode", cfg.Mode, "output_dir", cfg.OutputDir)

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}

			return nil
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&mode, "mode", config.ModeAuto, "input handling: auto|single|batch")
	pf.StringVarP(&outputDir, "output-dir", "o", ".", "directory for result files and plots")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text|json")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&xlsx, "xlsx", false, "also write the batch result table as .xlsx")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "do not draw the progress bar")

	cmd.AddCommand(claroCmd(a), sipmCmd(a))

	return cmd
}

// applySubcommandFlags copies explicitly set subcommand flags into cfg.
// Flags the running subcommand does not define are left alone.
func applySubcommandFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var err error

	if changed("plot") {
		if cfg.Claro.Plots, err = flags.GetBool("plot"); err != nil {
			return err
		}
	}

	if changed("curve-points") {
		if cfg.Claro.CurvePoints, err = flags.GetInt("curve-points"); err != nil {
			return err
		}
	}

	if changed("max-evaluations") {
		if cfg.Claro.ErfMaxEvaluations, err = flags.GetInt("max-evaluations"); err != nil {
			return err
		}
	}

	if changed("start-voltage") {
		if cfg.SiPM.StartVoltage, err = flags.GetFloat64("start-voltage"); err != nil {
			return err
		}
	}

	if changed("peak-half-width") {
		if cfg.SiPM.PeakHalfWidth, err = flags.GetFloat64("peak-half-width"); err != nil {
			return err
		}
	}

	if changed("workers") {
		if cfg.SiPM.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}

	if changed("plots") {
		if cfg.SiPM.Plots, err = flags.GetBool("plots"); err != nil {
			return err
		}
	}

	return nil
}
