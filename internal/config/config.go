// Package config loads the YAML run configuration and decides how an input
// path is analysed.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-calib/internal/record"
	"github.com/cwbudde/algo-calib/measure/ivcurve"
	"github.com/cwbudde/algo-calib/measure/transition"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Run modes.
const (
	ModeAuto   = "auto"
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// Config is the complete run configuration.
type Config struct {
	Input     string  `yaml:"input"`
	Mode      string  `yaml:"mode"`
	OutputDir string  `yaml:"output_dir"`
	Claro     Claro   `yaml:"claro"`
	SiPM      SiPM    `yaml:"sipm"`
	Report    Report  `yaml:"report"`
	Logging   Logging `yaml:"logging"`
}

// Claro configures the transition scan analysis.
type Claro struct {
	Pattern           string `yaml:"pattern"`
	SinglePattern     string `yaml:"single_pattern"`
	Plots             bool   `yaml:"plots"`
	CurvePoints       int    `yaml:"curve_points"`
	ErfMaxEvaluations int    `yaml:"erf_max_evaluations"`
}

// SiPM configures the IV sweep analysis.
type SiPM struct {
	Pattern       string  `yaml:"pattern"`
	StartVoltage  float64 `yaml:"start_voltage"`
	PeakHalfWidth float64 `yaml:"peak_half_width"`
	Workers       int     `yaml:"workers"`
	Plots         bool    `yaml:"plots"`
}

// Report selects optional outputs.
type Report struct {
	XLSX bool `yaml:"xlsx"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Mode:      ModeAuto,
		OutputDir: ".",
		Claro: Claro{
			Pattern:           record.ScanPattern,
			SinglePattern:     record.SingleScanPattern,
			CurvePoints:       transition.DefaultCurvePoints,
			ErfMaxEvaluations: transition.DefaultErfMaxEvaluations,
		},
		SiPM: SiPM{
			Pattern:       record.SweepPattern,
			StartVoltage:  ivcurve.DefaultStartVoltage,
			PeakHalfWidth: ivcurve.DefaultPeakHalfWidth,
			Workers:       1,
			Plots:         true,
		},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string

	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Mode == ModeAuto || c.Mode == ModeSingle || c.Mode == ModeBatch, "mode %q is not auto, single or batch", c.Mode)
	check(c.OutputDir != "", "output_dir is empty")
	check(c.Claro.CurvePoints > 0, "claro.curve_points must be positive")
	check(c.Claro.ErfMaxEvaluations > 0, "claro.erf_max_evaluations must be positive")
	check(c.SiPM.PeakHalfWidth > 0, "sipm.peak_half_width must be positive")
	check(!math.IsNaN(c.SiPM.StartVoltage) && !math.IsInf(c.SiPM.StartVoltage, 0), "sipm.start_voltage must be finite")
	check(c.SiPM.Workers > 0, "sipm.workers must be positive")
	check(validLevel(c.Logging.Level), "logging.level %q is not debug, info, warn or error", c.Logging.Level)
	check(c.Logging.Format == "text" || c.Logging.Format == "json", "logging.format %q is not text or json", c.Logging.Format)

	patterns := []struct{ name, value string }{
		{"claro.pattern", c.Claro.Pattern},
		{"claro.single_pattern", c.Claro.SinglePattern},
		{"sipm.pattern", c.SiPM.Pattern},
	}
	for _, p := range patterns {
		_, err := record.CompilePattern(p.value)
		check(p.value != "" && err == nil, "%s %q is not a valid pattern", p.name, p.value)
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
