// Package config assembles component configurations from CLI flags.
package config

import (
	"os"

	"deployment-report-service/internal/assembler"
	"deployment-report-service/internal/layout"
	"deployment-report-service/internal/render"
	"deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// CreateLoggerConfig builds the logger configuration for CLI usage;
// verbose switches to debug-level text output.
func CreateLoggerConfig(verbose bool) *logger.Config {
	if verbose {
		return logger.DebugConfig()
	}
	cfg := logger.DefaultConfig()
	cfg.Output = logger.StderrOutput
	return cfg
}

// CreateRenderConfig builds the table renderer geometry from the layout
// config so column widths fill the printable width exactly.
func CreateRenderConfig(lc *layout.Config) *render.Config {
	cfg := render.DefaultConfig()
	cfg.UsableWidth = 210 - lc.MarginLeft - lc.MarginRight
	return cfg
}

// CreateLayoutConfig builds and validates the page layout configuration
func CreateLayoutConfig() (*layout.Config, error) {
	cfg := layout.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CreateIconResolver builds the icon resolver for the given directory.
// An empty directory disables icons; a missing directory is a
// configuration error since the caller asked for it explicitly.
func CreateIconResolver(dir string, log logger.Logger) (render.IconResolver, error) {
	if dir == "" {
		return render.NoIcons{}, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "icons-dir", err)
	}
	if !info.IsDir() {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "icons-dir", nil).
			WithContext("path", dir)
	}
	return render.NewDirResolver(dir, log), nil
}

// CreateAssemblerOptions maps CLI flags onto report modes
func CreateAssemblerOptions(byUnit, compliance bool, month string, year int) assembler.Options {
	return assembler.Options{
		GroupByUnit: byUnit,
		Compliance:  compliance,
		Month:       month,
		Year:        year,
	}
}
