package config

import (
	"fmt"
	"strings"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Logging validation
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}
	if cfg.Logging.Format != "" && cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		errs = append(errs, fmt.Sprintf("logging.format must be text or json (got %q)", cfg.Logging.Format))
	}

	// Run validation
	if len(cfg.Run.Paths) == 0 {
		errs = append(errs, "run.paths must not be empty")
	}
	if cfg.Run.Concurrency < 0 {
		errs = append(errs, "run.concurrency must not be negative")
	}

	// Trace validation
	if cfg.Trace.Enabled && cfg.Trace.Database == "" {
		errs = append(errs, "trace.database must be set when trace.enabled is true")
	}

	// Report validation
	switch cfg.Report.Format {
	case "markdown", "html", "terminal":
	default:
		errs = append(errs, fmt.Sprintf("report.format must be one of: markdown, html, terminal (got %q)", cfg.Report.Format))
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
