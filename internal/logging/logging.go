// Package logging builds the logrus logger shared by the CLI and the
// step-context diagnostics.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/GoE2E-StepContext/internal/config"
	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

// New creates a logger from cfg writing to stderr, or to cfg.File when set.
// The returned closer releases the log file and is never nil.
func New(cfg config.LoggingConfig) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nopCloser{}, domain.NewError("config", "", "invalid logging.level", err)
	}
	log.SetLevel(lvl)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		return log, nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nopCloser{}, domain.NewError("config", "", "failed to open log file "+cfg.File, err)
	}
	log.SetOutput(f)
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
