package stepcontext

import "github.com/sirupsen/logrus"

// DiagnosticSink receives protocol-misuse warnings from a Manager.
type DiagnosticSink interface {
	Warn(message string)
}

// LogSink forwards diagnostics to a logrus logger.
type LogSink struct {
	log logrus.FieldLogger
}

// NewLogSink creates a DiagnosticSink backed by log.
func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log}
}

// Warn logs message at warning level, tagged with the stepcontext component.
func (s *LogSink) Warn(message string) {
	s.log.WithField("component", "stepcontext").Warn(message)
}

type discardSink struct{}

func (discardSink) Warn(string) {}
