package godogbind

import (
	"errors"
	"fmt"
	"io"

	"github.com/cucumber/godog"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/GoE2E-StepContext/internal/config"
	"github.com/fjglira/GoE2E-StepContext/internal/logging"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
	"github.com/fjglira/GoE2E-StepContext/pkg/trace"
)

// Suite is a godog test suite whose scenarios each run in their own
// step-context Scope. When tracing is enabled every scope is recorded to the
// trace database, which `stepctx report` renders.
//
// A godog test in another module typically does:
//
//	suite, err := godogbind.LoadSuite("checkout", "stepctx.yaml", registerSteps)
//	if err != nil {
//		t.Fatal(err)
//	}
//	defer suite.Close()
//	if suite.Run() != 0 {
//		t.Fatal("scenarios failed")
//	}
//
// Step definitions reach the current scope with scope.FromContext and run
// nested steps with scope.Nested.
type Suite struct {
	godog.TestSuite

	Log       *logrus.Logger
	logCloser io.Closer
	store     *trace.Store
	recorder  *trace.Recorder
}

// LoadSuite reads and validates the config file at path and builds a Suite from it.
func LoadSuite(name, path string, register func(*godog.ScenarioContext), observers ...scope.Observer) (*Suite, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return NewSuite(name, cfg, register, observers...)
}

// NewSuite builds a Suite running cfg.Run with register's step definitions.
func NewSuite(name string, cfg *config.Config, register func(*godog.ScenarioContext), observers ...scope.Observer) (*Suite, error) {
	log, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	s := &Suite{Log: log, logCloser: logCloser}
	if cfg.Trace.Enabled {
		s.store, err = trace.Open(cfg.Trace.Database)
		if err != nil {
			logCloser.Close()
			return nil, err
		}
		s.recorder = trace.NewRecorder(s.store, log)
		observers = append(observers, s.recorder)
		log.WithField("database", cfg.Trace.Database).Info("Recording step traces")
	}

	opts := Options(cfg.Run)
	s.TestSuite = godog.TestSuite{
		Name:                name,
		ScenarioInitializer: Initializer(log, nil, register, observers...),
		Options:             &opts,
	}
	return s, nil
}

// Close releases the trace database and log file. It reports the first
// trace write failure seen during the run.
func (s *Suite) Close() error {
	var errs []error
	if s.recorder != nil {
		if err := s.recorder.Err(); err != nil {
			errs = append(errs, fmt.Errorf("recording step traces: %w", err))
		}
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	errs = append(errs, s.logCloser.Close())
	return errors.Join(errs...)
}
