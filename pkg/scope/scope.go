// Package scope runs one scenario's steps against a stepcontext.Manager and
// hands the scope to step bodies through context.Context.
package scope

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/stepcontext"
)

// ErrStepAborted is reported on the exit event of a step whose body did not return.
var ErrStepAborted = errors.New("step body did not return")

var scopeIDs atomic.Uint64

// Scope is a scenario-execution unit. It owns a Manager for the scenario's
// lifetime and is driven from a single goroutine.
type Scope struct {
	id        uint64
	mgr       *stepcontext.Manager
	log       logrus.FieldLogger
	observers []Observer

	scenario domain.ScenarioInfo
	seq      int
	ended    bool
}

// New creates a Scope. A nil sink sends diagnostics to log.
func New(sink stepcontext.DiagnosticSink, log logrus.FieldLogger, observers ...Observer) *Scope {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if sink == nil {
		sink = stepcontext.NewLogSink(log)
	}
	return &Scope{
		id:        scopeIDs.Add(1),
		mgr:       stepcontext.NewManager(sink),
		log:       log,
		observers: observers,
	}
}

// Manager exposes the step context to consumers such as hooks and reporters.
func (s *Scope) Manager() *stepcontext.Manager {
	return s.mgr
}

// Begin starts a scenario.
func (s *Scope) Begin(info domain.ScenarioInfo) {
	s.scenario = info
	s.ended = false
	s.mgr.InitializeScenarioContext(info)
	s.log.WithField("scenario", info.Title).Debug("Scenario started")
	s.emit(Event{Kind: ScenarioStarted})
}

// Enter marks info as executing. Call it right before the step body runs.
// After End it does nothing until the next Begin.
func (s *Scope) Enter(info domain.StepInfo) {
	if s.ended {
		return
	}
	s.mgr.InitializeStepContext(info)
	s.log.WithFields(logrus.Fields{
		"scenario": s.scenario.Title,
		"depth":    s.mgr.Depth(),
	}).Debugf("Entering step: %s", info)
	s.emit(Event{Kind: StepEntered, Step: info, Depth: s.mgr.Depth()})
}

// Exit marks the innermost step as finished with err. An Exit without a
// matching Enter is reported as an imbalance and otherwise ignored. After
// End it does nothing until the next Begin.
func (s *Scope) Exit(err error) {
	if s.ended {
		return
	}
	info, ok := s.mgr.StepContext()
	depth := s.mgr.Depth()
	s.mgr.CleanupStepContext()
	if !ok {
		s.emit(Event{Kind: Imbalance, Err: err})
		return
	}
	s.log.WithFields(logrus.Fields{
		"scenario": s.scenario.Title,
		"depth":    depth,
	}).Debugf("Leaving step: %s", info)
	s.emit(Event{Kind: StepExited, Step: info, Depth: depth, Err: err})
}

// Step runs body as the step described by info. The step is popped even if
// body panics; the panic keeps propagating.
func (s *Scope) Step(ctx context.Context, info domain.StepInfo, body func(context.Context) error) error {
	s.Enter(info)
	returned := false
	defer func() {
		if !returned {
			s.Exit(ErrStepAborted)
		}
	}()

	err := body(NewContext(ctx, s))
	returned = true
	s.Exit(err)
	return err
}

// End finishes the scenario and disposes the Manager, whether or not every
// step was cleaned up. Runners such as godog keep firing step hooks for the
// steps skipped after a failure; those are ignored once End has run.
func (s *Scope) End(err error) {
	if s.ended {
		return
	}
	s.ended = true
	left := s.mgr.Depth()
	if left > 0 {
		s.log.WithField("scenario", s.scenario.Title).Debugf("Disposing step context with %d step(s) still open", left)
	}
	s.emit(Event{Kind: ScenarioEnded, Depth: left, Err: err})
	s.mgr.Dispose()
}

func (s *Scope) emit(e Event) {
	s.seq++
	e.ScopeID = s.id
	e.Seq = s.seq
	e.Scenario = s.scenario
	e.TopLevel, e.HasTopLevel = s.mgr.CurrentTopLevelStepDefinitionType()
	for _, o := range s.observers {
		o.Observe(e)
	}
}
