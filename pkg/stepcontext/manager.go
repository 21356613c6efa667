// Package stepcontext tracks which step of a scenario is executing,
// including steps that run nested inside another step's body.
package stepcontext

import "github.com/fjglira/GoE2E-StepContext/pkg/domain"

// DisposedWarning is sent to the sink when a cleanup has no matching initialize.
const DisposedWarning = "The previous ScenarioStepContext was already disposed."

// Manager owns the step stack and the top-level latch for one
// scenario-execution scope. It is not safe for concurrent use.
type Manager struct {
	stack    Stack
	topLevel TopLevelTracker
	sink     DiagnosticSink

	scenario    domain.ScenarioInfo
	hasScenario bool
}

// NewManager creates a Manager reporting misuse to sink. A nil sink discards
// diagnostics.
func NewManager(sink DiagnosticSink) *Manager {
	if sink == nil {
		sink = discardSink{}
	}
	return &Manager{sink: sink}
}

// InitializeStepContext pushes info as the currently executing step. It is
// called right before a step body runs, whether the step is top-level or nested.
func (m *Manager) InitializeStepContext(info domain.StepInfo) {
	depth := m.stack.Depth()
	m.stack.Push(Frame{Step: info})
	m.topLevel.OnPush(depth, info)
}

// CleanupStepContext pops the current step. Popping an empty stack only
// produces a warning so that defensive cleanups during unwinding are harmless.
func (m *Manager) CleanupStepContext() {
	if _, ok := m.stack.Pop(); !ok {
		m.sink.Warn(DisposedWarning)
	}
}

// StepContext returns the innermost executing step.
func (m *Manager) StepContext() (domain.StepInfo, bool) {
	f, ok := m.stack.Peek()
	return f.Step, ok
}

// CurrentTopLevelStepDefinitionType returns the type of the step that most
// recently started a top-level run in this scenario.
func (m *Manager) CurrentTopLevelStepDefinitionType() (domain.StepDefinitionType, bool) {
	return m.topLevel.Current()
}

// InitializeScenarioContext records the scenario and clears the top-level
// latch. Frames left over from a previous scenario are kept as they are.
func (m *Manager) InitializeScenarioContext(info domain.ScenarioInfo) {
	m.scenario = info
	m.hasScenario = true
	m.topLevel.Reset()
}

// ScenarioContext returns the scenario recorded by InitializeScenarioContext.
func (m *Manager) ScenarioContext() (domain.ScenarioInfo, bool) {
	return m.scenario, m.hasScenario
}

// Depth reports how many steps are currently executing.
func (m *Manager) Depth() int {
	return m.stack.Depth()
}

// Dispose releases the frames and scenario reference. It never fails, even
// when steps are still pushed, and may be called more than once.
func (m *Manager) Dispose() {
	m.stack.drop()
	m.scenario = domain.ScenarioInfo{}
	m.hasScenario = false
}
