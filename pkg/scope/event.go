package scope

import "github.com/fjglira/GoE2E-StepContext/pkg/domain"

// EventKind names a step-context lifecycle transition.
type EventKind string

const (
	ScenarioStarted EventKind = "scenario-start"
	StepEntered     EventKind = "step-enter"
	StepExited      EventKind = "step-exit"
	Imbalance       EventKind = "imbalance"
	ScenarioEnded   EventKind = "scenario-end"
)

// Event describes one transition of a Scope.
type Event struct {
	ScopeID  uint64 // distinguishes scenarios running concurrently
	Seq      int
	Kind     EventKind
	Scenario domain.ScenarioInfo
	Step     domain.StepInfo // zero for scenario and imbalance events
	// Depth is the 1-based nesting level of Step for enter/exit events and
	// the number of frames still pushed for scenario-end.
	Depth       int
	TopLevel    domain.StepDefinitionType
	HasTopLevel bool
	Err         error
}

// Observer is notified of every Event emitted by a Scope.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }
