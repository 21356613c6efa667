package domain

import "fmt"

// StepContextError is the base error type with context.
type StepContextError struct {
	Phase    string // "config", "bind", "trace", "report"
	Scenario string
	Message  string
	Cause    error
}

func (e *StepContextError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Scenario != "" {
		s += fmt.Sprintf(" %s", e.Scenario)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *StepContextError) Unwrap() error {
	return e.Cause
}

// NewError creates a new StepContextError.
func NewError(phase, scenario, message string, cause error) *StepContextError {
	return &StepContextError{
		Phase:    phase,
		Scenario: scenario,
		Message:  message,
		Cause:    cause,
	}
}
