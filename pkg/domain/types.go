package domain

import (
	"fmt"
	"slices"
	"strings"
)

// StepDefinitionType is the Gherkin keyword a step was written with.
type StepDefinitionType int

const (
	Given StepDefinitionType = iota
	When
	Then
	And
	But
)

var stepDefinitionNames = [...]string{"Given", "When", "Then", "And", "But"}

func (t StepDefinitionType) String() string {
	if t < Given || t > But {
		return fmt.Sprintf("StepDefinitionType(%d)", int(t))
	}
	return stepDefinitionNames[t]
}

// ParseStepDefinitionType resolves a keyword such as "given" or "Then " to its type.
func ParseStepDefinitionType(keyword string) (StepDefinitionType, error) {
	k := strings.TrimSpace(keyword)
	for i, name := range stepDefinitionNames {
		if strings.EqualFold(k, name) {
			return StepDefinitionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step keyword %q", keyword)
}

// StepInfo describes one step occurrence. It is a value: copy it freely, never mutate it.
type StepInfo struct {
	Type          StepDefinitionType
	Text          string
	Table         [][]string // nil when the step has no data table
	MultilineText *string    // nil when the step has no doc string
}

// NewStepInfo builds a StepInfo that owns its own copy of table and multiline.
func NewStepInfo(t StepDefinitionType, text string, table [][]string, multiline *string) StepInfo {
	info := StepInfo{Type: t, Text: text}
	if table != nil {
		info.Table = make([][]string, len(table))
		for i, row := range table {
			info.Table[i] = slices.Clone(row)
		}
	}
	if multiline != nil {
		s := *multiline
		info.MultilineText = &s
	}
	return info
}

// Equal reports whether two StepInfo values describe the same step.
func (s StepInfo) Equal(o StepInfo) bool {
	if s.Type != o.Type || s.Text != o.Text {
		return false
	}
	if (s.Table == nil) != (o.Table == nil) || len(s.Table) != len(o.Table) {
		return false
	}
	for i := range s.Table {
		if !slices.Equal(s.Table[i], o.Table[i]) {
			return false
		}
	}
	if (s.MultilineText == nil) != (o.MultilineText == nil) {
		return false
	}
	return s.MultilineText == nil || *s.MultilineText == *o.MultilineText
}

func (s StepInfo) String() string {
	return s.Type.String() + " " + s.Text
}

// ScenarioInfo identifies the scenario a step context belongs to.
// The step-context core stores it but never looks inside.
type ScenarioInfo struct {
	Title       string
	Description string
	Source      string // feature file the scenario was compiled from
	Tags        []string
}
