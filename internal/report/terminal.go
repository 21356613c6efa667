package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
	"github.com/fjglira/GoE2E-StepContext/pkg/trace"
)

var (
	scenarioStyle = lipgloss.NewStyle().Bold(true)
	keywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	topStyle      = lipgloss.NewStyle().Faint(true)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Terminal writes a compact, coloured step tree.
func Terminal(w io.Writer, traces []trace.ScenarioTrace) error {
	var b strings.Builder
	for _, t := range traces {
		fmt.Fprintln(&b, scenarioStyle.Render(t.Title))
		for _, e := range t.Events {
			indent := strings.Repeat("  ", max(e.Depth, 1))
			switch e.Kind {
			case scope.StepEntered:
				line := indent + keywordStyle.Render(e.StepType) + " " + e.StepText
				if e.Depth == 1 {
					line += "  " + topStyle.Render("["+e.TopLevel+"]")
				}
				fmt.Fprintln(&b, line)
			case scope.StepExited:
				if e.Error != "" {
					fmt.Fprintln(&b, indent+"  "+failStyle.Render("failed: "+e.Error))
				}
			case scope.Imbalance:
				fmt.Fprintln(&b, indent+warnStyle.Render("imbalance"))
			case scope.ScenarioEnded:
				if e.Depth > 0 {
					fmt.Fprintln(&b, "  "+warnStyle.Render(fmt.Sprintf("%d step(s) still open", e.Depth)))
				}
			}
		}
	}
	fmt.Fprintf(&b, "%d scenario(s)\n", len(traces))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return domain.NewError("report", "", "failed to write terminal report", err)
	}
	return nil
}
