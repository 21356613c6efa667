// Package report renders recorded step traces as nested step trees.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
	"github.com/fjglira/GoE2E-StepContext/pkg/trace"
)

// Render writes traces to w in the given format ("markdown", "html" or "terminal").
func Render(w io.Writer, format string, traces []trace.ScenarioTrace) error {
	switch format {
	case "markdown", "":
		return Markdown(w, traces)
	case "html":
		return HTML(w, traces)
	case "terminal":
		return Terminal(w, traces)
	default:
		return domain.NewError("report", "", fmt.Sprintf("unknown report format %q", format), nil)
	}
}

// Markdown writes one section per scenario with its steps as a nested list.
func Markdown(w io.Writer, traces []trace.ScenarioTrace) error {
	var b strings.Builder
	b.WriteString("# Step context trace\n")
	if len(traces) == 0 {
		b.WriteString("\nNo scenarios recorded.\n")
	}

	for _, t := range traces {
		fmt.Fprintf(&b, "\n## %s\n\n", escape(t.Title))
		if meta := metadata(t); meta != "" {
			fmt.Fprintf(&b, "_%s_\n\n", meta)
		}

		wrote := false
		for _, e := range t.Events {
			indent := strings.Repeat("  ", max(e.Depth-1, 0))
			switch e.Kind {
			case scope.StepEntered:
				fmt.Fprintf(&b, "%s- **%s** %s", indent, e.StepType, escape(e.StepText))
				if e.Depth == 1 {
					fmt.Fprintf(&b, " (top-level: %s)", e.TopLevel)
				}
				b.WriteString("\n")
			case scope.StepExited:
				if e.Error == "" {
					continue
				}
				fmt.Fprintf(&b, "%s  - failed: %s\n", indent, codeSpan(e.Error))
			case scope.Imbalance:
				b.WriteString("- imbalance: cleanup without a matching step\n")
			case scope.ScenarioEnded:
				if e.Depth == 0 {
					continue
				}
				fmt.Fprintf(&b, "- disposed with %d step(s) still open\n", e.Depth)
			default:
				continue
			}
			wrote = true
		}
		if !wrote {
			b.WriteString("No steps recorded.\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return domain.NewError("report", "", "failed to write markdown report", err)
	}
	return nil
}

// HTML renders the Markdown report to HTML.
func HTML(w io.Writer, traces []trace.ScenarioTrace) error {
	var md bytes.Buffer
	if err := Markdown(&md, traces); err != nil {
		return err
	}
	if err := goldmark.Convert(md.Bytes(), w); err != nil {
		return domain.NewError("report", "", "failed to render html report", err)
	}
	return nil
}

func metadata(t trace.ScenarioTrace) string {
	var parts []string
	if t.Source != "" {
		parts = append(parts, "Source: "+escape(t.Source))
	}
	if len(t.Tags) > 0 {
		parts = append(parts, "Tags: "+escape(strings.Join(t.Tags, " ")))
	}
	return strings.Join(parts, ", ")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpan wraps s in a code span whose fence is longer than any backtick
// run inside s.
func codeSpan(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}
