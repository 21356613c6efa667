// Package godogbind drives a scope.Scope from godog scenario and step hooks.
package godogbind

import (
	"context"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/GoE2E-StepContext/internal/config"
	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
	"github.com/fjglira/GoE2E-StepContext/pkg/stepcontext"
)

// Bind registers hooks on sc that push every executed step onto s and make
// s available to step definitions through the step context.Context.
func Bind(sc *godog.ScenarioContext, s *scope.Scope) {
	sc.Before(func(ctx context.Context, pickle *godog.Scenario) (context.Context, error) {
		s.Begin(ScenarioInfoFromPickle(pickle))
		return scope.NewContext(ctx, s), nil
	})

	sc.StepContext().Before(func(ctx context.Context, st *godog.Step) (context.Context, error) {
		s.Enter(StepInfoFromPickle(st))
		return ctx, nil
	})

	sc.StepContext().After(func(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
		s.Exit(err)
		return ctx, nil
	})

	sc.After(func(ctx context.Context, pickle *godog.Scenario, err error) (context.Context, error) {
		s.End(err)
		return ctx, nil
	})
}

// Initializer returns a godog ScenarioInitializer that gives every scenario
// its own Scope before calling register to add step definitions. Use it when
// building a godog.TestSuite by hand; LoadSuite does this from a config file.
func Initializer(log logrus.FieldLogger, sink stepcontext.DiagnosticSink, register func(*godog.ScenarioContext), observers ...scope.Observer) func(*godog.ScenarioContext) {
	return func(sc *godog.ScenarioContext) {
		Bind(sc, scope.New(sink, log, observers...))
		if register != nil {
			register(sc)
		}
	}
}

// StepInfoFromPickle converts a compiled godog step.
// Pickles carry no And/But keyword, so continuation steps take the type of
// the step they continue.
func StepInfoFromPickle(st *godog.Step) domain.StepInfo {
	var (
		table [][]string
		doc   *string
	)
	if arg := st.Argument; arg != nil {
		if arg.DataTable != nil {
			table = make([][]string, 0, len(arg.DataTable.Rows))
			for _, row := range arg.DataTable.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, cell := range row.Cells {
					cells = append(cells, cell.Value)
				}
				table = append(table, cells)
			}
		}
		if arg.DocString != nil {
			content := arg.DocString.Content
			doc = &content
		}
	}
	return domain.NewStepInfo(stepType(st.Type), st.Text, table, doc)
}

func stepType(t messages.PickleStepType) domain.StepDefinitionType {
	switch t {
	case messages.PickleStepType_ACTION:
		return domain.When
	case messages.PickleStepType_OUTCOME:
		return domain.Then
	default:
		return domain.Given
	}
}

// ScenarioInfoFromPickle converts a compiled godog scenario.
func ScenarioInfoFromPickle(p *godog.Scenario) domain.ScenarioInfo {
	info := domain.ScenarioInfo{
		Title:  p.Name,
		Source: p.Uri,
	}
	for _, tag := range p.Tags {
		info.Tags = append(info.Tags, tag.Name)
	}
	return info
}

// Options maps the run section of the configuration onto godog options.
func Options(cfg config.RunConfig) godog.Options {
	return godog.Options{
		Format:      cfg.Format,
		Paths:       cfg.Paths,
		Tags:        cfg.Tags,
		Strict:      cfg.Strict == nil || *cfg.Strict,
		Concurrency: cfg.Concurrency,
		NoColors:    cfg.NoColors,
	}
}
