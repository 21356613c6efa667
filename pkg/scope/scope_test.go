package scope_test

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
	"github.com/fjglira/GoE2E-StepContext/pkg/stepcontext"
)

func step(t domain.StepDefinitionType, text string) domain.StepInfo {
	return domain.NewStepInfo(t, text, nil, nil)
}

var _ = Describe("Scope", func() {
	var (
		s      *scope.Scope
		events []scope.Event
		hook   *logtest.Hook
		ctx    context.Context
	)

	kinds := func() []scope.EventKind {
		var out []scope.EventKind
		for _, e := range events {
			out = append(out, e.Kind)
		}
		return out
	}

	BeforeEach(func() {
		var logger *logrus.Logger
		logger, hook = logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		events = nil
		s = scope.New(nil, logger, scope.ObserverFunc(func(e scope.Event) {
			events = append(events, e)
		}))
		s.Begin(domain.ScenarioInfo{Title: "checkout", Tags: []string{"@smoke"}})
		ctx = context.Background()
	})

	Describe("Step", func() {
		It("should push and pop around the body", func() {
			var seen domain.StepInfo
			err := s.Step(ctx, step(domain.Given, "a cart"), func(context.Context) error {
				seen, _ = s.Manager().StepContext()
				return nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(seen.Text).To(Equal("a cart"))
			Expect(s.Manager().Depth()).To(BeZero())
			Expect(kinds()).To(Equal([]scope.EventKind{scope.ScenarioStarted, scope.StepEntered, scope.StepExited}))
		})

		It("should pop and return the body error", func() {
			boom := errors.New("boom")
			err := s.Step(ctx, step(domain.When, "paying"), func(context.Context) error {
				return boom
			})
			Expect(err).To(MatchError(boom))
			Expect(s.Manager().Depth()).To(BeZero())
			Expect(events[len(events)-1].Err).To(MatchError(boom))
		})

		It("should pop even when the body panics", func() {
			Expect(func() {
				_ = s.Step(ctx, step(domain.When, "exploding"), func(context.Context) error {
					panic("kaboom")
				})
			}).To(PanicWith("kaboom"))
			Expect(s.Manager().Depth()).To(BeZero())
			Expect(events[len(events)-1].Kind).To(Equal(scope.StepExited))
			Expect(events[len(events)-1].Err).To(MatchError(scope.ErrStepAborted))
		})

		It("should track nested steps through the context", func() {
			var innerTop domain.StepDefinitionType
			var innerDepth int
			err := s.Step(ctx, step(domain.When, "I check out"), func(ctx context.Context) error {
				return scope.Nested(ctx, step(domain.Given, "a payment method"), func(ctx context.Context) error {
					innerTop, _ = s.Manager().CurrentTopLevelStepDefinitionType()
					innerDepth = s.Manager().Depth()
					return nil
				})
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(innerTop).To(Equal(domain.When))
			Expect(innerDepth).To(Equal(2))

			top, ok := s.Manager().CurrentTopLevelStepDefinitionType()
			Expect(ok).To(BeTrue())
			Expect(top).To(Equal(domain.When))
		})

		It("should report nesting depth on events", func() {
			_ = s.Step(ctx, step(domain.Given, "outer"), func(ctx context.Context) error {
				return scope.Nested(ctx, step(domain.And, "inner"), func(context.Context) error { return nil })
			})

			var depths []int
			for _, e := range events[1:] {
				depths = append(depths, e.Depth)
			}
			Expect(depths).To(Equal([]int{1, 2, 2, 1}))
			for _, e := range events[1:] {
				Expect(e.HasTopLevel).To(BeTrue())
				Expect(e.TopLevel).To(Equal(domain.Given))
				Expect(e.Scenario.Title).To(Equal("checkout"))
			}
		})
	})

	Describe("Exit", func() {
		It("should report an imbalance and warn through the logger", func() {
			s.Exit(nil)

			Expect(kinds()).To(Equal([]scope.EventKind{scope.ScenarioStarted, scope.Imbalance}))
			var warnings []string
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel {
					warnings = append(warnings, entry.Message)
				}
			}
			Expect(warnings).To(Equal([]string{stepcontext.DisposedWarning}))
		})
	})

	Describe("End", func() {
		It("should dispose with steps still open", func() {
			s.Enter(step(domain.Given, "never finished"))
			Expect(func() { s.End(nil) }).ToNot(Panic())

			last := events[len(events)-1]
			Expect(last.Kind).To(Equal(scope.ScenarioEnded))
			Expect(last.Depth).To(Equal(1))
			Expect(s.Manager().Depth()).To(BeZero())
		})
	})

	Describe("after End", func() {
		It("should ignore step hooks until the next scenario begins", func() {
			s.Enter(step(domain.Given, "fails"))
			s.Exit(errors.New("failed"))
			s.End(errors.New("failed"))
			before := len(events)

			s.Enter(step(domain.When, "skipped"))
			s.Exit(nil)
			s.Exit(nil)
			s.End(nil)

			Expect(events).To(HaveLen(before))
			for _, entry := range hook.AllEntries() {
				Expect(entry.Level).ToNot(Equal(logrus.WarnLevel))
			}

			s.Begin(domain.ScenarioInfo{Title: "retry"})
			s.Enter(step(domain.Then, "runs again"))
			Expect(s.Manager().Depth()).To(Equal(1))
			Expect(events[len(events)-1].Kind).To(Equal(scope.StepEntered))
		})
	})

	Describe("Begin", func() {
		It("should reset the top-level type for the next scenario", func() {
			_ = s.Step(ctx, step(domain.Then, "done"), func(context.Context) error { return nil })
			s.Begin(domain.ScenarioInfo{Title: "second"})

			_, ok := s.Manager().CurrentTopLevelStepDefinitionType()
			Expect(ok).To(BeFalse())
			info, _ := s.Manager().ScenarioContext()
			Expect(info.Title).To(Equal("second"))
		})
	})

	Describe("Nested", func() {
		It("should fail without a scope in the context", func() {
			err := scope.Nested(context.Background(), step(domain.Given, "orphan"), func(context.Context) error { return nil })
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no step scope"))
		})
	})
})
