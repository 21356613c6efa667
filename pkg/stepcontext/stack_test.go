package stepcontext_test

import (
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
	"github.com/fjglira/GoE2E-StepContext/pkg/stepcontext"
)

var _ = Describe("Stack", func() {
	var s *stepcontext.Stack

	BeforeEach(func() {
		s = &stepcontext.Stack{}
	})

	It("should pop frames in LIFO order", func() {
		s.Push(stepcontext.Frame{Step: step(domain.Given, "first")})
		s.Push(stepcontext.Frame{Step: step(domain.When, "second")})
		Expect(s.Depth()).To(Equal(2))

		f, ok := s.Pop()
		Expect(ok).To(BeTrue())
		Expect(f.Step.Text).To(Equal("second"))

		f, ok = s.Pop()
		Expect(ok).To(BeTrue())
		Expect(f.Step.Text).To(Equal("first"))
		Expect(s.Depth()).To(BeZero())
	})

	It("should report empty without mutating", func() {
		_, ok := s.Pop()
		Expect(ok).To(BeFalse())
		_, ok = s.Peek()
		Expect(ok).To(BeFalse())
		Expect(s.Depth()).To(BeZero())
	})

	It("should peek without popping", func() {
		s.Push(stepcontext.Frame{Step: step(domain.Then, "top")})
		f, ok := s.Peek()
		Expect(ok).To(BeTrue())
		Expect(f.Step.Text).To(Equal("top"))
		Expect(s.Depth()).To(Equal(1))
	})
})

var _ = Describe("TopLevelTracker", func() {
	It("should latch only when pushing onto an empty stack", func() {
		var t stepcontext.TopLevelTracker
		t.OnPush(1, step(domain.When, "nested"))
		_, ok := t.Current()
		Expect(ok).To(BeFalse())

		t.OnPush(0, step(domain.Given, "root"))
		t.OnPush(3, step(domain.Then, "deep"))
		kind, ok := t.Current()
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(domain.Given))

		t.Reset()
		_, ok = t.Current()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("LogSink", func() {
	It("should log diagnostics at warning level", func() {
		logger, hook := logtest.NewNullLogger()
		mgr := stepcontext.NewManager(stepcontext.NewLogSink(logger))

		mgr.CleanupStepContext()

		Expect(hook.Entries).To(HaveLen(1))
		Expect(hook.LastEntry().Level).To(Equal(logrus.WarnLevel))
		Expect(hook.LastEntry().Message).To(Equal(stepcontext.DisposedWarning))
		Expect(hook.LastEntry().Data).To(HaveKeyWithValue("component", "stepcontext"))
	})
})
