package domain_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

var _ = Describe("StepDefinitionType", func() {
	DescribeTable("ParseStepDefinitionType",
		func(keyword string, expected domain.StepDefinitionType) {
			kind, err := domain.ParseStepDefinitionType(keyword)
			Expect(err).ToNot(HaveOccurred())
			Expect(kind).To(Equal(expected))
		},
		Entry("given", "Given", domain.Given),
		Entry("lower case when", "when", domain.When),
		Entry("then with trailing space", "Then ", domain.Then),
		Entry("and", "AND", domain.And),
		Entry("but", "But", domain.But),
	)

	It("should reject unknown keywords", func() {
		_, err := domain.ParseStepDefinitionType("Whenever")
		Expect(err).To(HaveOccurred())
	})

	It("should print keyword names", func() {
		Expect(domain.But.String()).To(Equal("But"))
		Expect(domain.StepDefinitionType(42).String()).To(Equal("StepDefinitionType(42)"))
	})
})

var _ = Describe("StepInfo", func() {
	It("should compare by value", func() {
		doc := "body"
		other := "body"
		a := domain.NewStepInfo(domain.Given, "a user", [][]string{{"x", "y"}}, &doc)
		b := domain.NewStepInfo(domain.Given, "a user", [][]string{{"x", "y"}}, &other)
		Expect(a.Equal(b)).To(BeTrue())

		Expect(a.Equal(domain.NewStepInfo(domain.Given, "a user", nil, &doc))).To(BeFalse())
		Expect(a.Equal(domain.NewStepInfo(domain.Given, "a user", [][]string{{"x", "z"}}, &doc))).To(BeFalse())
		Expect(a.Equal(domain.NewStepInfo(domain.Given, "a user", [][]string{{"x", "y"}}, nil))).To(BeFalse())
		Expect(a.Equal(domain.NewStepInfo(domain.When, "a user", [][]string{{"x", "y"}}, &doc))).To(BeFalse())
	})

	It("should copy the table and doc string it is built from", func() {
		table := [][]string{{"name"}, {"alice"}}
		doc := "original"
		info := domain.NewStepInfo(domain.Given, "users", table, &doc)

		table[1][0] = "mallory"
		doc = "changed"

		Expect(info.Table[1][0]).To(Equal("alice"))
		Expect(*info.MultilineText).To(Equal("original"))
	})

	It("should keep absent table and doc string as nil", func() {
		info := domain.NewStepInfo(domain.Then, "done", nil, nil)
		Expect(info.Table).To(BeNil())
		Expect(info.MultilineText).To(BeNil())
		Expect(info.String()).To(Equal("Then done"))
	})
})

var _ = Describe("StepContextError", func() {
	It("should format phase, scenario and cause", func() {
		cause := errors.New("disk full")
		err := domain.NewError("trace", "login", "failed to append event", cause)
		Expect(err.Error()).To(Equal("[trace] login: failed to append event: disk full"))
		Expect(errors.Is(err, cause)).To(BeTrue())
	})

	It("should omit empty scenario", func() {
		err := domain.NewError("config", "", "validation failed", nil)
		Expect(err.Error()).To(Equal("[config]: validation failed"))
	})
})
