package scope

import (
	"context"

	"github.com/fjglira/GoE2E-StepContext/pkg/domain"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the Scope stored in ctx, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok && s != nil
}

// Nested runs body as a step invoked from inside another step's body.
func Nested(ctx context.Context, info domain.StepInfo, body func(context.Context) error) error {
	s, ok := FromContext(ctx)
	if !ok {
		return domain.NewError("bind", "", "no step scope in context for nested step "+info.String(), nil)
	}
	return s.Step(ctx, info, body)
}
