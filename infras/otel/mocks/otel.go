// Package mocks provides no-op tracing for tests. Unlike the generated
// gomock files elsewhere, these are hand-written: tests never assert on
// spans, they just need a Scope that does nothing.
package mocks

import (
	"context"

	"nestling/infras/otel"
)

type noopOtel struct{}

func NewOtel() otel.Otel {
	return noopOtel{}
}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}
