package middleware

import (
	"context"

	"github.com/staybnb/staybnb-backend/internal/identity"
)

type contextKey string

const ctxCaller contextKey = "caller"

// CallerFromContext returns the resolved caller for the request, or the zero
// value when the request is anonymous.
func CallerFromContext(ctx context.Context) identity.Caller {
	if ctx == nil {
		return identity.Caller{}
	}
	if caller, ok := ctx.Value(ctxCaller).(identity.Caller); ok {
		return caller
	}
	return identity.Caller{}
}

// WithCaller injects the resolved caller into the context.
func WithCaller(ctx context.Context, caller identity.Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCaller, caller)
}
