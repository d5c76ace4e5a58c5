// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// importing net/http.
package requestcontext

import (
	"context"

	"attest/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	actorIDKey   struct{}
	requestIDKey struct{}
)

// ActorID retrieves the authenticated caller identity from the context.
// Returns the zero value if not set.
func ActorID(ctx context.Context) domain.ActorID {
	if actor, ok := ctx.Value(actorIDKey{}).(domain.ActorID); ok {
		return actor
	}
	return domain.ActorID{}
}

// WithActorID injects a caller identity into the context.
func WithActorID(ctx context.Context, actor domain.ActorID) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actor)
}

// RequestID retrieves the correlation id from the context, or "" if not set.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a correlation id into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
