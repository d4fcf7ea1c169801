package request_id

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var requestIDKey = contextKey{}

func Set(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func Get(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Ensure returns ctx unchanged if it already carries a request id,
// otherwise a child context tagged with a fresh one.
func Ensure(ctx context.Context) context.Context {
	if Get(ctx) != "" {
		return ctx
	}
	return Set(ctx, uuid.New().String())
}
