package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// WithUserID stores the operator id on ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the operator performing the call, from the context or the x-user-id metadata.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-user-id"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// Actor is GetUserID as a nullable column value.
func Actor(ctx context.Context) *string {
	if id := GetUserID(ctx); id != "" {
		return &id
	}
	return nil
}
