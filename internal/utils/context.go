package utils

import (
	"context"
	"time"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "userID"
	ContextNameKey   contextKey = "userName"
)

// SessionData is what the session gate hands to handlers: the owning
// user's id and display name plus the expiry used by the gate itself.
type SessionData struct {
	UserID    string
	Name      string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

func GetNameFromContext(ctx context.Context) (string, bool) {
	name := ctx.Value(ContextNameKey)
	nameStr, ok := name.(string)
	return nameStr, ok
}

func WithSession(ctx context.Context, s SessionData) context.Context {
	ctx = context.WithValue(ctx, ContextUserIDKey, s.UserID)
	return context.WithValue(ctx, ContextNameKey, s.Name)
}
