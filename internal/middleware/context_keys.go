package middleware

import (
	"context"
)

// contextKey is a private key type to prevent collisions in context values.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	userIDKey     = contextKey("userID")
	sessionIDKey  = contextKey("sessionID")
	requestIDName = "request_id"
)

// ContextWithUserID returns a context carrying the authenticated user ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ContextWithSessionID returns a context carrying the opaque session token.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetUserIDFromCtx retrieves the authenticated user ID from the request
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetSessionIDFromCtx retrieves the opaque session token from the request
// context.
func GetSessionIDFromCtx(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}
