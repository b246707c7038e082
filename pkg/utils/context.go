package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	SessionKey   contextKey = "session"
)

// GetSessionIDFromContext returns the browser session id set by the session middleware.
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	sessionIDVal := ctx.Value(SessionIDKey)
	if sessionIDVal == nil {
		return uuid.Nil, false
	}

	sessionIDStr, ok := sessionIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return sessionID, true
}

// SetSessionContext stores the session id and the session value itself.
func SetSessionContext(ctx context.Context, sessionID uuid.UUID, session any) context.Context {
	ctx = context.WithValue(ctx, SessionIDKey, sessionID.String())
	ctx = context.WithValue(ctx, SessionKey, session)
	return ctx
}

// GetSessionFromContext returns the session value stored by SetSessionContext.
func GetSessionFromContext[T any](ctx context.Context) (T, bool) {
	session, ok := ctx.Value(SessionKey).(T)
	return session, ok
}
