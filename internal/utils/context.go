package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// SessionData is the session projection handed to middleware by a
// SessionFetcher. UserID is the session subject (the account id).
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}
