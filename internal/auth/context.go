package auth

import (
	"context"
)

// --- Context Helper Functions ---

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserIDFromContext retrieves the user id (int64) from the request context.
// Returns the id and true if found, otherwise 0 and false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
