package auth

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when an operation requires a current
// session and none is present; mutating calls are rejected with it
// before reaching the store.
var ErrNotAuthenticated = errors.New("not authenticated")

type userIDContextKey struct{}

// ContextWithUserID stores the authenticated user's id, the tenant key
// for all storage paths, into the request context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey{}).(string)
	if !ok || userID == "" {
		return "", ErrNotAuthenticated
	}
	return userID, nil
}
