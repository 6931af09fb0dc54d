package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a session token to the user id it belongs to.
type Checker interface {
	UserID(ctx context.Context, token string) (string, error)
}
