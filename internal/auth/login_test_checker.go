package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]string // token -> user id
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) UserID(_ context.Context, token string) (string, error) {
	uid, ok := c.LoggedSessions[token]
	if !ok {
		return "", ErrNotLoggedIn
	}
	return uid, nil
}
