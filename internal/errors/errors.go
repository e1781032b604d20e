package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is disabled")
	ErrProviderNotConfigured = errors.New("oauth provider not configured")
	ErrProviderInactive      = errors.New("oauth provider is not active")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalid          = errors.New("token invalid")
	ErrEmailTaken            = errors.New("email already in use")
	ErrUsernameTaken         = errors.New("username already in use")
	ErrLinkedAccountMissing  = errors.New("linked account no longer exists")
)

// AccountLockedError tells the caller how long to wait before retrying.
type AccountLockedError struct {
	WaitMinutes int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account temporarily locked, retry in %d minutes", e.WaitMinutes)
}

// TokenExchangeError reports a failed authorization-code exchange. Detail
// carries upstream text and must only be logged, never shown to end users.
type TokenExchangeError struct {
	Provider string
	Detail   string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange with %s failed: %s", e.Provider, e.Detail)
}

// UserInfoError reports a failed userinfo fetch after a successful exchange.
type UserInfoError struct {
	Provider string
	Detail   string
}

func (e *UserInfoError) Error() string {
	return fmt.Sprintf("fetching user info from %s failed: %s", e.Provider, e.Detail)
}
