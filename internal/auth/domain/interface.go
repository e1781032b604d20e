package domain

import (
	"context"
	"time"
)

// UserStore is the persistence boundary for local users. Lookups return
// (nil, nil) when no row matches. Create returns ErrEmailTaken or
// ErrUsernameTaken from the errors package on uniqueness violations.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	List(ctx context.Context, limit, offset int) ([]User, error)
}

type OAuthLinkStore interface {
	FindByProviderIdentity(ctx context.Context, provider, providerUserID string) (*OAuthLink, error)
	Create(ctx context.Context, link *OAuthLink) error
	TouchLogin(ctx context.Context, linkID, ip string, at time.Time) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// AuditSink records authentication outcomes. Implementations are
// best-effort: a failed write must never propagate into the login flow.
type AuditSink interface {
	RecordAuthSuccess(ctx context.Context, userID, ip, userAgent string, details map[string]string)
	RecordAuthFailure(ctx context.Context, identifier, ip, reason, userAgent string, details map[string]string)
}

type Clock interface {
	Now() time.Time
}
