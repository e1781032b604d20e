package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
	"github.com/kanenguyen264/library-management-sub008/pkg/constant"
)

// usernameAttempts bounds retries when a generated username collides with
// an existing one.
const usernameAttempts = 3

// OAuthService resolves an external OAuth identity to exactly one local
// user. Resolution paths are tried in strict order: existing link, then
// email match, then account creation.
type OAuthService struct {
	users  domain.UserStore
	links  domain.OAuthLinkStore
	hasher domain.PasswordHasher
	audit  domain.AuditSink
	clock  domain.Clock
}

func NewOAuthService(
	users domain.UserStore,
	links domain.OAuthLinkStore,
	hasher domain.PasswordHasher,
	audit domain.AuditSink,
	clock domain.Clock,
) *OAuthService {
	return &OAuthService{
		users:  users,
		links:  links,
		hasher: hasher,
		audit:  audit,
		clock:  clock,
	}
}

func (s *OAuthService) SignIn(ctx context.Context, info domain.OAuthUserInfo, ip, userAgent string) (*domain.User, error) {
	link, err := s.links.FindByProviderIdentity(ctx, info.Provider, info.ProviderUserID)
	if err != nil {
		return nil, err
	}

	if link != nil {
		user, err := s.users.FindByID(ctx, link.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, autherror.ErrLinkedAccountMissing
		}
		if !user.IsActive {
			s.audit.RecordAuthFailure(ctx, user.Email, ip, "account_inactive", userAgent,
				map[string]string{"provider": info.Provider})
			return nil, autherror.ErrAccountInactive
		}

		if err := s.links.TouchLogin(ctx, link.ID, ip, s.clock.Now()); err != nil {
			return nil, err
		}

		s.audit.RecordAuthSuccess(ctx, user.ID, ip, userAgent,
			map[string]string{"provider": info.Provider})

		return user, nil
	}

	if info.Email != "" {
		user, err := s.users.FindByEmail(ctx, strings.ToLower(info.Email))
		if err != nil {
			return nil, err
		}
		if user != nil {
			if err := s.createLink(ctx, user.ID, info, ip); err != nil {
				return nil, err
			}

			s.audit.RecordAuthSuccess(ctx, user.ID, ip, userAgent,
				map[string]string{"provider": info.Provider, "action": "link"})

			return user, nil
		}
	}

	user, err := s.createUser(ctx, info, ip)
	if err != nil {
		return nil, err
	}
	if err := s.createLink(ctx, user.ID, info, ip); err != nil {
		return nil, err
	}

	s.audit.RecordAuthSuccess(ctx, user.ID, ip, userAgent,
		map[string]string{"provider": info.Provider, "action": "register"})

	return user, nil
}

func (s *OAuthService) createLink(ctx context.Context, userID string, info domain.OAuthUserInfo, ip string) error {
	now := s.clock.Now()

	return s.links.Create(ctx, &domain.OAuthLink{
		ID:             uuid.NewString(),
		UserID:         userID,
		Provider:       info.Provider,
		ProviderUserID: info.ProviderUserID,
		Email:          info.Email,
		Name:           info.Name,
		Picture:        info.Picture,
		CreatedAt:      now,
		LastLoginAt:    now,
		LastLoginIP:    ip,
	})
}

func (s *OAuthService) createUser(ctx context.Context, info domain.OAuthUserInfo, ip string) (*domain.User, error) {
	// The account is OAuth-only, so it gets a random password nobody can
	// ever type in.
	hash, err := s.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var lastErr error
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user := &domain.User{
			ID:             uuid.NewString(),
			Username:       generateUsername(info),
			Email:          strings.ToLower(info.Email),
			PasswordHash:   hash,
			FullName:       info.Name,
			AvatarURL:      info.Picture,
			RoleID:         constant.DefaultUserRoleID,
			IsActive:       true,
			IsOAuthUser:    true,
			RegistrationIP: ip,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		err := s.users.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, autherror.ErrUsernameTaken) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

var nonWord = regexp.MustCompile(`[^a-z0-9_]`)

// generateUsername derives a base from the email local part, else a
// slugified display name, else "<provider>_user", and appends a random
// 6-digit suffix. Collisions are handled by the caller's retry loop.
func generateUsername(info domain.OAuthUserInfo) string {
	var base string
	switch {
	case info.Email != "":
		base = strings.ToLower(strings.SplitN(info.Email, "@", 2)[0])
	case info.Name != "":
		base = nonWord.ReplaceAllString(strings.ToLower(info.Name), "")
	default:
		base = info.Provider + "_user"
	}

	return fmt.Sprintf("%s_%06d", base, rand.Intn(1000000))
}
