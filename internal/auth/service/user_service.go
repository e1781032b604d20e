package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/dto"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
	"github.com/kanenguyen264/library-management-sub008/pkg/constant"
)

type UserService struct {
	users   domain.UserStore
	hasher  domain.PasswordHasher
	tokens  TokenGenerator
	lockout *LockoutStore
	audit   domain.AuditSink
	clock   domain.Clock
}

func NewUserService(
	users domain.UserStore,
	hasher domain.PasswordHasher,
	tokens TokenGenerator,
	lockout *LockoutStore,
	audit domain.AuditSink,
	clock domain.Clock,
) *UserService {
	return &UserService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		lockout: lockout,
		audit:   audit,
		clock:   clock,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrUsernameTaken
	}

	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       input.Username,
		Email:          email,
		PasswordHash:   hash,
		FullName:       input.FullName,
		RoleID:         constant.DefaultUserRoleID,
		IsActive:       true,
		RegistrationIP: input.IPAddress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.RecordAuthSuccess(ctx, user.ID, input.IPAddress, input.UserAgent,
		map[string]string{"action": "register"})

	return user, nil
}

// Authenticate verifies a username-or-email plus password pair. The order
// matters: the lockout check happens before the password comparison and
// failures are recorded after it, so lockout state cannot be learned from
// hash-comparison timing.
func (s *UserService) Authenticate(ctx context.Context, identifier, password, ip, userAgent string) (*domain.User, error) {
	// Normalize before anything keyed by the identifier, so casing
	// variants of one email share a single failure budget.
	identifier = normalizeIdentifier(identifier)

	if locked, remaining := s.lockout.IsLockedOut(identifier, ip); locked {
		s.audit.RecordAuthFailure(ctx, identifier, ip, "account_locked", userAgent, nil)
		return nil, &autherror.AccountLockedError{WaitMinutes: waitMinutes(remaining)}
	}

	user, err := s.resolveUser(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// Callers must not be able to tell a missing user from a wrong
	// password, only the audit trail distinguishes them.
	if user == nil {
		s.lockout.RecordFailure(identifier, ip)
		s.audit.RecordAuthFailure(ctx, identifier, ip, "user_not_found", userAgent, nil)
		return nil, autherror.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.audit.RecordAuthFailure(ctx, identifier, ip, "account_inactive", userAgent, nil)
		return nil, autherror.ErrAccountInactive
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.lockout.RecordFailure(identifier, ip)
		s.audit.RecordAuthFailure(ctx, identifier, ip, "invalid_password", userAgent,
			map[string]string{"user_id": user.ID})
		return nil, autherror.ErrInvalidCredentials
	}

	s.lockout.ResetFailures(identifier, ip)
	s.audit.RecordAuthSuccess(ctx, user.ID, ip, userAgent, nil)

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.Authenticate(ctx, input.Identifier, input.Password, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	return s.tokens.Issue(user.ID, ScopesFor(user), input.RememberMe)
}

// Refresh is stateless: the refresh token itself is the only credential.
// Revocation lives in an external session registry, not here.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokens.DecodeRefresh(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrTokenInvalid
	}
	if !user.IsActive {
		return nil, autherror.ErrAccountInactive
	}

	return s.tokens.Issue(user.ID, ScopesFor(user), false)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// resolveUser treats identifiers containing "@" as emails; usernames are
// matched case-sensitively. Callers pass a normalized identifier.
func (s *UserService) resolveUser(ctx context.Context, identifier string) (*domain.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.FindByEmail(ctx, identifier)
	}
	return s.users.FindByUsername(ctx, identifier)
}

// normalizeIdentifier lowercases emails; usernames keep their casing.
func normalizeIdentifier(identifier string) string {
	if strings.Contains(identifier, "@") {
		return strings.ToLower(strings.TrimSpace(identifier))
	}
	return identifier
}

func ScopesFor(user *domain.User) []string {
	if user.RoleName == constant.RoleNameAdmin {
		return []string{constant.ScopeUser, constant.ScopeAdmin}
	}
	return []string{constant.ScopeUser}
}

// waitMinutes rounds the remaining lock time up to whole minutes, with a
// floor of one so the user is never told to wait zero minutes.
func waitMinutes(remaining time.Duration) int {
	minutes := int(remaining / time.Minute)
	if remaining%time.Minute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
