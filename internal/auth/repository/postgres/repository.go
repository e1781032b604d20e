package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
)

// DBTX is the subset of pgxpool.Pool the repositories need; pgxmock
// satisfies it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements domain.UserStore on PostgreSQL.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `
	SELECT u.id, u.username, COALESCE(u.email, ''), u.password_hash, u.full_name, u.avatar_url,
	       u.role_id, r.name AS role_name, u.is_active, u.is_oauth_user,
	       u.registration_ip, u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id
`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.email = $1 LIMIT 1`, email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.username = $1 LIMIT 1`, username)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.id = $1 LIMIT 1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName,
		&user.AvatarURL, &user.RoleID, &user.RoleName, &user.IsActive,
		&user.IsOAuthUser, &user.RegistrationIP, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

// Create inserts the user. An absent email is stored as NULL so email-less
// accounts never collide on the unique email index.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, avatar_url,
		                   role_id, is_active, is_oauth_user, registration_ip, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, user.ID, user.Username, nullable(user.Email), user.PasswordHash, user.FullName, user.AvatarURL,
		user.RoleID, user.IsActive, user.IsOAuthUser, user.RegistrationIP, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, selectUser+` ORDER BY u.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName,
			&user.AvatarURL, &user.RoleID, &user.RoleName, &user.IsActive,
			&user.IsOAuthUser, &user.RegistrationIP, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// mapUniqueViolation translates 23505 errors into the auth error taxonomy
// using the violated constraint name; the database is the authority on
// email and username uniqueness.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "email"):
			return autherror.ErrEmailTaken
		case strings.Contains(pgErr.ConstraintName, "username"):
			return autherror.ErrUsernameTaken
		}
	}
	return err
}
