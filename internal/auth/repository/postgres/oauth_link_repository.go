package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
)

// OAuthLinkRepository implements domain.OAuthLinkStore on PostgreSQL. The
// oauth_links table carries a unique index on (provider, provider_user_id).
type OAuthLinkRepository struct {
	db DBTX
}

func NewOAuthLinkRepository(db DBTX) *OAuthLinkRepository {
	return &OAuthLinkRepository{db: db}
}

func (r *OAuthLinkRepository) FindByProviderIdentity(ctx context.Context, provider, providerUserID string) (*domain.OAuthLink, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, provider, provider_user_id, email, name, picture,
		       created_at, last_login_at, last_login_ip
		FROM oauth_links
		WHERE provider = $1 AND provider_user_id = $2
		LIMIT 1
	`, provider, providerUserID)

	var link domain.OAuthLink
	err := row.Scan(
		&link.ID, &link.UserID, &link.Provider, &link.ProviderUserID,
		&link.Email, &link.Name, &link.Picture,
		&link.CreatedAt, &link.LastLoginAt, &link.LastLoginIP,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan oauth link: %w", err)
	}

	return &link, nil
}

func (r *OAuthLinkRepository) Create(ctx context.Context, link *domain.OAuthLink) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO oauth_links (id, user_id, provider, provider_user_id, email, name,
		                         picture, created_at, last_login_at, last_login_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, link.ID, link.UserID, link.Provider, link.ProviderUserID, link.Email, link.Name,
		link.Picture, link.CreatedAt, link.LastLoginAt, link.LastLoginIP)
	if err != nil {
		return fmt.Errorf("failed to create oauth link: %w", err)
	}

	return nil
}

func (r *OAuthLinkRepository) TouchLogin(ctx context.Context, linkID, ip string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE oauth_links
		SET last_login_at = $2, last_login_ip = $3
		WHERE id = $1
	`, linkID, at, ip)
	if err != nil {
		return fmt.Errorf("failed to touch oauth link: %w", err)
	}

	return nil
}
