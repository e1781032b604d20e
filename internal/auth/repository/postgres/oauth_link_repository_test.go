package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	repo "github.com/kanenguyen264/library-management-sub008/internal/auth/repository/postgres"
)

var linkColumns = []string{
	"id", "user_id", "provider", "provider_user_id", "email", "name",
	"picture", "created_at", "last_login_at", "last_login_ip",
}

func TestFindByProviderIdentity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewOAuthLinkRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs("google", "g-123").
			WillReturnRows(pgxmock.NewRows(linkColumns).
				AddRow("link-1", "user-1", "google", "g-123", "alice@example.com", "Alice",
					"", now, now, "1.2.3.4"))

		link, err := r.FindByProviderIdentity(ctx, "google", "g-123")
		require.NoError(t, err)
		assert.Equal(t, "link-1", link.ID)
		assert.Equal(t, "user-1", link.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs("google", "unknown").
			WillReturnError(pgx.ErrNoRows)

		link, err := r.FindByProviderIdentity(ctx, "google", "unknown")
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id").
			WithArgs("google", "g-123").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.FindByProviderIdentity(ctx, "google", "g-123")
		assert.Error(t, err)
	})
}

func TestCreateOAuthLink(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewOAuthLinkRepository(mock)

	now := time.Now()
	link := &domain.OAuthLink{
		ID:             "link-1",
		UserID:         "user-1",
		Provider:       "google",
		ProviderUserID: "g-123",
		Email:          "alice@example.com",
		Name:           "Alice",
		CreatedAt:      now,
		LastLoginAt:    now,
		LastLoginIP:    "1.2.3.4",
	}

	mock.ExpectExec("INSERT INTO oauth_links").
		WithArgs(link.ID, link.UserID, link.Provider, link.ProviderUserID, link.Email,
			link.Name, link.Picture, link.CreatedAt, link.LastLoginAt, link.LastLoginIP).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.Create(context.Background(), link))
}

func TestTouchLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewOAuthLinkRepository(mock)
	at := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE oauth_links").
			WithArgs("link-1", at, "1.2.3.4").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, r.TouchLogin(context.Background(), "link-1", "1.2.3.4", at))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE oauth_links").
			WithArgs("link-1", at, "1.2.3.4").
			WillReturnError(fmt.Errorf("db error"))

		assert.Error(t, r.TouchLogin(context.Background(), "link-1", "1.2.3.4", at))
	})
}
