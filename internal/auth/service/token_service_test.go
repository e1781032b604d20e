package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanenguyen264/library-management-sub008/config"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
	"github.com/kanenguyen264/library-management-sub008/pkg/constant"
)

func testTokenService(clock domain.Clock) *TokenService {
	if clock == nil {
		clock = SystemClock()
	}
	return NewTokenService(&config.Config{
		AccessTokenSecret:        "test-access-secret-key-123",
		RefreshTokenSecret:       "test-refresh-secret-key-456",
		AccessExpiryMin:          15,
		RefreshExpiryMin:         10080,
		ExtendedAccessExpiryMin:  1440,
		ExtendedRefreshExpiryMin: 43200,
	}, clock)
}

func TestNewTokenService(t *testing.T) {
	ts := testTokenService(nil)

	assert.Equal(t, 15*time.Minute, ts.AccessTokenExpiry)
	assert.Equal(t, 10080*time.Minute, ts.RefreshTokenExpiry)
	assert.Equal(t, 1440*time.Minute, ts.ExtendedAccessExpiry)
	assert.Equal(t, 43200*time.Minute, ts.ExtendedRefreshExpiry)
}

func TestTokenService_Issue_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		scopes     []string
		rememberMe bool
		wantExpiry time.Duration
	}{
		{
			name:       "standard ttl",
			userID:     "user-123",
			scopes:     []string{constant.ScopeUser},
			rememberMe: false,
			wantExpiry: 15 * time.Minute,
		},
		{
			name:       "extended ttl with remember me",
			userID:     "user-456",
			scopes:     []string{constant.ScopeUser, constant.ScopeAdmin},
			rememberMe: true,
			wantExpiry: 1440 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testTokenService(nil)

			pair, err := ts.Issue(tt.userID, tt.scopes, tt.rememberMe)
			require.NoError(t, err)
			require.NotNil(t, pair)

			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
			assert.Equal(t, constant.TokenTypeBearer, pair.TokenType)
			assert.Equal(t, int(tt.wantExpiry.Seconds()), pair.ExpiresIn)

			claims, err := ts.Decode(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.Subject)
			assert.Equal(t, tt.scopes, claims.Scopes)
			assert.Equal(t, tt.wantExpiry, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

			refreshClaims, err := ts.DecodeRefresh(pair.RefreshToken)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, refreshClaims.Subject)
		})
	}
}

func TestTokenService_Decode_Expired(t *testing.T) {
	// Issue on a clock set two hours in the past so the 15-minute access
	// token is already stale by the time it is decoded.
	ts := testTokenService(&fakeClock{now: time.Now().Add(-2 * time.Hour)})

	pair, err := ts.Issue("user-123", []string{constant.ScopeUser}, false)
	require.NoError(t, err)

	_, err = ts.Decode(pair.AccessToken)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestTokenService_Decode_Invalid(t *testing.T) {
	ts := testTokenService(nil)

	t.Run("garbage input", func(t *testing.T) {
		_, err := ts.Decode("not-a-token")
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testTokenService(nil)
		other.AccessTokenSecret = "a-different-secret"

		pair, err := other.Issue("user-123", []string{constant.ScopeUser}, false)
		require.NoError(t, err)

		_, err = ts.Decode(pair.AccessToken)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		pair, err := ts.Issue("user-123", []string{constant.ScopeUser}, false)
		require.NoError(t, err)

		_, err = ts.DecodeRefresh(pair.AccessToken)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})
}
