package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/kanenguyen264/library-management-sub008/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kanenguyen264/library-management-sub008/config"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/dto"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
	"github.com/kanenguyen264/library-management-sub008/pkg/constant"
)

type TokenGenerator interface {
	Issue(userID string, scopes []string, rememberMe bool) (*dto.TokenResponse, error)
	Decode(tokenString string) (*TokenClaims, error)
	DecodeRefresh(tokenString string) (*TokenClaims, error)
}

// TokenService signs and parses JWT pairs. Issuance times come from the
// injected clock; it holds no other state and is safe for concurrent use.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string

	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Expiries used when the caller asked to be remembered.
	ExtendedAccessExpiry  time.Duration
	ExtendedRefreshExpiry time.Duration

	clock domain.Clock
}

type TokenClaims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes,omitempty"`
}

func NewTokenService(cfg *config.Config, clock domain.Clock) *TokenService {
	return &TokenService{
		AccessTokenSecret:     cfg.AccessTokenSecret,
		RefreshTokenSecret:    cfg.RefreshTokenSecret,
		AccessTokenExpiry:     time.Duration(cfg.AccessExpiryMin) * time.Minute,
		RefreshTokenExpiry:    time.Duration(cfg.RefreshExpiryMin) * time.Minute,
		ExtendedAccessExpiry:  time.Duration(cfg.ExtendedAccessExpiryMin) * time.Minute,
		ExtendedRefreshExpiry: time.Duration(cfg.ExtendedRefreshExpiryMin) * time.Minute,
		clock:                 clock,
	}
}

func (ts *TokenService) Issue(userID string, scopes []string, rememberMe bool) (*dto.TokenResponse, error) {
	now := ts.clock.Now()

	accessExpiry := ts.AccessTokenExpiry
	refreshExpiry := ts.RefreshTokenExpiry
	if rememberMe {
		accessExpiry = ts.ExtendedAccessExpiry
		refreshExpiry = ts.ExtendedRefreshExpiry
	}

	accessClaims := TokenClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		refreshClaims).SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.TokenTypeBearer,
		ExpiresIn:    int(accessExpiry.Seconds()),
	}, nil
}

// Decode parses and validates an access token.
func (ts *TokenService) Decode(tokenString string) (*TokenClaims, error) {
	return ts.decode(tokenString, ts.AccessTokenSecret)
}

// DecodeRefresh parses and validates a refresh token. Refresh tokens are
// signed with a separate secret, so an access token can never pass here.
func (ts *TokenService) DecodeRefresh(tokenString string) (*TokenClaims, error) {
	return ts.decode(tokenString, ts.RefreshTokenSecret)
}

func (ts *TokenService) decode(tokenString, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}
