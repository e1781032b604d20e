package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/oauth"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/service"
	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
	"github.com/kanenguyen264/library-management-sub008/internal/observability"
)

const stateCookie = "oauth_state"

// CodeExchanger is what the callback needs from the OAuth2 exchanger.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, providerName, code string) (*oauth.TokenResponse, error)
	FetchUserInfo(ctx context.Context, providerName string, token *oauth.TokenResponse) (*domain.OAuthUserInfo, error)
}

type OAuthHandler struct {
	registry     *oauth.Registry
	exchanger    CodeExchanger
	oauthService *service.OAuthService
	tokenService service.TokenGenerator
	logger       *observability.Logger
}

func NewOAuthHandler(
	registry *oauth.Registry,
	exchanger CodeExchanger,
	oauthService *service.OAuthService,
	tokenService service.TokenGenerator,
	logger *observability.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		registry:     registry,
		exchanger:    exchanger,
		oauthService: oauthService,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (h *OAuthHandler) Authorize(c *fiber.Ctx) error {
	provider := c.Params("provider")

	state := uuid.NewString()
	authURL, err := h.registry.AuthorizationURL(provider, state)
	if err != nil {
		return writeAuthError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookie,
		Value:    state,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(authURL, fiber.StatusFound)
}

func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	provider := c.Params("provider")

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing authorization code"})
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookie) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid oauth state"})
	}
	c.ClearCookie(stateCookie)

	token, err := h.exchanger.ExchangeCode(c.Context(), provider, code)
	if err != nil {
		h.logger.Error("oauth_code_exchange_failed", map[string]any{
			"provider": provider,
			"error":    err.Error(),
		})
		return writeAuthError(c, err)
	}

	info, err := h.exchanger.FetchUserInfo(c.Context(), provider, token)
	if err != nil {
		h.logger.Error("oauth_userinfo_failed", map[string]any{
			"provider": provider,
			"error":    err.Error(),
		})
		return writeAuthError(c, err)
	}

	user, err := h.oauthService.SignIn(c.Context(), *info, c.IP(), string(c.Request().Header.UserAgent()))
	if err != nil {
		// Conflicts here mean the lookup-before-create ordering was beaten
		// by a concurrent write; that is a server fault, not a user one.
		if errors.Is(err, autherror.ErrEmailTaken) || errors.Is(err, autherror.ErrUsernameTaken) {
			h.logger.Error("oauth_account_conflict", map[string]any{
				"provider": provider,
				"error":    err.Error(),
			})
			observability.CaptureError(err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "oauth sign-in failed"})
		}
		return writeAuthError(c, err)
	}

	tokens, err := h.tokenService.Issue(user.ID, service.ScopesFor(user), false)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}
