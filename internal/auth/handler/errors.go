package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/kanenguyen264/library-management-sub008/internal/errors"
)

// writeAuthError maps the auth error taxonomy onto HTTP responses. Invalid
// credentials stay generic so callers cannot tell which accounts exist.
func writeAuthError(c *fiber.Ctx, err error) error {
	var locked *autherror.AccountLockedError
	if errors.As(err, &locked) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":        "account temporarily locked",
			"wait_minutes": locked.WaitMinutes,
		})
	}

	switch {
	case errors.Is(err, autherror.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case errors.Is(err, autherror.ErrTokenExpired), errors.Is(err, autherror.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	case errors.Is(err, autherror.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "account is disabled"})
	case errors.Is(err, autherror.ErrProviderNotConfigured), errors.Is(err, autherror.ErrProviderInactive):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrEmailTaken), errors.Is(err, autherror.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	var exchange *autherror.TokenExchangeError
	var userinfo *autherror.UserInfoError
	if errors.As(err, &exchange) || errors.As(err, &userinfo) {
		// Upstream detail is logged by the caller, never echoed back.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "oauth sign-in failed"})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
