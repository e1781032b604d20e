package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "user_id"
	localScopes = "scopes"
)

// RequireAuth validates the bearer token and stashes the subject and
// scopes in the request locals.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	const prefix = "Bearer "

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, prefix) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	claims, err := h.tokenService.Decode(strings.TrimPrefix(header, prefix))
	if err != nil {
		return writeAuthError(c, err)
	}

	c.Locals(localUserID, claims.Subject)
	c.Locals(localScopes, claims.Scopes)

	return c.Next()
}

// RequireScope gates a route on a scope the token must carry.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scopes, _ := c.Locals(localScopes).([]string)
		for _, s := range scopes {
			if s == scope {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient scope"})
	}
}
