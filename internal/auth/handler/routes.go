package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kanenguyen264/library-management-sub008/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, oh *OAuthHandler) {
	v1 := app.Group("/api/v1")

	v1.Post("/register", h.Register)
	v1.Post("/login", h.Login)
	v1.Post("/refresh", h.Refresh)

	v1.Get("/auth/oauth/:provider/authorize", oh.Authorize)
	v1.Get("/auth/oauth/:provider/callback", oh.Callback)

	v1.Get("/me", h.RequireAuth, h.Me)

	// Admin-only endpoints
	admin := v1.Group("/admin", h.RequireAuth, RequireScope(constant.ScopeAdmin))
	admin.Get("/users", h.GetAllUsers)
}
