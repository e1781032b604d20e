package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/kanenguyen264/library-management-sub008/config"
	"github.com/kanenguyen264/library-management-sub008/db"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/handler"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/oauth"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/password"
	repo "github.com/kanenguyen264/library-management-sub008/internal/auth/repository/postgres"
	"github.com/kanenguyen264/library-management-sub008/internal/auth/service"
	"github.com/kanenguyen264/library-management-sub008/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger()

	if err := observability.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Error("init_sentry_failed", map[string]any{"error": err.Error()})
	}
	defer observability.FlushSentry()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	defer pool.Close()

	users := repo.NewUserRepository(pool)
	links := repo.NewOAuthLinkRepository(pool)
	audit := repo.NewAuthEventRecorder(pool, logger)
	hasher := password.NewBcryptHasher()
	clock := service.SystemClock()

	tokenService := service.NewTokenService(cfg, clock)
	lockout := service.NewLockoutStore(cfg.MaxLoginAttempts, time.Duration(cfg.LockoutDurationMin)*time.Minute, clock)
	userService := service.NewUserService(users, hasher, tokenService, lockout, audit, clock)
	oauthService := service.NewOAuthService(users, links, hasher, audit, clock)

	registry := oauth.NewRegistryFromConfig(cfg)
	logger.Info("oauth_providers_loaded", map[string]any{"providers": registry.Names()})
	exchanger := oauth.NewExchanger(registry)

	authHandler := handler.NewAuthHandler(userService, tokenService)
	oauthHandler := handler.NewOAuthHandler(registry, exchanger, oauthService, tokenService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, oauthHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
