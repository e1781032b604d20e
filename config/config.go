package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env       string
	Port      string
	DBURL     string
	APIURL    string
	SentryDSN string

	AccessTokenSecret  string
	RefreshTokenSecret string

	AccessExpiryMin          int
	RefreshExpiryMin         int
	ExtendedAccessExpiryMin  int
	ExtendedRefreshExpiryMin int

	MaxLoginAttempts   int
	LockoutDurationMin int

	GoogleClientID        string
	GoogleClientSecret    string
	FacebookClientID      string
	FacebookClientSecret  string
	GithubClientID        string
	GithubClientSecret    string
	MicrosoftClientID     string
	MicrosoftClientSecret string
}

func Load() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		DBURL:     mustGetEnv("DB_URL"),
		APIURL:    getEnv("API_URL", "http://localhost:8080"),
		SentryDSN: getEnv("SENTRY_DSN", ""),

		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),

		AccessExpiryMin:          getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin:         getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		ExtendedAccessExpiryMin:  getEnvAsInt("EXTENDED_ACCESS_TOKEN_EXPIRY", 1440),
		ExtendedRefreshExpiryMin: getEnvAsInt("EXTENDED_REFRESH_TOKEN_EXPIRY", 43200),

		MaxLoginAttempts:   getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
		LockoutDurationMin: getEnvAsInt("LOGIN_LOCKOUT_DURATION", 15),

		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:      getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret:  getEnv("FACEBOOK_CLIENT_SECRET", ""),
		GithubClientID:        getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret:    getEnv("GITHUB_CLIENT_SECRET", ""),
		MicrosoftClientID:     getEnv("MICROSOFT_CLIENT_ID", ""),
		MicrosoftClientSecret: getEnv("MICROSOFT_CLIENT_SECRET", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
