package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	StandingsLocale    language.Tag
	CORSAllowedOrigins []string
	// AutoMigrate applies pending schema migrations on startup.
	AutoMigrate bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	// SnapshotRefreshInterval is how often published snapshots are rebuilt.
	// Zero disables the refresh job.
	SnapshotRefreshInterval time.Duration
}

// R2Enabled reports whether every snapshot publisher setting is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load reads the configuration from environment variables, loading a .env
// file first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := parsePort(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	locale, err := language.Parse(getEnvOrDefault("STANDINGS_LOCALE", "de"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDINGS_LOCALE environment variable: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnvOrDefault("AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE environment variable: %w", err)
	}

	refresh, err := time.ParseDuration(getEnvOrDefault("SNAPSHOT_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_REFRESH_INTERVAL environment variable: %w", err)
	}
	if refresh < 0 {
		return nil, fmt.Errorf("SNAPSHOT_REFRESH_INTERVAL must not be negative, got %s", refresh)
	}

	return &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		StandingsLocale:    locale,
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		AutoMigrate:        autoMigrate,
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),

		SnapshotRefreshInterval: refresh,
	}, nil
}

func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	return port, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
