// Package config pkg/config/config.go loads service configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment names the deployment tier.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

const defaultJWTSecret = "change-this-secret-key-in-production"

// Config holds every setting the service reads from the environment.
type Config struct {
	Environment Environment
	Port        int
	Debug       bool

	// Database.
	MongoURL string
	DBName   string

	// Auth.
	JWTSecret                string
	JWTAlgorithm             string
	AccessTokenExpireMinutes int
	RefreshTokenExpireDays   int
	BcryptRounds             int

	// API surface.
	APIPrefix   string
	APIVersion  string
	CORSOrigins []string
	StaticDir   string

	// Business settings.
	LowStockThreshold  int
	RateLimitPerMinute int

	// Mail. Sending is disabled when username or password is empty.
	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	// Company identity used on generated quote PDFs.
	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
}

// FromEnv builds a Config from environment variables, applying development
// defaults for anything unset.
func FromEnv() *Config {
	env := Environment(envString("ENVIRONMENT", string(Development)))

	cfg := &Config{
		Environment: env,
		Port:        envInt("PORT", 8001),
		Debug:       envBool("DEBUG", env == Development),

		MongoURL: envString("MONGO_URL", "mongodb://localhost:27017"),
		DBName:   envString("DB_NAME", "stark_products"),

		JWTSecret:                envString("JWT_SECRET", envString("JWT_SECRET_KEY", defaultJWTSecret)),
		JWTAlgorithm:             envString("JWT_ALGORITHM", "HS256"),
		AccessTokenExpireMinutes: envInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenExpireDays:   envInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7),
		BcryptRounds:             envInt("BCRYPT_ROUNDS", 12),

		APIPrefix:   envString("API_PREFIX", "/api"),
		APIVersion:  envString("API_VERSION", "v1"),
		CORSOrigins: splitCSV(envString("CORS_ORIGINS", "http://localhost:3000")),
		StaticDir:   envString("STATIC_DIR", "./static"),

		LowStockThreshold:  envInt("LOW_STOCK_THRESHOLD", 10),
		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 100),

		MailServer:   envString("MAIL_SERVER", "smtp.gmail.com"),
		MailPort:     envInt("MAIL_PORT", 587),
		MailUsername: envString("MAIL_USERNAME", ""),
		MailPassword: envString("MAIL_PASSWORD", ""),
		MailFrom:     envString("MAIL_FROM", "noreply@starkproducts.co.za"),
		MailFromName: envString("MAIL_FROM_NAME", "Stark Products"),

		CompanyName:    envString("COMPANY_NAME", "Stark Products"),
		CompanyEmail:   envString("COMPANY_EMAIL", "info@starkproducts.co.za"),
		CompanyPhone:   envString("COMPANY_PHONE", "+27 11 902 8678"),
		CompanyAddress: envString("COMPANY_ADDRESS", "Stand 110, Black Reef Road, Wittkrante, Germiston"),
	}

	return cfg
}

// Validate enforces configuration requirements, with stricter rules in
// production.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidConfig, c.Environment)
	}

	if c.JWTAlgorithm != "HS256" {
		return fmt.Errorf("%w: unsupported JWT algorithm %q", ErrInvalidConfig, c.JWTAlgorithm)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", ErrInvalidConfig, c.Port)
	}

	if c.BcryptRounds < 10 || c.BcryptRounds > 18 {
		return fmt.Errorf("%w: BCRYPT_ROUNDS must be between 10 and 18", ErrInvalidConfig)
	}

	if !c.IsProduction() {
		return nil
	}

	if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
		return fmt.Errorf("%w: JWT_SECRET must be at least 32 characters in production", ErrInvalidConfig)
	}

	if c.MongoURL == "" || c.MongoURL == "mongodb://localhost:27017" {
		return fmt.Errorf("%w: MONGO_URL must be set in production", ErrInvalidConfig)
	}

	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("%w: CORS_ORIGINS must not be '*' in production", ErrInvalidConfig)
		}
	}

	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool { return c.Environment == Production }

// IsDevelopment reports whether the service runs in development.
func (c *Config) IsDevelopment() bool { return c.Environment == Development }

// MailConfigured reports whether SMTP credentials are present.
func (c *Config) MailConfigured() bool {
	return c.MailUsername != "" && c.MailPassword != ""
}

// ListenAddr is the HTTP bind address.
func (c *Config) ListenAddr() string { return fmt.Sprintf(":%d", c.Port) }

// AccessTokenTTL is the access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL is the refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
