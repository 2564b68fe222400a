package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "stark_products", cfg.DBName)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL())
	assert.Equal(t, 12, cfg.BcryptRounds)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.False(t, cfg.MailConfigured())
	assert.True(t, cfg.IsDevelopment())

	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("JWT_SECRET_KEY", "legacy-name-secret")
	t.Setenv("MAIL_USERNAME", "mailer")
	t.Setenv("MAIL_PASSWORD", "hunter2")
	t.Setenv("API_VERSION", "2.1.0")

	cfg := FromEnv()

	assert.Equal(t, Staging, cfg.Environment)
	assert.Equal(t, "2.1.0", cfg.APIVersion)
	assert.Equal(t, ":9000", cfg.ListenAddr())
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "legacy-name-secret", cfg.JWTSecret)
	assert.True(t, cfg.MailConfigured())
}

func TestJWTSecretPrecedence(t *testing.T) {
	t.Setenv("JWT_SECRET", "primary-secret")
	t.Setenv("JWT_SECRET_KEY", "legacy-secret")

	cfg := FromEnv()
	assert.Equal(t, "primary-secret", cfg.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := FromEnv()
		cfg.Environment = Production
		cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
		cfg.MongoURL = "mongodb://db.internal:27017"
		cfg.CORSOrigins = []string{"https://app.example.com"}

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid production config",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Environment = "qa" },
			wantErr: true,
		},
		{
			name:    "unsupported jwt algorithm",
			mutate:  func(c *Config) { c.JWTAlgorithm = "RS256" },
			wantErr: true,
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "bcrypt rounds too low",
			mutate:  func(c *Config) { c.BcryptRounds = 4 },
			wantErr: true,
		},
		{
			name:    "default secret in production",
			mutate:  func(c *Config) { c.JWTSecret = defaultJWTSecret },
			wantErr: true,
		},
		{
			name:    "short secret in production",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: true,
		},
		{
			name:    "localhost mongo in production",
			mutate:  func(c *Config) { c.MongoURL = "mongodb://localhost:27017" },
			wantErr: true,
		},
		{
			name:    "wildcard cors in production",
			mutate:  func(c *Config) { c.CORSOrigins = []string{"*"} },
			wantErr: true,
		},
		{
			name: "lax rules outside production",
			mutate: func(c *Config) {
				c.Environment = Development
				c.JWTSecret = defaultJWTSecret
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)

				return
			}

			require.NoError(t, err)
		})
	}
}
