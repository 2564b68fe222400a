package main

import (
	"context"
	"log"

	"github.com/starkproducts/platform/pkg/api"
	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/config"
	"github.com/starkproducts/platform/pkg/db"
	"github.com/starkproducts/platform/pkg/events"
	"github.com/starkproducts/platform/pkg/lifecycle"
	"github.com/starkproducts/platform/pkg/notify"
	"github.com/starkproducts/platform/pkg/pdf"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run Stark Products server: %v", err)
	}
}

func run() error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(), cfg.BcryptRounds)

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	})
	if !mailer.Enabled() {
		log.Printf("Mail credentials not configured, email sending disabled")
	}

	alerter := notify.NewLowStockAlerter(mailer, []string{cfg.CompanyEmail}, cfg.LowStockThreshold)

	generator := pdf.NewGenerator(pdf.CompanyInfo{
		Name:    cfg.CompanyName,
		Email:   cfg.CompanyEmail,
		Phone:   cfg.CompanyPhone,
		Address: cfg.CompanyAddress,
	})

	// The global limiter only runs outside development.
	rateLimit := cfg.RateLimitPerMinute
	if cfg.IsDevelopment() {
		rateLimit = 0
	}

	// API_VERSION is what clients see; the build stamp is the fallback.
	reported := cfg.APIVersion
	if reported == "" {
		reported = version
	}

	server := api.NewAPIServer(api.Deps{
		DB:          database,
		Auth:        authSvc,
		Mailer:      mailer,
		Alerter:     alerter,
		PDF:         generator,
		Hub:         events.NewHub(),
		APIPrefix:   cfg.APIPrefix,
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		Version:     reported,
		Production:  cfg.IsProduction(),
	}, rateLimit)

	return lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr(),
		ServiceName: "stark-products-api",
		Service:     server,
		Handler:     server.Router(),
	})
}
