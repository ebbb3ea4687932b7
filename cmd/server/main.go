// Command server runs the vault HTTP API.
//
// Startup order: env → config → logging → tracing → database → object store →
// mailer → router → http.Server, then a signal-driven graceful shutdown that
// drains in-flight requests before flushing the tracer.
//
// @title        LifeReplay Vault API
// @version      1.0
// @description  Time-capsule API: seal a message or file behind a future delivery date and share a reveal link.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lifereplay/vault-backend/internal/config"
	httpapi "github.com/lifereplay/vault-backend/internal/http"
	"github.com/lifereplay/vault-backend/internal/mail"
	"github.com/lifereplay/vault-backend/internal/observability"
	"github.com/lifereplay/vault-backend/internal/repo"
	"github.com/lifereplay/vault-backend/internal/storage"
	"github.com/lifereplay/vault-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Info().Str("version", version).Str("port", cfg.Port).Msg("starting vault-backend")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database failed")
	}

	// Object store is optional: without credentials the media endpoint
	// degrades and unlocked secrets simply carry no media URL.
	var store storage.ObjectStore
	if cfg.S3.AccessKey != "" || cfg.S3.Endpoint != "" {
		s3store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("object store setup failed")
		}
		store = s3store
	} else {
		log.Warn().Msg("no object store configured; media uploads disabled")
	}

	mailer := mail.NewResendMailer(cfg.Auth.ResendAPIKey, cfg.Auth.EmailFrom, cfg.Auth.AppName, cfg.Auth.DevMode)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, store, mailer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("listening")

	// Block until SIGINT/SIGTERM, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	log.Info().Msg("bye")
}
