// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - A single anonymous read (the reveal endpoint); everything else behind auth
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/lifereplay/vault-backend/docs"
	"github.com/lifereplay/vault-backend/internal/config"
	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/http/handlers"
	"github.com/lifereplay/vault-backend/internal/http/middleware"
	"github.com/lifereplay/vault-backend/internal/mail"
	"github.com/lifereplay/vault-backend/internal/repo"
	"github.com/lifereplay/vault-backend/internal/services"
	"github.com/lifereplay/vault-backend/internal/storage"
)

// secretRepoShim adapts the repository free functions to the
// services.SecretRepo interface expected by the SecretService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type secretRepoShim struct{}

// CreateSecret proxies repo.CreateSecret.
func (secretRepoShim) CreateSecret(ctx context.Context, db *gorm.DB, ownerID string, content, mediaKey *string, deliveryAt time.Time) (*domain.Secret, error) {
	return repo.CreateSecret(ctx, db, ownerID, content, mediaKey, deliveryAt)
}

// GetSecretOwned proxies repo.GetSecretOwned.
func (secretRepoShim) GetSecretOwned(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Secret, error) {
	return repo.GetSecretOwned(ctx, db, id, ownerID)
}

// CountSecrets proxies repo.CountSecrets.
func (secretRepoShim) CountSecrets(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return repo.CountSecrets(ctx, db, ownerID)
}

// ListSecretsPage proxies repo.ListSecretsPage.
func (secretRepoShim) ListSecretsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Secret, error) {
	return repo.ListSecretsPage(ctx, db, ownerID, offset, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health/metrics/docs endpoints, and then
// mounts the versioned public API under cfg.APIBasePath.
//
// store and mailer may be nil (tests, dev mode without S3/Resend); the media
// endpoint and outgoing mail then degrade as documented on their services.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
//  10. Gzip compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.ObjectStore, mailer mail.Mailer, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Authorization carries session
	// JWTs and must never land in logs.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"Authorization",
			middleware.HeaderIdempotencyKey,
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; media uploads are the largest legal body.
	r.Use(limitBody(cfg.MaxUploadBytes + (1 << 20)))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey, "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey, "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 10) Compress responses (countdown polling hits /reveal repeatedly)
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/store/mailer
	secretSvc := services.NewSecretService(db, secretRepoShim{})
	secretSvc.MaxContentRunes = cfg.MaxContentRunes

	var resolver services.MediaResolver
	if store != nil {
		resolver = store
	}
	discSvc := &services.DisclosureService{DB: db, Media: resolver}

	authSvc := &services.AuthService{
		DB:           db,
		Mailer:       mailer,
		JWTSecret:    cfg.Auth.JWTSecret,
		SessionTTL:   cfg.Auth.SessionTTL,
		MagicLinkTTL: cfg.Auth.MagicLinkTTL,
		AppBaseURL:   cfg.Auth.AppBaseURL,
	}

	mediaSvc := &services.MediaService{Store: store, MaxBytes: cfg.MaxUploadBytes}

	h := handlers.New(db, secretSvc, discSvc, authSvc, mediaSvc, cfg.IdempotencyTTL, cfg.MaxUploadBytes)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Anonymous: sign-in and the share-link read
		api.POST("/auth/magic-link", h.RequestMagicLink)
		api.POST("/auth/sessions", h.RedeemMagicLink)
		api.GET("/reveal/:id", h.Reveal)

		// Owner-scoped: everything else requires a session
		authed := api.Group("", middleware.RequireAuth(authSvc.VerifySession))
		{
			authed.POST("/secrets", h.SealSecret)
			authed.GET("/secrets", h.ListSecrets)
			authed.GET("/secrets/:id", h.GetSecret)
			authed.POST("/media", h.UploadMedia)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
