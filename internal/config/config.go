// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, rate limiting, auth,
// object storage, mail delivery, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "vault-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// AuthConfig defines passwordless sign-in and session settings.
type AuthConfig struct {
	JWTSecret     string        // JWT_SECRET (required outside dev mode)
	SessionTTL    time.Duration // SESSION_TTL, lifetime of a minted session JWT
	MagicLinkTTL  time.Duration // MAGIC_LINK_TTL, validity window of a mailed token
	AppBaseURL    string        // APP_BASE_URL, used to build emailed sign-in links
	DevMode       bool          // AUTH_DEV_MODE: log magic links instead of mailing them
	ResendAPIKey  string        // RESEND_API_KEY
	EmailFrom     string        // EMAIL_FROM (e.g. "LifeReplay <vault@lifereplay.app>")
	AppName       string        // APP_NAME, used in email subjects
}

// S3Config defines object-store settings for uploaded media. Works with AWS
// S3 and S3-compatible services (MinIO, R2, Spaces) via a custom endpoint.
type S3Config struct {
	Region        string        // S3_REGION
	Bucket        string        // S3_BUCKET (the "vault" bucket)
	AccessKey     string        // S3_ACCESS_KEY
	SecretKey     string        // S3_SECRET_KEY
	Endpoint      string        // S3_ENDPOINT (optional, for S3-compatible services)
	PresignExpiry time.Duration // S3_PRESIGN_EXPIRY for unlocked media URLs
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath          string // SQLite path
	MaxContentRunes int    // cap for sealed text payloads
	MaxUploadBytes  int64  // cap for a single media upload

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Auth / Mail
	Auth AuthConfig

	// Object storage
	S3 S3Config

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:          getenv("DB_PATH", "vault.db"),
		MaxContentRunes: getint("MAX_CONTENT_RUNES", 10000),
		MaxUploadBytes:  int64(getint("MAX_UPLOAD_BYTES", 25<<20)),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Auth / Mail
		Auth: AuthConfig{
			JWTSecret:    getenv("JWT_SECRET", ""),
			SessionTTL:   getdur("SESSION_TTL", 7*24*time.Hour),
			MagicLinkTTL: getdur("MAGIC_LINK_TTL", 15*time.Minute),
			AppBaseURL:   strings.TrimRight(getenv("APP_BASE_URL", "http://localhost:8080"), "/"),
			DevMode:      getbool("AUTH_DEV_MODE", false),
			ResendAPIKey: getenv("RESEND_API_KEY", ""),
			EmailFrom:    getenv("EMAIL_FROM", "LifeReplay <vault@lifereplay.app>"),
			AppName:      getenv("APP_NAME", "LifeReplay"),
		},

		// Object storage
		S3: S3Config{
			Region:        getenv("S3_REGION", "us-east-1"),
			Bucket:        getenv("S3_BUCKET", "vault"),
			AccessKey:     getenv("S3_ACCESS_KEY", ""),
			SecretKey:     getenv("S3_SECRET_KEY", ""),
			Endpoint:      getenv("S3_ENDPOINT", ""),
			PresignExpiry: getdur("S3_PRESIGN_EXPIRY", time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "vault-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.MaxContentRunes <= 0 {
		return cfg, errors.New("MAX_CONTENT_RUNES must be > 0")
	}
	if cfg.MaxUploadBytes <= 0 {
		return cfg, errors.New("MAX_UPLOAD_BYTES must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.Auth.JWTSecret == "" && !cfg.Auth.DevMode {
		return cfg, errors.New("JWT_SECRET is required unless AUTH_DEV_MODE is enabled")
	}
	if cfg.Auth.SessionTTL <= 0 || cfg.Auth.MagicLinkTTL <= 0 {
		return cfg, errors.New("SESSION_TTL and MAGIC_LINK_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.S3.Bucket) == "" {
		return cfg, errors.New("S3_BUCKET must not be empty")
	}
	if cfg.S3.PresignExpiry <= 0 {
		return cfg, errors.New("S3_PRESIGN_EXPIRY must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
