// Package handlers wires application services to HTTP endpoints.
//
// Handlers holds the dependencies shared by all endpoint methods. Services are
// consumed through narrow interfaces declared next to the handlers that use
// them, so tests can substitute stubs without touching persistence.
package handlers

import (
	"context"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// DisclosureService is the anonymous read surface: a share-link id in, a
// time-gated view out.
type DisclosureService interface {
	Reveal(ctx context.Context, id string) (*domain.Disclosure, error)
}

// AuthService covers passwordless sign-in: issuing a magic link and redeeming
// it for a session token.
type AuthService interface {
	RequestMagicLink(ctx context.Context, email string) error
	RedeemMagicLink(ctx context.Context, token string) (*domain.User, string, error)
}

// MediaService stores an uploaded file and returns its opaque key.
type MediaService interface {
	Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader, size int64) (string, error)
}

// Handlers bundles the HTTP endpoint methods and their dependencies.
type Handlers struct {
	db *gorm.DB

	secretSvc     SecretService
	disclosureSvc DisclosureService
	authSvc       AuthService
	mediaSvc      MediaService

	idempotencyTTL time.Duration
	maxUploadBytes int64
}

// New constructs the handler set. db may be nil in tests that exercise only
// the service path; idempotency replay and list ETags are then skipped.
func New(
	db *gorm.DB,
	secrets SecretService,
	disclosure DisclosureService,
	auth AuthService,
	media MediaService,
	idempotencyTTL time.Duration,
	maxUploadBytes int64,
) *Handlers {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &Handlers{
		db:             db,
		secretSvc:      secrets,
		disclosureSvc:  disclosure,
		authSvc:        auth,
		mediaSvc:       media,
		idempotencyTTL: idempotencyTTL,
		maxUploadBytes: maxUploadBytes,
	}
}
