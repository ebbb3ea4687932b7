// Package services – SecretService
//
// This file implements the SecretService, which manages the write path of the
// vault: validating and normalizing seal requests, enforcing the at-least-one-
// payload invariant, and coordinating repository operations for creating and
// listing sealed secrets. Owner-scoped reads live here too; the anonymous read
// path is DisclosureService.
//
// Service-level errors (e.g., ErrMissingPayload, ErrSecretNotFound) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// SecretRepo defines the repository contract required by SecretService.
// Implementations are responsible for persistence of secret aggregates.
type SecretRepo interface {
	// CreateSecret inserts a new secret row for the given owner as a single
	// atomic statement.
	CreateSecret(ctx context.Context, db *gorm.DB, ownerID string, content, mediaKey *string, deliveryAt time.Time) (*domain.Secret, error)

	// GetSecretOwned fetches a secret by ID ensuring it belongs to the owner.
	GetSecretOwned(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Secret, error)

	// CountSecrets returns the total number of secrets for pagination.
	CountSecrets(ctx context.Context, db *gorm.DB, ownerID string) (int64, error)

	// ListSecretsPage returns a page of secrets belonging to the owner.
	ListSecretsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Secret, error)
}

// SecretService provides owner-facing operations: sealing a new secret and
// reading back one's own vault. Every method takes the caller's principal as
// an explicit argument; there is no ambient "current user".
type SecretService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the secret repository used by this service.
	Repo SecretRepo

	// MaxContentRunes caps sealed text by rune length (0 disables the cap).
	MaxContentRunes int
}

// NewSecretService constructs a SecretService with the default content cap.
func NewSecretService(db *gorm.DB, r SecretRepo) *SecretService {
	return &SecretService{
		DB:              db,
		Repo:            r,
		MaxContentRunes: 10000,
	}
}

// Seal validates and persists a new secret owned by ownerID.
//
// Rules:
//   - ownerID must be present (ErrUnauthenticated otherwise).
//   - At least one of content/mediaKey must be non-empty after trimming
//     (ErrMissingPayload otherwise).
//   - deliveryAt must be set (ErrInvalidDeliveryDate when zero). Past dates
//     are allowed: such a secret is simply born unlocked.
//   - Content is capped at MaxContentRunes (ErrContentTooLong).
//
// The delivery timestamp is fixed here forever; no update path exists.
func (s *SecretService) Seal(ctx context.Context, ownerID, content, mediaKey string, deliveryAt time.Time) (*domain.Secret, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrUnauthenticated
	}
	if deliveryAt.IsZero() {
		return nil, ErrInvalidDeliveryDate
	}

	content = strings.TrimSpace(content)
	mediaKey = strings.TrimSpace(mediaKey)
	if content == "" && mediaKey == "" {
		return nil, ErrMissingPayload
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrContentTooLong
	}

	var contentPtr, mediaPtr *string
	if content != "" {
		contentPtr = &content
	}
	if mediaKey != "" {
		mediaPtr = &mediaKey
	}

	return s.Repo.CreateSecret(ctx, s.DB, ownerID, contentPtr, mediaPtr, deliveryAt)
}

// GetOwned returns one of the owner's secrets with all fields, including
// payloads of still-locked records: owners may always see what they sealed.
// Missing ids, malformed ids, and other users' secrets all yield
// ErrSecretNotFound.
func (s *SecretService) GetOwned(ctx context.Context, ownerID, id string) (*domain.Secret, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSecretNotFound
	}
	sec, err := s.Repo.GetSecretOwned(ctx, s.DB, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSecretNotFound
		}
		return nil, err
	}
	return sec, nil
}

// ListPage returns a page of the owner's vault (paginated, newest first).
// It applies defaults for invalid page/pageSize and returns the total count.
func (s *SecretService) ListPage(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Secret, int64, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, 0, ErrUnauthenticated
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountSecrets(ctx, s.DB, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Secret{}, 0, nil
	}

	items, err := s.Repo.ListSecretsPage(ctx, s.DB, ownerID, offset, pageSize)
	return items, total, err
}
