// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Secret model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Access-control layout: anonymous callers never query this table. The only
// read that is not owner-scoped is GetSecretElevated, and the sole caller of
// that function is the disclosure service, which performs time-gated field
// redaction before anything leaves the process. Every other read requires the
// owner's principal in the WHERE clause, so a later-added code path cannot
// accidentally select foreign rows.
//
// Error semantics:
//   - When a secret is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On a unique-constraint violation during insert, ErrDuplicate is returned
//     so the caller can retry with a fresh identifier.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSecret inserts a new Secret row owned by ownerID. The secret ID is a
// randomly generated UUID (string) and CreatedAt is set to UTC. The insert is
// a single atomic statement; on an id collision (vanishingly rare, but the
// storage layer is the authority) it returns ErrDuplicate so the caller can
// retry with a new identifier.
func CreateSecret(ctx context.Context, db *gorm.DB, ownerID string, content, mediaKey *string, deliveryAt time.Time) (*domain.Secret, error) {
	s := &domain.Secret{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Content:    content,
		MediaKey:   mediaKey,
		DeliveryAt: deliveryAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s, nil
}

// GetSecretOwned fetches a single secret by its ID and owner. If the record
// does not exist or belongs to a different owner, it returns ErrNotFound; the
// two cases are deliberately indistinguishable at this layer.
func GetSecretOwned(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Secret, error) {
	var s domain.Secret
	err := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSecretElevated fetches a secret by ID alone, bypassing owner scoping.
// Only the disclosure gate may call this; it is responsible for stripping
// payload fields from locked rows before the result leaves the service layer.
func GetSecretElevated(ctx context.Context, db *gorm.DB, id string) (*domain.Secret, error) {
	var s domain.Secret
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountSecrets returns the total number of secrets owned by ownerID.
// On DB error, it returns the error.
func CountSecrets(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Secret{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}

// ListSecretsPage returns a paginated slice of secrets for ownerID, ordered
// by creation time descending. Use CountSecrets to obtain the total for
// pagination metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListSecretsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Secret, error) {
	var out []domain.Secret
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}
