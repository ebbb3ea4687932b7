// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// SecretsStats returns aggregate metadata for a user's vault: the total
// number of sealed rows and the maximum CreatedAt timestamp among them.
// Secrets are immutable, so created_at is the freshest thing a row can say
// about itself and a (count, max created_at) pair is a sound ETag basis.
//
// When the user has no secrets, the returned count is 0 and maxCreatedAt is nil.
//
// Return values:
//   - count:        total secrets for ownerID
//   - maxCreatedAt: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func SecretsStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Secret{}).Where("owner_id = ?", ownerID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
