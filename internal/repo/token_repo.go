// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the LoginToken
// model used by passwordless (magic-link) sign-in.
//
// Tokens are strictly single-use: ConsumeLoginToken marks the row used with a
// guarded UPDATE so that two concurrent redemptions of the same link cannot
// both succeed.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// CreateLoginToken inserts a new single-use login token for email, valid for
// ttl from now. The opaque token value is generated by the caller (the auth
// service owns the randomness); this function only persists it.
func CreateLoginToken(ctx context.Context, db *gorm.DB, email, token string, ttl time.Duration) (*domain.LoginToken, error) {
	now := time.Now().UTC()
	t := &domain.LoginToken{
		ID:        uuid.NewString(),
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ConsumeLoginToken atomically redeems a token: it looks the row up by its
// opaque value, verifies it is neither expired nor spent at now, and marks it
// used. Returns ErrNotFound for unknown, expired, or already-used tokens; the
// three cases are indistinguishable to callers so redemption failures leak
// nothing about token existence.
func ConsumeLoginToken(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.LoginToken, error) {
	var out *domain.LoginToken
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t domain.LoginToken
		if err := tx.Where("token = ?", token).First(&t).Error; err != nil {
			return err
		}
		if t.IsUsed() || t.IsExpired(now) {
			return gorm.ErrRecordNotFound
		}

		// Guarded update: only flips the row if it is still unused.
		res := tx.Model(&domain.LoginToken{}).
			Where("id = ? AND used_at IS NULL", t.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		t.UsedAt = &now
		out = &t
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}
