// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// GetUser fetches a user by ID, returning ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrCreateUser returns the user for a verified email address, creating
// the account on first sign-in. LastLoginAt is bumped on every call so the
// row doubles as a "last seen" record. The email is expected to be normalized
// (lowercased, trimmed) by the caller.
//
// The lookup and insert run inside a transaction so that two concurrent
// redemptions of links for the same new address cannot race into duplicate
// rows: the loser of the insert re-reads the winner's row.
func FindOrCreateUser(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var out *domain.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var u domain.User
		err := tx.Where("email = ?", email).First(&u).Error
		switch {
		case err == nil:
			if err := tx.Model(&u).Update("last_login_at", now).Error; err != nil {
				return err
			}
			u.LastLoginAt = now
			out = &u
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = domain.User{
				ID:          uuid.NewString(),
				Email:       email,
				CreatedAt:   now,
				LastLoginAt: now,
			}
			if err := tx.Create(&u).Error; err != nil {
				if isUniqueViolation(err) {
					// Lost the race; the row exists now.
					if err := tx.Where("email = ?", email).First(&u).Error; err != nil {
						return err
					}
					out = &u
					return nil
				}
				return err
			}
			out = &u
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
