// Package domain defines the persistence models for users, login tokens, and
// sealed secrets. These types are mapped with GORM and form the core data
// layer of the vault application.
package domain

import (
	"time"
)

// Secret represents one sealed memory: an optional text payload and/or an
// opaque media key, locked until a fixed delivery timestamp. Rows are
// immutable after creation; there is no update or delete path, which is why
// the model carries no UpdatedAt or soft-deletion marker.
//
// Fields:
//   - ID: stable UUID primary key (char(36)); doubles as the public
//     share-link token, so it must never be sequential.
//   - OwnerID: identifier of the sealing user; indexed for vault listings.
//   - Content: optional text payload (nil when the secret is media-only).
//   - MediaKey: optional opaque object-store key (never a public URL).
//   - DeliveryAt: the instant the payload becomes disclosable.
//   - CreatedAt: seal timestamp, set once at insert.
type Secret struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID    string    `json:"owner_id"    gorm:"type:char(36);not null;index:idx_owner_secrets"`
	Content    *string   `json:"content,omitempty"   gorm:"type:text"`
	MediaKey   *string   `json:"media_key,omitempty" gorm:"type:varchar(512)"`
	DeliveryAt time.Time `json:"delivery_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Secret.
func (Secret) TableName() string { return "secrets" }

// HasPayload reports whether at least one payload field is populated.
// Creation enforces this invariant; it is re-checked nowhere else because
// rows are immutable.
func (s *Secret) HasPayload() bool {
	return (s.Content != nil && *s.Content != "") || (s.MediaKey != nil && *s.MediaKey != "")
}

// User represents an authenticated principal, identified by a verified email
// address. Accounts are created implicitly on the first successful magic-link
// redemption (passwordless sign-in).
//
// Fields:
//   - ID: UUID primary key (char(36)), used as Secret.OwnerID.
//   - Email: verified address, unique across the system.
//   - CreatedAt: first sign-in timestamp.
//   - LastLoginAt: most recent successful redemption.
type User struct {
	ID          string    `json:"id"    gorm:"type:char(36);primaryKey"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// LoginToken is a single-use magic-link credential mailed to a user. A token
// is valid until it expires or is redeemed, whichever comes first.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Email: address the link was sent to (the principal it will sign in).
//   - Token: random opaque value embedded in the emailed URL (unique).
//   - ExpiresAt: hard validity deadline.
//   - UsedAt: redemption marker; non-nil tokens are spent.
//   - CreatedAt: issue timestamp.
type LoginToken struct {
	ID        string     `json:"id"    gorm:"type:char(36);primaryKey"`
	Email     string     `json:"email" gorm:"type:varchar(255);not null;index"`
	Token     string     `json:"-"     gorm:"type:varchar(128);not null;uniqueIndex:ux_login_tokens_token"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null;index"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for LoginToken.
func (LoginToken) TableName() string { return "login_tokens" }

// IsExpired reports whether the token's validity window has passed at now.
func (t *LoginToken) IsExpired(now time.Time) bool { return now.After(t.ExpiresAt) }

// IsUsed reports whether the token has already been redeemed.
func (t *LoginToken) IsUsed() bool { return t.UsedAt != nil }
