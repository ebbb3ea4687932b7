// Package services – AuthService
//
// This file implements passwordless sign-in. A user requests a magic link for
// their email address; a single-use token with a short TTL is persisted and
// mailed; redeeming the token finds-or-creates the account and mints a signed
// session JWT. The write path authenticates every request by verifying that
// JWT, so the creation endpoint always receives an explicit principal.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/mail"
	"github.com/lifereplay/vault-backend/internal/repo"
)

// emailRE is deliberately permissive; the mailed link is the real proof of
// address ownership.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService implements magic-link issuance and redemption plus session
// token handling. It is context-aware and safe for concurrent use.
type AuthService struct {
	// DB is the database handle for token and user persistence.
	DB *gorm.DB
	// Mailer delivers the sign-in link.
	Mailer mail.Mailer

	// JWTSecret signs session tokens (HMAC-SHA256).
	JWTSecret string
	// SessionTTL is the lifetime of a minted session.
	SessionTTL time.Duration
	// MagicLinkTTL is the validity window of a mailed token.
	MagicLinkTTL time.Duration
	// AppBaseURL is the public origin used to build emailed links.
	AppBaseURL string

	// Clock supplies timestamps; defaults to time.Now (UTC) when nil.
	Clock func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// RequestMagicLink issues a single-use sign-in token for email and mails the
// link. The address is normalized (trimmed, lowercased) before use. Only
// syntactic validation happens here; whether the address exists is proven by
// the recipient clicking the link.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRE.MatchString(email) {
		return ErrInvalidEmail
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	if _, err := repo.CreateLoginToken(ctx, s.DB, email, token, s.MagicLinkTTL); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/login?token=%s", s.AppBaseURL, token)
	return s.Mailer.SendMagicLink(ctx, email, url)
}

// RedeemMagicLink redeems a mailed token: the token is spent atomically, the
// user account is found or created for the verified address, and a session
// JWT is minted. Unknown, expired, and already-used tokens all yield
// ErrTokenInvalid.
func (s *AuthService) RedeemMagicLink(ctx context.Context, token string) (*domain.User, string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, "", ErrTokenInvalid
	}

	lt, err := repo.ConsumeLoginToken(ctx, s.DB, token, s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTokenInvalid
		}
		return nil, "", err
	}

	user, err := repo.FindOrCreateUser(ctx, s.DB, lt.Email)
	if err != nil {
		return nil, "", err
	}

	session, err := s.mintSession(user)
	if err != nil {
		return nil, "", err
	}
	return user, session, nil
}

// VerifySession validates a session JWT and returns the principal (user id)
// it was minted for. Used by the HTTP auth middleware.
func (s *AuthService) VerifySession(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return "", ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthenticated
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrUnauthenticated
	}
	return sub, nil
}

// mintSession signs a session JWT for user.
func (s *AuthService) mintSession(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
}

// randomToken returns a 64-character hex token from 32 bytes of entropy.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
