// Package services – DisclosureService
//
// This file implements the disclosure gate: the single authorized path for
// turning a share-link identifier into what an anonymous caller may see.
// It performs exactly one elevated (owner-bypassing) read of the secrets
// table and applies time-gated field redaction in code, which is what lets a
// locked record expose its delivery metadata (for a countdown) while its
// payload stays withheld. No other code path reads secrets without an owner
// scope, so nothing added later can leak unreleased content by accident.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/repo"
)

// MediaResolver resolves an opaque media key to a fetchable URL. It is only
// ever consulted after a secret is determined to be unlocked, so locked media
// never acquires a URL at all.
type MediaResolver interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// DisclosureService evaluates time-gated visibility of sealed secrets.
// It is stateless per call: any number of Reveal invocations may run
// concurrently against the same or different ids, and a record flips from
// locked to unlocked the instant the clock passes its delivery timestamp,
// with no unlock event or background job involved.
type DisclosureService struct {
	// DB is the database handle used for the elevated read.
	DB *gorm.DB
	// Media resolves unlocked media keys to URLs. May be nil in deployments
	// without an object store; unlocked secrets then expose the raw key's
	// absence (MediaURL stays nil) rather than failing.
	Media MediaResolver
	// Clock supplies the evaluation instant. Defaults to time.Now (UTC) when
	// nil. The comparison never trusts a caller-supplied time.
	Clock func() time.Time
}

// now returns the server-side evaluation instant.
func (s *DisclosureService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Reveal looks up the secret with the given share-link id and returns the
// caller-visible view at the current server time.
//
// Semantics:
//   - Malformed ids and unknown ids both yield ErrSecretNotFound; the
//     response shape must not reveal which case occurred.
//   - now < delivery_at: a locked view carrying only id, delivery_at, and
//     created_at. Content and media are never serialized, not merely nulled
//     at render time.
//   - now >= delivery_at (equality unlocks): the full view. The stored media
//     key, if any, is resolved to a time-limited URL here and nowhere else.
//   - A row with neither payload (prevented at creation, tolerated here)
//     reveals as unlocked with both fields empty; it is not an error.
//
// Reveal performs no writes: repeated calls with the same id and instant
// return the same result, so polling is a legitimate usage pattern.
func (s *DisclosureService) Reveal(ctx context.Context, id string) (*domain.Disclosure, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSecretNotFound
	}

	sec, err := repo.GetSecretElevated(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSecretNotFound
		}
		return nil, err
	}

	d := &domain.Disclosure{
		ID:         sec.ID,
		DeliveryAt: sec.DeliveryAt,
		CreatedAt:  sec.CreatedAt,
	}

	// Strictly before the delivery instant the secret stays sealed;
	// at the instant itself it unlocks.
	if s.now().Before(sec.DeliveryAt) {
		d.State = domain.DisclosureLocked
		return d, nil
	}

	d.State = domain.DisclosureUnlocked
	d.Content = sec.Content

	if sec.MediaKey != nil && *sec.MediaKey != "" && s.Media != nil {
		url, err := s.Media.PresignedURL(ctx, *sec.MediaKey)
		if err != nil {
			return nil, fmt.Errorf("resolve media url: %w", err)
		}
		d.MediaURL = &url
	}
	return d, nil
}
