package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
)

// ----- Fake repo -----

type fakeSecretRepo struct {
	// capture args
	createOwnerID  string
	createContent  *string
	createMediaKey *string
	createDueAt    time.Time
	createErr      error

	getID      string
	getOwnerID string
	getSecret  *domain.Secret
	getErr     error

	countOwnerID string
	countTotal   int64
	countErr     error

	pageOwnerID string
	pageOffset  int
	pageLimit   int
	pageItems   []domain.Secret
	pageErr     error
}

func (r *fakeSecretRepo) CreateSecret(ctx context.Context, db *gorm.DB, ownerID string, content, mediaKey *string, deliveryAt time.Time) (*domain.Secret, error) {
	r.createOwnerID = ownerID
	r.createContent = content
	r.createMediaKey = mediaKey
	r.createDueAt = deliveryAt
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &domain.Secret{ID: "s1", OwnerID: ownerID, Content: content, MediaKey: mediaKey, DeliveryAt: deliveryAt}, nil
}

func (r *fakeSecretRepo) GetSecretOwned(ctx context.Context, db *gorm.DB, id, ownerID string) (*domain.Secret, error) {
	r.getID, r.getOwnerID = id, ownerID
	return r.getSecret, r.getErr
}

func (r *fakeSecretRepo) CountSecrets(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	r.countOwnerID = ownerID
	return r.countTotal, r.countErr
}

func (r *fakeSecretRepo) ListSecretsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Secret, error) {
	r.pageOwnerID, r.pageOffset, r.pageLimit = ownerID, offset, limit
	return r.pageItems, r.pageErr
}

// ----- Seal -----

func TestSeal_RequiresPrincipal(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	_, err := svc.Seal(context.Background(), "  ", "hello", "", time.Now())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}

func TestSeal_RequiresDeliveryDate(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	_, err := svc.Seal(context.Background(), "u1", "hello", "", time.Time{})
	if !errors.Is(err, ErrInvalidDeliveryDate) {
		t.Fatalf("want ErrInvalidDeliveryDate, got %v", err)
	}
}

func TestSeal_RequiresSomePayload(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	_, err := svc.Seal(context.Background(), "u1", "   ", "  ", time.Now())
	if !errors.Is(err, ErrMissingPayload) {
		t.Fatalf("want ErrMissingPayload, got %v", err)
	}
}

func TestSeal_ContentCap(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	svc.MaxContentRunes = 5
	_, err := svc.Seal(context.Background(), "u1", "sixsix", "", time.Now())
	if !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("want ErrContentTooLong, got %v", err)
	}

	// Rune-counted, not byte-counted: five multibyte runes fit.
	if _, err := svc.Seal(context.Background(), "u1", strings.Repeat("é", 5), "", time.Now()); err != nil {
		t.Fatalf("five runes should pass: %v", err)
	}
}

func TestSeal_NormalizesPayloadPointers(t *testing.T) {
	repo := &fakeSecretRepo{}
	svc := NewSecretService(nil, repo)
	due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	sec, err := svc.Seal(context.Background(), "u1", "  dear future  ", "", due)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if repo.createContent == nil || *repo.createContent != "dear future" {
		t.Fatalf("content not trimmed: %v", repo.createContent)
	}
	if repo.createMediaKey != nil {
		t.Fatalf("empty media key must map to nil, got %v", repo.createMediaKey)
	}
	if !repo.createDueAt.Equal(due) || sec.OwnerID != "u1" {
		t.Fatalf("wrong args: due=%v sec=%+v", repo.createDueAt, sec)
	}
}

func TestSeal_PastDeliveryDateAllowed(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	past := time.Now().Add(-time.Hour)
	if _, err := svc.Seal(context.Background(), "u1", "late note", "", past); err != nil {
		t.Fatalf("past date must seal (born unlocked): %v", err)
	}
}

func TestSeal_MediaOnly(t *testing.T) {
	repo := &fakeSecretRepo{}
	svc := NewSecretService(nil, repo)
	if _, err := svc.Seal(context.Background(), "u1", "", "u1/pic.png", time.Now()); err != nil {
		t.Fatalf("media-only seal: %v", err)
	}
	if repo.createContent != nil || repo.createMediaKey == nil {
		t.Fatalf("wrong payload pointers: %v / %v", repo.createContent, repo.createMediaKey)
	}
}

// ----- GetOwned -----

func TestGetOwned_MalformedIDIsNotFound(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	_, err := svc.GetOwned(context.Background(), "u1", "][")
	if !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("want ErrSecretNotFound, got %v", err)
	}
}

func TestGetOwned_RepoNotFoundMapped(t *testing.T) {
	repo := &fakeSecretRepo{getErr: gorm.ErrRecordNotFound}
	svc := NewSecretService(nil, repo)
	_, err := svc.GetOwned(context.Background(), "u1", uuid.NewString())
	if !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("want ErrSecretNotFound, got %v", err)
	}
}

func TestGetOwned_PassesOwnerScope(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSecretRepo{getSecret: &domain.Secret{ID: id, OwnerID: "u1"}}
	svc := NewSecretService(nil, repo)

	sec, err := svc.GetOwned(context.Background(), "u1", id)
	if err != nil {
		t.Fatalf("GetOwned: %v", err)
	}
	if repo.getID != id || repo.getOwnerID != "u1" || sec.ID != id {
		t.Fatalf("owner scope not forwarded: id=%s owner=%s", repo.getID, repo.getOwnerID)
	}
}

// ----- ListPage -----

func TestListPage_DefaultsAndOffset(t *testing.T) {
	repo := &fakeSecretRepo{countTotal: 45, pageItems: []domain.Secret{{ID: "a"}}}
	svc := NewSecretService(nil, repo)

	items, total, err := svc.ListPage(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 45 || len(items) != 1 {
		t.Fatalf("total=%d items=%d", total, len(items))
	}
	if repo.pageOffset != 0 || repo.pageLimit != 20 {
		t.Fatalf("defaults not applied: offset=%d limit=%d", repo.pageOffset, repo.pageLimit)
	}

	if _, _, err := svc.ListPage(context.Background(), "u1", 3, 10); err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if repo.pageOffset != 20 || repo.pageLimit != 10 {
		t.Fatalf("offset math wrong: offset=%d limit=%d", repo.pageOffset, repo.pageLimit)
	}
}

func TestListPage_EmptyVaultSkipsPageQuery(t *testing.T) {
	repo := &fakeSecretRepo{countTotal: 0}
	svc := NewSecretService(nil, repo)

	items, total, err := svc.ListPage(context.Background(), "u1", 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("empty vault: items=%v total=%d err=%v", items, total, err)
	}
	if repo.pageOwnerID != "" {
		t.Fatalf("page query must be skipped when count is zero")
	}
}

func TestListPage_RequiresPrincipal(t *testing.T) {
	svc := NewSecretService(nil, &fakeSecretRepo{})
	if _, _, err := svc.ListPage(context.Background(), "", 1, 20); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}
