package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lifereplay/vault-backend/internal/domain"
)

func newIdemRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("idem_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestIdempotency_CreateThenGet(t *testing.T) {
	db := newIdemRepoDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	rec, err := CreateIdempotency(ctx, db, "u1", "key-1", "sec-1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.SecretID != "sec-1" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "u1", "key-1", now)
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.SecretID != "sec-1" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestIdempotency_ScopedToUser(t *testing.T) {
	db := newIdemRepoDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := CreateIdempotency(ctx, db, "alice", "shared-key", "sec-1", 201, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Same key under a different user is a distinct record, not a replay.
	if _, err := GetIdempotency(ctx, db, "bob", "shared-key", now); err != ErrNotFound {
		t.Fatalf("want ErrNotFound for foreign user, got %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "bob", "shared-key", "sec-2", 201, time.Hour); err != nil {
		t.Fatalf("bob should be able to use the same key: %v", err)
	}

	// But the same (user, key) pair is unique.
	if _, err := CreateIdempotency(ctx, db, "alice", "shared-key", "sec-3", 201, time.Hour); err != ErrDuplicate {
		t.Fatalf("want ErrDuplicate for same user+key, got %v", err)
	}
}

func TestIdempotency_ExpiredRecordsInvisible(t *testing.T) {
	db := newIdemRepoDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u1", "k", "sec-1", 201, time.Millisecond); err != nil {
		t.Fatalf("seed: %v", err)
	}
	later := time.Now().UTC().Add(time.Minute)
	if _, err := GetIdempotency(ctx, db, "u1", "k", later); err != ErrNotFound {
		t.Fatalf("expired record must be invisible, got %v", err)
	}
}

func TestIdempotency_EmptyKeyNotFound(t *testing.T) {
	db := newIdemRepoDB(t)
	if _, err := GetIdempotency(context.Background(), db, "u1", "  ", time.Now()); err != ErrNotFound {
		t.Fatalf("blank key must be ErrNotFound, got %v", err)
	}
}
