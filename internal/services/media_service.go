// Package services – MediaService
//
// This file implements media uploads for the write path. Files land in the
// object store under a per-owner, non-guessable key; the returned key is what
// a seal request stores on the secret. The key is opaque on purpose: a locked
// secret's media cannot be fetched through a predictable public URL even if
// the key itself leaks, because URLs only exist once the disclosure gate has
// resolved them post-unlock.
package services

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/lifereplay/vault-backend/internal/storage"
)

// MediaService stores uploaded files and hands back opaque keys.
type MediaService struct {
	// Store is the object store backing the vault bucket.
	Store storage.ObjectStore
	// MaxBytes caps a single upload (0 disables the cap).
	MaxBytes int64
}

// Upload streams a file into the object store on behalf of ownerID and
// returns the opaque key, shaped "<owner_id>/<uuid><ext>". The extension is
// carried over from the original filename so unlocked media renders with a
// sensible content hint; everything else about the name is discarded.
func (s *MediaService) Upload(ctx context.Context, ownerID, filename, contentType string, r io.Reader, size int64) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", ErrUnauthenticated
	}
	if r == nil {
		return "", ErrMediaMissing
	}
	if s.MaxBytes > 0 && size > s.MaxBytes {
		return "", ErrMediaTooLarge
	}

	key := ownerID + "/" + uuid.NewString() + sanitizeExt(filename)
	if err := s.Store.Put(ctx, key, r, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// sanitizeExt extracts a safe lowercase extension from a client filename.
// Anything that is not a short alphanumeric suffix is dropped.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
