package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// memStore is an in-memory ObjectStore for tests.
type memStore struct {
	objects map[string][]byte
	ctypes  map[string]string
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, ctypes: map[string]string{}}
}

func (s *memStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = b
	s.ctypes[key] = contentType
	return nil
}

func (s *memStore) PresignedURL(ctx context.Context, key string) (string, error) {
	return "https://store.test/" + key, nil
}

func TestUpload_StoresUnderOwnerPrefix(t *testing.T) {
	store := newMemStore()
	svc := &MediaService{Store: store, MaxBytes: 1 << 20}

	key, err := svc.Upload(context.Background(), "owner-1", "Holiday Photo.PNG", "image/png", bytes.NewReader([]byte("img")), 3)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(key, "owner-1/") {
		t.Fatalf("key not owner-prefixed: %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("extension not normalized: %q", key)
	}
	if string(store.objects[key]) != "img" || store.ctypes[key] != "image/png" {
		t.Fatalf("object not stored: %q", key)
	}
}

func TestUpload_KeyIsNonGuessable(t *testing.T) {
	store := newMemStore()
	svc := &MediaService{Store: store}

	k1, err := svc.Upload(context.Background(), "o", "a.jpg", "", bytes.NewReader(nil), 0)
	if err != nil {
		t.Fatalf("upload 1: %v", err)
	}
	k2, err := svc.Upload(context.Background(), "o", "a.jpg", "", bytes.NewReader(nil), 0)
	if err != nil {
		t.Fatalf("upload 2: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("same filename must yield distinct keys: %q", k1)
	}
}

func TestUpload_RequiresPrincipal(t *testing.T) {
	svc := &MediaService{Store: newMemStore()}
	if _, err := svc.Upload(context.Background(), " ", "a.png", "", bytes.NewReader(nil), 0); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}

func TestUpload_SizeCap(t *testing.T) {
	svc := &MediaService{Store: newMemStore(), MaxBytes: 10}
	if _, err := svc.Upload(context.Background(), "o", "big.bin", "", bytes.NewReader(make([]byte, 11)), 11); !errors.Is(err, ErrMediaTooLarge) {
		t.Fatalf("want ErrMediaTooLarge, got %v", err)
	}
}

func TestUpload_NilBody(t *testing.T) {
	svc := &MediaService{Store: newMemStore()}
	if _, err := svc.Upload(context.Background(), "o", "a.png", "", nil, 0); !errors.Is(err, ErrMediaMissing) {
		t.Fatalf("want ErrMediaMissing, got %v", err)
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"photo.PNG":          ".png",
		"archive.tar.gz":     ".gz",
		"noext":              "",
		"weird.p@g":          "",
		"dots...":            "",
		"x.averylongextensn": "",
		"movie.mp4":          ".mp4",
	}
	for in, want := range cases {
		if got := sanitizeExt(in); got != want {
			t.Fatalf("sanitizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
