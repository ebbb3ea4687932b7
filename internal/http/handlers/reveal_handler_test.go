package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/services"
)

// stubDisclosure returns a canned disclosure or error.
type stubDisclosure struct {
	lastID string
	out    *domain.Disclosure
	err    error
}

func (s *stubDisclosure) Reveal(ctx context.Context, id string) (*domain.Disclosure, error) {
	s.lastID = id
	return s.out, s.err
}

func newRevealRouter(t *testing.T, svc DisclosureService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, svc, nil, nil, time.Hour, 0)
	r := gin.New()
	r.GET("/reveal/:id", h.Reveal)
	return r
}

func TestReveal_LockedView(t *testing.T) {
	due := time.Date(2032, 5, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubDisclosure{out: &domain.Disclosure{
		State:      domain.DisclosureLocked,
		ID:         "abc",
		DeliveryAt: due,
		CreatedAt:  due.Add(-time.Hour),
	}}
	r := newRevealRouter(t, stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reveal/abc", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.lastID != "abc" {
		t.Fatalf("service saw id %q", stub.lastID)
	}

	// The locked body must not even contain payload keys.
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["state"] != "locked" {
		t.Fatalf("state = %v", body["state"])
	}
	// A cached locked view would keep hiding the payload past delivery.
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
	if _, ok := body["content"]; ok {
		t.Fatalf("locked response serialized content: %s", w.Body.String())
	}
	if _, ok := body["media_url"]; ok {
		t.Fatalf("locked response serialized media_url: %s", w.Body.String())
	}
}

func TestReveal_UnlockedView(t *testing.T) {
	content := "surprise"
	url := "https://cdn.test/x.png"
	stub := &stubDisclosure{out: &domain.Disclosure{
		State:      domain.DisclosureUnlocked,
		ID:         "abc",
		DeliveryAt: time.Now().UTC(),
		CreatedAt:  time.Now().UTC(),
		Content:    &content,
		MediaURL:   &url,
	}}
	r := newRevealRouter(t, stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reveal/abc", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var d domain.Disclosure
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.State != domain.DisclosureUnlocked || d.Content == nil || *d.Content != content {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if d.MediaURL == nil || *d.MediaURL != url {
		t.Fatalf("media url lost: %s", w.Body.String())
	}
}

func TestReveal_NotFound(t *testing.T) {
	stub := &stubDisclosure{err: services.ErrSecretNotFound}
	r := newRevealRouter(t, stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reveal/whatever", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeNotFound {
		t.Fatalf("code = %q", er.Code)
	}
}
