// Secret HTTP handlers.
//
// This file exposes REST endpoints for the owner-facing vault:
//   - POST /secrets       (seal a new memory)
//   - GET  /secrets       (list own vault, paginated, ETag support)
//   - GET  /secrets/{id}  (owner-scoped full read)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// seal exists for (user, key), the handler replays the recorded response
// (same secret, same status code) and sets `Idempotency-Replayed: true`
// instead of inserting again.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/http/middleware"
	"github.com/lifereplay/vault-backend/internal/repo"
	"github.com/lifereplay/vault-backend/internal/services"
	"github.com/lifereplay/vault-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// SecretService defines the vault write/read operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SecretService interface {
	// Seal validates and persists a new secret for ownerID.
	Seal(ctx context.Context, ownerID, content, mediaKey string, deliveryAt time.Time) (*domain.Secret, error)
	// GetOwned returns one of the owner's secrets with all fields.
	GetOwned(ctx context.Context, ownerID, id string) (*domain.Secret, error)
	// ListPage returns a page of the owner's secrets and the total count.
	ListPage(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Secret, int64, error)
}

//
// DTOs
//

// SealSecretRequest is the JSON payload for sealing a new secret. At least
// one of Content/MediaKey must be present; DeliveryAt is RFC 3339.
type SealSecretRequest struct {
	// Content is the optional text payload.
	Content string `json:"content" example:"hi future me"`
	// MediaKey is the optional opaque key returned by POST /media.
	MediaKey string `json:"media_key" example:"0b96a9a2-4d52-4a9e-a9a5-0f3f5d1c2ab3/7e3c8d.png"`
	// DeliveryAt is the instant the secret unlocks (RFC 3339).
	DeliveryAt time.Time `json:"delivery_at" binding:"required" example:"2030-01-01T00:00:00Z"`
}

// SealSecretResponse wraps the newly sealed secret together with its public
// share path, mirroring the share link the original UI displays.
type SealSecretResponse struct {
	Secret    *domain.Secret `json:"secret"`
	RevealURL string         `json:"reveal_url" example:"/reveal/141add05-4415-4938-b5a1-17e0d3171aff"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListSecretsResponse wraps a page of secrets and pagination information.
type ListSecretsResponse struct {
	Secrets    []domain.Secret `json:"secrets"`
	Pagination Pagination      `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// revealPath builds the public share path for a sealed secret.
func revealPath(id string) string { return "/reveal/" + id }

//
// Handlers
//

// SealSecret godoc
// @ID          sealSecret
// @Summary     Seal a new secret
// @Description Creates a time-locked secret for the current user and returns it with its share path.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Secrets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.SealSecretRequest  true  "Seal payload"
//
// @Success     201  {object}  handlers.SealSecretResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /secrets [post]
func (h *Handlers) SealSecret(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	var req SealSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body (delivery_at required, RFC 3339)")
		return
	}

	// Idempotency replay path: read the validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && h.db != nil {
		if rec, err := repo.GetIdempotency(ctx, h.db, uid, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, err2 := repo.GetSecretOwned(ctx, h.db, rec.SecretID, uid); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, SealSecretResponse{Secret: prev, RevealURL: revealPath(prev.ID)})
				return
			}
		}
	}

	sec, err := h.secretSvc.Seal(ctx, uid, req.Content, req.MediaKey, req.DeliveryAt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrMissingPayload):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a message or media attachment is required")
		case errors.Is(err, services.ErrInvalidDeliveryDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "delivery_at is required")
		case errors.Is(err, services.ErrContentTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content too long")
		case errors.Is(err, repo.ErrDuplicate):
			// Freak id collision; the client may simply retry.
			fail(c, http.StatusConflict, ErrCodeConflict, "please retry the request")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSealFailed, err.Error())
		}
		return
	}

	// Idempotency store path, best effort: a failure to record the key
	// must not fail the seal that already happened.
	if idemKey != "" && h.db != nil {
		_, _ = repo.CreateIdempotency(ctx, h.db, uid, idemKey, sec.ID, http.StatusCreated, h.idempotencyTTL)
	}

	ok(c, http.StatusCreated, SealSecretResponse{Secret: sec, RevealURL: revealPath(sec.ID)})
}

// ListSecrets godoc
// @ID          listSecrets
// @Summary     List own secrets (paginated)
// @Description Returns a page of the user's vault. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Secrets
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListSecretsResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /secrets [get]
func (h *Handlers) ListSecrets(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if h.db != nil {
		count, maxTS, err := repo.SecretsStats(ctx, h.db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"vault:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.secretSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListSecretsResponse{
		Secrets: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// GetSecret godoc
// @ID          getSecret
// @Summary     Read one of your own secrets
// @Description Returns a single secret with all fields, including payloads of still-locked records.
// @Description Secrets belonging to other users answer 404, identical to missing records.
// @Tags        Secrets
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Secret ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {object} domain.Secret
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     404  {object} handlers.ErrorResponse "Secret not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /secrets/{id} [get]
func (h *Handlers) GetSecret(c *gin.Context) {
	uid := middleware.UserID(c)

	sec, err := h.secretSvc.GetOwned(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrSecretNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "secret not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, sec)
}
