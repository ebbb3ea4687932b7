// Reveal HTTP handler.
//
// GET /reveal/{id} is the only anonymous read in the API. It returns either a
// locked view (delivery metadata for a countdown, no payload) or the full
// unlocked view, decided entirely by the server clock. A missing, malformed,
// or foreign id is indistinguishable from one that never existed.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifereplay/vault-backend/internal/services"
)

// Reveal godoc
// @ID          revealSecret
// @Summary     Reveal a shared secret
// @Description Anonymous share-link endpoint. Returns a locked view (state, id, delivery_at, created_at)
// @Description until the delivery instant, and the full payload from that instant on.
// @Tags        Reveal
// @Produce     json
//
// @Param       id  path  string  true  "Secret ID from the share link (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {object} domain.Disclosure
// @Failure     404  {object} handlers.ErrorResponse "Secret not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reveal/{id} [get]
func (h *Handlers) Reveal(c *gin.Context) {
	d, err := h.disclosureSvc.Reveal(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSecretNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "secret not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeRevealFailed, err.Error())
		return
	}

	// The locked/unlocked decision is per request. A cached locked view
	// would keep hiding a payload past its delivery instant.
	c.Header("Cache-Control", "no-store")
	ok(c, http.StatusOK, d)
}
