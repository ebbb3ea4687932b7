// Media HTTP handler.
//
// POST /media accepts a multipart upload and stores the file under a
// per-owner opaque key in the object store. The key is what a subsequent
// seal request attaches to a secret; no public URL exists until the
// disclosure gate resolves one after unlock.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifereplay/vault-backend/internal/http/middleware"
	"github.com/lifereplay/vault-backend/internal/services"
)

// UploadMediaResponse returns the opaque key of the stored object.
type UploadMediaResponse struct {
	MediaKey string `json:"media_key" example:"0b96a9a2-4d52-4a9e-a9a5-0f3f5d1c2ab3/7e3c8d.png"`
}

// UploadMedia godoc
// @ID          uploadMedia
// @Summary     Upload a media attachment
// @Description Stores a file in the vault and returns its opaque key for use in POST /secrets.
// @Tags        Media
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       file  formData  file  true  "The file to attach"
//
// @Success     201  {object} handlers.UploadMediaResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthorized"
// @Failure     413  {object} handlers.ErrorResponse "File too large"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /media [post]
func (h *Handlers) UploadMedia(c *gin.Context) {
	uid := middleware.UserID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "multipart field 'file' is required")
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable upload")
		return
	}
	defer f.Close()

	key, err := h.mediaSvc.Upload(c.Request.Context(), uid, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrMediaTooLarge):
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "file too large")
		case errors.Is(err, services.ErrMediaMissing):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "empty upload")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, UploadMediaResponse{MediaKey: key})
}
