// Auth HTTP handlers.
//
// Passwordless sign-in in two steps:
//   - POST /auth/magic-link  → mail a single-use sign-in link
//   - POST /auth/sessions    → redeem the mailed token for a session JWT
//
// The magic-link endpoint deliberately answers 202 regardless of whether the
// address has an account, so it cannot be used to enumerate users.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifereplay/vault-backend/internal/domain"
	"github.com/lifereplay/vault-backend/internal/services"
)

// MagicLinkRequest is the JSON payload for requesting a sign-in link.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required" example:"you@example.com"`
}

// MagicLinkResponse acknowledges that a link was (or would have been) sent.
type MagicLinkResponse struct {
	Message string `json:"message" example:"check your inbox"`
}

// RedeemRequest is the JSON payload for redeeming a mailed token.
type RedeemRequest struct {
	Token string `json:"token" binding:"required" example:"3f7a...c921"`
}

// SessionResponse carries the minted session token and its subject.
type SessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RequestMagicLink godoc
// @ID          requestMagicLink
// @Summary     Request a magic sign-in link
// @Description Sends a single-use, short-lived sign-in link to the given address.
// @Description Always answers 202 for well-formed addresses; the response never reveals whether an account exists.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.MagicLinkRequest  true  "Email address"
//
// @Success     202  {object} handlers.MagicLinkResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/magic-link [post]
func (h *Handlers) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email is required")
		return
	}

	if err := h.authSvc.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid email address")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSignInFailed, err.Error())
		return
	}
	ok(c, http.StatusAccepted, MagicLinkResponse{Message: "check your inbox"})
}

// RedeemMagicLink godoc
// @ID          redeemMagicLink
// @Summary     Redeem a magic-link token for a session
// @Description Spends the mailed token and returns a bearer session JWT. Unknown, expired,
// @Description and already-used tokens all answer 401 with an identical body.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RedeemRequest  true  "Mailed token"
//
// @Success     201  {object} handlers.SessionResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Invalid token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/sessions [post]
func (h *Handlers) RedeemMagicLink(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "token is required")
		return
	}

	user, session, err := h.authSvc.RedeemMagicLink(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or expired token")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSignInFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, SessionResponse{Token: session, User: user})
}
