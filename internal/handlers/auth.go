package handlers

import (
	"errors"
	"net/http"

	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"
)

// Credentials payload for the JSON token endpoint.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign in
// @Description  Exchanges username and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      authCredentials  true  "username and password"
// @Success      200          {object}  map[string]string  "token"
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logAndJSONError(c, http.StatusInternalServerError, "sign-in failed", "auth_sign_in_error", err, "username", input.Username)
			return
		}
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
