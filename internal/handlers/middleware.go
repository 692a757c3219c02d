package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"campaign_forum/internal/flash"

	"github.com/gin-gonic/gin"
)

// userIDKey holds the acting user's id in the gin context.
const userIDKey = "userId"

const msgLoginRequired = "Please log in to access this page."

// userIdMiddleware guards the JSON API: a valid bearer token is required.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	token, ok := bearerToken(header)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// currentUser resolves the acting user for HTML pages from the session cookie, falling back
// to a bearer token. Anonymous requests pass through without a user id.
func (h *Handler) currentUser(c *gin.Context) {
	token := ""
	if cookie, err := c.Cookie(h.sessionCookie); err == nil && cookie != "" {
		token = cookie
	} else if t, ok := bearerToken(c.GetHeader("Authorization")); ok {
		token = t
	}
	if token == "" {
		c.Next()
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		// stale or tampered session; forget it
		h.clearSession(c)
		c.Next()
		return
	}
	c.Set(userIDKey, userId)
	c.Next()
}

// requireLogin sends anonymous visitors to the login page, remembering where they were going.
func (h *Handler) requireLogin(c *gin.Context) {
	if actorID(c) > 0 {
		c.Next()
		return
	}
	h.addFlash(c, flash.Info(msgLoginRequired))
	h.redirect(c, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// requestLogger writes one line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}

// actorID returns the signed-in user's id, or 0 for anonymous requests.
func actorID(c *gin.Context) int {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int)
	return id
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
