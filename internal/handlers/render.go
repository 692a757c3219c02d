package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campaign_forum/internal/flash"
	"campaign_forum/internal/forms"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("Jan 2, 2006 15:04 UTC")
	},
}).ParseFS(templateFS, "templates/*.html"))

// pendingFlashKey holds notices queued during the current request.
const pendingFlashKey = "flash.pending"

const defaultLanding = "/campaign/list"

// addFlash queues a notice. It is shown on this request's page if one is rendered, otherwise it
// travels in the flash cookie to the next one.
func (h *Handler) addFlash(c *gin.Context, n flash.Notice) {
	c.Set(pendingFlashKey, append(pendingFlash(c), n))
}

func pendingFlash(c *gin.Context) []flash.Notice {
	v, ok := c.Get(pendingFlashKey)
	if !ok {
		return nil
	}
	notices, _ := v.([]flash.Notice)
	return notices
}

// redirect answers 302, carrying unread and queued notices to the next page.
func (h *Handler) redirect(c *gin.Context, location string) {
	notices := append(flash.Peek(c.Request), pendingFlash(c)...)
	if len(notices) > 0 {
		flash.Write(c.Writer, notices, h.secureCookies)
	}
	c.Redirect(http.StatusFound, location)
}

// render executes a page template. Every page gets the notices to show, the acting user id and
// a non-nil errors map.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = forms.Errors{}
	}
	data["notices"] = append(flash.ReadAndClear(c.Writer, c.Request, h.secureCookies), pendingFlash(c)...)
	data["actorID"] = actorID(c)
	c.HTML(code, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"title":   "Not Found",
		"message": "The page you requested does not exist.",
	})
}

// serverError logs err under logKey and renders the generic failure page.
func (h *Handler) serverError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil {
		fields := append([]interface{}{"err", err, "path", c.Request.URL.Path}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Something went wrong",
		"message": "Please try again later.",
	})
}

// setSession stores the session token. Without persist the cookie lives as long as the browser.
func (h *Handler) setSession(c *gin.Context, token string, expires time.Time, persist bool) {
	cookie := &http.Cookie{
		Name:     h.sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if persist {
		cookie.Expires = expires
	}
	http.SetCookie(c.Writer, cookie)
}

func (h *Handler) clearSession(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// safeNext returns next if it is a local path, otherwise the default landing page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return defaultLanding
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultLanding
	}
	return next
}
