package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"campaign_forum/internal/flash"

	"github.com/gin-gonic/gin"
)

// flashFrom decodes the notices the response queued in the flash cookie.
func flashFrom(t *testing.T, w *httptest.ResponseRecorder) []flash.Notice {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return flash.Peek(req)
}

func hasNotice(notices []flash.Notice, msg string) bool {
	for _, n := range notices {
		if n.Message == msg {
			return true
		}
	}
	return false
}

// pageRequest builds a page request, form-encoded when form is set, signed in when token is set.
func pageRequest(method, target string, form url.Values, token string) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: defaultSessionCookie, Value: token})
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
