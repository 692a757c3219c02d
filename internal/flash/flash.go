// Package flash provides one-shot user notices carried across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie used for queued notices.
const CookieName = "forum_flash"

// maxNotices bounds the cookie size; older notices are dropped first.
const maxNotices = 8

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is one queued message.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Info(msg string) Notice    { return Notice{Kind: KindInfo, Message: msg} }
func Warning(msg string) Notice { return Notice{Kind: KindWarning, Message: msg} }
func Error(msg string) Notice   { return Notice{Kind: KindError, Message: msg} }

// Write replaces the queued notices with notices. Invalid notices are skipped; if none remain
// the cookie is cleared.
func Write(w http.ResponseWriter, notices []Notice, secure bool) {
	if w == nil {
		return
	}
	clean := normalizeAll(notices)
	if len(clean) == 0 {
		Clear(w, secure)
		return
	}
	payload, err := json.Marshal(clean)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Peek returns the notices queued on the request without consuming them.
func Peek(r *http.Request) []Notice {
	if r == nil {
		return nil
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return nil
	}
	return decode(cookie.Value)
}

// ReadAndClear returns the queued notices and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, secure bool) []Notice {
	notices := Peek(r)
	if len(notices) > 0 {
		Clear(w, secure)
	}
	return notices
}

// Clear expires the flash cookie.
func Clear(w http.ResponseWriter, secure bool) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) []Notice {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	return normalizeAll(notices)
}

func normalizeAll(in []Notice) []Notice {
	out := make([]Notice, 0, len(in))
	for _, n := range in {
		if nn, ok := normalize(n); ok {
			out = append(out, nn)
		}
	}
	if len(out) > maxNotices {
		out = out[len(out)-maxNotices:]
	}
	return out
}

func normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	n.Kind = Kind(strings.ToLower(strings.TrimSpace(string(n.Kind))))
	switch n.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return n, true
	case "":
		n.Kind = KindInfo
		return n, true
	default:
		return Notice{}, false
	}
}
