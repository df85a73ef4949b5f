// Package sessioncookie centralizes the admin session and visitor cookies.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/toolatlas/internal/platform/id"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
)

const (
	// Name is the admin session cookie name.
	Name = "toolatlas_admin"
	// VisitorName identifies anonymous visitors for rating de-duplication.
	VisitorName = "toolatlas_visitor"
	// VisitorMaxAge keeps the visitor identity for one year.
	VisitorMaxAge = 365 * 24 * time.Hour
)

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	return read(r, Name)
}

// WriteWithPolicy sets the session cookie for the current request context.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearWithPolicy expires the session cookie for the current request context.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// EnsureVisitor returns the request's visitor id, minting and setting a new
// cookie when the current one is missing or malformed.
func EnsureVisitor(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (string, error) {
	if value, ok := read(r, VisitorName); ok && id.ValidVisitorID(value) {
		return value, nil
	}
	visitorID, err := id.NewVisitorID()
	if err != nil {
		return "", err
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     VisitorName,
			Value:    visitorID,
			Path:     "/",
			MaxAge:   int(VisitorMaxAge / time.Second),
			HttpOnly: true,
			Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return visitorID, nil
}

func read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}
