// Package webtest builds module dependencies and issues requests for web
// handler tests.
package webtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/platform/i18n/catalog"
	"github.com/louisbranch/toolatlas/internal/services/auth"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/testkit/directorytest"
)

// Admin credentials accepted by Deps' authenticator.
const (
	AdminEmail    = "ops@example.com"
	AdminPassword = "correct horse battery"
	SessionSecret = "0123456789abcdef0123456789abcdef"
)

// Deps returns dependencies over a seeded store with admin auth configured.
func Deps(t testing.TB) module.Dependencies {
	t.Helper()
	if _, err := catalog.RegisterDefault(); err != nil {
		t.Fatalf("register catalog: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authenticator, err := auth.New(AdminEmail, string(hash), SessionSecret)
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	return module.Dependencies{
		Locales: i18n.DefaultSet(),
		Store:   directorytest.OpenSeeded(t),
		Auth:    authenticator,
	}
}

// Get serves a GET for target.
func Get(h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return Do(h, httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

// PostForm serves a same-origin form POST for target.
func PostForm(h http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader = strings.NewReader(form.Encode())
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://"+req.Host)
	return Do(h, req, cookies...)
}

// Do serves req with cookies attached.
func Do(h http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// Cookie returns the named cookie set on rr, or nil.
func Cookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
