// Package localeroute guarantees every page request carries an explicit,
// supported locale as its first path segment.
//
// A Resolver is built once from startup configuration and holds no mutable
// state, so one instance serves all request goroutines without locking.
package localeroute

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/webctx"
)

// Action is the outcome of resolving one request path.
type Action int

const (
	// Pass forwards the request unchanged.
	Pass Action = iota
	// Redirect sends the client to Decision.Target.
	Redirect
)

// String returns a lowercase action name for logs and test output.
func (a Action) String() string {
	switch a {
	case Pass:
		return "pass"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the pure classification of a request path.
type Decision struct {
	Action Action
	// Locale is the resolved segment; empty for bypassed paths.
	Locale string
	// Target is the decoded redirect path without query string.
	Target string
}

// DefaultBypassPrefixes are path namespaces never locale-prefixed. A prefix
// matches itself and anything below it.
var DefaultBypassPrefixes = []string{"/api", "/static", "/_internal"}

// DefaultBypassFiles are exact well-known paths never locale-prefixed.
var DefaultBypassFiles = []string{"/favicon.ico", "/robots.txt", "/sitemap.xml", "/up"}

// Config describes a resolver.
type Config struct {
	Locales       []string
	DefaultLocale string
	// DetectLanguage picks the redirect target from Accept-Language before
	// falling back to DefaultLocale.
	DetectLanguage      bool
	ExtraBypassPrefixes []string
	ExtraBypassFiles    []string
}

// Resolver classifies request paths against a closed locale set.
type Resolver struct {
	locales        i18n.Set
	detect         bool
	bypassPrefixes []string
	bypassFiles    map[string]struct{}
}

// New validates cfg and returns an immutable resolver.
func New(cfg Config) (*Resolver, error) {
	locales, err := i18n.NewSet(cfg.Locales, cfg.DefaultLocale)
	if err != nil {
		return nil, err
	}
	resolver := &Resolver{
		locales:     locales,
		detect:      cfg.DetectLanguage,
		bypassFiles: map[string]struct{}{},
	}
	for _, prefix := range append(append([]string{}, DefaultBypassPrefixes...), cfg.ExtraBypassPrefixes...) {
		prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix == "/" {
			continue
		}
		resolver.bypassPrefixes = append(resolver.bypassPrefixes, prefix)
	}
	for _, file := range append(append([]string{}, DefaultBypassFiles...), cfg.ExtraBypassFiles...) {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if !strings.HasPrefix(file, "/") {
			file = "/" + file
		}
		resolver.bypassFiles[file] = struct{}{}
	}
	return resolver, nil
}

// Locales returns the recognized locale set.
func (r *Resolver) Locales() i18n.Set {
	return r.locales
}

// Resolve classifies path. It never fails: anything that is neither bypassed
// nor led by a recognized locale redirects to a locale-prefixed target.
func (r *Resolver) Resolve(path, acceptLanguage string) Decision {
	if path == "" {
		path = "/"
	}
	if r.bypassed(path) {
		return Decision{Action: Pass}
	}
	if locale, ok := r.locales.Lookup(firstSegment(path)); ok {
		return Decision{Action: Pass, Locale: locale.Segment}
	}
	target := r.locales.Default()
	if r.detect {
		if matched, ok := r.locales.MatchAcceptLanguage(acceptLanguage); ok {
			target = matched
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Decision{
		Action: Redirect,
		Locale: target.Segment,
		Target: "/" + target.Segment + path,
	}
}

// Middleware applies Resolve to every request. Redirects keep the query
// string; GET and HEAD use 302 and other methods 307 so bodies are resent.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if r.detect {
			w.Header().Add("Vary", "Accept-Language")
		}
		decision := r.Resolve(req.URL.Path, req.Header.Get("Accept-Language"))
		if decision.Action == Pass {
			if locale, ok := r.locales.Lookup(decision.Locale); ok {
				req = req.WithContext(webctx.WithLocale(req.Context(), locale))
			}
			next.ServeHTTP(w, req)
			return
		}
		target := redirectLocation(decision.Locale, req.URL)
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		status := http.StatusFound
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			status = http.StatusTemporaryRedirect
		}
		w.Header().Set("Location", target)
		w.WriteHeader(status)
	})
}

// redirectLocation prefixes the request's escaped path so encoded
// separators, query and fragment markers survive the redirect.
func redirectLocation(locale string, u *url.URL) string {
	escaped := u.EscapedPath()
	if !strings.HasPrefix(escaped, "/") {
		escaped = "/" + escaped
	}
	return "/" + locale + escaped
}

// SwitchLocale rewrites a locale-led page path to the same page under target.
func SwitchLocale(path, target string) string {
	rest := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[idx:]
	} else {
		rest = "/"
	}
	return "/" + target + rest
}

func (r *Resolver) bypassed(path string) bool {
	if _, ok := r.bypassFiles[path]; ok {
		return true
	}
	for _, prefix := range r.bypassPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	for _, segment := range strings.Split(path, "/") {
		if strings.Contains(segment, ".") {
			return true
		}
	}
	return false
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return path
}
