package localeroute

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/webctx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newResolver(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	if cfg.Locales == nil {
		cfg.Locales = []string{"en", "zh"}
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	resolver, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return resolver
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{DefaultLocale: "en"}); err == nil {
		t.Fatal("expected error for empty locale set")
	}
	if _, err := New(Config{Locales: []string{"en", "zh"}, DefaultLocale: "fr"}); err == nil {
		t.Fatal("expected error for default outside the set")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{})
	tests := []struct {
		name string
		path string
		want Decision
	}{
		{name: "recognized locale passes", path: "/zh/tools", want: Decision{Action: Pass, Locale: "zh"}},
		{name: "idempotent", path: "/en/tools", want: Decision{Action: Pass, Locale: "en"}},
		{name: "bare locale", path: "/en", want: Decision{Action: Pass, Locale: "en"}},
		{name: "bare locale slash", path: "/en/", want: Decision{Action: Pass, Locale: "en"}},
		{name: "unprefixed page", path: "/tools", want: Decision{Action: Redirect, Locale: "en", Target: "/en/tools"}},
		{name: "root", path: "/", want: Decision{Action: Redirect, Locale: "en", Target: "/en/"}},
		{name: "empty path", path: "", want: Decision{Action: Redirect, Locale: "en", Target: "/en/"}},
		{name: "prefix of longer token", path: "/english", want: Decision{Action: Redirect, Locale: "en", Target: "/en/english"}},
		{name: "case sensitive", path: "/EN/tools", want: Decision{Action: Redirect, Locale: "en", Target: "/en/EN/tools"}},
		{name: "unknown locale", path: "/fr/tools", want: Decision{Action: Redirect, Locale: "en", Target: "/en/fr/tools"}},
		{name: "api", path: "/api/v1/tools", want: Decision{Action: Pass}},
		{name: "api root", path: "/api", want: Decision{Action: Pass}},
		{name: "api lookalike", path: "/apis", want: Decision{Action: Redirect, Locale: "en", Target: "/en/apis"}},
		{name: "static", path: "/static/site.css", want: Decision{Action: Pass}},
		{name: "internal", path: "/_internal/build", want: Decision{Action: Pass}},
		{name: "favicon", path: "/favicon.ico", want: Decision{Action: Pass}},
		{name: "robots", path: "/robots.txt", want: Decision{Action: Pass}},
		{name: "sitemap", path: "/sitemap.xml", want: Decision{Action: Pass}},
		{name: "health", path: "/up", want: Decision{Action: Pass}},
		{name: "dotted segment", path: "/images/logo.png", want: Decision{Action: Pass}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := resolver.Resolve(tc.path, ""); got != tc.want {
				t.Fatalf("Resolve(%q) = %+v, want %+v", tc.path, got, tc.want)
			}
		})
	}
}

func TestResolveRedirectTargetsAreStable(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{})
	for _, path := range []string{"/", "/tools", "/tools/chat", "/EN", "/english/x"} {
		first := resolver.Resolve(path, "")
		if first.Action != Redirect {
			t.Fatalf("Resolve(%q) action = %s, want redirect", path, first.Action)
		}
		if !strings.HasPrefix(first.Target, "/en") {
			t.Fatalf("Resolve(%q) target = %q, want /en prefix", path, first.Target)
		}
		second := resolver.Resolve(first.Target, "")
		if second.Action != Pass || second.Locale != "en" {
			t.Fatalf("Resolve(%q) = %+v, want pass en", first.Target, second)
		}
	}
}

func TestResolveAPIPassesRegardlessOfConfiguration(t *testing.T) {
	t.Parallel()

	configs := []Config{
		{},
		{Locales: []string{"zh"}, DefaultLocale: "zh", DetectLanguage: true},
		{Locales: []string{"en", "zh", "zh-TW"}, DefaultLocale: "zh-TW", ExtraBypassPrefixes: []string{"/feeds"}},
	}
	for _, cfg := range configs {
		resolver := newResolver(t, cfg)
		if got := resolver.Resolve("/api/v1/tools", "zh-CN"); got.Action != Pass {
			t.Fatalf("Resolve(/api/v1/tools) with %+v = %+v, want pass", cfg, got)
		}
	}
}

func TestResolveExtraBypass(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{
		ExtraBypassPrefixes: []string{"/feeds/"},
		ExtraBypassFiles:    []string{"humans"},
	})
	for _, path := range []string{"/feeds", "/feeds/rss", "/humans"} {
		if got := resolver.Resolve(path, ""); got.Action != Pass {
			t.Fatalf("Resolve(%q) = %+v, want pass", path, got)
		}
	}
}

func TestResolveDetectsAcceptLanguage(t *testing.T) {
	t.Parallel()

	detecting := newResolver(t, Config{DetectLanguage: true})
	tests := []struct {
		header string
		want   string
	}{
		{header: "zh-CN,zh;q=0.9,en;q=0.8", want: "/zh/tools"},
		{header: "fr-FR,en;q=0.5", want: "/en/tools"},
		{header: "fr-FR", want: "/en/tools"},
		{header: "", want: "/en/tools"},
		{header: "%%garbage", want: "/en/tools"},
	}
	for _, tc := range tests {
		if got := detecting.Resolve("/tools", tc.header); got.Target != tc.want {
			t.Fatalf("Resolve(/tools, %q) target = %q, want %q", tc.header, got.Target, tc.want)
		}
	}

	plain := newResolver(t, Config{})
	if got := plain.Resolve("/tools", "zh-CN"); got.Target != "/en/tools" {
		t.Fatalf("detection off target = %q, want /en/tools", got.Target)
	}
}

func TestResolveExtendedVariant(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{Locales: []string{"en", "zh", "zh-TW"}, DetectLanguage: true})
	if got := resolver.Resolve("/zh-TW/tools", ""); got.Action != Pass || got.Locale != "zh-TW" {
		t.Fatalf("Resolve(/zh-TW/tools) = %+v, want pass zh-TW", got)
	}
	if got := resolver.Resolve("/tools", "zh-TW"); got.Target != "/zh-TW/tools" {
		t.Fatalf("Resolve(/tools, zh-TW) target = %q, want /zh-TW/tools", got.Target)
	}
}

func TestMiddlewarePassesAndStashesLocale(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{})
	var gotLocale string
	var gotPath string
	h := resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if locale, ok := webctx.Locale(r.Context()); ok {
			gotLocale = locale.Segment
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/zh/tools", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if gotPath != "/zh/tools" || gotLocale != "zh" {
		t.Fatalf("forwarded path=%q locale=%q, want /zh/tools zh", gotPath, gotLocale)
	}

	gotLocale = ""
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
	if rr.Code != http.StatusNoContent || gotLocale != "" {
		t.Fatalf("api status=%d locale=%q, want 204 and no locale", rr.Code, gotLocale)
	}
}

func TestMiddlewareRedirects(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{})
	h := resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("next handler should not run on redirect")
	}))

	tests := []struct {
		method   string
		target   string
		status   int
		location string
	}{
		{method: http.MethodGet, target: "/tools?q=image", status: http.StatusFound, location: "/en/tools?q=image"},
		{method: http.MethodHead, target: "/", status: http.StatusFound, location: "/en/"},
		{method: http.MethodPost, target: "/start", status: http.StatusTemporaryRedirect, location: "/en/start"},
		{method: http.MethodGet, target: "/tools/a%3Fb", status: http.StatusFound, location: "/en/tools/a%3Fb"},
		{method: http.MethodGet, target: "/tools/a%23b", status: http.StatusFound, location: "/en/tools/a%23b"},
		{method: http.MethodGet, target: "/tools/a%2Fb", status: http.StatusFound, location: "/en/tools/a%2Fb"},
		{method: http.MethodGet, target: "/tools/%E4%BD%A0?q=x", status: http.StatusFound, location: "/en/tools/%E4%BD%A0?q=x"},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.target, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s %s status = %d, want %d", tc.method, tc.target, rr.Code, tc.status)
		}
		if got := rr.Header().Get("Location"); got != tc.location {
			t.Fatalf("%s %s location = %q, want %q", tc.method, tc.target, got, tc.location)
		}
	}
}

func TestMiddlewareVariesOnDetection(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t, Config{DetectLanguage: true})
	h := resolver.Middleware(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	req.Header.Set("Accept-Language", "zh")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Location"); got != "/zh/tools" {
		t.Fatalf("location = %q, want /zh/tools", got)
	}
	if got := rr.Header().Get("Vary"); got != "Accept-Language" {
		t.Fatalf("Vary = %q, want Accept-Language", got)
	}
}

func TestSwitchLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		target string
		want   string
	}{
		{path: "/en/tools/chat", target: "zh", want: "/zh/tools/chat"},
		{path: "/en/", target: "zh", want: "/zh/"},
		{path: "/en", target: "zh", want: "/zh/"},
		{path: "/", target: "zh", want: "/zh/"},
		{path: "/zh/workflows", target: "en", want: "/en/workflows"},
	}
	for _, tc := range tests {
		if got := SwitchLocale(tc.path, tc.target); got != tc.want {
			t.Fatalf("SwitchLocale(%q, %q) = %q, want %q", tc.path, tc.target, got, tc.want)
		}
	}
}

func TestActionString(t *testing.T) {
	t.Parallel()

	if Pass.String() != "pass" || Redirect.String() != "redirect" || Action(9).String() != "unknown" {
		t.Fatal("unexpected action names")
	}
}
