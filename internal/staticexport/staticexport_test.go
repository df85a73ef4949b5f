package staticexport

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/services/web/app"
	"github.com/louisbranch/toolatlas/internal/services/web/localeroute"
	"github.com/louisbranch/toolatlas/internal/services/web/static"
	"github.com/louisbranch/toolatlas/internal/testkit/webtest"
)

func exportConfig(t *testing.T, outDir string) Config {
	t.Helper()

	deps := webtest.Deps(t)
	deps.StaticExport = true
	deps.SiteURL = "https://toolatlas.example"
	resolver, err := localeroute.New(localeroute.Config{Locales: i18n.DefaultSegments, DefaultLocale: i18n.DefaultSegment})
	if err != nil {
		t.Fatalf("localeroute.New: %v", err)
	}
	handler, err := app.BuildRootHandler(app.Config{Dependencies: deps, Resolver: resolver, EnableMCP: true})
	if err != nil {
		t.Fatalf("BuildRootHandler: %v", err)
	}
	return Config{
		Handler:    handler,
		Locales:    deps.Locales,
		OutDir:     outDir,
		ExtraFiles: []string{"/robots.txt", "/sitemap.xml"},
		Assets:     static.FS,
	}
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	body, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(body)
}

func TestRunExportsPublicPages(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	result, err := Run(context.Background(), exportConfig(t, outDir))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, page := range []string{"/en/", "/zh/", "/en/tools", "/zh/tools/alpha-writer", "/en/categories/design", "/en/workflows/blog-post"} {
		if !slices.Contains(result.Pages, page) {
			t.Fatalf("pages = %v, missing %s", result.Pages, page)
		}
	}
	for _, page := range result.Pages {
		if strings.Contains(page, "/admin/") || strings.HasPrefix(page, "/api/") {
			t.Fatalf("exported server-only page %s", page)
		}
	}
	if result.Files != 2 || result.Assets == 0 {
		t.Fatalf("result = %+v", result)
	}

	detail := readFile(t, filepath.Join(outDir, "zh", "tools", "alpha-writer", "index.html"))
	if !strings.Contains(detail, "撰写长文。") {
		t.Fatalf("detail page missing summary: %s", detail)
	}
	if robots := readFile(t, filepath.Join(outDir, "robots.txt")); !strings.Contains(robots, "Sitemap: https://toolatlas.example/sitemap.xml") {
		t.Fatalf("robots = %s", robots)
	}
	if _, err := os.Stat(filepath.Join(outDir, "static", "site.css")); err != nil {
		t.Fatalf("static asset not copied: %v", err)
	}
}

func TestRunRefusesNonEmptyOutput(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	stale := filepath.Join(outDir, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale file: %v", err)
	}
	cfg := exportConfig(t, outDir)
	if _, err := Run(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "not empty") {
		t.Fatalf("Run error = %v, want not empty", err)
	}

	cfg.Overwrite = true
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run with overwrite: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale file survived overwrite: %v", err)
	}
}

func TestRunRejectsMissingInputs(t *testing.T) {
	t.Parallel()

	if _, err := Run(context.Background(), Config{OutDir: t.TempDir()}); err == nil {
		t.Fatal("expected missing handler error")
	}
	cfg := exportConfig(t, "")
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected missing output directory error")
	}
}

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	doc := `<html><body>
<a href="/en/tools">Tools</a>
<a href="alpha-writer">relative</a>
<a href="/en/tools?page_token=abc">next</a>
<a href="https://example.com/en/">external</a>
<a href="#top">anchor</a>
<a href="/static/site.css">asset</a>
<form action="/en/tools/alpha-writer/rate"></form>
</body></html>`
	links, err := extractLinks("/en/tools/", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extractLinks: %v", err)
	}
	want := []string{"/en/tools", "/en/tools/alpha-writer", "/static/site.css"}
	if !slices.Equal(links, want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
}

func TestSafeJoinStaysInsideOutput(t *testing.T) {
	t.Parallel()

	got, err := safeJoin("/out", "/../../etc/passwd")
	if err != nil {
		t.Fatalf("safeJoin: %v", err)
	}
	if got != filepath.Join("/out", "etc", "passwd") {
		t.Fatalf("safeJoin = %q", got)
	}
	if _, err := safeJoin("/out", "/"); err == nil {
		t.Fatal("expected error for the output root")
	}
}

func TestRunWritesRedirectTargetOnce(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/en/{$}", page(`<a href="/en/old">old</a> <a href="/en/legacy">legacy</a> <a href="/en/current">current</a>`))
	mux.HandleFunc("/zh/{$}", page(`<p>zh</p>`))
	mux.HandleFunc("/en/current", page(`<p>current</p>`))
	for _, legacy := range []string{"/en/old", "/en/legacy"} {
		mux.Handle(legacy, http.RedirectHandler("/en/current", http.StatusMovedPermanently))
	}

	outDir := t.TempDir()
	result, err := Run(context.Background(), Config{Handler: mux, Locales: i18n.DefaultSet(), OutDir: outDir, Concurrency: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"/en/", "/en/current", "/zh/"}
	if !slices.Equal(result.Pages, want) {
		t.Fatalf("pages = %v, want %v", result.Pages, want)
	}
	if got := readFile(t, filepath.Join(outDir, "en", "current", "index.html")); got != "<p>current</p>" {
		t.Fatalf("current page = %q", got)
	}
	for _, legacy := range []string{"old", "legacy"} {
		if _, err := os.Stat(filepath.Join(outDir, "en", legacy)); !os.IsNotExist(err) {
			t.Fatalf("redirected path %s written: %v", legacy, err)
		}
	}
}
