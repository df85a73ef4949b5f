package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/testkit/directorytest"
	"github.com/louisbranch/toolatlas/internal/testkit/webtest"
)

func newTestMux(t *testing.T, static bool) *http.ServeMux {
	t.Helper()
	deps := webtest.Deps(t)
	deps.StaticExport = static
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(deps)))
	return mux
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, handlers{})
}

func TestMountOwnsLocalePrefix(t *testing.T) {
	t.Parallel()

	mount, err := New(webtest.Deps(t)).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(mount.Prefixes) != 1 || mount.Prefixes[0] != "/{locale}/" || mount.ServerOnly {
		t.Fatalf("mount = %+v", mount)
	}
}

func TestHomeListsFeaturedAndCategories(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, false), "/en/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Alpha Writer", `href="/en/categories/writing"`, `href="/en/categories/design"`, "5.0 average from 1 ratings"} {
		if !strings.Contains(body, want) {
			t.Fatalf("home missing %q", want)
		}
	}
	if strings.Contains(body, "Beta Draw") {
		t.Fatal("home lists non-featured tool")
	}
}

func TestHomeLocalizesForChinese(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, false), "/zh/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<html lang="zh">`) || !strings.Contains(body, "写作") {
		t.Fatalf("zh home not localized: %s", body)
	}
}

func TestToolsSearchAndCategoryFilter(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, false)

	rr := webtest.Get(mux, "/en/tools?q=notes")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Gamma Notes") || strings.Contains(body, "Beta Draw") {
		t.Fatalf("search results wrong: %s", body)
	}
	if !strings.Contains(body, `Results for &#34;notes&#34;`) {
		t.Fatalf("search echo missing: %s", body)
	}

	rr = webtest.Get(mux, "/en/tools?category=design")
	body = rr.Body.String()
	if !strings.Contains(body, "Beta Draw") || strings.Contains(body, "Alpha Writer") {
		t.Fatalf("category filter wrong: %s", body)
	}
	if !strings.Contains(body, `value="design" selected`) {
		t.Fatalf("category not selected: %s", body)
	}
}

func TestToolsStaticExportListsEverything(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, true), "/en/tools?q=notes")
	body := rr.Body.String()
	for _, name := range []string{"Alpha Writer", "Beta Draw", "Gamma Notes"} {
		if !strings.Contains(body, name) {
			t.Fatalf("static list missing %q", name)
		}
	}
	if strings.Contains(body, "<form") {
		t.Fatal("static list renders search form")
	}
}

func TestToolDetail(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, false)
	rr := webtest.Get(mux, "/en/tools/"+directorytest.ToolAlpha+"?rated=1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<title>Alpha Writer · ToolAtlas</title>",
		`action="/en/tools/alpha-writer/rate"`,
		`href="https://alpha.example.com"`,
		`href="/en/compare?tools=alpha-writer"`,
		"Thanks, your rating was saved.",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail missing %q in %s", want, body)
		}
	}
}

func TestToolDetailNotFound(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, false), "/en/tools/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatalf("body missing error page: %q", rr.Body.String())
	}
}

func TestCategoryPage(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, false), "/zh/categories/"+directorytest.CategoryWriting)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Alpha Writer") || !strings.Contains(body, "Gamma Notes") || strings.Contains(body, "Beta Draw") {
		t.Fatalf("category page tools wrong: %s", body)
	}
}

func TestUnknownLocalePathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t, false), "/en/nowhere")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCatalogMethodContract(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, false)

	head := webtest.Do(mux, httptest.NewRequest(http.MethodHead, "/en/tools", nil))
	if head.Code != http.StatusOK || head.Body.Len() != 0 {
		t.Fatalf("HEAD status=%d body=%d, want 200 empty", head.Code, head.Body.Len())
	}

	post := webtest.Do(mux, httptest.NewRequest(http.MethodPost, "/en/tools", nil))
	if post.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", post.Code, http.StatusMethodNotAllowed)
	}
	if got := post.Header().Get("Allow"); got != "GET, HEAD" {
		t.Fatalf("Allow = %q, want %q", got, "GET, HEAD")
	}
}
