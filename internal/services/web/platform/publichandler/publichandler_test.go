package publichandler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/platform/i18n/catalog"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/webctx"
)

func TestMain(m *testing.M) {
	if _, err := catalog.RegisterDefault(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testBase(static bool) Base {
	return NewBase(module.Dependencies{Locales: i18n.DefaultSet(), StaticExport: static})
}

func TestPageBuildsLanguageSwitcher(t *testing.T) {
	t.Parallel()

	base := testBase(false)
	req := httptest.NewRequest(http.MethodGet, "/zh/tools/alpha", nil)
	req.SetPathValue("locale", "zh")
	page := base.Page(req, "Alpha")

	if page.Lang != "zh" || page.Title != "Alpha" || page.CurrentPath != "/zh/tools/alpha" {
		t.Fatalf("page = %+v", page)
	}
	if len(page.Languages) != 2 {
		t.Fatalf("languages = %d, want 2", len(page.Languages))
	}
	en := page.Languages[0]
	if en.Lang != "en" || en.Href != "/en/tools/alpha" || en.Active {
		t.Fatalf("en link = %+v", en)
	}
	zh := page.Languages[1]
	if zh.Href != "/zh/tools/alpha" || !zh.Active {
		t.Fatalf("zh link = %+v", zh)
	}
	if got := page.Loc.Sprintf("nav.tools"); got != "工具" {
		t.Fatalf("localized nav.tools = %q, want 工具", got)
	}
}

func TestPageReportsSignedInAdmin(t *testing.T) {
	t.Parallel()

	base := testBase(false)
	req := httptest.NewRequest(http.MethodGet, "/en/admin/", nil)
	req.SetPathValue("locale", "en")
	if base.Page(req, "").SignedIn {
		t.Fatal("expected anonymous page")
	}
	req = req.WithContext(webctx.WithAdmin(req.Context(), "ops@example.com"))
	if !base.Page(req, "").SignedIn {
		t.Fatal("expected signed-in page")
	}
}

func TestRequireLocaleRejectsUnknownSegment(t *testing.T) {
	t.Parallel()

	base := testBase(false)
	called := false
	h := base.RequireLocale(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/fr/tools", nil)
	req.SetPathValue("locale", "fr")
	rr := httptest.NewRecorder()
	h(rr, req)
	if called || rr.Code != http.StatusNotFound {
		t.Fatalf("called=%v status=%d, want false 404", called, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatalf("body missing error page: %q", rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/en/tools", nil)
	req.SetPathValue("locale", "en")
	rr = httptest.NewRecorder()
	h(rr, req)
	if !called || rr.Code != http.StatusNoContent {
		t.Fatalf("called=%v status=%d, want true 204", called, rr.Code)
	}
}

func TestStoreContextHasDeadline(t *testing.T) {
	t.Parallel()

	ctx, cancel := testBase(false).StoreContext(httptest.NewRequest(http.MethodGet, "/en/", nil))
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("expected store context deadline")
	}
}
