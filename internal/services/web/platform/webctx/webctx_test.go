package webctx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
)

func TestLocaleRoundTrip(t *testing.T) {
	t.Parallel()

	set := i18n.DefaultSet()
	zh, _ := set.Lookup("zh")
	ctx := WithLocale(context.Background(), zh)
	got, ok := Locale(ctx)
	if !ok || got.Segment != "zh" {
		t.Fatalf("Locale() = (%v, %v), want (zh, true)", got, ok)
	}
	if _, ok := Locale(context.Background()); ok {
		t.Fatal("expected no locale on empty context")
	}
}

func TestAdminRequiresSubject(t *testing.T) {
	t.Parallel()

	if _, ok := Admin(WithAdmin(context.Background(), "")); ok {
		t.Fatal("expected blank admin subject to be ignored")
	}
	subject, ok := Admin(WithAdmin(context.Background(), "ops@example.com"))
	if !ok || subject != "ops@example.com" {
		t.Fatalf("Admin() = (%q, %v), want (ops@example.com, true)", subject, ok)
	}
}

func TestRequestLocalePrefersContextThenPathValue(t *testing.T) {
	t.Parallel()

	set := i18n.DefaultSet()
	req := httptest.NewRequest(http.MethodGet, "/zh/tools", nil)
	req.SetPathValue("locale", "zh")
	got, ok := RequestLocale(req, set)
	if !ok || got.Segment != "zh" {
		t.Fatalf("RequestLocale(path) = (%v, %v), want (zh, true)", got, ok)
	}

	en, _ := set.Lookup("en")
	req = req.WithContext(WithLocale(req.Context(), en))
	got, ok = RequestLocale(req, set)
	if !ok || got.Segment != "en" {
		t.Fatalf("RequestLocale(ctx) = (%v, %v), want (en, true)", got, ok)
	}

	unknown := httptest.NewRequest(http.MethodGet, "/fr/tools", nil)
	unknown.SetPathValue("locale", "fr")
	if _, ok := RequestLocale(unknown, set); ok {
		t.Fatal("expected unknown locale segment to be rejected")
	}
}
