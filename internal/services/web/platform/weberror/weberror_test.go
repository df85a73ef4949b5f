package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	apperrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

func testPrinter(t *testing.T) *message.Printer {
	t.Helper()
	builder := catalog.NewBuilder()
	for key, value := range map[string]string{
		"error.not_found":           "Nothing here.",
		"error.bad_request":         "Bad request.",
		"error.RATING_OUT_OF_RANGE": "Ratings must be between 1 and 5.",
	} {
		if err := builder.SetString(language.English, key, value); err != nil {
			t.Fatalf("SetString: %v", err)
		}
	}
	return message.NewPrinter(language.English, message.Catalog(builder))
}

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/en/tools/missing", nil)
	rr := httptest.NewRecorder()
	page := webtemplates.PageContext{Lang: "en", Loc: testPrinter(t)}
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), page, "/en/")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="app-error-state"`) || !strings.Contains(body, "Nothing here.") {
		t.Fatalf("body missing app error state: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/en/start", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), webtemplates.PageContext{Lang: "en"}, "/en/")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := testPrinter(t)
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "domain key", err: apperrors.EK(apperrors.KindInvalidInput, "error.RATING_OUT_OF_RANGE", "x"), want: "Ratings must be between 1 and 5."},
		{name: "unknown key falls back", err: apperrors.EK(apperrors.KindInvalidInput, "error.nope", "x"), want: "Bad request."},
		{name: "plain error", err: errors.New("db down"), want: http.StatusText(http.StatusInternalServerError)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(loc, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShouldRenderAppError(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
		http.StatusBadRequest:          false,
		http.StatusForbidden:           false,
	} {
		if got := ShouldRenderAppError(status); got != want {
			t.Fatalf("ShouldRenderAppError(%d) = %v, want %v", status, got, want)
		}
	}
}
