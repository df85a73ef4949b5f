// Package weberror renders shared error responses for web modules.
package weberror

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use the error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			// Printers echo unknown keys back verbatim.
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return fallbackMessage(loc, statusCode)
}

func fallbackMessage(loc webtemplates.Localizer, statusCode int) string {
	key := "error.bad_request"
	switch {
	case statusCode == http.StatusNotFound:
		key = "error.not_found"
	case statusCode >= http.StatusInternalServerError:
		key = "error.internal"
	}
	if loc != nil {
		if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
			return localized
		}
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes a localized error page.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, page webtemplates.PageContext, homeHref string) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page.Title = webtemplates.ErrorPageTitle(page, statusCode)
	view := webtemplates.ErrorView{
		Status:   statusCode,
		Message:  fallbackMessage(page.Loc, statusCode),
		HomeHref: homeHref,
	}
	if err := pagerender.WritePage(w, r, page, statusCode, webtemplates.ErrorPage(page, view)); err != nil {
		log.Printf("render error page status=%d err=%v", statusCode, err)
	}
}

// WriteModuleError writes a module-safe localized error response: the error
// page for not-found and server errors, plain text for everything else.
// Server errors are logged since their detail never reaches the client.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, page webtemplates.PageContext, homeHref string) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		method, path := "-", "-"
		if r != nil {
			method, path = r.Method, r.URL.Path
		}
		log.Printf("web error method=%s path=%s status=%d err=%v", method, path, statusCode, err)
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, page, homeHref)
		return
	}
	http.Error(w, PublicMessage(page.Loc, err), statusCode)
}
