package onboarding

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	allowed := httpx.RequireMethod(http.MethodGet, http.MethodHead, http.MethodPost)
	mux.Handle(routepath.StartPattern, allowed(h.RequireLocale(h.handleStart)))
}
