package compare

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.Handle(routepath.ComparePattern, httpx.RequireMethod(http.MethodGet, http.MethodHead)(h.RequireLocale(h.handleCompare)))
}
