package workflows

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	read := httpx.RequireMethod(http.MethodGet, http.MethodHead)
	mux.Handle(routepath.WorkflowsPattern, read(h.RequireLocale(h.handleList)))
	mux.Handle(routepath.WorkflowPattern, read(h.RequireLocale(h.handleDetail)))
	mux.HandleFunc(routepath.WorkflowsPrefix, h.WriteNotFound)
}
