package api

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
	mux.Handle(routepath.APITools, read(http.HandlerFunc(h.handleListTools)))
	mux.Handle(routepath.APIToolPattern, read(http.HandlerFunc(h.handleGetTool)))
	mux.Handle(routepath.APICategories, read(http.HandlerFunc(h.handleListCategories)))
	mux.Handle(routepath.APIWorkflows, read(http.HandlerFunc(h.handleListWorkflows)))
	mux.HandleFunc(routepath.APIPrefix, h.handleNotFound)
}
