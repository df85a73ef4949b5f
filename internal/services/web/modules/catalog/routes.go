package catalog

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
	mux.Handle(routepath.LocalePrefix+"{$}", read(h.RequireLocale(h.handleHome)))
	mux.Handle(routepath.ToolsPattern, read(h.RequireLocale(h.handleTools)))
	mux.Handle(routepath.ToolPattern, read(h.RequireLocale(h.handleTool)))
	mux.Handle(routepath.CategoryPattern, read(h.RequireLocale(h.handleCategory)))
	mux.HandleFunc(routepath.LocalePrefix, h.WriteNotFound)
}
