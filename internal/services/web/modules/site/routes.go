package site

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	"github.com/louisbranch/toolatlas/internal/services/web/static"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	read := httpx.RequireMethod(http.MethodGet, http.MethodHead)
	mux.Handle(routepath.Health, read(http.HandlerFunc(h.handleHealth)))
	mux.Handle(routepath.Favicon, read(http.HandlerFunc(h.handleFavicon)))
	mux.Handle(routepath.Robots, read(http.HandlerFunc(h.handleRobots)))
	mux.Handle(routepath.Sitemap, read(http.HandlerFunc(h.handleSitemap)))
	mux.Handle(routepath.StaticPrefix, read(cacheStatic(http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))))
	mux.Handle(routepath.Root, http.HandlerFunc(h.WriteNotFound))
}

func cacheStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
