package admin

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
	form := httpx.RequireMethod(http.MethodGet, http.MethodHead, http.MethodPost)
	post := httpx.RequireMethod(http.MethodPost)

	mux.Handle(routepath.AdminLoginPattern, form(h.enabled(h.handleLogin)))
	mux.Handle(routepath.AdminLogoutPattern, post(h.enabled(h.sameOrigin(h.handleLogout))))
	mux.Handle(routepath.AdminPrefix+"{$}", read(h.enabled(h.requireAdmin(h.handleList))))
	mux.Handle(routepath.AdminNewToolPattern, form(h.enabled(h.requireAdmin(h.sameOrigin(h.handleNew)))))
	mux.Handle(routepath.AdminEditToolPattern, form(h.enabled(h.requireAdmin(h.sameOrigin(h.handleEdit)))))
	mux.Handle(routepath.AdminDeleteToolPattern, post(h.enabled(h.requireAdmin(h.sameOrigin(h.handleDelete)))))
	mux.HandleFunc(routepath.AdminPrefix, h.WriteNotFound)
}
