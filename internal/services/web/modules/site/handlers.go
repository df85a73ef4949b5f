package site

import (
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.StoreContext(r)
	defer cancel()
	if h.Deps.Store == nil {
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	if err := h.Deps.Store.Ping(ctx); err != nil {
		log.Printf("health check failed err=%v", err)
		_ = httpx.WriteJSONError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) handleFavicon(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.Static("favicon.svg"), http.StatusMovedPermanently)
}

func (h handlers) handleRobots(w http.ResponseWriter, r *http.Request) {
	base := requestmeta.BaseURL(r, h.Deps.SchemePolicy, h.Deps.SiteURL)
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: " + routepath.APIPrefix + "\n")
	for _, locale := range h.Deps.Locales.Locales() {
		b.WriteString("Disallow: " + routepath.AdminRoot(locale.Segment) + "\n")
	}
	fmt.Fprintf(&b, "Sitemap: %s%s\n", base, routepath.Sitemap)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h handlers) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.StoreContext(r)
	defer cancel()
	tools, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	workflows, err := h.Deps.Store.ListWorkflows(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	base := requestmeta.BaseURL(r, h.Deps.SchemePolicy, h.Deps.SiteURL)
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(path string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + path})
	}
	for _, locale := range h.Deps.Locales.Locales() {
		lang := locale.Segment
		add(routepath.Home(lang))
		add(routepath.Tools(lang))
		for _, tool := range tools {
			add(routepath.Tool(lang, tool.Slug))
		}
		for _, category := range categories {
			add(routepath.Category(lang, category.Slug))
		}
		add(routepath.Compare(lang))
		add(routepath.Workflows(lang))
		for _, workflow := range workflows {
			add(routepath.Workflow(lang, workflow.Slug))
		}
		add(routepath.Start(lang))
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		log.Printf("write sitemap err=%v", err)
	}
}
