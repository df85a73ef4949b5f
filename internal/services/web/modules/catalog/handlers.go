package catalog

import (
	"net/http"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/toolview"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

// listPageSize is the number of tools per server-rendered list page.
const listPageSize = 24

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "home.title")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	featured, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{FeaturedOnly: true})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	summaries, err := h.Deps.Store.RatingSummaries(ctx, storage.ToolIDs(featured))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	l := h.Localizer(page)
	h.WritePage(w, r, page, http.StatusOK, webtemplates.HomePage(page, webtemplates.HomeView{
		Featured:   l.Cards(featured, toolview.CategoryIndex(categories), summaries),
		Categories: l.CategoryLinks(categories),
		ToolsHref:  routepath.Tools(page.Lang),
	}))
}

func (h handlers) handleTools(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "tools.title")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var (
		search, category string
		tools            []directory.Tool
		nextToken        string
	)
	if h.Deps.StaticExport {
		// Exported pages carry no query strings, so list everything.
		tools, err = storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{})
	} else {
		query := r.URL.Query()
		search = strings.TrimSpace(query.Get(routepath.QuerySearch))
		category = strings.TrimSpace(query.Get(routepath.QueryCategory))
		var result storage.ToolPage
		result, err = h.Deps.Store.ListTools(ctx, storage.ToolQuery{
			CategorySlug: category,
			Search:       search,
			PageSize:     listPageSize,
			PageToken:    strings.TrimSpace(query.Get(routepath.QueryPageToken)),
		})
		tools, nextToken = result.Tools, result.NextPageToken
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	summaries, err := h.Deps.Store.RatingSummaries(ctx, storage.ToolIDs(tools))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	l := h.Localizer(page)
	view := webtemplates.ToolsView{
		Action:     routepath.Tools(page.Lang),
		Search:     search,
		Categories: l.CategoryLinks(categories, category),
		Tools:      l.Cards(tools, toolview.CategoryIndex(categories), summaries),
	}
	if nextToken != "" {
		view.NextHref = routepath.ToolsQuery(page.Lang, search, category, nextToken)
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.ToolsPage(page, view))
}

func (h handlers) handleTool(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	tool, err := h.Deps.Store.GetTool(ctx, r.PathValue("slug"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	summaries, err := h.Deps.Store.RatingSummaries(ctx, []string{tool.ID})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	page.Title = tool.Name
	view := webtemplates.ToolView{
		Tool:        h.Localizer(page).Card(tool, toolview.CategoryIndex(categories), summaries[tool.ID]),
		URL:         tool.URL,
		RateAction:  routepath.RateTool(page.Lang, tool.Slug),
		CompareHref: routepath.Compare(page.Lang, tool.Slug),
	}
	if !h.Deps.StaticExport {
		view.Rated = r.URL.Query().Get(routepath.QueryRated) == "1"
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.ToolPage(page, view))
}

func (h handlers) handleCategory(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	category, err := h.Deps.Store.GetCategory(ctx, r.PathValue("slug"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	tools, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{CategorySlug: category.Slug})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	summaries, err := h.Deps.Store.RatingSummaries(ctx, storage.ToolIDs(tools))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	l := h.Localizer(page)
	name := l.Text(category.Names)
	page.Title = webtemplates.T(page.Loc, "category.title", name)
	h.WritePage(w, r, page, http.StatusOK, webtemplates.CategoryPage(page, webtemplates.CategoryView{
		Name:  name,
		Tools: l.Cards(tools, toolview.CategoryIndex(categories), summaries),
	}))
}
