package compare

import (
	"net/http"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/toolview"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/weberror"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

// selectedSlugs accepts both the comma separated link form (?tools=a,b) and
// the repeated checkbox form (?tools=a&tools=b).
func selectedSlugs(r *http.Request) []string {
	return directory.ParseCompareSlugs(strings.Join(r.URL.Query()[routepath.QueryTools], ","))
}

func (h handlers) handleCompare(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "compare.title")
	view := webtemplates.CompareView{Action: routepath.Compare(page.Lang)}
	if h.Deps.StaticExport {
		h.WritePage(w, r, page, http.StatusOK, webtemplates.ComparePage(page, view))
		return
	}

	ctx, cancel := h.StoreContext(r)
	defer cancel()
	all, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	bySlug := make(map[string]directory.Tool, len(all))
	for _, tool := range all {
		bySlug[tool.Slug] = tool
	}

	slugs := selectedSlugs(r)
	selected := make([]directory.Tool, 0, len(slugs))
	for _, slug := range slugs {
		tool, ok := bySlug[slug]
		if !ok {
			h.WriteError(w, r, storage.ErrNotFound)
			return
		}
		selected = append(selected, tool)
	}
	for _, tool := range all {
		view.Options = append(view.Options, webtemplates.CategoryLink{
			Slug:     tool.Slug,
			Name:     tool.Name,
			Selected: containsSlug(slugs, tool.Slug),
		})
	}

	// One tool is the normal entry from a detail page: preselect it and
	// wait for more picks.
	if len(selected) < 2 {
		h.WritePage(w, r, page, http.StatusOK, webtemplates.ComparePage(page, view))
		return
	}

	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	summaries, err := h.Deps.Store.RatingSummaries(ctx, storage.ToolIDs(selected))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	comparison, err := directory.Compare(selected, summaries)
	if err != nil {
		view.ErrorMessage = weberror.PublicMessage(page.Loc, err)
		h.WritePage(w, r, page, http.StatusBadRequest, webtemplates.ComparePage(page, view))
		return
	}

	l := h.Localizer(page)
	index := toolview.CategoryIndex(categories)
	for _, column := range comparison.Tools {
		view.Columns = append(view.Columns, webtemplates.CompareColumn{Tool: l.Card(column.Tool, index, column.Rating)})
	}
	view.SharedTags = comparison.SharedTags
	view.SamePricing = comparison.SamePricing
	h.WritePage(w, r, page, http.StatusOK, webtemplates.ComparePage(page, view))
}

func containsSlug(slugs []string, slug string) bool {
	for _, candidate := range slugs {
		if candidate == slug {
			return true
		}
	}
	return false
}
