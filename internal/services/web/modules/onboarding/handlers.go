package onboarding

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	weberrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/toolview"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

// recommendationLimit caps the tools suggested after the picker is submitted.
const recommendationLimit = 6

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "start.title")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	categories, err := h.Deps.Store.ListCategories(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var interests []string
	submitted := r.Method == http.MethodPost && !h.Deps.StaticExport
	if submitted {
		if err := r.ParseForm(); err != nil {
			h.WriteError(w, r, weberrors.E(weberrors.KindInvalidInput, "parse onboarding form"))
			return
		}
		interests = r.PostForm[routepath.QueryInterest]
	}

	l := h.Localizer(page)
	view := webtemplates.StartView{
		Action:    routepath.Start(page.Lang),
		Interests: l.CategoryLinks(categories, interests...),
		Submitted: submitted,
	}
	if submitted && len(interests) > 0 {
		tools, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{})
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		summaries, err := h.Deps.Store.RatingSummaries(ctx, storage.ToolIDs(tools))
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		picks := directory.Recommend(tools, summaries, interests, recommendationLimit)
		view.Results = l.Cards(picks, toolview.CategoryIndex(categories), summaries)
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.StartPage(page, view))
}
