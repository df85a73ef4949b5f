package ratings

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	weberrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleRate(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProofWithPolicy(r, h.Deps.SchemePolicy) {
		h.WriteError(w, r, weberrors.E(weberrors.KindForbidden, "rating form is missing same-origin proof"))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, weberrors.E(weberrors.KindInvalidInput, "parse rating form"))
		return
	}
	// Non-numeric input is reported as out of range.
	score, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue("score")))
	if err := directory.ValidateScore(score); err != nil {
		h.WriteError(w, r, err)
		return
	}

	ctx, cancel := h.StoreContext(r)
	defer cancel()
	tool, err := h.Deps.Store.GetTool(ctx, r.PathValue("slug"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	visitorID, err := sessioncookie.EnsureVisitor(w, r, h.Deps.SchemePolicy)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := h.Deps.Store.PutRating(ctx, directory.Rating{ToolID: tool.ID, VisitorID: visitorID, Score: score}); err != nil {
		h.WriteError(w, r, err)
		return
	}

	locale, _ := h.Locale(r)
	httpx.WriteRedirect(w, r, routepath.Tool(locale.Segment, tool.Slug)+"?"+routepath.QueryRated+"=1")
}
