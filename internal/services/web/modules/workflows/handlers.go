package workflows

import (
	"errors"
	"net/http"

	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "workflows.title")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	workflows, err := h.Deps.Store.ListWorkflows(ctx)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	l := h.Localizer(page)
	links := make([]webtemplates.WorkflowLink, 0, len(workflows))
	for _, workflow := range workflows {
		links = append(links, webtemplates.WorkflowLink{
			Title:     l.Text(workflow.Title),
			Href:      routepath.Workflow(page.Lang, workflow.Slug),
			StepCount: len(workflow.Steps),
		})
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.WorkflowsPage(page, links))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	workflow, err := h.Deps.Store.GetWorkflow(ctx, r.PathValue("slug"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	l := h.Localizer(page)
	view := webtemplates.WorkflowView{Title: l.Text(workflow.Title)}
	for _, step := range workflow.Steps {
		stepView := webtemplates.WorkflowStepView{
			Position: step.Position,
			ToolName: step.ToolSlug,
			Note:     l.Text(step.Note),
		}
		// Steps may outlive a deleted tool; keep the slug and drop the link.
		tool, err := h.Deps.Store.GetTool(ctx, step.ToolSlug)
		switch {
		case err == nil:
			stepView.ToolName = tool.Name
			stepView.ToolHref = routepath.Tool(page.Lang, tool.Slug)
		case !errors.Is(err, storage.ErrNotFound):
			h.WriteError(w, r, err)
			return
		}
		view.Steps = append(view.Steps, stepView)
	}
	page.Title = view.Title
	h.WritePage(w, r, page, http.StatusOK, webtemplates.WorkflowPage(page, view))
}
