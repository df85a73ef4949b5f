package templates

import (
	"context"

	"github.com/a-h/templ"
)

// WorkflowsPage lists published workflows.
func WorkflowsPage(page PageContext, workflows []WorkflowLink) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "workflows.title"))
		h.raw(`</h1>`)
		if len(workflows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "workflows.empty"))
			h.raw(`</p>`)
			return
		}
		h.raw(`<ul class="workflow-list">`)
		for _, workflow := range workflows {
			h.raw(`<li><a`)
			h.href(workflow.Href)
			h.raw(`>`)
			h.text(workflow.Title)
			h.raw(`</a> <span class="count">`)
			h.number(workflow.StepCount)
			h.raw(`</span></li>`)
		}
		h.raw(`</ul>`)
	})
}

// WorkflowPage renders the ordered steps of one workflow.
func WorkflowPage(page PageContext, view WorkflowView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<article class="workflow"><h1>`)
		h.text(view.Title)
		h.raw(`</h1><h2>`)
		h.text(T(page.Loc, "workflow.steps"))
		h.raw(`</h2><ol class="steps">`)
		for _, step := range view.Steps {
			h.raw(`<li><h3>`)
			h.text(T(page.Loc, "workflow.step", step.Position))
			h.raw(`: `)
			h.text(step.ToolName)
			h.raw(`</h3>`)
			if step.Note != "" {
				h.raw(`<p>`)
				h.text(step.Note)
				h.raw(`</p>`)
			}
			if step.ToolHref != "" {
				h.raw(`<a`)
				h.href(step.ToolHref)
				h.raw(`>`)
				h.text(T(page.Loc, "workflow.open_tool"))
				h.raw(`</a>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ol></article>`)
	})
}
