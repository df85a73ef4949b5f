package templates

import (
	"context"

	"github.com/a-h/templ"
)

// ComparePage renders the tool picker and, when selected, the comparison
// table.
func ComparePage(page PageContext, view CompareView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "compare.title"))
		h.raw(`</h1><p>`)
		h.text(T(page.Loc, "compare.hint"))
		h.raw(`</p>`)
		if view.ErrorMessage != "" {
			h.raw(`<p class="error" role="alert">`)
			h.text(view.ErrorMessage)
			h.raw(`</p>`)
		}
		if len(view.Columns) > 0 {
			h.render(ctx, compareTable(page, view))
		}
		if page.StaticExport || len(view.Options) == 0 {
			return
		}
		h.raw(`<form class="compare-picker" method="get"`)
		h.attr("action", view.Action)
		h.raw(`><fieldset><legend>`)
		h.text(T(page.Loc, "compare.pick"))
		h.raw(`</legend>`)
		for _, option := range view.Options {
			h.raw(`<label><input type="checkbox" name="tools"`)
			h.attr("value", option.Slug)
			if option.Selected {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(option.Name)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset><button type="submit">`)
		h.text(T(page.Loc, "compare.submit"))
		h.raw(`</button></form>`)
	})
}

func compareTable(page PageContext, view CompareView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<table class="compare"><thead><tr><th scope="row">`)
		h.text(T(page.Loc, "compare.name"))
		h.raw(`</th>`)
		for _, column := range view.Columns {
			h.raw(`<th scope="col"><a`)
			h.href(column.Tool.Href)
			h.raw(`>`)
			h.text(column.Tool.Name)
			h.raw(`</a></th>`)
		}
		h.raw(`</tr></thead><tbody><tr><th scope="row">`)
		h.text(T(page.Loc, "tool.category"))
		h.raw(`</th>`)
		for _, column := range view.Columns {
			h.raw(`<td>`)
			h.text(column.Tool.CategoryName)
			h.raw(`</td>`)
		}
		h.raw(`</tr><tr`)
		if view.SamePricing {
			h.raw(` class="same"`)
		}
		h.raw(`><th scope="row">`)
		h.text(T(page.Loc, "tool.pricing"))
		h.raw(`</th>`)
		for _, column := range view.Columns {
			h.raw(`<td>`)
			h.text(T(page.Loc, column.Tool.PricingKey))
			h.raw(`</td>`)
		}
		h.raw(`</tr><tr><th scope="row">`)
		h.text(T(page.Loc, "compare.rating"))
		h.raw(`</th>`)
		for _, column := range view.Columns {
			h.raw(`<td>`)
			h.render(ctx, ratingSummary(page, column.Tool.Rating))
			h.raw(`</td>`)
		}
		h.raw(`</tr><tr><th scope="row">`)
		h.text(T(page.Loc, "tool.tags"))
		h.raw(`</th>`)
		for _, column := range view.Columns {
			h.raw(`<td>`)
			h.render(ctx, tagList(column.Tool.Tags))
			h.raw(`</td>`)
		}
		h.raw(`</tr></tbody></table>`)
		if len(view.SharedTags) > 0 {
			h.raw(`<p class="shared-tags">`)
			h.text(T(page.Loc, "compare.shared_tags"))
			h.raw(`</p>`)
			h.render(ctx, tagList(view.SharedTags))
		}
	})
}
