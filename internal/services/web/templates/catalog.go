package templates

import (
	"context"

	"github.com/a-h/templ"
)

// HomePage renders featured tools and the category index.
func HomePage(page PageContext, view HomeView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="hero"><h1>`)
		h.text(T(page.Loc, "home.title"))
		h.raw(`</h1><p>`)
		h.text(T(page.Loc, "core.tagline"))
		h.raw(`</p><a class="button"`)
		h.href(view.ToolsHref)
		h.raw(`>`)
		h.text(T(page.Loc, "home.browse_all"))
		h.raw(`</a></section><section class="featured"><h2>`)
		h.text(T(page.Loc, "home.featured"))
		h.raw(`</h2>`)
		if len(view.Featured) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "home.no_featured"))
			h.raw(`</p>`)
		} else {
			h.render(ctx, toolGrid(page, view.Featured))
		}
		h.raw(`</section><section class="categories"><h2>`)
		h.text(T(page.Loc, "home.categories"))
		h.raw(`</h2><ul class="category-list">`)
		for _, category := range view.Categories {
			h.raw(`<li><a`)
			h.href(category.Href)
			h.raw(`>`)
			h.text(category.Name)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></section>`)
	})
}

// ToolsPage renders the tool list with search and category filters.
func ToolsPage(page PageContext, view ToolsView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "tools.title"))
		h.raw(`</h1>`)
		if !page.StaticExport {
			h.raw(`<form class="search" method="get"`)
			h.attr("action", view.Action)
			h.raw(`><label for="q">`)
			h.text(T(page.Loc, "tools.search_label"))
			h.raw(`</label><input id="q" type="search" name="q"`)
			h.attr("value", view.Search)
			h.attr("placeholder", T(page.Loc, "tools.search_placeholder"))
			h.raw(`><select name="category"><option value="">`)
			h.text(T(page.Loc, "tools.all_categories"))
			h.raw(`</option>`)
			for _, category := range view.Categories {
				h.raw(`<option`)
				h.attr("value", category.Slug)
				if category.Selected {
					h.raw(` selected`)
				}
				h.raw(`>`)
				h.text(category.Name)
				h.raw(`</option>`)
			}
			h.raw(`</select><button type="submit">`)
			h.text(T(page.Loc, "tools.search_button"))
			h.raw(`</button></form>`)
			if view.Search != "" {
				h.raw(`<p class="results-for">`)
				h.text(T(page.Loc, "tools.results_for", view.Search))
				h.raw(`</p>`)
			}
		} else {
			h.raw(`<ul class="category-list">`)
			for _, category := range view.Categories {
				h.raw(`<li><a`)
				h.href(category.Href)
				h.raw(`>`)
				h.text(category.Name)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
		}
		if len(view.Tools) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "tools.empty"))
			h.raw(`</p>`)
		} else {
			h.render(ctx, toolGrid(page, view.Tools))
		}
		if view.NextHref != "" && !page.StaticExport {
			h.raw(`<nav class="pagination"><a rel="next"`)
			h.href(view.NextHref)
			h.raw(`>`)
			h.text(T(page.Loc, "tools.next_page"))
			h.raw(`</a></nav>`)
		}
	})
}

// ToolPage renders one tool with its rating summary and rating form.
func ToolPage(page PageContext, view ToolView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		tool := view.Tool
		h.raw(`<article class="tool-detail"><h1>`)
		h.text(tool.Name)
		h.raw(`</h1><p class="summary">`)
		h.text(tool.Summary)
		h.raw(`</p><dl><dt>`)
		h.text(T(page.Loc, "tool.category"))
		h.raw(`</dt><dd><a`)
		h.href(tool.CategoryHref)
		h.raw(`>`)
		h.text(tool.CategoryName)
		h.raw(`</a></dd><dt>`)
		h.text(T(page.Loc, "tool.pricing"))
		h.raw(`</dt><dd>`)
		h.text(T(page.Loc, tool.PricingKey))
		h.raw(`</dd>`)
		if len(tool.Tags) > 0 {
			h.raw(`<dt>`)
			h.text(T(page.Loc, "tool.tags"))
			h.raw(`</dt><dd>`)
			h.render(ctx, tagList(tool.Tags))
			h.raw(`</dd>`)
		}
		h.raw(`</dl><p class="rating">`)
		h.render(ctx, ratingSummary(page, tool.Rating))
		h.raw(`</p><p><a class="button" rel="noopener nofollow" target="_blank"`)
		h.href(view.URL)
		h.raw(`>`)
		h.text(T(page.Loc, "tool.visit"))
		h.raw(`</a>`)
		if !page.StaticExport && view.CompareHref != "" {
			h.raw(` <a`)
			h.href(view.CompareHref)
			h.raw(`>`)
			h.text(T(page.Loc, "tool.add_compare"))
			h.raw(`</a>`)
		}
		h.raw(`</p>`)
		if !page.StaticExport {
			h.raw(`<section class="rate"><h2>`)
			h.text(T(page.Loc, "tool.rate_heading"))
			h.raw(`</h2>`)
			if view.Rated {
				h.raw(`<p class="notice" role="status">`)
				h.text(T(page.Loc, "tool.rated_thanks"))
				h.raw(`</p>`)
			}
			h.raw(`<form method="post"`)
			h.attr("action", view.RateAction)
			h.raw(`><fieldset><legend>`)
			h.text(T(page.Loc, "tool.score"))
			h.raw(`</legend>`)
			for score := 1; score <= 5; score++ {
				h.raw(`<label><input type="radio" name="score" required`)
				h.attr("value", itoa(score))
				h.raw(`> `)
				h.number(score)
				h.raw(`</label>`)
			}
			h.raw(`</fieldset><button type="submit">`)
			h.text(T(page.Loc, "tool.rate_submit"))
			h.raw(`</button></form></section>`)
		}
		h.raw(`</article>`)
	})
}

// CategoryPage renders the tools of one category.
func CategoryPage(page PageContext, view CategoryView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "category.title", view.Name))
		h.raw(`</h1>`)
		if len(view.Tools) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "category.empty"))
			h.raw(`</p>`)
			return
		}
		h.render(ctx, toolGrid(page, view.Tools))
	})
}

func toolGrid(page PageContext, tools []ToolCard) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<ul class="tool-grid">`)
		for _, tool := range tools {
			h.raw(`<li class="tool-card"><h3><a`)
			h.href(tool.Href)
			h.raw(`>`)
			h.text(tool.Name)
			h.raw(`</a></h3><p>`)
			h.text(tool.Summary)
			h.raw(`</p><p class="meta"><span class="pricing">`)
			h.text(T(page.Loc, tool.PricingKey))
			h.raw(`</span> `)
			h.render(ctx, ratingSummary(page, tool.Rating))
			h.raw(`</p></li>`)
		}
		h.raw(`</ul>`)
	})
}

func ratingSummary(page PageContext, rating RatingView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<span class="rating-summary">`)
		if rating.Count == 0 {
			h.text(T(page.Loc, "tool.no_ratings"))
		} else {
			h.text(T(page.Loc, "tool.rating_summary", rating.Average, rating.Count))
		}
		h.raw(`</span>`)
	})
}

func tagList(tags []string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<ul class="tags">`)
		for _, tag := range tags {
			h.raw(`<li>`)
			h.text(tag)
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}
