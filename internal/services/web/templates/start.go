package templates

import (
	"context"

	"github.com/a-h/templ"
)

// StartPage renders the onboarding interest picker and recommendations.
// Static exports cannot take input, so they link each interest to its
// category page instead.
func StartPage(page PageContext, view StartView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "start.title"))
		h.raw(`</h1><p>`)
		h.text(T(page.Loc, "start.intro"))
		h.raw(`</p>`)
		if page.StaticExport {
			h.raw(`<ul class="category-list">`)
			for _, interest := range view.Interests {
				h.raw(`<li><a`)
				h.href(interest.Href)
				h.raw(`>`)
				h.text(interest.Name)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
			return
		}
		h.raw(`<form method="post"`)
		h.attr("action", view.Action)
		h.raw(`><fieldset><legend>`)
		h.text(T(page.Loc, "start.interests"))
		h.raw(`</legend>`)
		for _, interest := range view.Interests {
			h.raw(`<label><input type="checkbox" name="interest"`)
			h.attr("value", interest.Slug)
			if interest.Selected {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(interest.Name)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset><button type="submit">`)
		h.text(T(page.Loc, "start.submit"))
		h.raw(`</button></form>`)
		if !view.Submitted {
			return
		}
		h.raw(`<section class="recommendations"><h2>`)
		h.text(T(page.Loc, "start.results"))
		h.raw(`</h2>`)
		if len(view.Results) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "start.none"))
			h.raw(`</p>`)
		} else {
			h.render(ctx, toolGrid(page, view.Results))
		}
		h.raw(`</section>`)
	})
}
