package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Layout renders the document shell around the children in ctx.
func Layout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		appName := T(page.Loc, "core.app_name")
		title := appName
		if page.Title != "" && page.Title != appName {
			title = page.Title + " · " + appName
		}
		h.raw(`<!DOCTYPE html><html`)
		h.attr("lang", page.Lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><meta name="description"`)
		h.attr("content", T(page.Loc, "core.meta_description"))
		h.raw(`><link rel="icon" type="image/svg+xml"`)
		h.href(routepath.Static("favicon.svg"))
		h.raw(`><link rel="stylesheet"`)
		h.href(routepath.Static("site.css"))
		h.raw(`>`)
		for _, language := range page.Languages {
			if language.Active {
				continue
			}
			h.raw(`<link rel="alternate"`)
			h.attr("hreflang", language.Lang)
			h.href(language.Href)
			h.raw(`>`)
		}
		h.raw(`</head><body><header class="site-header"><a class="brand"`)
		h.href(routepath.Home(page.Lang))
		h.raw(`>`)
		h.text(appName)
		h.raw(`</a>`)
		h.render(ctx, navigation(page))
		h.render(ctx, languageSwitcher(page))
		h.raw(`</header><main id="main">`)
		h.render(templ.ClearChildren(ctx), templ.GetChildren(ctx))
		h.raw(`</main><footer class="site-footer"><p>`)
		h.text(T(page.Loc, "core.tagline"))
		h.raw(`</p></footer></body></html>`)
	})
}

type navLink struct {
	key  string
	href string
}

func navigation(page PageContext) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		links := []navLink{
			{"nav.home", routepath.Home(page.Lang)},
			{"nav.tools", routepath.Tools(page.Lang)},
			{"nav.workflows", routepath.Workflows(page.Lang)},
			{"nav.compare", routepath.Compare(page.Lang)},
			{"nav.start", routepath.Start(page.Lang)},
		}
		if !page.StaticExport {
			links = append(links, navLink{"nav.admin", routepath.AdminRoot(page.Lang)})
		}
		h.raw(`<nav class="site-nav"><ul>`)
		for _, link := range links {
			h.raw(`<li><a`)
			h.href(link.href)
			if isCurrent(page.CurrentPath, link.href) {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.text(T(page.Loc, link.key))
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)
	})
}

func languageSwitcher(page PageContext) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		if len(page.Languages) < 2 {
			return
		}
		h.raw(`<nav class="language-switcher"`)
		h.attr("aria-label", T(page.Loc, "core.language"))
		h.raw(`><ul>`)
		for _, language := range page.Languages {
			h.raw(`<li><a`)
			h.href(language.Href)
			h.attr("hreflang", language.Lang)
			h.attr("lang", language.Lang)
			if language.Active {
				h.raw(` aria-current="true"`)
			}
			h.raw(`>`)
			h.text(language.Label)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)
	})
}

func isCurrent(currentPath, href string) bool {
	if currentPath == "" {
		return false
	}
	if strings.HasSuffix(href, "/") {
		return currentPath == href
	}
	return currentPath == href || strings.HasPrefix(currentPath, href+"/")
}
