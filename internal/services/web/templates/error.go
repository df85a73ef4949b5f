package templates

import (
	"context"

	"github.com/a-h/templ"
)

// ErrorPageTitle returns the localized title for an error status.
func ErrorPageTitle(page PageContext, status int) string {
	return T(page.Loc, "error.title", status)
}

// ErrorPage renders the shared error state.
func ErrorPage(page PageContext, view ErrorView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section id="app-error-state" class="error-state"><h1>`)
		h.text(ErrorPageTitle(page, view.Status))
		h.raw(`</h1><p>`)
		h.text(view.Message)
		h.raw(`</p><a`)
		h.href(view.HomeHref)
		h.raw(`>`)
		h.text(T(page.Loc, "error.back_home"))
		h.raw(`</a></section>`)
	})
}
