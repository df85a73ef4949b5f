// Package publichandler provides a shared base for page handlers. It
// centralizes locale resolution, page context assembly, rendering and error
// handling that would otherwise be duplicated across modules.
package publichandler

import (
	"context"
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/platform/timeouts"
	"github.com/louisbranch/toolatlas/internal/services/web/localeroute"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	apperrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/pagerender"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/toolview"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/weberror"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/webctx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

// Base provides shared page rendering for modules. Embed it in handler
// structs to get Page, WritePage, WriteNotFound and WriteError.
type Base struct {
	Deps module.Dependencies
}

// NewBase builds a handler base over deps. Message printers resolve through
// x/text's default catalog, so callers register it first (see
// catalog.RegisterDefault).
func NewBase(deps module.Dependencies) Base {
	return Base{Deps: deps}
}

// Locale returns the page locale for r and whether it is recognized.
func (b Base) Locale(r *http.Request) (i18n.Locale, bool) {
	return webctx.RequestLocale(r, b.Deps.Locales)
}

// Page assembles the layout context for r.
func (b Base) Page(r *http.Request, title string) webtemplates.PageContext {
	locale, ok := b.Locale(r)
	if !ok {
		locale = b.Deps.Locales.Default()
	}
	path := routepath.Home(locale.Segment)
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	page := webtemplates.PageContext{
		Lang:         locale.Segment,
		Loc:          i18n.Printer(locale),
		Title:        title,
		CurrentPath:  path,
		StaticExport: b.Deps.StaticExport,
	}
	if r != nil {
		_, page.SignedIn = webctx.Admin(r.Context())
	}
	for _, candidate := range b.Deps.Locales.Locales() {
		page.Languages = append(page.Languages, webtemplates.LanguageLink{
			Lang:   candidate.Segment,
			Label:  i18n.DisplayName(candidate),
			Href:   localeroute.SwitchLocale(path, candidate.Segment),
			Active: candidate.Segment == locale.Segment,
		})
	}
	return page
}

// Localizer resolves localized record fields for page.
func (b Base) Localizer(page webtemplates.PageContext) toolview.Localizer {
	return toolview.Localizer{Locale: page.Lang, Fallback: b.Deps.Locales.Default().Segment}
}

// WritePage renders body in the site layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, page, statusCode, body); err != nil {
		log.Printf("render page path=%s err=%v", page.CurrentPath, err)
	}
}

// WriteNotFound renders a localized 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	b.WriteError(w, r, apperrors.NotFound())
}

// WriteError renders a user-safe error response for err.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	page := b.Page(r, "")
	weberror.WriteModuleError(w, r, err, page, routepath.Home(page.Lang))
}

// StoreContext bounds one store round trip made on behalf of r.
func (b Base) StoreContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	return context.WithTimeout(ctx, timeouts.StoreRequest)
}

// RequireLocale wraps page handlers so unknown {locale} segments render 404.
func (b Base) RequireLocale(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.Locale(r); !ok {
			b.WriteNotFound(w, r)
			return
		}
		next(w, r)
	}
}
