package admin

import (
	"net/http"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/platform/config"
	weberrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/weberror"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/webctx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

// enabled hides the admin area when no credentials are configured and
// rejects unknown locale segments.
func (h handlers) enabled(next http.HandlerFunc) http.HandlerFunc {
	return h.RequireLocale(func(w http.ResponseWriter, r *http.Request) {
		if h.Deps.Auth == nil {
			h.WriteNotFound(w, r)
			return
		}
		next(w, r)
	})
}

// requireAdmin verifies the session cookie and redirects anonymous
// requests to the sign-in form.
func (h handlers) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := sessioncookie.Read(r)
		if ok {
			claims, err := h.Deps.Auth.Verify(token)
			if err == nil {
				next(w, r.WithContext(webctx.WithAdmin(r.Context(), claims.Subject)))
				return
			}
			sessioncookie.ClearWithPolicy(w, r, h.Deps.SchemePolicy)
		}
		locale, _ := h.Locale(r)
		httpx.WriteRedirect(w, r, routepath.AdminLogin(locale.Segment))
	}
}

// sameOrigin rejects state-changing requests without an Origin or Referer
// from this site.
func (h handlers) sameOrigin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !requestmeta.HasSameOriginProofWithPolicy(r, h.Deps.SchemePolicy) {
			h.WriteError(w, r, weberrors.E(weberrors.KindForbidden, "admin form is missing same-origin proof"))
			return
		}
		next(w, r)
	}
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "admin.login_title")
	view := webtemplates.AdminLoginView{Action: routepath.AdminLogin(page.Lang)}

	if r.Method != http.MethodPost {
		h.WritePage(w, r, page, http.StatusOK, webtemplates.AdminLoginPage(page, view))
		return
	}
	if !requestmeta.HasSameOriginProofWithPolicy(r, h.Deps.SchemePolicy) {
		h.WriteError(w, r, weberrors.E(weberrors.KindForbidden, "login form is missing same-origin proof"))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, weberrors.E(weberrors.KindInvalidInput, "parse login form"))
		return
	}
	view.Email = strings.TrimSpace(r.PostFormValue("email"))
	token, err := h.Deps.Auth.Login(view.Email, r.PostFormValue("password"))
	if err != nil {
		view.ErrorMessage = weberror.PublicMessage(page.Loc, err)
		h.WritePage(w, r, page, weberrors.HTTPStatus(err), webtemplates.AdminLoginPage(page, view))
		return
	}
	sessioncookie.WriteWithPolicy(w, r, token, h.Deps.Auth.TTL, h.Deps.SchemePolicy)
	httpx.WriteRedirect(w, r, routepath.AdminRoot(page.Lang))
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessioncookie.ClearWithPolicy(w, r, h.Deps.SchemePolicy)
	locale, _ := h.Locale(r)
	httpx.WriteRedirect(w, r, routepath.AdminLogin(locale.Segment))
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "admin.title")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	tools, err := storage.AllTools(ctx, h.Deps.Store, storage.ToolQuery{})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view := webtemplates.AdminToolsView{
		NewHref:      routepath.AdminNewTool(page.Lang),
		LogoutAction: routepath.AdminLogout(page.Lang),
	}
	for _, tool := range tools {
		view.Tools = append(view.Tools, webtemplates.AdminToolRow{
			Slug:       tool.Slug,
			Name:       tool.Name,
			PublicHref: routepath.Tool(page.Lang, tool.Slug),
			EditHref:   routepath.AdminEditTool(page.Lang, tool.Slug),
			DeleteHref: routepath.AdminDeleteTool(page.Lang, tool.Slug),
		})
	}
	h.WritePage(w, r, page, http.StatusOK, webtemplates.AdminToolsPage(page, view))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	page.Title = webtemplates.T(page.Loc, "admin.new_tool")
	action := routepath.AdminNewTool(page.Lang)

	tool := directory.Tool{Pricing: directory.PricingFree}
	if r.Method == http.MethodPost {
		var err error
		if tool, err = h.parseTool(r, ""); err != nil {
			h.writeForm(w, r, page, tool, action, false, err)
			return
		}
		ctx, cancel := h.StoreContext(r)
		defer cancel()
		if _, err := h.Deps.Store.CreateTool(ctx, tool); err != nil {
			h.writeForm(w, r, page, tool, action, false, err)
			return
		}
		httpx.WriteRedirect(w, r, routepath.AdminRoot(page.Lang))
		return
	}
	h.writeForm(w, r, page, tool, action, false, nil)
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	page := h.Page(r, "")
	ctx, cancel := h.StoreContext(r)
	defer cancel()

	existing, err := h.Deps.Store.GetTool(ctx, r.PathValue("slug"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page.Title = webtemplates.T(page.Loc, "admin.edit_tool", existing.Name)
	action := routepath.AdminEditTool(page.Lang, existing.Slug)

	if r.Method != http.MethodPost {
		h.writeForm(w, r, page, existing, action, true, nil)
		return
	}
	tool, err := h.parseTool(r, existing.Slug)
	if err != nil {
		h.writeForm(w, r, page, tool, action, true, err)
		return
	}
	if _, err := h.Deps.Store.UpdateTool(ctx, tool); err != nil {
		h.writeForm(w, r, page, tool, action, true, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.AdminRoot(page.Lang))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.StoreContext(r)
	defer cancel()
	if err := h.Deps.Store.DeleteTool(ctx, r.PathValue("slug")); err != nil {
		h.WriteError(w, r, err)
		return
	}
	locale, _ := h.Locale(r)
	httpx.WriteRedirect(w, r, routepath.AdminRoot(locale.Segment))
}

// parseTool reads the tool form. A non-empty slug pins the edited tool and
// ignores any submitted slug.
func (h handlers) parseTool(r *http.Request, slug string) (directory.Tool, error) {
	if err := r.ParseForm(); err != nil {
		return directory.Tool{}, weberrors.E(weberrors.KindInvalidInput, "parse tool form")
	}
	tool := directory.Tool{
		Slug:         slug,
		Name:         r.PostFormValue("name"),
		URL:          r.PostFormValue("url"),
		CategorySlug: r.PostFormValue("category"),
		Pricing:      directory.Pricing(r.PostFormValue("pricing")),
		Summary:      make(map[string]string),
		Tags:         config.SplitList(r.PostFormValue("tags")),
		Featured:     r.PostFormValue("featured") == "1",
	}
	if tool.Slug == "" {
		tool.Slug = r.PostFormValue("slug")
	}
	for _, locale := range h.Deps.Locales.Locales() {
		if value := strings.TrimSpace(r.PostFormValue("summary_" + locale.Segment)); value != "" {
			tool.Summary[locale.Segment] = value
		}
	}
	validated, err := directory.ValidateTool(tool)
	if err != nil {
		return tool, err
	}
	return validated, nil
}

// writeForm renders the tool form, with a localized message and the
// matching status when err is set.
func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, tool directory.Tool, action string, locked bool, err error) {
	ctx, cancel := h.StoreContext(r)
	defer cancel()
	categories, listErr := h.Deps.Store.ListCategories(ctx)
	if listErr != nil {
		h.WriteError(w, r, listErr)
		return
	}

	view := webtemplates.AdminToolFormView{
		Heading:    page.Title,
		Action:     action,
		CancelHref: routepath.AdminRoot(page.Lang),
		Slug:       tool.Slug,
		SlugLocked: locked,
		Name:       tool.Name,
		URL:        tool.URL,
		Categories: h.Localizer(page).CategoryLinks(categories, tool.CategorySlug),
		Tags:       strings.Join(tool.Tags, ", "),
		Featured:   tool.Featured,
	}
	for _, pricing := range directory.Pricings {
		view.Pricings = append(view.Pricings, webtemplates.PricingOption{
			Value:    string(pricing),
			LabelKey: pricing.MessageKey(),
			Selected: pricing == tool.Pricing,
		})
	}
	for _, locale := range h.Deps.Locales.Locales() {
		view.Summaries = append(view.Summaries, webtemplates.LocalizedField{
			Lang:  locale.Segment,
			Value: tool.Summary[locale.Segment],
		})
	}

	status := http.StatusOK
	if err != nil {
		status = weberrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			h.WriteError(w, r, err)
			return
		}
		view.ErrorMessage = weberror.PublicMessage(page.Loc, err)
	}
	h.WritePage(w, r, page, status, webtemplates.AdminToolFormPage(page, view))
}
