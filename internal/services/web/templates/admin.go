package templates

import (
	"context"

	"github.com/a-h/templ"
)

// AdminLoginPage renders the admin sign-in form.
func AdminLoginPage(page PageContext, view AdminLoginView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(T(page.Loc, "admin.login_title"))
		h.raw(`</h1>`)
		writeFormError(h, view.ErrorMessage)
		h.raw(`<form class="admin-login" method="post"`)
		h.attr("action", view.Action)
		h.raw(`><label for="email">`)
		h.text(T(page.Loc, "admin.email"))
		h.raw(`</label><input id="email" type="email" name="email" autocomplete="username" required`)
		h.attr("value", view.Email)
		h.raw(`><label for="password">`)
		h.text(T(page.Loc, "admin.password"))
		h.raw(`</label><input id="password" type="password" name="password" autocomplete="current-password" required><button type="submit">`)
		h.text(T(page.Loc, "admin.sign_in"))
		h.raw(`</button></form>`)
	})
}

// AdminToolsPage renders the admin tool list.
func AdminToolsPage(page PageContext, view AdminToolsView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<div class="admin-header"><h1>`)
		h.text(T(page.Loc, "admin.title"))
		h.raw(`</h1><a class="button"`)
		h.href(view.NewHref)
		h.raw(`>`)
		h.text(T(page.Loc, "admin.new_tool"))
		h.raw(`</a><form method="post"`)
		h.attr("action", view.LogoutAction)
		h.raw(`><button type="submit">`)
		h.text(T(page.Loc, "admin.sign_out"))
		h.raw(`</button></form></div>`)
		if len(view.Tools) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(page.Loc, "admin.empty"))
			h.raw(`</p>`)
			return
		}
		h.raw(`<table class="admin-tools"><tbody>`)
		for _, tool := range view.Tools {
			h.raw(`<tr><td><a`)
			h.href(tool.PublicHref)
			h.raw(`>`)
			h.text(tool.Name)
			h.raw(`</a></td><td><code>`)
			h.text(tool.Slug)
			h.raw(`</code></td><td><a`)
			h.href(tool.EditHref)
			h.raw(`>`)
			h.text(T(page.Loc, "admin.edit"))
			h.raw(`</a></td><td><form method="post"`)
			h.attr("action", tool.DeleteHref)
			h.raw(`><button type="submit"`)
			h.attr("aria-label", T(page.Loc, "admin.confirm_delete", tool.Name))
			h.raw(`>`)
			h.text(T(page.Loc, "admin.delete"))
			h.raw(`</button></form></td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}

// AdminToolFormPage renders the create and edit tool form.
func AdminToolFormPage(page PageContext, view AdminToolFormView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(view.Heading)
		h.raw(`</h1>`)
		writeFormError(h, view.ErrorMessage)
		h.raw(`<form class="admin-tool" method="post"`)
		h.attr("action", view.Action)
		h.raw(`>`)
		writeInput(h, "slug", T(page.Loc, "admin.field_slug"), "text", view.Slug, view.SlugLocked)
		writeInput(h, "name", T(page.Loc, "admin.field_name"), "text", view.Name, false)
		writeInput(h, "url", T(page.Loc, "admin.field_url"), "url", view.URL, false)

		h.raw(`<label for="category">`)
		h.text(T(page.Loc, "admin.field_category"))
		h.raw(`</label><select id="category" name="category" required>`)
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
		h.raw(`</select><fieldset><legend>`)
		h.text(T(page.Loc, "admin.field_pricing"))
		h.raw(`</legend>`)
		for _, pricing := range view.Pricings {
			h.raw(`<label><input type="radio" name="pricing"`)
			h.attr("value", pricing.Value)
			if pricing.Selected {
				h.raw(` checked`)
			}
			h.raw(`> `)
			h.text(T(page.Loc, pricing.LabelKey))
			h.raw(`</label>`)
		}
		h.raw(`</fieldset>`)

		for _, summary := range view.Summaries {
			name := "summary_" + summary.Lang
			h.raw(`<label`)
			h.attr("for", name)
			h.raw(`>`)
			h.text(T(page.Loc, "admin.field_summary", summary.Lang))
			h.raw(`</label><textarea`)
			h.attr("id", name)
			h.attr("name", name)
			h.attr("lang", summary.Lang)
			h.raw(` rows="3">`)
			h.text(summary.Value)
			h.raw(`</textarea>`)
		}
		writeInput(h, "tags", T(page.Loc, "admin.field_tags"), "text", view.Tags, false)
		h.raw(`<label><input type="checkbox" name="featured" value="1"`)
		if view.Featured {
			h.raw(` checked`)
		}
		h.raw(`> `)
		h.text(T(page.Loc, "admin.field_featured"))
		h.raw(`</label><button type="submit">`)
		h.text(T(page.Loc, "admin.save"))
		h.raw(`</button> <a`)
		h.href(view.CancelHref)
		h.raw(`>`)
		h.text(T(page.Loc, "admin.cancel"))
		h.raw(`</a></form>`)
	})
}

func writeInput(h *htmlWriter, name, label, inputType, value string, readOnly bool) {
	h.raw(`<label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label><input`)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("type", inputType)
	h.attr("value", value)
	if readOnly {
		h.raw(` readonly`)
	}
	h.raw(`>`)
}

func writeFormError(h *htmlWriter, message string) {
	if message == "" {
		return
	}
	h.raw(`<p class="error" role="alert">`)
	h.text(message)
	h.raw(`</p>`)
}
