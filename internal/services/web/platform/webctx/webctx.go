// Package webctx carries per-request web state through context values.
package webctx

import (
	"context"
	"net/http"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
)

type localeKey struct{}

type adminKey struct{}

// WithLocale returns ctx carrying the resolved page locale.
func WithLocale(ctx context.Context, locale i18n.Locale) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeKey{}, locale)
}

// Locale returns the locale stored by WithLocale.
func Locale(ctx context.Context) (i18n.Locale, bool) {
	if ctx == nil {
		return i18n.Locale{}, false
	}
	locale, ok := ctx.Value(localeKey{}).(i18n.Locale)
	return locale, ok
}

// WithAdmin returns ctx marked with the signed-in admin subject.
func WithAdmin(ctx context.Context, subject string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, adminKey{}, subject)
}

// Admin returns the signed-in admin subject, if any.
func Admin(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	subject, ok := ctx.Value(adminKey{}).(string)
	return subject, ok && subject != ""
}

// RequestLocale resolves the page locale for r: the context value set by the
// locale middleware, then the {locale} path value, then the set default.
func RequestLocale(r *http.Request, locales i18n.Set) (i18n.Locale, bool) {
	if r == nil {
		return locales.Default(), false
	}
	if locale, ok := Locale(r.Context()); ok {
		return locale, true
	}
	return locales.Lookup(r.PathValue("locale"))
}
