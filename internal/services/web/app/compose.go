// Package app composes feature modules into the site's root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/localeroute"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// errDisabledInExport is what server-only routes answer with when the
// handler is composed for a static export.
var errDisabledInExport = apperrors.New(apperrors.CodeDisabledInExport, "disabled in static export")

// ComposeInput carries modules and shared composition contracts.
type ComposeInput struct {
	Modules []module.Module
	// Resolver redirects locale-less page paths. Nil disables locale routing.
	Resolver *localeroute.Resolver
	// StaticExport replaces every server-only mount with a 503 stub.
	StaticExport bool
	// TraceName names the request span tracer; empty disables tracing.
	TraceName string
}

// Compose builds the root HTTP handler.
//
// Locale-led patterns such as /{locale}/compare cannot share a mux with
// literal prefixes such as /api/ because neither is more specific, so they
// are mounted on a nested mux that owns /{locale}/.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	localized := http.NewServeMux()
	hasLocalized := false
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		handler := mount.Handler
		if mount.ServerOnly && input.StaticExport {
			handler = staticExportStub()
		}
		for _, prefix := range mount.Prefixes {
			if previous, ok := seen[prefix]; ok {
				return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
			}
			seen[prefix] = feature.ID()
			if isLocalePrefix(prefix) {
				localized.Handle(prefix, handler)
				hasLocalized = true
				continue
			}
			root.Handle(prefix, handler)
		}
	}
	if hasLocalized {
		if _, ok := seen[routepath.LocalePrefix]; !ok {
			localized.HandleFunc(routepath.LocalePrefix, http.NotFound)
		}
		root.Handle(routepath.LocalePrefix, localized)
	}

	middleware := []httpx.Middleware{httpx.RecoverPanic(), httpx.RequestID()}
	if name := strings.TrimSpace(input.TraceName); name != "" {
		middleware = append(middleware, httpx.Trace(name))
	}
	if input.Resolver != nil {
		middleware = append(middleware, input.Resolver.Middleware)
	}
	return httpx.Chain(root, middleware...), nil
}

func resolveMount(feature module.Module) (module.Mount, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if len(mount.Prefixes) == 0 {
		return module.Mount{}, fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	for _, prefix := range mount.Prefixes {
		if err := validatePrefix(prefix); err != nil {
			return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), prefix, err)
		}
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	return nil
}

func isLocalePrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.LocalePrefix)
}

func staticExportStub() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSONError(w, errDisabledInExport.Code.HTTPStatus(), errDisabledInExport.Message)
	})
}
