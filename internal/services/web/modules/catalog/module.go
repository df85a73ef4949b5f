// Package catalog serves the public directory pages: the locale home, the
// tool list, tool detail and category pages.
package catalog

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the catalog routes under the locale prefix.
type Module struct {
	deps module.Dependencies
}

// New returns a catalog module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "catalog" }

// Mount wires catalog routes. The locale prefix is owned here so unmatched
// locale paths render the localized 404 page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{
		Prefixes: []string{routepath.LocalePrefix},
		Handler:  mux,
	}, nil
}
