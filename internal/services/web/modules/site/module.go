// Package site serves the locale-free surface: health, crawler files,
// static assets, and the root fallback.
package site

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the root-level routes.
type Module struct {
	deps module.Dependencies
}

// New returns a site module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "site" }

// Mount wires the root-level routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{
		Prefixes: []string{
			routepath.Health,
			routepath.Favicon,
			routepath.Robots,
			routepath.Sitemap,
			routepath.StaticPrefix,
			routepath.Root,
		},
		Handler: mux,
	}, nil
}
