// Package api serves the read-only JSON API over the directory.
package api

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides JSON routes under /api/.
type Module struct {
	deps module.Dependencies
}

// New returns an API module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "api" }

// Mount wires the JSON routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.deps))
	return module.Mount{
		Prefixes:   []string{routepath.APIPrefix},
		Handler:    mux,
		ServerOnly: true,
	}, nil
}
