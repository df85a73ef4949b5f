// Package onboarding serves the "get started" page that turns a visitor's
// interests into a short list of recommended tools.
package onboarding

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the onboarding page.
type Module struct {
	deps module.Dependencies
}

// New returns an onboarding module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "onboarding" }

// Mount wires the onboarding page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{Prefixes: []string{routepath.StartPattern}, Handler: mux}, nil
}
