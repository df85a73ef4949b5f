// Package admin serves the single-admin tool editor. Every route except the
// sign-in form requires a valid session cookie; when no admin credentials
// are configured the whole area answers 404.
package admin

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides admin routes under the locale admin prefix.
type Module struct {
	deps module.Dependencies
}

// New returns an admin module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "admin" }

// Mount wires admin routes.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{
		Prefixes:   []string{routepath.AdminPrefix},
		Handler:    mux,
		ServerOnly: true,
	}, nil
}
