// Package ratings accepts visitor ratings for tools. Visitors are identified
// by an anonymous cookie; a later rating from the same visitor replaces the
// earlier one.
package ratings

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the rating submission route.
type Module struct {
	deps module.Dependencies
}

// New returns a ratings module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "ratings" }

// Mount wires the rating form target.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{
		Prefixes:   []string{routepath.RateToolPattern},
		Handler:    mux,
		ServerOnly: true,
	}, nil
}
