// Package compare renders side-by-side tool comparisons.
package compare

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the comparison page.
type Module struct {
	deps module.Dependencies
}

// New returns a compare module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "compare" }

// Mount wires the comparison page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{Prefixes: []string{routepath.ComparePattern}, Handler: mux}, nil
}
