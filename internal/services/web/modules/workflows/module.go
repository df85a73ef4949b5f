// Package workflows lists curated multi-step workflows and their steps.
package workflows

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/publichandler"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// Module provides the workflow pages.
type Module struct {
	deps module.Dependencies
}

// New returns a workflows module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "workflows" }

// Mount wires the workflow list and detail pages.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(publichandler.NewBase(m.deps)))
	return module.Mount{
		Prefixes: []string{routepath.WorkflowsPattern, routepath.WorkflowsPrefix},
		Handler:  mux,
	}, nil
}
