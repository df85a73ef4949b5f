package app

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/services/web/localeroute"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/admin"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/api"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/catalog"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/compare"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/mcp"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/onboarding"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/ratings"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/site"
	"github.com/louisbranch/toolatlas/internal/services/web/modules/workflows"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Dependencies module.Dependencies
	Resolver     *localeroute.Resolver
	EnableMCP    bool
	TraceName    string
}

// Modules returns the site's feature modules in mount order.
func Modules(deps module.Dependencies, enableMCP bool) []module.Module {
	modules := []module.Module{
		site.New(deps),
		api.New(deps),
		catalog.New(deps),
		ratings.New(deps),
		compare.New(deps),
		workflows.New(deps),
		onboarding.New(deps),
		admin.New(deps),
	}
	if enableMCP {
		modules = append(modules, mcp.New(deps))
	}
	return modules
}

// BuildRootHandler composes every module over cfg.Dependencies.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	return Compose(ComposeInput{
		Modules:      Modules(cfg.Dependencies, cfg.EnableMCP),
		Resolver:     cfg.Resolver,
		StaticExport: cfg.Dependencies.StaticExport,
		TraceName:    cfg.TraceName,
	})
}
