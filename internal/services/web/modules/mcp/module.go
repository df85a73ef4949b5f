// Package mcp exposes directory lookups as MCP tools over streamable HTTP.
package mcp

import (
	"net/http"

	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "toolatlas"
	serverVersion = "0.1.0"
)

// Module mounts the MCP endpoint at /api/mcp.
type Module struct {
	deps module.Dependencies
}

// New returns an MCP module over deps.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "mcp" }

// Mount wires a single server instance shared by every HTTP session.
func (m Module) Mount() (module.Mount, error) {
	server := NewServer(m.deps)
	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return server
	}, nil)
	return module.Mount{
		Prefixes:   []string{routepath.MCP},
		Handler:    handler,
		ServerOnly: true,
	}, nil
}

// NewServer builds an MCP server with the directory tools registered.
func NewServer(deps module.Dependencies) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcpsdk.AddTool(server, SearchToolsTool(), SearchToolsHandler(deps.Store, deps.Locales))
	mcpsdk.AddTool(server, GetToolTool(), GetToolHandler(deps.Store, deps.Locales))
	mcpsdk.AddTool(server, ListCategoriesTool(), ListCategoriesHandler(deps.Store, deps.Locales))
	return server
}
