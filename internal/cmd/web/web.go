// Package web parses web command flags and launches the site server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	entrypoint "github.com/louisbranch/toolatlas/internal/platform/cmd"
	"github.com/louisbranch/toolatlas/internal/platform/healthsrv"
	"github.com/louisbranch/toolatlas/internal/services/web/app"
)

// Config holds the web command configuration.
type Config struct {
	SiteConfig
	HTTPAddr       string `env:"TOOLATLAS_WEB_HTTP_ADDR" envDefault:":8080"`
	HealthGRPCAddr string `env:"TOOLATLAS_HEALTH_GRPC_ADDR"`
	EnableMCP      bool   `env:"TOOLATLAS_ENABLE_MCP" envDefault:"true"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.HealthGRPCAddr, "health-addr", cfg.HealthGRPCAddr, "gRPC health listen address; empty disables")
	fs.BoolVar(&cfg.EnableMCP, "mcp", cfg.EnableMCP, "Serve the MCP endpoint at /api/mcp")
	RegisterSiteFlags(fs, &cfg.SiteConfig)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the site until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		site, err := OpenSite(cfg.SiteConfig, false)
		if err != nil {
			return err
		}
		defer site.Close()

		handler, err := app.BuildRootHandler(app.Config{
			Dependencies: site.Deps,
			Resolver:     site.Resolver,
			EnableMCP:    cfg.EnableMCP,
			TraceName:    "toolatlas.web",
		})
		if err != nil {
			return fmt.Errorf("build handler: %w", err)
		}
		server, err := app.NewServer(cfg.HTTPAddr, handler)
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}

		group, groupCtx := errgroup.WithContext(ctx)
		if addr := strings.TrimSpace(cfg.HealthGRPCAddr); addr != "" {
			health, err := healthsrv.New(addr, site.Store())
			if err != nil {
				return fmt.Errorf("init health server: %w", err)
			}
			group.Go(func() error { return health.Serve(groupCtx) })
		}
		group.Go(func() error {
			if err := server.ListenAndServe(groupCtx); err != nil {
				return fmt.Errorf("serve web: %w", err)
			}
			return nil
		})
		return group.Wait()
	})
}
