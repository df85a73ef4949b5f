// Package export parses export command flags and renders the static site.
package export

import (
	"context"
	"flag"
	"fmt"

	webcmd "github.com/louisbranch/toolatlas/internal/cmd/web"
	entrypoint "github.com/louisbranch/toolatlas/internal/platform/cmd"
	"github.com/louisbranch/toolatlas/internal/services/web/app"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	"github.com/louisbranch/toolatlas/internal/services/web/static"
	"github.com/louisbranch/toolatlas/internal/staticexport"
)

// Config holds the export command configuration.
type Config struct {
	webcmd.SiteConfig
	OutDir      string `env:"TOOLATLAS_EXPORT_DIR" envDefault:"dist"`
	Overwrite   bool   `env:"TOOLATLAS_EXPORT_OVERWRITE" envDefault:"false"`
	Concurrency int    `env:"TOOLATLAS_EXPORT_CONCURRENCY" envDefault:"4"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory")
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Clear a non-empty output directory first")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Pages rendered in parallel")
	webcmd.RegisterSiteFlags(fs, &cfg.SiteConfig)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run renders every public page into cfg.OutDir.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceExport, func(ctx context.Context) error {
		site, err := webcmd.OpenSite(cfg.SiteConfig, true)
		if err != nil {
			return err
		}
		defer site.Close()

		handler, err := app.BuildRootHandler(app.Config{Dependencies: site.Deps, Resolver: site.Resolver})
		if err != nil {
			return fmt.Errorf("build handler: %w", err)
		}
		_, err = staticexport.Run(ctx, staticexport.Config{
			Handler:     handler,
			Locales:     site.Deps.Locales,
			OutDir:      cfg.OutDir,
			Overwrite:   cfg.Overwrite,
			Concurrency: cfg.Concurrency,
			ExtraFiles:  []string{routepath.Robots, routepath.Sitemap},
			Assets:      static.FS,
		})
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	})
}
