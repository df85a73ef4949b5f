// Package seed parses seed command flags and loads a catalog into the store.
package seed

import (
	"context"
	"flag"
	"log"

	webcmd "github.com/louisbranch/toolatlas/internal/cmd/web"
	entrypoint "github.com/louisbranch/toolatlas/internal/platform/cmd"
	"github.com/louisbranch/toolatlas/internal/seed"
)

// Config holds the seed command configuration.
type Config struct {
	webcmd.SiteConfig
	// CatalogPath names a YAML catalog; empty loads the built-in starter set.
	CatalogPath string `env:"TOOLATLAS_SEED_CATALOG"`
	Verbose     bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML catalog path (default: built-in catalog)")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run applies the catalog to the configured store.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		site, err := webcmd.OpenSite(cfg.SiteConfig, true)
		if err != nil {
			return err
		}
		defer site.Close()

		result, err := seed.Run(ctx, site.Store(), seed.Config{Path: cfg.CatalogPath, Verbose: cfg.Verbose})
		if err != nil {
			return err
		}
		log.Printf("seed complete categories=%d tools_created=%d tools_updated=%d workflows=%d",
			result.Categories, result.ToolsCreated, result.ToolsUpdated, result.Workflows)
		return nil
	})
}
