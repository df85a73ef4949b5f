package export

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	webcmd "github.com/louisbranch/toolatlas/internal/cmd/web"
	"github.com/louisbranch/toolatlas/internal/seed"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-out", "public"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.OutDir != "public" || cfg.Overwrite || cfg.Concurrency != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DBPath != "data/toolatlas.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestRunExportsSeededSite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	siteCfg := webcmd.SiteConfig{
		DBPath:        filepath.Join(dir, "toolatlas.db"),
		Locales:       "en,zh",
		DefaultLocale: "en",
		SiteURL:       "https://toolatlas.example",
	}
	site, err := webcmd.OpenSite(siteCfg, false)
	if err != nil {
		t.Fatalf("OpenSite: %v", err)
	}
	if _, err := seed.Run(context.Background(), site.Store(), seed.Config{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	site.Close()

	outDir := filepath.Join(dir, "dist")
	if err := Run(context.Background(), Config{SiteConfig: siteCfg, OutDir: outDir, Concurrency: 2}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, name := range []string{
		filepath.Join("en", "index.html"),
		filepath.Join("zh", "tools", "claude", "index.html"),
		filepath.Join("en", "workflows", "blog-post", "index.html"),
		"sitemap.xml",
		filepath.Join("static", "site.css"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
