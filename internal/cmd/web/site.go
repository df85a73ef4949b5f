package web

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory/storage/sqlite"
	"github.com/louisbranch/toolatlas/internal/platform/config"
	"github.com/louisbranch/toolatlas/internal/platform/i18n/catalog"
	"github.com/louisbranch/toolatlas/internal/services/auth"
	"github.com/louisbranch/toolatlas/internal/services/web/localeroute"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
)

// SiteConfig holds the settings shared by every binary that renders the site.
type SiteConfig struct {
	DBPath              string `env:"TOOLATLAS_DB_PATH" envDefault:"data/toolatlas.db"`
	Locales             string `env:"TOOLATLAS_LOCALES" envDefault:"en,zh"`
	DefaultLocale       string `env:"TOOLATLAS_DEFAULT_LOCALE" envDefault:"en"`
	LocaleDetect        bool   `env:"TOOLATLAS_LOCALE_DETECT" envDefault:"false"`
	SiteURL             string `env:"TOOLATLAS_SITE_URL"`
	AdminEmail          string `env:"TOOLATLAS_ADMIN_EMAIL"`
	AdminPasswordHash   string `env:"TOOLATLAS_ADMIN_PASSWORD_HASH"`
	SessionSecret       string `env:"TOOLATLAS_SESSION_SECRET"`
	TrustForwardedProto bool   `env:"TOOLATLAS_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// Site bundles the opened store and composition inputs.
type Site struct {
	Deps     module.Dependencies
	Resolver *localeroute.Resolver
	store    *sqlite.Store
}

// OpenSite validates cfg, opens the store, and builds module dependencies.
// Admin sign-in stays disabled when no admin email or hash is configured.
func OpenSite(cfg SiteConfig, staticExport bool) (*Site, error) {
	resolver, err := localeroute.New(localeroute.Config{
		Locales:        config.SplitList(cfg.Locales),
		DefaultLocale:  cfg.DefaultLocale,
		DetectLanguage: cfg.LocaleDetect,
	})
	if err != nil {
		return nil, fmt.Errorf("locale config: %w", err)
	}
	bundle, err := catalog.RegisterDefault()
	if err != nil {
		return nil, err
	}
	for _, locale := range resolver.Locales().Locales() {
		if !bundle.HasLocale(locale.Segment) {
			log.Printf("locale %s has no message catalog; pages fall back to %s", locale.Segment, catalog.BaseLocale)
		}
	}

	var authenticator *auth.Authenticator
	if !staticExport {
		authenticator, err = auth.New(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.SessionSecret)
		switch {
		case errors.Is(err, auth.ErrNotConfigured):
			log.Printf("admin disabled: no admin credentials configured")
			authenticator = nil
		case err != nil:
			return nil, fmt.Errorf("admin config: %w", err)
		}
	}

	dbPath := strings.TrimSpace(cfg.DBPath)
	if dir := filepath.Dir(dbPath); dbPath != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Site{
		Deps: module.Dependencies{
			Locales:      resolver.Locales(),
			Store:        store,
			Auth:         authenticator,
			SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
			SiteURL:      strings.TrimSpace(cfg.SiteURL),
			StaticExport: staticExport,
		},
		Resolver: resolver,
		store:    store,
	}, nil
}

// Store returns the opened directory store.
func (s *Site) Store() *sqlite.Store {
	return s.store
}

// Close releases the store.
func (s *Site) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}

// RegisterSiteFlags binds the shared flags onto fs.
func RegisterSiteFlags(fs *flag.FlagSet, cfg *SiteConfig) {
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.Locales, "locales", cfg.Locales, "Comma separated locale segments")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Locale used for redirects")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Absolute site URL for sitemap and robots links")
}
