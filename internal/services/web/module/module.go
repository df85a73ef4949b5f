// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/services/auth"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/requestmeta"
)

// Mount describes the mux patterns one module owns.
type Mount struct {
	Prefixes []string
	Handler  http.Handler
	// ServerOnly routes are replaced by a stub when composing a static export.
	ServerOnly bool
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// Dependencies are the shared collaborators handed to every module.
type Dependencies struct {
	Locales      i18n.Set
	Store        storage.Store
	Auth         *auth.Authenticator
	SchemePolicy requestmeta.SchemePolicy
	// SiteURL overrides the request origin for absolute links.
	SiteURL      string
	StaticExport bool
}
