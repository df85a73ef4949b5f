// Package seed loads a YAML catalog of categories, tools, and workflows
// into the directory store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/toolatlas/internal/directory/storage"
)

// Config holds seed runner configuration.
type Config struct {
	// Path names a catalog file; empty uses the embedded starter catalog.
	Path    string
	Verbose bool
}

// Result counts the records written by Apply.
type Result struct {
	Categories   int
	ToolsCreated int
	ToolsUpdated int
	Workflows    int
}

// Run loads the configured catalog and applies it to store.
func Run(ctx context.Context, store storage.Store, cfg Config) (Result, error) {
	var (
		catalog Catalog
		err     error
	)
	if cfg.Path == "" {
		catalog, err = DefaultCatalog()
	} else {
		catalog, err = LoadFile(cfg.Path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Verbose {
		log.Printf("loaded catalog categories=%d tools=%d workflows=%d", len(catalog.Categories), len(catalog.Tools), len(catalog.Workflows))
	}
	return Apply(ctx, store, catalog)
}

// Apply upserts catalog into store. Categories go first so tools can
// reference them; re-running the same catalog is idempotent.
func Apply(ctx context.Context, store storage.Store, catalog Catalog) (Result, error) {
	if store == nil {
		return Result{}, errors.New("store is required")
	}
	var result Result
	for _, fixture := range catalog.Categories {
		if err := store.PutCategory(ctx, fixture.Category()); err != nil {
			return result, fmt.Errorf("category %q: %w", fixture.Slug, err)
		}
		result.Categories++
	}
	for _, fixture := range catalog.Tools {
		tool := fixture.Tool()
		_, err := store.GetTool(ctx, tool.Slug)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if _, err := store.CreateTool(ctx, tool); err != nil {
				return result, fmt.Errorf("create tool %q: %w", fixture.Slug, err)
			}
			result.ToolsCreated++
		case err != nil:
			return result, fmt.Errorf("get tool %q: %w", fixture.Slug, err)
		default:
			if _, err := store.UpdateTool(ctx, tool); err != nil {
				return result, fmt.Errorf("update tool %q: %w", fixture.Slug, err)
			}
			result.ToolsUpdated++
		}
	}
	for _, fixture := range catalog.Workflows {
		if err := store.PutWorkflow(ctx, fixture.Workflow()); err != nil {
			return result, fmt.Errorf("workflow %q: %w", fixture.Slug, err)
		}
		result.Workflows++
	}
	return result, nil
}
