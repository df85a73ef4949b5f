// Package directorytest opens SQLite directory stores preloaded with a small
// bilingual fixture catalog for handler and exporter tests.
package directorytest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage/sqlite"
)

// Fixture slugs.
const (
	CategoryWriting = "writing"
	CategoryDesign  = "design"

	ToolAlpha = "alpha-writer"
	ToolBeta  = "beta-draw"
	ToolGamma = "gamma-notes"

	WorkflowBlog = "blog-post"
)

// Open returns an empty store on a temp dir, closed on cleanup.
func Open(t testing.TB) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "toolatlas.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// OpenSeeded returns a store holding two categories, three tools and one
// workflow. Alpha is featured and rated 5 once.
func OpenSeeded(t testing.TB) *sqlite.Store {
	t.Helper()
	store := Open(t)
	Seed(t, store)
	return store
}

// Seed writes the fixture catalog into store.
func Seed(t testing.TB, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	for _, category := range []directory.Category{
		{Slug: CategoryWriting, Names: map[string]string{"en": "Writing", "zh": "写作"}, Position: 1},
		{Slug: CategoryDesign, Names: map[string]string{"en": "Design", "zh": "设计"}, Position: 2},
	} {
		if err := store.PutCategory(ctx, category); err != nil {
			t.Fatalf("put category %s: %v", category.Slug, err)
		}
	}

	tools := []directory.Tool{
		{
			Slug:         ToolAlpha,
			Name:         "Alpha Writer",
			URL:          "https://alpha.example.com",
			CategorySlug: CategoryWriting,
			Pricing:      directory.PricingFree,
			Summary:      map[string]string{"en": "Drafts long-form text.", "zh": "撰写长文。"},
			Tags:         []string{"chat", "writing"},
			Featured:     true,
		},
		{
			Slug:         ToolBeta,
			Name:         "Beta Draw",
			URL:          "https://beta.example.com",
			CategorySlug: CategoryDesign,
			Pricing:      directory.PricingPaid,
			Summary:      map[string]string{"en": "Sketches images from prompts."},
			Tags:         []string{"image"},
		},
		{
			Slug:         ToolGamma,
			Name:         "Gamma Notes",
			URL:          "https://gamma.example.com",
			CategorySlug: CategoryWriting,
			Pricing:      directory.PricingFreemium,
			Summary:      map[string]string{"en": "Keeps meeting notes.", "zh": "记录会议笔记。"},
			Tags:         []string{"notes", "writing"},
		},
	}
	created := make(map[string]directory.Tool, len(tools))
	for _, tool := range tools {
		saved, err := store.CreateTool(ctx, tool)
		if err != nil {
			t.Fatalf("create tool %s: %v", tool.Slug, err)
		}
		created[saved.Slug] = saved
	}

	if err := store.PutRating(ctx, directory.Rating{ToolID: created[ToolAlpha].ID, VisitorID: "fixture-visitor", Score: 5}); err != nil {
		t.Fatalf("put rating: %v", err)
	}

	err := store.PutWorkflow(ctx, directory.Workflow{
		Slug:  WorkflowBlog,
		Title: map[string]string{"en": "Write a blog post", "zh": "写一篇博客"},
		Steps: []directory.WorkflowStep{
			{Position: 1, ToolSlug: ToolAlpha, Note: map[string]string{"en": "Draft the post."}},
			{Position: 2, ToolSlug: ToolBeta, Note: map[string]string{"en": "Make a cover image."}},
		},
	})
	if err != nil {
		t.Fatalf("put workflow: %v", err)
	}
}
