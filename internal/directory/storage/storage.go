// Package storage defines persistence contracts for the tool directory.
package storage

import (
	"context"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/filter"
	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested directory record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyExists indicates a slug-constrained record already exists.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")
)

// MaxPageSize caps ToolQuery.PageSize.
const MaxPageSize = 100

// ToolQuery selects one page of tools ordered by slug.
type ToolQuery struct {
	CategorySlug string
	// Search matches case-insensitively against name, summaries and tags.
	Search       string
	FeaturedOnly bool
	// Condition is an already-translated AIP-160 filter.
	Condition filter.Condition
	PageSize  int
	PageToken string
}

// ToolPage is one page of tools.
type ToolPage struct {
	Tools         []directory.Tool
	NextPageToken string
}

// CategoryStore persists categories.
type CategoryStore interface {
	PutCategory(ctx context.Context, category directory.Category) error
	GetCategory(ctx context.Context, slug string) (directory.Category, error)
	ListCategories(ctx context.Context) ([]directory.Category, error)
}

// ToolStore persists tools.
type ToolStore interface {
	CreateTool(ctx context.Context, tool directory.Tool) (directory.Tool, error)
	UpdateTool(ctx context.Context, tool directory.Tool) (directory.Tool, error)
	DeleteTool(ctx context.Context, slug string) error
	GetTool(ctx context.Context, slug string) (directory.Tool, error)
	ListTools(ctx context.Context, query ToolQuery) (ToolPage, error)
}

// RatingStore persists visitor ratings.
type RatingStore interface {
	PutRating(ctx context.Context, rating directory.Rating) error
	RatingSummaries(ctx context.Context, toolIDs []string) (map[string]directory.RatingSummary, error)
}

// WorkflowStore persists workflows.
type WorkflowStore interface {
	PutWorkflow(ctx context.Context, workflow directory.Workflow) error
	GetWorkflow(ctx context.Context, slug string) (directory.Workflow, error)
	ListWorkflows(ctx context.Context) ([]directory.Workflow, error)
}

// Store is the full directory persistence surface.
type Store interface {
	CategoryStore
	ToolStore
	RatingStore
	WorkflowStore
	Ping(ctx context.Context) error
}

// AllTools walks every page of query and returns the concatenated tools.
func AllTools(ctx context.Context, tools ToolStore, query ToolQuery) ([]directory.Tool, error) {
	query.PageSize = MaxPageSize
	query.PageToken = ""
	var out []directory.Tool
	for {
		page, err := tools.ListTools(ctx, query)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Tools...)
		if page.NextPageToken == "" {
			return out, nil
		}
		query.PageToken = page.NextPageToken
	}
}

// ToolIDs returns the IDs of tools in order.
func ToolIDs(tools []directory.Tool) []string {
	ids := make([]string, len(tools))
	for i, tool := range tools {
		ids[i] = tool.ID
	}
	return ids
}
