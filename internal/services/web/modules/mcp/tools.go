package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/filter"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/platform/timeouts"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// searchPageSize applies when SearchToolsInput.PageSize is zero.
const searchPageSize = 10

// ToolResult is the MCP view of one directory tool.
type ToolResult struct {
	Slug          string   `json:"slug" jsonschema:"tool slug"`
	Name          string   `json:"name" jsonschema:"tool name"`
	URL           string   `json:"url" jsonschema:"tool homepage"`
	Category      string   `json:"category" jsonschema:"category slug"`
	Pricing       string   `json:"pricing" jsonschema:"pricing model (free, freemium, paid)"`
	Summary       string   `json:"summary" jsonschema:"summary in the requested locale"`
	Tags          []string `json:"tags" jsonschema:"normalized tags"`
	Featured      bool     `json:"featured" jsonschema:"whether editors feature the tool"`
	RatingCount   int      `json:"rating_count" jsonschema:"number of visitor ratings"`
	RatingAverage float64  `json:"rating_average" jsonschema:"average visitor score from 1 to 5"`
}

// SearchToolsInput represents the MCP tool input for searching tools.
type SearchToolsInput struct {
	Query     string `json:"query,omitempty" jsonschema:"free-text search over names, summaries and tags"`
	Category  string `json:"category,omitempty" jsonschema:"optional category slug"`
	Filter    string `json:"filter,omitempty" jsonschema:"optional AIP-160 filter, e.g. pricing = \"free\""`
	Locale    string `json:"locale,omitempty" jsonschema:"locale for summaries; defaults to the site default"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum results, default 10"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous search"`
}

// SearchToolsResult represents the MCP tool output for searching tools.
type SearchToolsResult struct {
	Tools         []ToolResult `json:"tools" jsonschema:"matching tools ordered by slug"`
	NextPageToken string       `json:"next_page_token,omitempty" jsonschema:"token for the next page, if any"`
}

// GetToolInput represents the MCP tool input for fetching one tool.
type GetToolInput struct {
	Slug   string `json:"slug" jsonschema:"tool slug"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for the summary"`
}

// ListCategoriesInput represents the MCP tool input for listing categories.
type ListCategoriesInput struct {
	Locale string `json:"locale,omitempty" jsonschema:"locale for category names"`
}

// CategoryResult is the MCP view of one category.
type CategoryResult struct {
	Slug string `json:"slug" jsonschema:"category slug"`
	Name string `json:"name" jsonschema:"category name in the requested locale"`
}

// ListCategoriesResult represents the MCP tool output for listing categories.
type ListCategoriesResult struct {
	Categories []CategoryResult `json:"categories" jsonschema:"categories in display order"`
}

// SearchToolsTool defines the MCP tool schema for searching tools.
func SearchToolsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_tools",
		Description: "Searches the AI tool directory by text, category and AIP-160 filter",
	}
}

// GetToolTool defines the MCP tool schema for fetching one tool.
func GetToolTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_tool",
		Description: "Returns one directory tool with its rating summary",
	}
}

// ListCategoriesTool defines the MCP tool schema for listing categories.
func ListCategoriesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "list_categories",
		Description: "Lists directory categories in display order",
	}
}

// SearchToolsHandler executes a tool search.
func SearchToolsHandler(store storage.Store, locales i18n.Set) mcpsdk.ToolHandlerFor[SearchToolsInput, SearchToolsResult] {
	return func(ctx context.Context, _ *mcpsdk.CallToolRequest, input SearchToolsInput) (*mcpsdk.CallToolResult, SearchToolsResult, error) {
		condition, err := filter.ParseToolFilter(input.Filter)
		if err != nil {
			return nil, SearchToolsResult{}, err
		}
		if input.PageSize < 0 {
			return nil, SearchToolsResult{}, fmt.Errorf("page_size must be non-negative")
		}
		pageSize := input.PageSize
		if pageSize == 0 {
			pageSize = searchPageSize
		}

		ctx, cancel := context.WithTimeout(ctx, timeouts.StoreRequest)
		defer cancel()
		page, err := store.ListTools(ctx, storage.ToolQuery{
			CategorySlug: strings.TrimSpace(input.Category),
			Search:       strings.TrimSpace(input.Query),
			Condition:    condition,
			PageSize:     pageSize,
			PageToken:    strings.TrimSpace(input.PageToken),
		})
		if err != nil {
			return nil, SearchToolsResult{}, fmt.Errorf("search tools: %w", err)
		}
		summaries, err := store.RatingSummaries(ctx, storage.ToolIDs(page.Tools))
		if err != nil {
			return nil, SearchToolsResult{}, fmt.Errorf("rating summaries: %w", err)
		}

		locale := locales.Normalize(input.Locale).Segment
		result := SearchToolsResult{Tools: make([]ToolResult, 0, len(page.Tools)), NextPageToken: page.NextPageToken}
		for _, tool := range page.Tools {
			result.Tools = append(result.Tools, toolResult(tool, summaries[tool.ID], locale, locales.Default().Segment))
		}
		return nil, result, nil
	}
}

// GetToolHandler fetches one tool by slug.
func GetToolHandler(store storage.Store, locales i18n.Set) mcpsdk.ToolHandlerFor[GetToolInput, ToolResult] {
	return func(ctx context.Context, _ *mcpsdk.CallToolRequest, input GetToolInput) (*mcpsdk.CallToolResult, ToolResult, error) {
		slug := strings.TrimSpace(input.Slug)
		if slug == "" {
			return nil, ToolResult{}, fmt.Errorf("slug is required")
		}
		ctx, cancel := context.WithTimeout(ctx, timeouts.StoreRequest)
		defer cancel()
		tool, err := store.GetTool(ctx, slug)
		if err != nil {
			return nil, ToolResult{}, fmt.Errorf("get tool %q: %w", slug, err)
		}
		summaries, err := store.RatingSummaries(ctx, []string{tool.ID})
		if err != nil {
			return nil, ToolResult{}, fmt.Errorf("rating summaries: %w", err)
		}
		locale := locales.Normalize(input.Locale).Segment
		return nil, toolResult(tool, summaries[tool.ID], locale, locales.Default().Segment), nil
	}
}

// ListCategoriesHandler lists categories with localized names.
func ListCategoriesHandler(store storage.Store, locales i18n.Set) mcpsdk.ToolHandlerFor[ListCategoriesInput, ListCategoriesResult] {
	return func(ctx context.Context, _ *mcpsdk.CallToolRequest, input ListCategoriesInput) (*mcpsdk.CallToolResult, ListCategoriesResult, error) {
		ctx, cancel := context.WithTimeout(ctx, timeouts.StoreRequest)
		defer cancel()
		categories, err := store.ListCategories(ctx)
		if err != nil {
			return nil, ListCategoriesResult{}, fmt.Errorf("list categories: %w", err)
		}
		locale := locales.Normalize(input.Locale).Segment
		result := ListCategoriesResult{Categories: make([]CategoryResult, 0, len(categories))}
		for _, category := range categories {
			result.Categories = append(result.Categories, CategoryResult{
				Slug: category.Slug,
				Name: directory.Localized(category.Names, locale, locales.Default().Segment),
			})
		}
		return nil, result, nil
	}
}

func toolResult(tool directory.Tool, rating directory.RatingSummary, locale, fallback string) ToolResult {
	tags := tool.Tags
	if tags == nil {
		tags = []string{}
	}
	return ToolResult{
		Slug:          tool.Slug,
		Name:          tool.Name,
		URL:           tool.URL,
		Category:      tool.CategorySlug,
		Pricing:       string(tool.Pricing),
		Summary:       directory.Localized(tool.Summary, locale, fallback),
		Tags:          tags,
		Featured:      tool.Featured,
		RatingCount:   rating.Count,
		RatingAverage: rating.Average,
	}
}
