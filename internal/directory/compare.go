package directory

import (
	"strings"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

// MaxCompare is the widest comparison rendered side by side.
const MaxCompare = 4

// ComparedTool is one comparison column.
type ComparedTool struct {
	Tool   Tool
	Rating RatingSummary
}

// Comparison is a side-by-side view of two to four tools.
type Comparison struct {
	Tools []ComparedTool
	// SharedTags are tags carried by every compared tool, in first-tool order.
	SharedTags []string
	// SamePricing is true when every tool advertises the same pricing.
	SamePricing bool
}

// ParseCompareSlugs splits a comma separated list, dropping blanks and
// duplicates while keeping order.
func ParseCompareSlugs(raw string) []string {
	var slugs []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		slug := strings.TrimSpace(part)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	return slugs
}

// Compare builds a comparison from tools keyed by slug order. Duplicate
// tools are removed; summaries are keyed by tool ID.
func Compare(tools []Tool, summaries map[string]RatingSummary) (Comparison, error) {
	unique := make([]Tool, 0, len(tools))
	seen := make(map[string]struct{}, len(tools))
	for _, tool := range tools {
		if _, ok := seen[tool.Slug]; ok {
			continue
		}
		seen[tool.Slug] = struct{}{}
		unique = append(unique, tool)
	}
	if len(unique) < 2 {
		return Comparison{}, apperrors.New(apperrors.CodeCompareTooFew, "compare needs at least two tools")
	}
	if len(unique) > MaxCompare {
		return Comparison{}, apperrors.WithMetadata(apperrors.CodeCompareTooMany, "compare accepts at most four tools", map[string]string{"max": "4"})
	}

	comparison := Comparison{
		Tools:       make([]ComparedTool, len(unique)),
		SamePricing: true,
	}
	for i, tool := range unique {
		comparison.Tools[i] = ComparedTool{Tool: tool, Rating: summaries[tool.ID]}
		if tool.Pricing != unique[0].Pricing {
			comparison.SamePricing = false
		}
	}

	for _, tag := range unique[0].Tags {
		shared := true
		for _, other := range unique[1:] {
			if !containsString(other.Tags, tag) {
				shared = false
				break
			}
		}
		if shared {
			comparison.SharedTags = append(comparison.SharedTags, tag)
		}
	}
	return comparison, nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
