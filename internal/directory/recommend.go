package directory

import (
	"sort"
	"strings"
)

// Recommend ranks tools for onboarding: tools whose category is one of
// interests come first, then higher average rating, then more ratings, then
// name. limit <= 0 returns every tool.
func Recommend(tools []Tool, summaries map[string]RatingSummary, interests []string, limit int) []Tool {
	wanted := make(map[string]struct{}, len(interests))
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest != "" {
			wanted[interest] = struct{}{}
		}
	}
	matches := func(tool Tool) bool {
		_, ok := wanted[tool.CategorySlug]
		return ok
	}

	ranked := make([]Tool, len(tools))
	copy(ranked, tools)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ma, mb := matches(a), matches(b); ma != mb {
			return ma
		}
		sa, sb := summaries[a.ID], summaries[b.ID]
		if sa.Average != sb.Average {
			return sa.Average > sb.Average
		}
		if sa.Count != sb.Count {
			return sa.Count > sb.Count
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
