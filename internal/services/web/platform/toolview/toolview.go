// Package toolview maps directory records into template view models shared
// by the catalog, compare and onboarding modules.
package toolview

import (
	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/toolatlas/internal/services/web/templates"
)

// Localizer resolves localized record fields for one page locale.
type Localizer struct {
	Locale   string
	Fallback string
}

// Text returns the best value of values for the page locale.
func (l Localizer) Text(values map[string]string) string {
	return directory.Localized(values, l.Locale, l.Fallback)
}

// CategoryIndex keys categories by slug.
func CategoryIndex(categories []directory.Category) map[string]directory.Category {
	index := make(map[string]directory.Category, len(categories))
	for _, category := range categories {
		index[category.Slug] = category
	}
	return index
}

// Card builds one tool card.
func (l Localizer) Card(tool directory.Tool, categories map[string]directory.Category, rating directory.RatingSummary) webtemplates.ToolCard {
	card := webtemplates.ToolCard{
		Slug:       tool.Slug,
		Name:       tool.Name,
		Href:       routepath.Tool(l.Locale, tool.Slug),
		Summary:    l.Text(tool.Summary),
		PricingKey: tool.Pricing.MessageKey(),
		Tags:       tool.Tags,
		Featured:   tool.Featured,
		Rating:     webtemplates.RatingView{Count: rating.Count, Average: rating.Average},
	}
	if category, ok := categories[tool.CategorySlug]; ok {
		card.CategoryName = l.Text(category.Names)
		card.CategoryHref = routepath.Category(l.Locale, category.Slug)
	}
	return card
}

// Cards builds tool cards in input order. summaries are keyed by tool ID.
func (l Localizer) Cards(tools []directory.Tool, categories map[string]directory.Category, summaries map[string]directory.RatingSummary) []webtemplates.ToolCard {
	cards := make([]webtemplates.ToolCard, 0, len(tools))
	for _, tool := range tools {
		cards = append(cards, l.Card(tool, categories, summaries[tool.ID]))
	}
	return cards
}

// CategoryLinks builds category navigation, marking selected.
func (l Localizer) CategoryLinks(categories []directory.Category, selected ...string) []webtemplates.CategoryLink {
	links := make([]webtemplates.CategoryLink, 0, len(categories))
	for _, category := range categories {
		links = append(links, webtemplates.CategoryLink{
			Slug:     category.Slug,
			Name:     l.Text(category.Names),
			Href:     routepath.Category(l.Locale, category.Slug),
			Selected: contains(selected, category.Slug),
		})
	}
	return links
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
