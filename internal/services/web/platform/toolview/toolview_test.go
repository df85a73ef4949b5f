package toolview

import (
	"testing"

	"github.com/louisbranch/toolatlas/internal/directory"
)

func TestCardLocalizesAndLinksCategory(t *testing.T) {
	t.Parallel()

	l := Localizer{Locale: "zh", Fallback: "en"}
	categories := CategoryIndex([]directory.Category{
		{Slug: "writing", Names: map[string]string{"en": "Writing", "zh": "写作"}},
	})
	tool := directory.Tool{
		ID:           "t1",
		Slug:         "alpha",
		Name:         "Alpha",
		CategorySlug: "writing",
		Pricing:      directory.PricingFreemium,
		Summary:      map[string]string{"en": "Drafts text"},
		Tags:         []string{"chat"},
	}

	card := l.Card(tool, categories, directory.RatingSummary{Count: 3, Average: 4})
	if card.Href != "/zh/tools/alpha" {
		t.Fatalf("href = %q, want %q", card.Href, "/zh/tools/alpha")
	}
	if card.Summary != "Drafts text" {
		t.Fatalf("summary = %q, want fallback text", card.Summary)
	}
	if card.CategoryName != "写作" || card.CategoryHref != "/zh/categories/writing" {
		t.Fatalf("category = %q %q", card.CategoryName, card.CategoryHref)
	}
	if card.PricingKey != "pricing.freemium" || card.Rating.Count != 3 {
		t.Fatalf("card = %+v", card)
	}
}

func TestCardWithUnknownCategory(t *testing.T) {
	t.Parallel()

	card := Localizer{Locale: "en", Fallback: "en"}.Card(directory.Tool{Slug: "x", CategorySlug: "gone"}, nil, directory.RatingSummary{})
	if card.CategoryName != "" || card.CategoryHref != "" {
		t.Fatalf("category = %q %q, want empty", card.CategoryName, card.CategoryHref)
	}
}

func TestCategoryLinksMarksSelected(t *testing.T) {
	t.Parallel()

	links := Localizer{Locale: "en", Fallback: "en"}.CategoryLinks([]directory.Category{
		{Slug: "design", Names: map[string]string{"en": "Design"}},
		{Slug: "writing", Names: map[string]string{"en": "Writing"}},
	}, "writing")
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if links[0].Selected || !links[1].Selected {
		t.Fatalf("selection = %v %v, want false true", links[0].Selected, links[1].Selected)
	}
	if links[1].Href != "/en/categories/writing" {
		t.Fatalf("href = %q", links[1].Href)
	}
}
