package directory

import (
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

func TestValidateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug string
		ok   bool
	}{
		{slug: "chatgpt", ok: true},
		{slug: "stable-diffusion-xl", ok: true},
		{slug: "gpt4o", ok: true},
		{slug: "", ok: false},
		{slug: "-lead", ok: false},
		{slug: "trail-", ok: false},
		{slug: "double--dash", ok: false},
		{slug: "Upper", ok: false},
		{slug: "has space", ok: false},
		{slug: "dot.dot", ok: false},
		{slug: "中文", ok: false},
	}
	for _, tt := range tests {
		err := ValidateSlug(tt.slug)
		if (err == nil) != tt.ok {
			t.Fatalf("ValidateSlug(%q) error = %v, want ok=%v", tt.slug, err, tt.ok)
		}
		if err != nil && !apperrors.HasCode(err, apperrors.CodeSlugInvalid) {
			t.Fatalf("ValidateSlug(%q) code = %v, want %v", tt.slug, apperrors.CodeOf(err), apperrors.CodeSlugInvalid)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{" Writing ", "writing", "", "Image  Gen", "code"})
	want := []string{"writing", "image gen", "code"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}

	many := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, string(rune('a'+i)))
	}
	if got := NormalizeTags(many); len(got) != maxTags {
		t.Fatalf("len(NormalizeTags(20 tags)) = %d, want %d", len(got), maxTags)
	}
}

func TestParsePricing(t *testing.T) {
	t.Parallel()

	if got, err := ParsePricing(" Freemium "); err != nil || got != PricingFreemium {
		t.Fatalf("ParsePricing(Freemium) = %q, %v", got, err)
	}
	if _, err := ParsePricing("enterprise"); !apperrors.HasCode(err, apperrors.CodeToolPricingInvalid) {
		t.Fatalf("ParsePricing(enterprise) error = %v, want pricing invalid", err)
	}
	if got := PricingPaid.MessageKey(); got != "pricing.paid" {
		t.Fatalf("MessageKey() = %q, want pricing.paid", got)
	}
}

func validTool() Tool {
	return Tool{
		Slug:         " chatgpt ",
		Name:         " ChatGPT ",
		URL:          "https://chat.openai.com",
		CategorySlug: "writing",
		Pricing:      "freemium",
		Summary:      map[string]string{"en": " Conversational assistant ", "zh": "", " ": "x"},
		Tags:         []string{"Chat", "chat", "writing"},
	}
}

func TestValidateToolNormalizes(t *testing.T) {
	t.Parallel()

	got, err := ValidateTool(validTool())
	if err != nil {
		t.Fatalf("ValidateTool() error = %v", err)
	}
	if got.Slug != "chatgpt" || got.Name != "ChatGPT" {
		t.Fatalf("slug/name = %q/%q", got.Slug, got.Name)
	}
	if !reflect.DeepEqual(got.Summary, map[string]string{"en": "Conversational assistant"}) {
		t.Fatalf("summary = %v", got.Summary)
	}
	if !reflect.DeepEqual(got.Tags, []string{"chat", "writing"}) {
		t.Fatalf("tags = %v", got.Tags)
	}
}

func TestValidateToolErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Tool)
		code   apperrors.Code
	}{
		{name: "bad slug", mutate: func(tool *Tool) { tool.Slug = "Bad Slug" }, code: apperrors.CodeSlugInvalid},
		{name: "empty name", mutate: func(tool *Tool) { tool.Name = "  " }, code: apperrors.CodeToolNameEmpty},
		{name: "relative url", mutate: func(tool *Tool) { tool.URL = "/chat" }, code: apperrors.CodeToolURLInvalid},
		{name: "ftp url", mutate: func(tool *Tool) { tool.URL = "ftp://example.com" }, code: apperrors.CodeToolURLInvalid},
		{name: "empty category", mutate: func(tool *Tool) { tool.CategorySlug = "" }, code: apperrors.CodeToolCategoryEmpty},
		{name: "bad pricing", mutate: func(tool *Tool) { tool.Pricing = "cheap" }, code: apperrors.CodeToolPricingInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tool := validTool()
			tt.mutate(&tool)
			_, err := ValidateTool(tool)
			if got := apperrors.CodeOf(err); got != tt.code {
				t.Fatalf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	if _, err := ValidateCategory(Category{Slug: "writing", Names: map[string]string{"en": " "}}); !apperrors.HasCode(err, apperrors.CodeCategoryNameEmpty) {
		t.Fatalf("error = %v, want category name empty", err)
	}
	got, err := ValidateCategory(Category{Slug: "writing", Names: map[string]string{"en": "Writing"}})
	if err != nil {
		t.Fatalf("ValidateCategory() error = %v", err)
	}
	if got.Names["en"] != "Writing" {
		t.Fatalf("names = %v", got.Names)
	}
}

func TestValidateWorkflowRenumbersSteps(t *testing.T) {
	t.Parallel()

	got, err := ValidateWorkflow(Workflow{
		Slug:  "blog-post",
		Title: map[string]string{"en": "Write a blog post"},
		Steps: []WorkflowStep{{Position: 7, ToolSlug: "chatgpt"}, {Position: 2, ToolSlug: "midjourney"}},
	})
	if err != nil {
		t.Fatalf("ValidateWorkflow() error = %v", err)
	}
	if got.Steps[0].Position != 1 || got.Steps[1].Position != 2 {
		t.Fatalf("positions = %d,%d, want 1,2", got.Steps[0].Position, got.Steps[1].Position)
	}

	if _, err := ValidateWorkflow(Workflow{Slug: "empty"}); !apperrors.HasCode(err, apperrors.CodeWorkflowStepsEmpty) {
		t.Fatalf("error = %v, want steps empty", err)
	}
}

func TestValidateScore(t *testing.T) {
	t.Parallel()

	for _, score := range []int{1, 3, 5} {
		if err := ValidateScore(score); err != nil {
			t.Fatalf("ValidateScore(%d) = %v", score, err)
		}
	}
	for _, score := range []int{0, 6, -1} {
		if err := ValidateScore(score); !apperrors.HasCode(err, apperrors.CodeRatingOutOfRange) {
			t.Fatalf("ValidateScore(%d) = %v, want out of range", score, err)
		}
	}
}

func TestLocalized(t *testing.T) {
	t.Parallel()

	values := map[string]string{"en": "Hello", "zh": "你好", "fr": "Bonjour"}
	if got := Localized(values, "zh", "en"); got != "你好" {
		t.Fatalf("Localized(zh) = %q", got)
	}
	if got := Localized(values, "de", "en"); got != "Hello" {
		t.Fatalf("Localized(de) = %q, want fallback", got)
	}
	if got := Localized(map[string]string{"zh": "你好", "fr": "Bonjour"}, "de", "en"); got != "Bonjour" {
		t.Fatalf("Localized(no fallback) = %q, want first sorted", got)
	}
	if got := Localized(nil, "en", "en"); got != "" {
		t.Fatalf("Localized(nil) = %q", got)
	}
}
