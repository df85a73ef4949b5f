package directory

import (
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

const (
	maxSlugLength = 64
	maxTags       = 12
	maxTagLength  = 32
)

// MinScore and MaxScore bound a rating score.
const (
	MinScore = 1
	MaxScore = 5
)

// ValidateSlug accepts lowercase ASCII letters, digits and single dashes
// between them.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > maxSlugLength {
		return slugError(slug)
	}
	prevDash := true
	for i := 0; i < len(slug); i++ {
		c := slug[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			prevDash = false
		case c == '-':
			if prevDash {
				return slugError(slug)
			}
			prevDash = true
		default:
			return slugError(slug)
		}
	}
	if prevDash {
		return slugError(slug)
	}
	return nil
}

func slugError(slug string) error {
	return apperrors.WithMetadata(apperrors.CodeSlugInvalid, "slug is invalid", map[string]string{"slug": slug})
}

// NormalizeTags lowercases, trims and de-duplicates tags, keeping first
// occurrence order. Blank tags are dropped and the result is capped.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.Join(strings.Fields(strings.ToLower(tag)), " ")
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLength {
			tag = tag[:maxTagLength]
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// ValidateTool checks a tool and returns its normalized form.
func ValidateTool(tool Tool) (Tool, error) {
	tool.Slug = strings.TrimSpace(tool.Slug)
	if err := ValidateSlug(tool.Slug); err != nil {
		return Tool{}, err
	}
	tool.Name = strings.TrimSpace(tool.Name)
	if tool.Name == "" {
		return Tool{}, apperrors.New(apperrors.CodeToolNameEmpty, "tool name is required")
	}
	tool.URL = strings.TrimSpace(tool.URL)
	if !validWebURL(tool.URL) {
		return Tool{}, apperrors.WithMetadata(apperrors.CodeToolURLInvalid, "tool url is invalid", map[string]string{"url": tool.URL})
	}
	tool.CategorySlug = strings.TrimSpace(tool.CategorySlug)
	if tool.CategorySlug == "" {
		return Tool{}, apperrors.New(apperrors.CodeToolCategoryEmpty, "tool category is required")
	}
	if err := ValidateSlug(tool.CategorySlug); err != nil {
		return Tool{}, err
	}
	pricing, err := ParsePricing(string(tool.Pricing))
	if err != nil {
		return Tool{}, err
	}
	tool.Pricing = pricing
	tool.Summary = trimLocalized(tool.Summary)
	tool.Tags = NormalizeTags(tool.Tags)
	return tool, nil
}

// ValidateCategory checks a category and returns its normalized form.
func ValidateCategory(category Category) (Category, error) {
	category.Slug = strings.TrimSpace(category.Slug)
	if err := ValidateSlug(category.Slug); err != nil {
		return Category{}, err
	}
	category.Names = trimLocalized(category.Names)
	if len(category.Names) == 0 {
		return Category{}, apperrors.New(apperrors.CodeCategoryNameEmpty, "category needs at least one name")
	}
	return category, nil
}

// ValidateWorkflow checks a workflow and renumbers its steps from 1.
func ValidateWorkflow(workflow Workflow) (Workflow, error) {
	workflow.Slug = strings.TrimSpace(workflow.Slug)
	if err := ValidateSlug(workflow.Slug); err != nil {
		return Workflow{}, err
	}
	workflow.Title = trimLocalized(workflow.Title)
	if len(workflow.Steps) == 0 {
		return Workflow{}, apperrors.New(apperrors.CodeWorkflowStepsEmpty, "workflow needs at least one step")
	}
	steps := make([]WorkflowStep, len(workflow.Steps))
	for i, step := range workflow.Steps {
		step.ToolSlug = strings.TrimSpace(step.ToolSlug)
		if err := ValidateSlug(step.ToolSlug); err != nil {
			return Workflow{}, err
		}
		step.Position = i + 1
		step.Note = trimLocalized(step.Note)
		steps[i] = step
	}
	workflow.Steps = steps
	return workflow, nil
}

// ValidateScore checks that score is within MinScore..MaxScore.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return apperrors.New(apperrors.CodeRatingOutOfRange, "score must be between 1 and 5")
	}
	return nil
}

func validWebURL(raw string) bool {
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func trimLocalized(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for locale, value := range values {
		locale = strings.TrimSpace(locale)
		value = strings.TrimSpace(value)
		if locale == "" || value == "" {
			continue
		}
		out[locale] = value
	}
	return out
}
