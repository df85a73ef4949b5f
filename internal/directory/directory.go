// Package directory holds the AI tool directory domain: categories, tools,
// visitor ratings and multi-step workflows, plus the pure rules that validate
// and rank them.
package directory

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

// Pricing is the commercial model advertised by a tool.
type Pricing string

const (
	PricingFree     Pricing = "free"
	PricingFreemium Pricing = "freemium"
	PricingPaid     Pricing = "paid"
)

// Pricings lists every pricing model in display order.
var Pricings = []Pricing{PricingFree, PricingFreemium, PricingPaid}

// MessageKey returns the catalog key for the pricing label.
func (p Pricing) MessageKey() string {
	return "pricing." + string(p)
}

// ParsePricing maps user input to a Pricing value.
func ParsePricing(value string) (Pricing, error) {
	switch Pricing(strings.ToLower(strings.TrimSpace(value))) {
	case PricingFree:
		return PricingFree, nil
	case PricingFreemium:
		return PricingFreemium, nil
	case PricingPaid:
		return PricingPaid, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeToolPricingInvalid, "pricing is invalid", map[string]string{"value": value})
	}
}

// Category groups tools under one localized heading.
type Category struct {
	ID       string
	Slug     string
	Names    map[string]string
	Position int
}

// Tool is one directory entry.
type Tool struct {
	ID           string
	Slug         string
	Name         string
	URL          string
	CategorySlug string
	Pricing      Pricing
	// Summary is keyed by locale segment.
	Summary   map[string]string
	Tags      []string
	Featured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rating is one visitor's score for one tool. A visitor holds at most one
// rating per tool; later submissions replace earlier ones.
type Rating struct {
	ToolID    string
	VisitorID string
	Score     int
	CreatedAt time.Time
}

// RatingSummary aggregates every rating for a tool.
type RatingSummary struct {
	Count   int
	Average float64
}

// Workflow chains tools into an ordered recipe.
type Workflow struct {
	ID    string
	Slug  string
	Title map[string]string
	Steps []WorkflowStep
}

// WorkflowStep is one position in a workflow.
type WorkflowStep struct {
	Position int
	ToolSlug string
	Note     map[string]string
}
