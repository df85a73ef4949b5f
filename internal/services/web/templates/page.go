package templates

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang  string
	Loc   Localizer
	Title string
	// CurrentPath is the request path the language switcher rewrites.
	CurrentPath  string
	Languages    []LanguageLink
	StaticExport bool
	SignedIn     bool
}

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Lang   string
	Label  string
	Href   string
	Active bool
}

// RatingView is a rendered rating summary.
type RatingView struct {
	Count   int
	Average float64
}

// ToolCard is one tool in a list.
type ToolCard struct {
	Slug         string
	Name         string
	Href         string
	Summary      string
	PricingKey   string
	CategoryName string
	CategoryHref string
	Tags         []string
	Featured     bool
	Rating       RatingView
}

// CategoryLink is one category in navigation lists.
type CategoryLink struct {
	Slug     string
	Name     string
	Href     string
	Selected bool
}

// HomeView is the locale landing page.
type HomeView struct {
	Featured   []ToolCard
	Categories []CategoryLink
	ToolsHref  string
}

// ToolsView is the searchable tool list.
type ToolsView struct {
	Action     string
	Search     string
	Categories []CategoryLink
	Tools      []ToolCard
	NextHref   string
}

// ToolView is the tool detail page.
type ToolView struct {
	Tool        ToolCard
	URL         string
	RateAction  string
	Rated       bool
	CompareHref string
}

// CategoryView lists tools within one category.
type CategoryView struct {
	Name  string
	Tools []ToolCard
}

// CompareColumn is one compared tool.
type CompareColumn struct {
	Tool ToolCard
}

// CompareView is the side-by-side comparison page.
type CompareView struct {
	Action       string
	Options      []CategoryLink
	Columns      []CompareColumn
	SharedTags   []string
	SamePricing  bool
	ErrorMessage string
}

// WorkflowLink is one workflow in the list.
type WorkflowLink struct {
	Title     string
	Href      string
	StepCount int
}

// WorkflowStepView is one rendered workflow step.
type WorkflowStepView struct {
	Position int
	ToolName string
	ToolHref string
	Note     string
}

// WorkflowView is the workflow detail page.
type WorkflowView struct {
	Title string
	Steps []WorkflowStepView
}

// StartView is the onboarding picker and its recommendations.
type StartView struct {
	Action    string
	Interests []CategoryLink
	Submitted bool
	Results   []ToolCard
}

// AdminLoginView is the admin sign-in form.
type AdminLoginView struct {
	Action       string
	Email        string
	ErrorMessage string
}

// AdminToolRow is one tool in the admin list.
type AdminToolRow struct {
	Slug       string
	Name       string
	PublicHref string
	EditHref   string
	DeleteHref string
}

// AdminToolsView is the admin tool list.
type AdminToolsView struct {
	NewHref      string
	LogoutAction string
	Tools        []AdminToolRow
}

// LocalizedField is one per-locale text input.
type LocalizedField struct {
	Lang  string
	Value string
}

// PricingOption is one pricing radio choice.
type PricingOption struct {
	Value    string
	LabelKey string
	Selected bool
}

// AdminToolFormView is the create and edit tool form.
type AdminToolFormView struct {
	Heading      string
	Action       string
	CancelHref   string
	Slug         string
	SlugLocked   bool
	Name         string
	URL          string
	Categories   []CategoryLink
	Pricings     []PricingOption
	Summaries    []LocalizedField
	Tags         string
	Featured     bool
	ErrorMessage string
}

// ErrorView is the shared error page.
type ErrorView struct {
	Status   int
	Message  string
	HomeHref string
}
