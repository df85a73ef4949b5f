// Package routepath stores canonical HTTP paths and mux patterns for web
// modules. Page routes live under a leading locale segment.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/up"
	Favicon      = "/favicon.ico"
	Robots       = "/robots.txt"
	Sitemap      = "/sitemap.xml"
	StaticPrefix = "/static/"

	APIPrefix      = "/api/"
	APITools       = "/api/v1/tools"
	APIToolPattern = APITools + "/{slug}"
	APICategories  = "/api/v1/categories"
	APIWorkflows   = "/api/v1/workflows"
	MCP            = "/api/mcp"

	LocalePrefix           = "/{locale}/"
	ToolsPattern           = "/{locale}/tools"
	ToolPattern            = "/{locale}/tools/{slug}"
	RateToolPattern        = "/{locale}/tools/{slug}/rate"
	CategoryPattern        = "/{locale}/categories/{slug}"
	ComparePattern         = "/{locale}/compare"
	WorkflowsPattern       = "/{locale}/workflows"
	WorkflowsPrefix        = "/{locale}/workflows/"
	WorkflowPattern        = "/{locale}/workflows/{slug}"
	StartPattern           = "/{locale}/start"
	AdminPrefix            = "/{locale}/admin/"
	AdminLoginPattern      = "/{locale}/admin/login"
	AdminLogoutPattern     = "/{locale}/admin/logout"
	AdminNewToolPattern    = "/{locale}/admin/tools/new"
	AdminEditToolPattern   = "/{locale}/admin/tools/{slug}/edit"
	AdminDeleteToolPattern = "/{locale}/admin/tools/{slug}/delete"

	QuerySearch    = "q"
	QueryCategory  = "category"
	QueryPageToken = "page_token"
	QueryTools     = "tools"
	QueryRated     = "rated"
	QueryInterest  = "interest"
)

// Home returns the locale home route.
func Home(locale string) string {
	return "/" + escapeSegment(locale) + "/"
}

// Tools returns the tool list route.
func Tools(locale string) string {
	return "/" + escapeSegment(locale) + "/tools"
}

// ToolsQuery returns the tool list route with non-empty query values applied.
func ToolsQuery(locale, search, category, pageToken string) string {
	values := url.Values{}
	if search = strings.TrimSpace(search); search != "" {
		values.Set(QuerySearch, search)
	}
	if category = strings.TrimSpace(category); category != "" {
		values.Set(QueryCategory, category)
	}
	if pageToken = strings.TrimSpace(pageToken); pageToken != "" {
		values.Set(QueryPageToken, pageToken)
	}
	if len(values) == 0 {
		return Tools(locale)
	}
	return Tools(locale) + "?" + values.Encode()
}

// Tool returns the tool detail route.
func Tool(locale, slug string) string {
	return Tools(locale) + "/" + escapeSegment(slug)
}

// RateTool returns the rating submission route for a tool.
func RateTool(locale, slug string) string {
	return Tool(locale, slug) + "/rate"
}

// Category returns the category listing route.
func Category(locale, slug string) string {
	return "/" + escapeSegment(locale) + "/categories/" + escapeSegment(slug)
}

// Compare returns the comparison route, with selected tools when given.
func Compare(locale string, slugs ...string) string {
	base := "/" + escapeSegment(locale) + "/compare"
	if len(slugs) == 0 {
		return base
	}
	return base + "?" + QueryTools + "=" + url.QueryEscape(strings.Join(slugs, ","))
}

// Workflows returns the workflow list route.
func Workflows(locale string) string {
	return "/" + escapeSegment(locale) + "/workflows"
}

// Workflow returns the workflow detail route.
func Workflow(locale, slug string) string {
	return Workflows(locale) + "/" + escapeSegment(slug)
}

// Start returns the onboarding route.
func Start(locale string) string {
	return "/" + escapeSegment(locale) + "/start"
}

// AdminRoot returns the admin tool list route.
func AdminRoot(locale string) string {
	return "/" + escapeSegment(locale) + "/admin/"
}

// AdminLogin returns the admin sign-in route.
func AdminLogin(locale string) string {
	return AdminRoot(locale) + "login"
}

// AdminLogout returns the admin sign-out route.
func AdminLogout(locale string) string {
	return AdminRoot(locale) + "logout"
}

// AdminNewTool returns the admin create-tool route.
func AdminNewTool(locale string) string {
	return AdminRoot(locale) + "tools/new"
}

// AdminEditTool returns the admin edit-tool route.
func AdminEditTool(locale, slug string) string {
	return AdminRoot(locale) + "tools/" + escapeSegment(slug) + "/edit"
}

// AdminDeleteTool returns the admin delete-tool route.
func AdminDeleteTool(locale, slug string) string {
	return AdminRoot(locale) + "tools/" + escapeSegment(slug) + "/delete"
}

// APITool returns the JSON tool detail route.
func APITool(slug string) string {
	return APITools + "/" + escapeSegment(slug)
}

// Static returns the route of an embedded static asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimPrefix(name, "/")
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
