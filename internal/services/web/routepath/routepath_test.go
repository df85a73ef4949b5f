package routepath

import "testing"

func TestLocaleRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"home", Home("en"), "/en/"},
		{"tools", Tools("zh"), "/zh/tools"},
		{"tool", Tool("en", "chat-gpt"), "/en/tools/chat-gpt"},
		{"rate", RateTool("en", "chat-gpt"), "/en/tools/chat-gpt/rate"},
		{"category", Category("zh", "writing"), "/zh/categories/writing"},
		{"compare empty", Compare("en"), "/en/compare"},
		{"compare", Compare("en", "a", "b"), "/en/compare?tools=a%2Cb"},
		{"workflows", Workflows("en"), "/en/workflows"},
		{"workflow", Workflow("en", "blog-post"), "/en/workflows/blog-post"},
		{"start", Start("en"), "/en/start"},
		{"admin", AdminRoot("en"), "/en/admin/"},
		{"admin login", AdminLogin("en"), "/en/admin/login"},
		{"admin logout", AdminLogout("en"), "/en/admin/logout"},
		{"admin new", AdminNewTool("en"), "/en/admin/tools/new"},
		{"admin edit", AdminEditTool("en", "x"), "/en/admin/tools/x/edit"},
		{"admin delete", AdminDeleteTool("en", "x"), "/en/admin/tools/x/delete"},
		{"api tool", APITool("x"), "/api/v1/tools/x"},
		{"static", Static("/site.css"), "/static/site.css"},
		{"escaped", Tool("en", "a b"), "/en/tools/a%20b"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestToolsQuery(t *testing.T) {
	t.Parallel()

	if got := ToolsQuery("en", " ", "", ""); got != "/en/tools" {
		t.Fatalf("ToolsQuery(empty) = %q", got)
	}
	if got := ToolsQuery("en", "image gen", "design", "tok"); got != "/en/tools?category=design&page_token=tok&q=image+gen" {
		t.Fatalf("ToolsQuery() = %q", got)
	}
}
