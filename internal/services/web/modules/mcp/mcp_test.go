package mcp

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	"github.com/louisbranch/toolatlas/internal/testkit/directorytest"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func testDeps(t *testing.T) module.Dependencies {
	t.Helper()
	return module.Dependencies{Locales: i18n.DefaultSet(), Store: directorytest.OpenSeeded(t)}
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

func connect(t *testing.T, server *mcpsdk.Server) *mcpsdk.ClientSession {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("connect server: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestMountIsServerOnly(t *testing.T) {
	t.Parallel()

	mount, err := New(testDeps(t)).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !mount.ServerOnly || len(mount.Prefixes) != 1 || mount.Prefixes[0] != "/api/mcp" || mount.Handler == nil {
		t.Fatalf("mount = %+v", mount)
	}
}

func TestServerListsDirectoryTools(t *testing.T) {
	t.Parallel()

	session := connect(t, NewServer(testDeps(t)))
	result, err := session.ListTools(context.Background(), &mcpsdk.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	if got := strings.Join(names, ","); !strings.Contains(got, "search_tools") || !strings.Contains(got, "get_tool") || !strings.Contains(got, "list_categories") {
		t.Fatalf("tools = %s", got)
	}
}

func TestSearchToolsOverSession(t *testing.T) {
	t.Parallel()

	session := connect(t, NewServer(testDeps(t)))
	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name: "search_tools",
		Arguments: map[string]any{
			"category": directorytest.CategoryWriting,
			"locale":   "zh",
		},
	})
	if err != nil {
		t.Fatalf("call search_tools: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("search_tools failed: %+v", result)
	}
	output := decodeStructuredContent[SearchToolsResult](t, result.StructuredContent)
	if len(output.Tools) != 2 {
		t.Fatalf("tools = %+v, want 2", output.Tools)
	}
	if output.Tools[0].Slug != directorytest.ToolAlpha || output.Tools[0].Summary != "撰写长文。" {
		t.Fatalf("first tool = %+v", output.Tools[0])
	}
	if output.Tools[0].RatingCount != 1 || output.Tools[0].RatingAverage != 5 {
		t.Fatalf("rating = %d/%v, want 1/5", output.Tools[0].RatingCount, output.Tools[0].RatingAverage)
	}
}

func TestSearchToolsHandler(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	handler := SearchToolsHandler(deps.Store, deps.Locales)
	tests := []struct {
		name    string
		input   SearchToolsInput
		want    []string
		wantErr bool
	}{
		{name: "all", input: SearchToolsInput{}, want: []string{directorytest.ToolAlpha, directorytest.ToolBeta, directorytest.ToolGamma}},
		{name: "text", input: SearchToolsInput{Query: "meeting"}, want: []string{directorytest.ToolGamma}},
		{name: "filter", input: SearchToolsInput{Filter: `pricing = "paid"`}, want: []string{directorytest.ToolBeta}},
		{name: "bad filter", input: SearchToolsInput{Filter: `unknown = 1`}, wantErr: true},
		{name: "negative page size", input: SearchToolsInput{PageSize: -1}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, output, err := handler(context.Background(), &mcpsdk.CallToolRequest{}, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handler: %v", err)
			}
			if result != nil {
				t.Fatal("expected nil result on success")
			}
			var got []string
			for _, tool := range output.Tools {
				got = append(got, tool.Slug)
			}
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("slugs = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetToolHandler(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	handler := GetToolHandler(deps.Store, deps.Locales)

	_, output, err := handler(context.Background(), &mcpsdk.CallToolRequest{}, GetToolInput{Slug: directorytest.ToolBeta, Locale: "zh"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	// Beta has no zh summary, so the default locale fills in.
	if output.Summary != "Sketches images from prompts." || output.Pricing != "paid" {
		t.Fatalf("output = %+v", output)
	}

	for _, slug := range []string{"", "missing"} {
		if _, _, err := handler(context.Background(), &mcpsdk.CallToolRequest{}, GetToolInput{Slug: slug}); err == nil {
			t.Fatalf("slug %q: expected error", slug)
		}
	}
}

func TestListCategoriesHandler(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	_, output, err := ListCategoriesHandler(deps.Store, deps.Locales)(context.Background(), &mcpsdk.CallToolRequest{}, ListCategoriesInput{Locale: "zh"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(output.Categories) != 2 || output.Categories[0].Name != "写作" || output.Categories[1].Slug != directorytest.CategoryDesign {
		t.Fatalf("categories = %+v", output.Categories)
	}
}

func TestStreamableHTTPEndpoint(t *testing.T) {
	t.Parallel()

	mount, err := New(testDeps(t)).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	srv := httptest.NewServer(mount.Handler)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcpsdk.StreamableClientTransport{Endpoint: srv.URL}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      "get_tool",
		Arguments: map[string]any{"slug": directorytest.ToolAlpha},
	})
	if err != nil {
		t.Fatalf("call get_tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("get_tool failed: %+v", result.Content)
	}
	if output := decodeStructuredContent[ToolResult](t, result.StructuredContent); output.Name != "Alpha Writer" {
		t.Fatalf("output = %+v", output)
	}
}
