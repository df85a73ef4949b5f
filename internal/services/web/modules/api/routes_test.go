package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/louisbranch/toolatlas/internal/testkit/directorytest"
	"github.com/louisbranch/toolatlas/internal/testkit/webtest"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(webtest.Deps(t)))
	return mux
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return out
}

func TestMountIsServerOnly(t *testing.T) {
	t.Parallel()

	mount, err := New(webtest.Deps(t)).Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !mount.ServerOnly || mount.Prefixes[0] != "/api/" {
		t.Fatalf("mount = %+v", mount)
	}
}

func TestListToolsPaginates(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	rr := webtest.Get(mux, "/api/v1/tools?page_size=2")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	first := decode[toolListJSON](t, rr.Body.Bytes())
	if len(first.Tools) != 2 || first.NextPageToken == "" {
		t.Fatalf("first page = %+v", first)
	}
	if first.Tools[0].Slug != directorytest.ToolAlpha || first.Tools[0].Rating.Count != 1 {
		t.Fatalf("first tool = %+v", first.Tools[0])
	}

	rr = webtest.Get(mux, "/api/v1/tools?page_size=2&page_token="+url.QueryEscape(first.NextPageToken))
	second := decode[toolListJSON](t, rr.Body.Bytes())
	if len(second.Tools) != 1 || second.Tools[0].Slug != directorytest.ToolGamma || second.NextPageToken != "" {
		t.Fatalf("second page = %+v", second)
	}
}

func TestListToolsFilters(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{name: "search", query: url.Values{"q": {"meeting"}}, want: []string{directorytest.ToolGamma}},
		{name: "category", query: url.Values{"category": {"design"}}, want: []string{directorytest.ToolBeta}},
		{name: "filter expression", query: url.Values{"filter": {`category = "writing" AND pricing != "free"`}}, want: []string{directorytest.ToolGamma}},
		{name: "featured filter", query: url.Values{"filter": {"featured = true"}}, want: []string{directorytest.ToolAlpha}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := webtest.Get(mux, "/api/v1/tools?"+tc.query.Encode())
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
			}
			page := decode[toolListJSON](t, rr.Body.Bytes())
			if len(page.Tools) != len(tc.want) {
				t.Fatalf("tools = %+v, want %v", page.Tools, tc.want)
			}
			for i, slug := range tc.want {
				if page.Tools[i].Slug != slug {
					t.Fatalf("tool[%d] = %q, want %q", i, page.Tools[i].Slug, slug)
				}
			}
		})
	}
}

func TestListToolsRejectsBadInput(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{name: "page size", query: "page_size=-1"},
		{name: "filter", query: "filter=" + url.QueryEscape("unknown_field = 1"), wantCode: "FILTER_INVALID"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := webtest.Get(mux, "/api/v1/tools?"+tc.query)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
			body := decode[errorJSON](t, rr.Body.Bytes())
			if body.Error == "" || body.Code != tc.wantCode {
				t.Fatalf("error body = %+v", body)
			}
		})
	}
}

func TestGetTool(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	rr := webtest.Get(mux, "/api/v1/tools/"+directorytest.ToolAlpha)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	tool := decode[toolJSON](t, rr.Body.Bytes())
	if tool.Name != "Alpha Writer" || tool.Summary["zh"] != "撰写长文。" || tool.Pricing != "free" {
		t.Fatalf("tool = %+v", tool)
	}

	rr = webtest.Get(mux, "/api/v1/tools/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestListCategoriesAndWorkflows(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t)
	categories := decode[struct {
		Categories []categoryJSON `json:"categories"`
	}](t, webtest.Get(mux, "/api/v1/categories").Body.Bytes())
	if len(categories.Categories) != 2 || categories.Categories[0].Slug != directorytest.CategoryWriting {
		t.Fatalf("categories = %+v", categories)
	}

	workflows := decode[struct {
		Workflows []workflowJSON `json:"workflows"`
	}](t, webtest.Get(mux, "/api/v1/workflows").Body.Bytes())
	if len(workflows.Workflows) != 1 || len(workflows.Workflows[0].Steps) != 2 {
		t.Fatalf("workflows = %+v", workflows)
	}
	if step := workflows.Workflows[0].Steps[1]; step.Position != 2 || step.Tool != directorytest.ToolBeta {
		t.Fatalf("step = %+v", step)
	}
}

func TestUnknownAPIPathIsJSONNotFound(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newTestMux(t), "/api/v2/nothing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := decode[errorJSON](t, rr.Body.Bytes()); body.Error != "not found" {
		t.Fatalf("body = %+v", body)
	}
}

func TestAPIIsReadOnly(t *testing.T) {
	t.Parallel()

	rr := webtest.PostForm(newTestMux(t), "/api/v1/tools", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
