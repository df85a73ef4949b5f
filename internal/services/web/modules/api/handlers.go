package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/filter"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
	"github.com/louisbranch/toolatlas/internal/platform/timeouts"
	module "github.com/louisbranch/toolatlas/internal/services/web/module"
	weberrors "github.com/louisbranch/toolatlas/internal/services/web/platform/errors"
	"github.com/louisbranch/toolatlas/internal/services/web/platform/httpx"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// defaultPageSize applies when page_size is absent.
const defaultPageSize = 20

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

type ratingJSON struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type toolJSON struct {
	Slug      string            `json:"slug"`
	Name      string            `json:"name"`
	URL       string            `json:"url"`
	Category  string            `json:"category"`
	Pricing   string            `json:"pricing"`
	Summary   map[string]string `json:"summary"`
	Tags      []string          `json:"tags"`
	Featured  bool              `json:"featured"`
	Rating    ratingJSON        `json:"rating"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type toolListJSON struct {
	Tools         []toolJSON `json:"tools"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

type categoryJSON struct {
	Slug     string            `json:"slug"`
	Names    map[string]string `json:"names"`
	Position int               `json:"position"`
}

type workflowStepJSON struct {
	Position int               `json:"position"`
	Tool     string            `json:"tool"`
	Note     map[string]string `json:"note,omitempty"`
}

type workflowJSON struct {
	Slug  string             `json:"slug"`
	Title map[string]string  `json:"title"`
	Steps []workflowStepJSON `json:"steps"`
}

type errorJSON struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func newToolJSON(tool directory.Tool, rating directory.RatingSummary) toolJSON {
	tags := tool.Tags
	if tags == nil {
		tags = []string{}
	}
	return toolJSON{
		Slug:      tool.Slug,
		Name:      tool.Name,
		URL:       tool.URL,
		Category:  tool.CategorySlug,
		Pricing:   string(tool.Pricing),
		Summary:   tool.Summary,
		Tags:      tags,
		Featured:  tool.Featured,
		Rating:    ratingJSON{Count: rating.Count, Average: rating.Average},
		CreatedAt: tool.CreatedAt,
		UpdatedAt: tool.UpdatedAt,
	}
}

func storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(httpx.RequestContext(r), timeouts.StoreRequest)
}

func (h handlers) handleListTools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageSize := defaultPageSize
	if raw := strings.TrimSpace(query.Get("page_size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, weberrors.E(weberrors.KindInvalidInput, "page_size must be a non-negative integer"))
			return
		}
		if parsed > 0 {
			pageSize = parsed
		}
	}
	condition, err := filter.ParseToolFilter(query.Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := storeContext(r)
	defer cancel()
	page, err := h.deps.Store.ListTools(ctx, storage.ToolQuery{
		CategorySlug: strings.TrimSpace(query.Get(routepath.QueryCategory)),
		Search:       strings.TrimSpace(query.Get(routepath.QuerySearch)),
		Condition:    condition,
		PageSize:     pageSize,
		PageToken:    strings.TrimSpace(query.Get(routepath.QueryPageToken)),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	summaries, err := h.deps.Store.RatingSummaries(ctx, storage.ToolIDs(page.Tools))
	if err != nil {
		writeError(w, r, err)
		return
	}

	body := toolListJSON{Tools: make([]toolJSON, 0, len(page.Tools)), NextPageToken: page.NextPageToken}
	for _, tool := range page.Tools {
		body.Tools = append(body.Tools, newToolJSON(tool, summaries[tool.ID]))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, body)
}

func (h handlers) handleGetTool(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()
	tool, err := h.deps.Store.GetTool(ctx, r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	summaries, err := h.deps.Store.RatingSummaries(ctx, []string{tool.ID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newToolJSON(tool, summaries[tool.ID]))
}

func (h handlers) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()
	categories, err := h.deps.Store.ListCategories(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body := struct {
		Categories []categoryJSON `json:"categories"`
	}{Categories: make([]categoryJSON, 0, len(categories))}
	for _, category := range categories {
		body.Categories = append(body.Categories, categoryJSON{
			Slug:     category.Slug,
			Names:    category.Names,
			Position: category.Position,
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, body)
}

func (h handlers) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r)
	defer cancel()
	workflows, err := h.deps.Store.ListWorkflows(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body := struct {
		Workflows []workflowJSON `json:"workflows"`
	}{Workflows: make([]workflowJSON, 0, len(workflows))}
	for _, workflow := range workflows {
		item := workflowJSON{Slug: workflow.Slug, Title: workflow.Title, Steps: make([]workflowStepJSON, 0, len(workflow.Steps))}
		for _, step := range workflow.Steps {
			item.Steps = append(item.Steps, workflowStepJSON{Position: step.Position, Tool: step.ToolSlug, Note: step.Note})
		}
		body.Workflows = append(body.Workflows, item)
	}
	_ = httpx.WriteJSON(w, http.StatusOK, body)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, weberrors.E(weberrors.KindNotFound, "not found"))
}

// writeError maps err to a JSON error body. Server errors are logged and
// reported generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := weberrors.HTTPStatus(err)
	body := errorJSON{Error: err.Error()}
	if code := apperrors.CodeOf(err); code != apperrors.CodeUnknown {
		body.Code = string(code)
	}
	if status >= http.StatusInternalServerError {
		log.Printf("api error method=%s path=%s status=%d err=%v", r.Method, r.URL.Path, status, err)
		body = errorJSON{Error: http.StatusText(status)}
	}
	_ = httpx.WriteJSON(w, status, body)
}
