package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/platform/id"
)

const toolColumns = `tools.id, tools.slug, tools.name, tools.url, tools.category_slug,
		tools.pricing, tools.summary_json, tools.featured, tools.created_at, tools.updated_at`

// CreateTool inserts a new tool. The slug must be unused.
func (s *Store) CreateTool(ctx context.Context, tool directory.Tool) (directory.Tool, error) {
	if err := s.ready(ctx); err != nil {
		return directory.Tool{}, err
	}
	tool, err := directory.ValidateTool(tool)
	if err != nil {
		return directory.Tool{}, err
	}
	if tool.ID == "" {
		if tool.ID, err = id.NewID(); err != nil {
			return directory.Tool{}, fmt.Errorf("generate tool id: %w", err)
		}
	}
	now := s.timestamp()
	if tool.CreatedAt.IsZero() {
		tool.CreatedAt = now
	}
	tool.UpdatedAt = now

	summary, err := encodeLocalized(tool.Summary)
	if err != nil {
		return directory.Tool{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return directory.Tool{}, fmt.Errorf("begin create tool: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tools (
		   id, slug, name, url, category_slug, pricing, summary_json,
		   featured, search_text, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tool.ID, tool.Slug, tool.Name, tool.URL, tool.CategorySlug, string(tool.Pricing), summary,
		boolToInt(tool.Featured), searchText(tool), toMillis(tool.CreatedAt), toMillis(tool.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return directory.Tool{}, storage.ErrAlreadyExists
		}
		return directory.Tool{}, fmt.Errorf("create tool: %w", err)
	}
	if err := replaceTags(ctx, tx, tool.ID, tool.Tags); err != nil {
		return directory.Tool{}, err
	}
	if err := tx.Commit(); err != nil {
		return directory.Tool{}, fmt.Errorf("commit create tool: %w", err)
	}
	return tool, nil
}

// UpdateTool replaces the mutable fields of the tool with tool.Slug.
func (s *Store) UpdateTool(ctx context.Context, tool directory.Tool) (directory.Tool, error) {
	if err := s.ready(ctx); err != nil {
		return directory.Tool{}, err
	}
	tool, err := directory.ValidateTool(tool)
	if err != nil {
		return directory.Tool{}, err
	}
	existing, err := s.GetTool(ctx, tool.Slug)
	if err != nil {
		return directory.Tool{}, err
	}
	tool.ID = existing.ID
	tool.CreatedAt = existing.CreatedAt
	tool.UpdatedAt = s.timestamp()

	summary, err := encodeLocalized(tool.Summary)
	if err != nil {
		return directory.Tool{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return directory.Tool{}, fmt.Errorf("begin update tool: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`UPDATE tools SET
		   name = ?, url = ?, category_slug = ?, pricing = ?, summary_json = ?,
		   featured = ?, search_text = ?, updated_at = ?
		 WHERE id = ?`,
		tool.Name, tool.URL, tool.CategorySlug, string(tool.Pricing), summary,
		boolToInt(tool.Featured), searchText(tool), toMillis(tool.UpdatedAt), tool.ID,
	)
	if err != nil {
		return directory.Tool{}, fmt.Errorf("update tool: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return directory.Tool{}, storage.ErrNotFound
	}
	if err := replaceTags(ctx, tx, tool.ID, tool.Tags); err != nil {
		return directory.Tool{}, err
	}
	if err := tx.Commit(); err != nil {
		return directory.Tool{}, fmt.Errorf("commit update tool: %w", err)
	}
	return tool, nil
}

// DeleteTool removes a tool with its tags and ratings.
func (s *Store) DeleteTool(ctx context.Context, slug string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tools WHERE slug = ?`, strings.TrimSpace(slug))
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetTool returns one tool by slug.
func (s *Store) GetTool(ctx context.Context, slug string) (directory.Tool, error) {
	if err := s.ready(ctx); err != nil {
		return directory.Tool{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	tool, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return directory.Tool{}, storage.ErrNotFound
	}
	if err != nil {
		return directory.Tool{}, fmt.Errorf("get tool: %w", err)
	}
	tags, err := s.loadTags(ctx, []string{tool.ID})
	if err != nil {
		return directory.Tool{}, err
	}
	tool.Tags = tags[tool.ID]
	return tool, nil
}

// ListTools returns one page of tools ordered by slug.
func (s *Store) ListTools(ctx context.Context, query storage.ToolQuery) (storage.ToolPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ToolPage{}, err
	}
	if query.PageSize <= 0 {
		return storage.ToolPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageSize := min(query.PageSize, storage.MaxPageSize)

	var (
		where []string
		args  []any
	)
	if category := strings.TrimSpace(query.CategorySlug); category != "" {
		where = append(where, "tools.category_slug = ?")
		args = append(args, category)
	}
	if search := strings.ToLower(strings.TrimSpace(query.Search)); search != "" {
		where = append(where, `tools.search_text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(search)+"%")
	}
	if query.FeaturedOnly {
		where = append(where, "tools.featured = 1")
	}
	if !query.Condition.Empty() {
		where = append(where, query.Condition.Clause)
		args = append(args, query.Condition.Params...)
	}
	if token := strings.TrimSpace(query.PageToken); token != "" {
		where = append(where, "tools.slug > ?")
		args = append(args, token)
	}

	statement := `SELECT ` + toolColumns + ` FROM tools`
	if len(where) > 0 {
		statement += " WHERE " + strings.Join(where, " AND ")
	}
	statement += " ORDER BY tools.slug ASC LIMIT ?"
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, statement, args...)
	if err != nil {
		return storage.ToolPage{}, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	page := storage.ToolPage{Tools: make([]directory.Tool, 0, pageSize)}
	for rows.Next() {
		tool, err := scanTool(rows)
		if err != nil {
			return storage.ToolPage{}, fmt.Errorf("list tools: %w", err)
		}
		page.Tools = append(page.Tools, tool)
	}
	if err := rows.Err(); err != nil {
		return storage.ToolPage{}, fmt.Errorf("list tools: %w", err)
	}
	if len(page.Tools) > pageSize {
		page.NextPageToken = page.Tools[pageSize-1].Slug
		page.Tools = page.Tools[:pageSize]
	}

	tags, err := s.loadTags(ctx, storage.ToolIDs(page.Tools))
	if err != nil {
		return storage.ToolPage{}, err
	}
	for i := range page.Tools {
		page.Tools[i].Tags = tags[page.Tools[i].ID]
	}
	return page, nil
}

func (s *Store) loadTags(ctx context.Context, toolIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(toolIDs))
	if len(toolIDs) == 0 {
		return out, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT tool_id, tag FROM tool_tags WHERE tool_id IN (`+placeholders(len(toolIDs))+`)
		 ORDER BY tool_id, position`,
		stringArgs(toolIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("load tool tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var toolID, tag string
		if err := rows.Scan(&toolID, &tag); err != nil {
			return nil, fmt.Errorf("load tool tags: %w", err)
		}
		out[toolID] = append(out[toolID], tag)
	}
	return out, rows.Err()
}

func replaceTags(ctx context.Context, tx *sql.Tx, toolID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tool_tags WHERE tool_id = ?`, toolID); err != nil {
		return fmt.Errorf("clear tool tags: %w", err)
	}
	for position, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tool_tags (tool_id, tag, position) VALUES (?, ?, ?)`,
			toolID, tag, position,
		); err != nil {
			return fmt.Errorf("insert tool tag: %w", err)
		}
	}
	return nil
}

func scanTool(row rowScanner) (directory.Tool, error) {
	var (
		tool      directory.Tool
		pricing   string
		summary   string
		featured  int
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&tool.ID, &tool.Slug, &tool.Name, &tool.URL, &tool.CategorySlug,
		&pricing, &summary, &featured, &createdAt, &updatedAt,
	); err != nil {
		return directory.Tool{}, err
	}
	decoded, err := decodeLocalized(summary)
	if err != nil {
		return directory.Tool{}, err
	}
	tool.Pricing = directory.Pricing(pricing)
	tool.Summary = decoded
	tool.Featured = featured != 0
	tool.CreatedAt = fromMillis(createdAt)
	tool.UpdatedAt = fromMillis(updatedAt)
	return tool, nil
}

// searchText is the lowercased haystack used by ToolQuery.Search.
func searchText(tool directory.Tool) string {
	parts := []string{tool.Name, tool.Slug}
	locales := make([]string, 0, len(tool.Summary))
	for locale := range tool.Summary {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		parts = append(parts, tool.Summary[locale])
	}
	parts = append(parts, tool.Tags...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
